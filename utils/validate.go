package utils

func ValidateKey(key string) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return nil
}

func ValidateKV(key string, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if len(value) == 0 {
		return ErrEmptyValue
	}
	return nil
}
