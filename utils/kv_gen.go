package utils

import (
	"math/rand"
)

var chars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

var colors = []string{"red", "green", "blue", "yellow", "orange", "purple", "pink", "brown", "black", "white"}

// GenerateRandomKey returns a random alphanumeric key of the given length.
func GenerateRandomKey(length int) string {
	b := make([]rune, length)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}

// GenerateRandomEntry returns a random key paired with a random color name.
func GenerateRandomEntry(keyLength int) (string, string) {
	return GenerateRandomKey(keyLength), colors[rand.Intn(len(colors))]
}
