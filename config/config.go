package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tferdous17/rbkv/utils"
)

type Config struct {
	Shards            int     `yaml:"shards"`
	HTTPAddr          string  `yaml:"http_addr"`
	GRPCAddr          string  `yaml:"grpc_addr"`
	ExpectedKeys      uint32  `yaml:"expected_keys"`
	FalsePositiveRate float64 `yaml:"false_positive_rate"`
}

func Default() *Config {
	return &Config{
		Shards:            3,
		HTTPAddr:          ":8080",
		GRPCAddr:          ":11000",
		ExpectedKeys:      1024,
		FalsePositiveRate: 0.01,
	}
}

// ReadFile overlays the YAML file at path on the defaults. Fields the file leaves out keep their
// default values.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", utils.ErrInvalidConfig, path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) Validate() error {
	switch {
	case config.Shards < 1:
		return fmt.Errorf("%w: shards must be at least 1, got %d", utils.ErrInvalidConfig, config.Shards)
	case config.HTTPAddr == "":
		return fmt.Errorf("%w: http_addr is required", utils.ErrInvalidConfig)
	case config.GRPCAddr == "":
		return fmt.Errorf("%w: grpc_addr is required", utils.ErrInvalidConfig)
	case config.ExpectedKeys == 0:
		return fmt.Errorf("%w: expected_keys must be positive", utils.ErrInvalidConfig)
	case config.FalsePositiveRate <= 0 || config.FalsePositiveRate >= 1:
		return fmt.Errorf("%w: false_positive_rate must be in (0, 1), got %v", utils.ErrInvalidConfig, config.FalsePositiveRate)
	}
	return nil
}
