package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hamii31/loan-calculator/internal/config"
	"github.com/hamii31/loan-calculator/pkg/constants"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address string               `yaml:"address"`
	Logging config.LoggingConfig `yaml:"logging"`
	Cache   CacheConfig          `yaml:"cache"`
}

// CacheConfig selects the schedule response cache backend. An empty
// RedisAddress means the in-process memory cache.
type CacheConfig struct {
	RedisAddress string `yaml:"redisAddress,omitempty"`
}

// LoadConfig loads the server configuration from YAML. If the file does not
// exist, defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address: constants.DefaultServerAddress,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
}
