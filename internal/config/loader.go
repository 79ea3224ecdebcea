package config

import (
	"os"

	"github.com/spf13/viper"
)

// Load returns the defaults merged with an optional YAML config file.
// The file path comes from TASKIFY_CONFIG, falling back to
// ./taskify.yaml; a missing file just yields the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := envOrDefault("TASKIFY_CONFIG", "taskify.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
