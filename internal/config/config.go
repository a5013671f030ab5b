// Package config loads the server configuration from a YAML file with
// sensible defaults for local runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Listen   string   `yaml:"listen"`
	LogLevel string   `yaml:"log_level"`
	Currency string   `yaml:"currency"`
	Language string   `yaml:"language"`
	Services Services `yaml:"services"`
	Redis    Redis    `yaml:"redis"`
}

// Services holds the base URLs of the external services the engine
// depends on. An empty URL leaves that collaborator unwired.
type Services struct {
	Optimizer string `yaml:"optimizer"`
	Exchange  string `yaml:"exchange"`
	Places    string `yaml:"places"`
	Agent     string `yaml:"agent"`
	Trips     string `yaml:"trips"`
}

// Redis configures the Redis trip store, used instead of the HTTP trip
// service when an address is set.
type Redis struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Currency: "USD",
		Language: "en",
	}
}

// Load reads a YAML configuration file over the defaults. PLANORA_LISTEN
// overrides the listen address from the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("PLANORA_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	return cfg, nil
}
