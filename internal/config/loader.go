// Package config provides configuration management for the sharpline pipeline.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("SHARPLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// The config file may be absent; defaults plus environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("SHARPLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "sharpline")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("training.iterations", 500)
	v.SetDefault("training.learning_rate", 0.05)
	v.SetDefault("training.lambda", 0.01)
	v.SetDefault("training.half_life_days", 120)
	v.SetDefault("training.train_split", 0.7)
	v.SetDefault("training.min_examples", 10)
	v.SetDefault("training.min_total_examples", 50)
	v.SetDefault("training.min_spread_examples", 100)
	v.SetDefault("training.sigma_floor", 6.0)
	v.SetDefault("training.markets", []string{"moneyline", "spread", "total"})
	v.SetDefault("calibration.method", "isotonic")
	v.SetDefault("calibration.min_samples", 400)
	v.SetDefault("ensemble.base_weight", 0.7)
	v.SetDefault("ensemble.market_weight", 0.3)
	v.SetDefault("ensemble.underdog_base_weight", 0.5)
	v.SetDefault("ensemble.underdog_market_weight", 0.5)
	v.SetDefault("backtest.stake", 10.0)
	v.SetDefault("backtest.min_roi", 0.05)
	v.SetDefault("backtest.max_ece", 0.10)
	v.SetDefault("backtest.min_bets", 500)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
