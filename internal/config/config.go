// Package config loads the application configuration for the ccomply binary.
// Settings live in ~/.config/cloud-comply/config.yaml and provide defaults
// for values not given on the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	AWS    AWSConfig    `mapstructure:"aws"`
	Output OutputConfig `mapstructure:"output"`

	// PolicyPath points at a policy file applied to every run unless
	// overridden with --policy.
	PolicyPath string `mapstructure:"policy_path"`
}

// AWSConfig holds AWS defaults used when flags are not provided.
type AWSConfig struct {
	// DefaultProfile is used when no --profile flag is provided.
	DefaultProfile string `mapstructure:"default_profile"`

	// DefaultRegions restricts audits to these regions when no --region
	// flag is provided. Empty means discover all active regions.
	DefaultRegions []string `mapstructure:"default_regions"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	// Format is the default report format: table, json, or text.
	Format string `mapstructure:"format"`

	// Colored enables ANSI colour in table and text output.
	Colored bool `mapstructure:"colored"`
}

// Dir returns the configuration directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cloud-comply"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cloud-comply"), nil
}

// Load reads the configuration file if present. A missing file is not an
// error; defaults are returned so ccomply works out of the box.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return load(dir)
}

func load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("output.format", "table")
	v.SetDefault("output.colored", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
