package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Pull in a local .env before viper reads the environment
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment variables override file values
	v.SetEnvPrefix("ARTICUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("articut.username", "ARTICUT_USERNAME"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}
	if err := v.BindEnv("articut.api_key", "ARTICUT_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".articut"))
		}

		// Check /etc
		v.AddConfigPath("/etc/articut/")
	}

	// Read config file. When no path was given the file is optional
	// since the environment can supply the credentials.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Request defaults
	v.SetDefault("defaults.version", "latest")
	v.SetDefault("defaults.level", "lv2")
	v.SetDefault("defaults.pinyin", "BOPOMOFO")

	// Batch defaults
	v.SetDefault("batch.concurrency", 5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Articut.Username == "" {
		return fmt.Errorf("articut.username is required")
	}

	if cfg.Articut.APIKey == "" || cfg.Articut.APIKey == "your-api-key-here" {
		return fmt.Errorf("articut.api_key must be set to a valid API key")
	}

	// Validate segmentation level
	validLevels := map[string]bool{
		"lv1": true,
		"lv2": true,
		"lv3": true,
	}
	if !validLevels[cfg.Defaults.Level] {
		return fmt.Errorf("invalid defaults.level: %s (must be 'lv1', 'lv2' or 'lv3')", cfg.Defaults.Level)
	}

	// Validate pinyin system
	validPinyin := map[string]bool{
		"HANYU":    true,
		"BOPOMOFO": true,
	}
	if !validPinyin[cfg.Defaults.Pinyin] {
		return fmt.Errorf("invalid defaults.pinyin: %s (must be 'HANYU' or 'BOPOMOFO')", cfg.Defaults.Pinyin)
	}

	if cfg.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1")
	}

	// Validate logging level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
