package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"archguard/internal/errors"
)

// Config represents the complete archguard configuration
type Config struct {
	Version int    `json:"version" mapstructure:"version"`
	Model   string `json:"model" mapstructure:"model"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains file-universe and analysis settings
type ScanConfig struct {
	// Excludes lists path globs excluded from the file universe.
	// The tool's own artifacts (.archguard) are always excluded.
	Excludes []string `json:"excludes" mapstructure:"excludes"`

	// Workers bounds concurrent per-file analysis. Zero means GOMAXPROCS.
	Workers int `json:"workers" mapstructure:"workers"`

	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`

	// FileTimeoutMs bounds a single file's parse so one pathological
	// file cannot stall the run. Zero disables the timeout.
	FileTimeoutMs int `json:"fileTimeoutMs" mapstructure:"fileTimeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Model:   "architecture.json",
		Scan: ScanConfig{
			Excludes:         []string{"node_modules", "vendor", "build", "dist", "__pycache__"},
			Workers:          0,
			MaxFileSizeBytes: 1000000,
			FileTimeoutMs:    10000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.archguard/config.json.
// A missing config file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("model", "architecture.json")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".archguard"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, errors.New(errors.ConfigInvalid, "cannot read config", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "cannot unmarshal config", err)
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.archguard/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".archguard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.Newf(errors.ConfigInvalid, "unsupported config version %d", c.Version)
	}
	if c.Model == "" {
		return errors.Newf(errors.ConfigInvalid, "model path must not be empty")
	}
	if c.Scan.Workers < 0 {
		return errors.Newf(errors.ConfigInvalid, "scan.workers must not be negative, got %d", c.Scan.Workers)
	}
	if c.Scan.MaxFileSizeBytes < 0 {
		return errors.Newf(errors.ConfigInvalid, "scan.maxFileSizeBytes must not be negative, got %d", c.Scan.MaxFileSizeBytes)
	}
	return nil
}
