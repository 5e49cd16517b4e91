package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultMissingKey = "error"
	DefaultPrompt     = "kvs> "
)

type Config struct {
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	MissingKey string `yaml:"missing_key"`
	Prompt     string `yaml:"prompt"`
}

// LoadConfig loads configuration from a YAML file if path is provided,
// applies environment variable overrides and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the front end cannot act on.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return errors.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("invalid log_format %q (want text or json)", c.LogFormat)
	}
	switch c.MissingKey {
	case "error", "ignore":
	default:
		return errors.Errorf("invalid missing_key %q (want error or ignore)", c.MissingKey)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.MissingKey == "" {
		c.MissingKey = DefaultMissingKey
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
}

// applyEnvOverrides allows environment variables to override YAML config values
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KVS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("KVS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("KVS_MISSING_KEY"); v != "" {
		cfg.MissingKey = v
	}
	if v := os.Getenv("KVS_PROMPT"); v != "" {
		cfg.Prompt = v
	}
}
