package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Cue    CueConfig    `yaml:"cue"`
	Locale string       `yaml:"locale"` // message catalog locale, "" = $LANG
	Logger LoggerConfig `yaml:"logger"`
}

// CueConfig holds settings for the external cue binary.
type CueConfig struct {
	ExecutablePath string `yaml:"executable_path"` // "" = search PATH
	Timeout        string `yaml:"timeout"`         // duration string, e.g. "5s"
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
	Output string `yaml:"output"` // stderr|stdout|file path
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Cue: CueConfig{
			ExecutablePath: "",
			Timeout:        "5s",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads the YAML config at path, merged over Defaults. A missing file
// is not an error: defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides lets the environment win over file values.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CUEBRIDGE_CUE_PATH"); v != "" {
		cfg.Cue.ExecutablePath = v
	}
	if v := os.Getenv("CUEBRIDGE_TIMEOUT"); v != "" {
		cfg.Cue.Timeout = v
	}
	if v := os.Getenv("CUEBRIDGE_LOCALE"); v != "" {
		cfg.Locale = v
	}
}

// Validate rejects configurations the rest of the program cannot act on.
func Validate(cfg *Config) error {
	d, err := cfg.Cue.TimeoutDuration()
	if err != nil {
		return fmt.Errorf("cue.timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("cue.timeout must be positive, got %s", cfg.Cue.Timeout)
	}

	switch strings.ToLower(cfg.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logger.level: unknown level %q", cfg.Logger.Level)
	}
	switch strings.ToLower(cfg.Logger.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logger.format: unknown format %q", cfg.Logger.Format)
	}
	return nil
}

// TimeoutDuration parses the configured per-invocation timeout.
func (c CueConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 5 * time.Second, nil
	}
	return time.ParseDuration(c.Timeout)
}
