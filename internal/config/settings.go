// Package config loads application settings from file, environment, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. ORBIT_DATA_DIR.
const EnvPrefix = "ORBIT"

// Config is the resolved application configuration.
type Config struct {
	DataDir    string        `mapstructure:"data_dir" validate:"required"`
	Storage    StorageConfig `mapstructure:"storage"`
	Log        LogConfig     `mapstructure:"log"`
	HandoffTTL time.Duration `mapstructure:"handoff_ttl" validate:"gt=0"`
}

// StorageConfig selects where designs are persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,log_level"`
	Human bool   `mapstructure:"human"`
	// File receives logs while a full-screen view owns the terminal.
	File string `mapstructure:"file"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		DataDir: "~/.orbit",
		Storage: StorageConfig{Backend: "file"},
		Log: LogConfig{
			Level: "warn",
			Human: true,
			File:  "",
		},
		HandoffTTL: 30 * time.Minute,
	}
}

// DefaultConfigPath returns ~/.config/orbit/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "orbit", "config.yaml"), nil
}

// Load resolves configuration. An explicit path must exist; otherwise the
// default location is used when present. Environment variables override files.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.human", defaults.Log.Human)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("handoff_ttl", defaults.HandoffTTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		v.AddConfigPath(filepath.Dir(defaultPath))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	dataDir, err := ExpandPath(cfg.DataDir)
	if err != nil {
		return Config{}, err
	}
	cfg.DataDir = dataDir

	if cfg.Log.File != "" {
		logFile, err := ExpandPath(cfg.Log.File)
		if err != nil {
			return Config{}, err
		}
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory and cleans the result.
func ExpandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Clean(p), nil
}
