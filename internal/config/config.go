package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

// StorageConfig holds sqlite settings.
type StorageConfig struct {
	Path      string
	Ephemeral bool
}

// LogConfig holds file-logging settings.
type LogConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat          string `mapstructure:"date_format"`
	CaseSensitiveSearch bool   `mapstructure:"case_sensitive_search"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix SPENDWISE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("storage.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "spendwise", "spendwise.db"))
	v.SetDefault("storage.ephemeral", false)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "spendwise", "spendwise.log"))
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.case_sensitive_search", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SPENDWISE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "spendwise"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPENDWISE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed.
func Save(cfg Config) error {
	path := os.Getenv("SPENDWISE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "spendwise", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.ephemeral", cfg.Storage.Ephemeral)
	v.Set("log.path", cfg.Log.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.case_sensitive_search", cfg.UI.CaseSensitiveSearch)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
