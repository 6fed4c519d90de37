// Package config loads application configuration from file and environment.
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
	Data    DataConfig
	UI      UIConfig
	Advisor AdvisorConfig
	Log     LogConfig
}

// DataConfig locates the on-disk state.
type DataConfig struct {
	Dir   string
	Rules string // optional categorization rules TOML; empty means built-in table
}

// UIConfig holds presentation settings. The mapstructure tags carry the
// multi-word keys; viper lowercases but does not snake_case field names.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	ExportDir      string `mapstructure:"export_dir"`
}

// AdvisorConfig holds chat settings.
type AdvisorConfig struct {
	Model     string
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

// Load reads configuration from file and env. Env var overrides use prefix
// LEDGERPAD_, e.g. LEDGERPAD_DATA_DIR.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.rules", "")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.export_dir", "exports")
	v.SetDefault("advisor.model", "openai/gpt-3.5-turbo")
	v.SetDefault("advisor.api_key_env", "OPENROUTER_API_KEY")
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LEDGERPAD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ledgerpad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LEDGERPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// APIKey resolves the advisor key: environment first, then the config file
// value. Prefer the env var; the file value is stored in plain text.
func (c Config) APIKey() string {
	env := strings.TrimSpace(c.Advisor.APIKeyEnv)
	if env == "" {
		env = "OPENROUTER_API_KEY"
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return strings.TrimSpace(c.Advisor.APIKey)
}

// Save writes the config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("LEDGERPAD_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "ledgerpad", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("data.dir", cfg.Data.Dir)
	v.Set("data.rules", cfg.Data.Rules)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.export_dir", cfg.UI.ExportDir)
	v.Set("advisor.model", cfg.Advisor.Model)
	v.Set("advisor.api_key_env", cfg.Advisor.APIKeyEnv)
	v.Set("advisor.api_key", cfg.Advisor.APIKey)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
