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
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig points at the backend collaborator.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds the sqlite snapshot settings.
type CacheConfig struct {
	Path           string `mapstructure:"path"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// SessionConfig holds the local session directory. Empty means the platform
// user config dir.
type SessionConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds the log file path. Empty means next to the session dir.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// BYLOCATION_, e.g. BYLOCATION_API_BASE_URL.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("cache.path", filepath.Join(home, ".local", "share", "bylocation", "bylocation.db"))
	v.SetDefault("cache.migrations_path", "internal/database/migrations")
	v.SetDefault("session.dir", "")
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BYLOCATION_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "bylocation"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BYLOCATION")
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
