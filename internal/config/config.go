package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BEYONDHOME_SERVER_PORT.
const EnvPrefix = "BEYONDHOME"

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Port         int  `mapstructure:"port"`
	WatchCatalog bool `mapstructure:"watch_catalog"`
}

// Config holds all runtime configuration.
// Values are populated from .beyondhome.yaml, BEYONDHOME_* env vars, and CLI flags.
type Config struct {
	CatalogPath string       `mapstructure:"catalog_path"`
	Pipeline    string       `mapstructure:"pipeline"`
	LogLevel    string       `mapstructure:"log_level"`
	ExportDir   string       `mapstructure:"export_dir"`
	DefaultMode string       `mapstructure:"default_mode"`
	Server      ServerConfig `mapstructure:"server"`
}

// SetupEnv makes viper read BEYONDHOME_* variables, mapping nested keys
// with underscores.
func SetupEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("catalog_path", "")
	viper.SetDefault("pipeline", "full")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("export_dir", "receipts")
	viper.SetDefault("default_mode", "homestead")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.watch_catalog", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Pipeline = strings.ToLower(cfg.Pipeline)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.Pipeline != "full" && cfg.Pipeline != "compact" {
		return Config{}, fmt.Errorf("invalid pipeline %q: want full or compact", cfg.Pipeline)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
