package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Color modes. Auto colors only when stdout is a terminal.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds application configuration.
type Config struct {
	Store StoreConfig
	UI    UIConfig
}

// StoreConfig selects where the order list is persisted.
type StoreConfig struct {
	Backend string
	Dir     string
	Key     string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
	Title string
	Color string
}

// DefaultDir is where data lives unless configured otherwise.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "orders")
}

// Load reads configuration from file and env. Env var overrides use prefix
// ORDERS_, e.g. ORDERS_STORE_BACKEND=sqlite.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("store.backend", BackendJSON)
	v.SetDefault("store.dir", DefaultDir())
	v.SetDefault("store.key", "orders")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.title", "DieGrotte-Orders")
	v.SetDefault("ui.color", ColorAuto)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ORDERS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "orders"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ORDERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly named file must exist; the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return &Error{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q (want json, sqlite or memory)", c.Store.Backend)}
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return &Error{Field: "store.key", Message: "key cannot be empty"}
	}
	if c.Store.Backend != BackendMemory && strings.TrimSpace(c.Store.Dir) == "" {
		return &Error{Field: "store.dir", Message: "directory cannot be empty"}
	}
	switch c.UI.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return &Error{Field: "ui.color", Message: fmt.Sprintf("unknown color mode %q (want auto, always or never)", c.UI.Color)}
	}
	return nil
}

// Error represents a configuration validation error
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
