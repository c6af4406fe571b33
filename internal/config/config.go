// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	CatalogPath  string
	DatabasePath string
	DatabaseType string // "pebble" (default) or "sqlite"
	EnableSQLite bool   // Must be true to use SQLite (safety flag)
	LogLevel     string

	SpinDebounce   time.Duration
	ViewportWidth  int
	ViewportHeight int

	WatchCatalog       bool
	RateLimitPerMinute int
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	viper.SetDefault("catalog_path", "catalog.yaml")
	viper.SetDefault("database_path", "cover-preview.db")
	viper.SetDefault("database_type", "pebble")
	viper.SetDefault("enable_sqlite3_i_know_the_risks", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("spin_debounce", "250ms")
	viper.SetDefault("viewport_width", 1440)
	viper.SetDefault("viewport_height", 900)
	viper.SetDefault("watch_catalog", true)
	viper.SetDefault("rate_limit_per_minute", 600)

	AppConfig = Config{
		CatalogPath:        viper.GetString("catalog_path"),
		DatabasePath:       viper.GetString("database_path"),
		DatabaseType:       strings.ToLower(viper.GetString("database_type")),
		EnableSQLite:       viper.GetBool("enable_sqlite3_i_know_the_risks"),
		LogLevel:           viper.GetString("log_level"),
		SpinDebounce:       viper.GetDuration("spin_debounce"),
		ViewportWidth:      viper.GetInt("viewport_width"),
		ViewportHeight:     viper.GetInt("viewport_height"),
		WatchCatalog:       viper.GetBool("watch_catalog"),
		RateLimitPerMinute: viper.GetInt("rate_limit_per_minute"),
	}

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
	if AppConfig.DatabaseType == "" {
		AppConfig.DatabaseType = "pebble"
	}
	if AppConfig.SpinDebounce <= 0 {
		AppConfig.SpinDebounce = 250 * time.Millisecond
	}
}

// Validate checks values viper cannot type check on its own.
func (c Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path is required")
	}
	switch c.DatabaseType {
	case "pebble", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database_type %q", c.DatabaseType)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	return nil
}
