// Package config centralizes typed configuration loaded through Viper
// from file, environment and defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/rodmarques/counterscan/internal/logger"
	"github.com/rodmarques/counterscan/internal/scraper"
)

// App identity defaults.
const (
	AppName    = "counterscan"
	AppVersion = "1.0.0"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ScanConfig holds the scan pipeline settings.
type ScanConfig struct {
	Query          string `mapstructure:"query"`
	Workers        int    `mapstructure:"workers"`
	ModelPath      string `mapstructure:"model_path"`
	DatabasePath   string `mapstructure:"database_path"`
	OutputDir      string `mapstructure:"output_dir"`
	ReferenceTable string `mapstructure:"reference_table"`
	EnrichDetails  bool   `mapstructure:"enrich_details"`
}

// Config is the full application configuration.
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Logger  logger.Config  `mapstructure:"logger"`
	Scraper scraper.Config `mapstructure:"scraper"`
	Scan    ScanConfig     `mapstructure:"scan"`
}

// SetDefaults registers production-safe defaults with Viper.
func SetDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        AppName,
		"version":     AppVersion,
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"encoding":    "json",
		"development": false,
	})

	viper.SetDefault("scraper", map[string]any{
		"base_url":        "https://www.amazon.com.br",
		"delay":           (2 * time.Second).String(),
		"request_timeout": (30 * time.Second).String(),
		"max_pages":       3,
		"parallelism":     1,
	})

	viper.SetDefault("scan", map[string]any{
		"query":           "cartucho hp 664",
		"workers":         4,
		"model_path":      "data/model.gob",
		"database_path":   "data/counterscan.db",
		"output_dir":      "output",
		"reference_table": "",
		"enrich_details":  true,
	})
}

// Load unmarshals the merged Viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling configuration: %w", err)
	}
	return &cfg, nil
}
