package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	BotToken    string
	DatabaseURL string
	MetricsAddr string
	LogLevel    string

	// Limits applied to user input.
	MaxFileSize   int64   // uploaded CSV size cap, bytes
	MaxBodyWeight float64 // exclusive upper bound for a mass value, kg

	// MaintenanceThreshold is the fraction of mean mass below which a weekly
	// rate counts as "maintaining" rather than surplus or deficit.
	MaintenanceThreshold float64
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_FILE_SIZE", 100*1024)
	v.SetDefault("MAX_BODY_WEIGHT", 1000.0)
	v.SetDefault("MAINTENANCE_THRESHOLD", 0.001)

	cfg := &Config{
		BotToken:             v.GetString("TELEGRAM_TOKEN"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		MetricsAddr:          v.GetString("METRICS_ADDR"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		MaxFileSize:          v.GetInt64("MAX_FILE_SIZE"),
		MaxBodyWeight:        v.GetFloat64("MAX_BODY_WEIGHT"),
		MaintenanceThreshold: v.GetFloat64("MAINTENANCE_THRESHOLD"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is not set")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", cfg.MaxFileSize)
	}
	if cfg.MaxBodyWeight <= 0 {
		return nil, fmt.Errorf("MAX_BODY_WEIGHT must be positive, got %v", cfg.MaxBodyWeight)
	}
	if cfg.MaintenanceThreshold < 0 {
		return nil, fmt.Errorf("MAINTENANCE_THRESHOLD must not be negative, got %v", cfg.MaintenanceThreshold)
	}

	return cfg, nil
}
