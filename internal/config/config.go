package config

import (
	"os"
	"strconv"

	"popgen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Chart  ChartConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds spreadsheet ingestion settings
type DataConfig struct {
	// HeaderOffset is the number of leading non-data rows before the header
	// row. The UN World Population Prospects workbooks carry a 16-row
	// preamble.
	HeaderOffset int
	// MaxPyramids bounds the number of selections per generation batch.
	MaxPyramids int
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			HeaderOffset: getEnvIntOrDefault("HEADER_OFFSET", 16),
			MaxPyramids:  getEnvIntOrDefault("MAX_PYRAMIDS", 6),
		},
		Chart: ChartConfig{
			WidthInches:  getEnvFloatOrDefault("CHART_WIDTH_IN", 12),
			HeightInches: getEnvFloatOrDefault("CHART_HEIGHT_IN", 8),
			DPI:          getEnvIntOrDefault("CHART_DPI", 150),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Data.HeaderOffset < 0 {
		return errors.ConfigInvalid("HEADER_OFFSET must not be negative")
	}
	if config.Data.MaxPyramids < 1 {
		return errors.ConfigInvalid("MAX_PYRAMIDS must be at least 1")
	}
	if config.Chart.WidthInches <= 0 || config.Chart.HeightInches <= 0 {
		return errors.ConfigInvalid("chart dimensions must be positive")
	}
	if config.Chart.DPI <= 0 {
		return errors.ConfigInvalid("CHART_DPI must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
