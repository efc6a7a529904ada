package config

import (
	"testing"

	"popgen/internal/errors"
)

// TestLoadDefaults tests the default configuration values
func TestLoadDefaults(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", config.Server.Port)
	}
	if config.Data.HeaderOffset != 16 {
		t.Errorf("Expected default header offset 16, got %d", config.Data.HeaderOffset)
	}
	if config.Data.MaxPyramids != 6 {
		t.Errorf("Expected default max pyramids 6, got %d", config.Data.MaxPyramids)
	}
	if config.Chart.DPI != 150 {
		t.Errorf("Expected default DPI 150, got %d", config.Chart.DPI)
	}
}

// TestLoadOverrides tests environment variable overrides
func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HEADER_OFFSET", "2")
	t.Setenv("MAX_PYRAMIDS", "3")
	t.Setenv("CHART_WIDTH_IN", "6.5")

	config, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Server.Port != "9999" {
		t.Errorf("Expected port 9999, got %s", config.Server.Port)
	}
	if config.Data.HeaderOffset != 2 {
		t.Errorf("Expected header offset 2, got %d", config.Data.HeaderOffset)
	}
	if config.Data.MaxPyramids != 3 {
		t.Errorf("Expected max pyramids 3, got %d", config.Data.MaxPyramids)
	}
	if config.Chart.WidthInches != 6.5 {
		t.Errorf("Expected chart width 6.5, got %v", config.Chart.WidthInches)
	}
}

// TestLoadInvalid tests configuration validation failures
func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative header offset", "HEADER_OFFSET", "-1"},
		{"zero max pyramids", "MAX_PYRAMIDS", "0"},
		{"zero DPI", "CHART_DPI", "0"},
		{"negative chart width", "CHART_WIDTH_IN", "-2"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.key, test.value)
			_, err := Load()
			if err == nil {
				t.Fatal("Expected validation error, got none")
			}
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("Expected code %s, got %s", errors.CodeConfigInvalid, errors.GetCode(err))
			}
		})
	}
}
