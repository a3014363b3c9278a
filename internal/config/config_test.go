package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}

	if conf.Server.Address != ":8080" {
		t.Errorf("default address = %q, expected \":8080\"", conf.Server.Address)
	}
	if conf.Thresholds.Global != 500_000_000 {
		t.Errorf("default global threshold = %v, expected 500000000", conf.Thresholds.Global)
	}
	if conf.Thresholds.Local != 50_000_000 {
		t.Errorf("default local threshold = %v, expected 50000000", conf.Thresholds.Local)
	}
	if conf.Currency.BaseCurrency != "TRY" {
		t.Errorf("default base currency = %q, expected TRY", conf.Currency.BaseCurrency)
	}
	if conf.History.Directory != "data" {
		t.Errorf("default history directory = %q, expected data", conf.History.Directory)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() on missing file error: %v", err)
	}
	if conf.Server.Address != ":8080" {
		t.Errorf("missing file should yield defaults, got address %q", conf.Server.Address)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	content := `
server:
  address: ":9191"
currency:
  baseCurrency: EUR
  cacheTtlSeconds: 120
thresholds:
  global: 750000000
  local: 75000000
history:
  directory: /tmp/toolkit-history
  recentLimit: 10
`
	path := filepath.Join(t.TempDir(), "toolkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}

	if conf.Server.Address != ":9191" {
		t.Errorf("address = %q, expected \":9191\"", conf.Server.Address)
	}
	if conf.Currency.BaseCurrency != "EUR" {
		t.Errorf("base currency = %q, expected EUR", conf.Currency.BaseCurrency)
	}
	if conf.Thresholds.Global != 750_000_000 {
		t.Errorf("global threshold = %v, expected 750000000", conf.Thresholds.Global)
	}
	if conf.History.RecentLimit != 10 {
		t.Errorf("recent limit = %d, expected 10", conf.History.RecentLimit)
	}
	// Unset fields still pick up defaults.
	if conf.Thresholds.Currency != "TRY" {
		t.Errorf("threshold currency = %q, expected default TRY", conf.Thresholds.Currency)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Configuration)
		wantPart string
	}{
		{
			name:     "Unsupported base currency",
			mutate:   func(c *Configuration) { c.Currency.BaseCurrency = "GBP" },
			wantPart: "base currency",
		},
		{
			name:     "Unsupported threshold currency",
			mutate:   func(c *Configuration) { c.Thresholds.Currency = "JPY" },
			wantPart: "threshold currency",
		},
		{
			name: "Inverted thresholds",
			mutate: func(c *Configuration) {
				c.Thresholds.Local = 900_000_000
			},
			wantPart: "local threshold",
		},
		{
			name:     "Aggressive cache TTL",
			mutate:   func(c *Configuration) { c.Currency.CacheTTLSeconds = 5 },
			wantPart: "cache TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration("")
			if err != nil {
				t.Fatalf("LoadConfiguration() error: %v", err)
			}
			tt.mutate(conf)

			warnings := conf.ValidateConfiguration()
			for _, w := range warnings {
				if strings.Contains(w, tt.wantPart) {
					return
				}
			}
			t.Errorf("no warning containing %q in %v", tt.wantPart, warnings)
		})
	}
}

func TestValidateConfigurationCleanDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("default configuration produced warnings: %v", warnings)
	}
}
