package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		HTTPTimeout: DefaultHTTPTimeout,
		UserAgent:   DefaultUserAgent,
		Pages:       DefaultPages,
		Delay:       DefaultDelay,
		Dataset:     DefaultDataset,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"minimum pages", func(c *Config) { c.Pages = 2 }, ""},
		{"one page", func(c *Config) { c.Pages = 1 }, "--pages"},
		{"zero pages", func(c *Config) { c.Pages = 0 }, "--pages"},
		{"negative pages", func(c *Config) { c.Pages = -3 }, "--pages"},
		{"minimum delay", func(c *Config) { c.Delay = 2 }, ""},
		{"delay too small", func(c *Config) { c.Delay = 1 }, "--delay"},
		{"wrong extension", func(c *Config) { c.Dataset = "movies.txt" }, "--output"},
		{"extension only", func(c *Config) { c.Dataset = ".csv" }, "--output"},
		{"no extension", func(c *Config) { c.Dataset = "movies" }, "--output"},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, "--timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error mentioning %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error to identify %q, got %q", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pages != DefaultPages {
		t.Errorf("Expected %d pages, got %d", DefaultPages, cfg.Pages)
	}
	if cfg.Delay != DefaultDelay {
		t.Errorf("Expected delay %d, got %d", DefaultDelay, cfg.Delay)
	}
	if cfg.Dataset != DefaultDataset {
		t.Errorf("Expected dataset %q, got %q", DefaultDataset, cfg.Dataset)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.HTTPTimeout)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ALLOCINE_PAGES", "5")
	t.Setenv("ALLOCINE_DELAY", "3")
	t.Setenv("ALLOCINE_DATASET", "films.csv")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pages != 5 || cfg.Delay != 3 || cfg.Dataset != "films.csv" {
		t.Errorf("Environment overrides not applied: %+v", cfg)
	}
}

func TestLoad_RejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("ALLOCINE_PAGES", "1")

	if _, err := Load(nil); err == nil {
		t.Fatal("Expected error for ALLOCINE_PAGES=1, got nil")
	}
}
