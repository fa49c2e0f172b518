package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string

	// Scrape run
	Pages   int    // number-of-pages setting; pages 1..Pages-1 are fetched
	Delay   int    // seconds to wait between listing pages
	Dataset string // output CSV path
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags, in that order of precedence. Caller should pass the command so flags
// can be read. The returned config is already validated.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:    DefaultLogLevel,
		JSONLog:     DefaultJSONLog,
		HTTPTimeout: DefaultHTTPTimeout,
		UserAgent:   DefaultUserAgent,
		Pages:       DefaultPages,
		Delay:       DefaultDelay,
		Dataset:     DefaultDataset,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("ALLOCINE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("ALLOCINE_DATASET"); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv("ALLOCINE_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pages = n
		}
	}
	if v := os.Getenv("ALLOCINE_DELAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Delay = n
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		flags := cmd.Flags()
		if f := flags.Lookup("pages"); f != nil && f.Changed {
			if n, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.Pages = n
			}
		}
		if f := flags.Lookup("delay"); f != nil && f.Changed {
			if n, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.Delay = n
			}
		}
		if f := flags.Lookup("output"); f != nil && f.Changed {
			cfg.Dataset = f.Value.String()
		}
		if f := flags.Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := flags.Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
