package config

import (
	"fmt"
	"strings"
)

// Validate checks the scrape-run settings before any network activity starts.
// Errors identify the offending option by its flag name.
func Validate(c *Config) error {
	if c.Pages < 2 {
		return fmt.Errorf("--pages must be an integer greater than 1, got %d", c.Pages)
	}
	if c.Delay < 2 {
		return fmt.Errorf("--delay must be an integer greater than 1, got %d", c.Delay)
	}
	if !strings.HasSuffix(c.Dataset, DatasetExtension) || c.Dataset == DatasetExtension {
		return fmt.Errorf("--output must be a valid filename ending in %q, got %q", DatasetExtension, c.Dataset)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	return nil
}
