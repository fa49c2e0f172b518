package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultUserAgent   = "allocine-scraper/1.0 (https://github.com/cine-tools/allocine)"
	DefaultHTTPTimeout = 30 * time.Second

	DefaultPages   = 50
	DefaultDelay   = 10
	DefaultDataset = "allocine.csv"

	// DatasetExtension is the only output format the sink writes.
	DatasetExtension = ".csv"
)
