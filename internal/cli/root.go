package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cine-tools/allocine/internal/config"
	"github.com/cine-tools/allocine/internal/fetch"
	"github.com/cine-tools/allocine/internal/scrape"
)

// rootCmd is the whole CLI surface: a single-purpose scrape command
var rootCmd = &cobra.Command{
	Use:   "allocine",
	Short: "Scrape movie listings from Allociné.fr into a CSV dataset",
	Long: `Allocine walks the paginated film index on Allociné.fr, extracts a fixed
set of attributes from every movie card, and rewrites the accumulated
dataset to a CSV file after each page.`,
	Version:       "1.0.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the CLI. Configuration errors and run failures exit nonzero.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
}

func run(cmd *cobra.Command, args []string) error {
	// Validate configuration before any network activity
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	initLogging(cfg)

	log.Debug().
		Int("pages", cfg.Pages).
		Int("delay_sec", cfg.Delay).
		Str("dataset", cfg.Dataset).
		Str("user_agent", cfg.UserAgent).
		Msg("Configuration loaded")

	client := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
	}
	fetcher := fetch.New(client, "", cfg.UserAgent)

	_, err = scrape.New(cfg, fetcher).Run(cmd.Context())
	return err
}

func initLogging(cfg *config.Config) {
	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
