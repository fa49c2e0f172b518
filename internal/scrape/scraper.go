// Package scrape drives the page loop: pace, fetch, extract, persist.
package scrape

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/cine-tools/allocine/internal/config"
	"github.com/cine-tools/allocine/internal/dataset"
	"github.com/cine-tools/allocine/internal/extract"
	"github.com/cine-tools/allocine/internal/pacer"
)

// PageFetcher retrieves the decoded markup of one listing page
type PageFetcher interface {
	Page(ctx context.Context, page int) ([]byte, error)
}

// Scraper runs the sequential scrape loop. Strictly single-threaded: one
// fetch, one parse, one save per iteration.
type Scraper struct {
	cfg     *config.Config
	fetcher PageFetcher
	pace    *pacer.Pacer
}

// New creates a Scraper for the given configuration and fetcher
func New(cfg *config.Config, fetcher PageFetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher,
		pace:    pacer.New(time.Duration(cfg.Delay) * time.Second),
	}
}

// Run scrapes pages 1 through Pages-1 in order. The page-count setting is an
// exclusive upper bound: page Pages itself is never requested. After every
// page the full accumulated dataset is rewritten to the output file, so the
// file always holds the last good state if a later page fails.
func (s *Scraper) Run(ctx context.Context) (*dataset.Dataset, error) {
	last := s.cfg.Pages - 1

	log.Info().
		Int("pages", last).
		Int("delay_sec", s.cfg.Delay).
		Str("dataset", s.cfg.Dataset).
		Msg("Starting scrape")

	bar := s.progressBar(last)
	ds := dataset.New()

	for page := 1; page < s.cfg.Pages; page++ {
		if err := s.pace.Wait(ctx); err != nil {
			return ds, err
		}

		log.Info().Int("page", page).Int("of", last).Msg("Fetching page")

		body, err := s.fetcher.Page(ctx, page)
		if err != nil {
			return ds, err
		}

		records, err := extract.Page(body)
		if err != nil {
			return ds, fmt.Errorf("page %d: %w", page, err)
		}

		ds.Append(records...)
		if err := ds.Save(s.cfg.Dataset); err != nil {
			return ds, fmt.Errorf("page %d: %w", page, err)
		}

		log.Info().
			Int("page", page).
			Int("cards", len(records)).
			Int("total", ds.Len()).
			Msg("Page scraped")

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	log.Info().
		Int("rows", ds.Len()).
		Str("dataset", s.cfg.Dataset).
		Msg("Scrape complete")

	return ds, nil
}

// progressBar returns a page-level progress bar on stderr, or nil when the
// output would fight with JSON logs or quiet mode.
func (s *Scraper) progressBar(pages int) *progressbar.ProgressBar {
	if s.cfg.JSONLog || s.cfg.LogLevel == "error" {
		return nil
	}
	return progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("scraping"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
