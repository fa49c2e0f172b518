// Package fetch retrieves listing pages from the Allociné film index.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"github.com/cine-tools/allocine/internal/retry"
)

// BaseURL is the paginated film index; the page number is appended as-is.
const BaseURL = "https://www.allocine.fr/films/?page="

// Fetcher retrieves one listing page per call over plain HTTP.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	retryCfg  retry.Config
}

// New creates a Fetcher. An empty baseURL falls back to the live site.
func New(client *http.Client, baseURL, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Fetcher{
		client:    client,
		baseURL:   baseURL,
		userAgent: userAgent,
		retryCfg:  retry.DefaultConfig(),
	}
}

// Page fetches the markup of the given listing page, decoded to UTF-8.
// Transient HTTP failures are retried with backoff before giving up.
func (f *Fetcher) Page(ctx context.Context, page int) ([]byte, error) {
	url := fmt.Sprintf("%s%d", f.baseURL, page)

	var body []byte
	err := retry.Do(ctx, f.retryCfg, func() error {
		var err error
		body, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, retry.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        url,
		}
	}

	// Decode to UTF-8 based on the Content-Type header and document sniffing
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Page fetched")

	return body, nil
}
