package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/cine-tools/allocine/internal/config"
	"github.com/cine-tools/allocine/internal/dataset"
	"github.com/cine-tools/allocine/internal/fetch"
	"github.com/cine-tools/allocine/internal/pacer"
)

func listingPage(page int) string {
	return fmt.Sprintf(`<html><body><ul>
<li class="mdl"><div class="content-title"><a href="/film/%d.html">Movie %d</a></div></li>
</ul></body></html>`, page*100, page)
}

func testConfig(t *testing.T, pages int) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:    "error",
		HTTPTimeout: 5 * time.Second,
		UserAgent:   "test-agent",
		Pages:       pages,
		Delay:       2,
		Dataset:     filepath.Join(t.TempDir(), "movies.csv"),
	}
}

// newTestScraper wires a scraper against the given server with a pacer short
// enough for tests.
func newTestScraper(cfg *config.Config, server *httptest.Server) *Scraper {
	s := New(cfg, fetch.New(server.Client(), server.URL+"/films/?page=", cfg.UserAgent))
	s.pace = pacer.New(time.Millisecond)
	return s
}

func TestScraper_ExclusiveUpperBound(t *testing.T) {
	var requested []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		requested = append(requested, page)
		fmt.Fprint(w, listingPage(page))
	}))
	defer server.Close()

	cfg := testConfig(t, 3)
	ds, err := newTestScraper(cfg, server).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// number_of_pages = 3 fetches exactly pages 1 and 2, never page 3
	if len(requested) != 2 || requested[0] != 1 || requested[1] != 2 {
		t.Errorf("Expected requests for pages [1 2], got %v", requested)
	}
	if ds.Len() != 2 {
		t.Errorf("Expected 2 accumulated records, got %d", ds.Len())
	}
}

func TestScraper_PersistsAfterEveryPage(t *testing.T) {
	cfg := testConfig(t, 3)

	// The page-2 handler runs after page 1 was saved; the file must already
	// hold page 1's row at that point.
	rowsSeenAtPage2 := -1
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			if ds, err := dataset.Load(cfg.Dataset); err == nil {
				rowsSeenAtPage2 = ds.Len()
			}
		}
		fmt.Fprint(w, listingPage(page))
	}))
	defer server.Close()

	if _, err := newTestScraper(cfg, server).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if rowsSeenAtPage2 != 1 {
		t.Errorf("Expected 1 persisted row while fetching page 2, got %d", rowsSeenAtPage2)
	}

	final, err := dataset.Load(cfg.Dataset)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if final.Len() != 2 {
		t.Errorf("Expected 2 persisted rows after the run, got %d", final.Len())
	}
}

func TestScraper_FetchFailureAbortsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, listingPage(page))
	}))
	defer server.Close()

	cfg := testConfig(t, 4)
	_, err := newTestScraper(cfg, server).Run(context.Background())
	if err == nil {
		t.Fatal("Expected run to fail on page 2, got nil")
	}

	// Pages completed before the failure stay on disk
	saved, loadErr := dataset.Load(cfg.Dataset)
	if loadErr != nil {
		t.Fatalf("Load failed: %v", loadErr)
	}
	if saved.Len() != 1 {
		t.Errorf("Expected 1 row from the completed page, got %d", saved.Len())
	}
}

func TestScraper_ContextCancelStopsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage(1))
	}))
	defer server.Close()

	cfg := testConfig(t, 10)
	s := New(cfg, fetch.New(server.Client(), server.URL+"/films/?page=", cfg.UserAgent))
	// Long pacing so cancellation lands while waiting between pages
	s.pace = pacer.New(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if _, err := s.Run(ctx); err == nil {
		t.Fatal("Expected error after context cancellation, got nil")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run did not stop promptly after cancellation: %v", elapsed)
	}
}
