// Package pacer throttles the scrape loop to one listing page per interval.
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks the caller so that consecutive page fetches are spaced by a
// fixed interval. It uses a token bucket with burst 1, so the first call
// proceeds immediately and every later call waits out the interval.
type Pacer struct {
	limiter *rate.Limiter
}

// New creates a Pacer with the given inter-page interval
func New(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next page fetch may proceed.
// Returns early with an error if the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.limiter.Wait(ctx)
}
