package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/jobhunter/internal/config"
)

// SourceRateLimiter enforces a minimum delay between requests to the same
// source backend. Adapters for the same provider share one limiter so that
// parallel board fetches do not hammer a single API.
type SourceRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: source name
	cfg      config.RateLimitConfig
}

// NewSourceRateLimiter creates a limiter using the per-source delays from cfg.
func NewSourceRateLimiter(cfg config.RateLimitConfig) *SourceRateLimiter {
	return &SourceRateLimiter{
		lastCall: make(map[string]time.Time),
		cfg:      cfg,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given source. Returns an error if the context is cancelled while waiting.
func (r *SourceRateLimiter) Wait(ctx context.Context, source string) error {
	minDelay := r.cfg.MinDelayFor(source)

	r.mu.Lock()
	last, ok := r.lastCall[source]
	now := time.Now()

	if !ok || now.Sub(last) >= minDelay {
		r.lastCall[source] = now
		r.mu.Unlock()
		return nil
	}

	remaining := minDelay - now.Sub(last)
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", source, ctx.Err())
	case <-time.After(remaining):
	}

	r.mu.Lock()
	r.lastCall[source] = time.Now()
	r.mu.Unlock()

	return nil
}
