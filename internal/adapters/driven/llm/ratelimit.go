// Package llm holds provider-independent decorators for driven.LLMService.
package llm

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// Ensure RateLimited implements the interface.
var _ driven.LLMService = (*RateLimited)(nil)

// DefaultBackoff is how long calls pause after the provider reports a rate limit.
const DefaultBackoff = 60 * time.Second

// RateLimitConfig holds rate limiting configuration for an oracle.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. Zero disables pacing.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
	// Backoff is the pause after a rate limit error (default: 60s).
	Backoff time.Duration
}

// RateLimited paces Generate calls of the wrapped service with a token
// bucket, shared by every analysis using the same instance.
//
// A rate limit error is still returned to the caller; it only delays the
// calls that follow it.
type RateLimited struct {
	next    driven.LLMService
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
	now     func() time.Time
}

// NewRateLimited wraps next with the given limits.
func NewRateLimited(next driven.LLMService, cfg RateLimitConfig) *RateLimited {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}

	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(limit, cfg.BurstSize),
		backoff: cfg.Backoff,
		now:     time.Now,
	}
}

// Generate waits for a token, then delegates.
func (r *RateLimited) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := r.Wait(ctx); err != nil {
		return "", err
	}

	text, err := r.next.Generate(ctx, prompt, opts)
	if errors.Is(err, domain.ErrRateLimited) {
		r.RecordRateLimitError(0)
	}
	return text, err
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimited) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if delay := retryAt.Sub(r.now()); delay > 0 {
		logger.Debug("Oracle rate limited, waiting %s", delay.Round(time.Second))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period before the next call.
// A non-positive duration uses the configured backoff.
func (r *RateLimited) RecordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = r.backoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = r.now().Add(retryAfter)
	logger.Warn("Oracle reported rate limiting, backing off %s", retryAfter)
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimited) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if r.now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}

// ModelName returns the wrapped model name.
func (r *RateLimited) ModelName() string {
	return r.next.ModelName()
}

// Ping delegates without consuming a token.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// Close closes the wrapped service.
func (r *RateLimited) Close() error {
	return r.next.Close()
}
