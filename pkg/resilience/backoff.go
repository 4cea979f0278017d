package resilience

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines retry backoff behavior
type BackoffStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements exponential backoff with jitter so that
// retry attempts against the payment platform spread out over time
type ExponentialBackoff struct {
	BaseDelay  time.Duration // Initial delay (e.g., 100ms)
	MaxDelay   time.Duration // Maximum delay cap
	Multiplier float64       // Exponential multiplier (typically 2.0)
	Jitter     float64       // Jitter factor (0.0-1.0, typically 0.1 for ±10%)
}

// DefaultExponentialBackoff returns the defaults used for idempotent
// platform reads (instrument listing, payment request details)
//
// Retry sequence with defaults (±10% jitter):
//   - Attempt 0: ~100ms
//   - Attempt 1: ~200ms
//   - Attempt 2: ~400ms
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}
}

// NextDelay calculates the delay for the given attempt number (0-indexed)
//
// The delay is BaseDelay * (Multiplier ^ attempt) ± jitter, capped at
// MaxDelay.
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return eb.BaseDelay
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt))
	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	jitterAmount := delay * eb.Jitter
	jitter := (rand.Float64()*2 - 1) * jitterAmount
	delay += jitter

	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// NoBackoff retries immediately; used in tests
type NoBackoff struct{}

// NextDelay always returns zero
func (NoBackoff) NextDelay(int) time.Duration { return 0 }
