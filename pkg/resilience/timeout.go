package resilience

import (
	"context"
	"time"
)

// TimeoutConfig defines the timeout hierarchy for one orchestration run
//
// Hierarchy (from outermost to innermost):
//
//	Orchestration run (120s)
//	  ↓
//	Single operation: create request, submit payment (50s)
//	  ↓
//	External API call: identity server, customer/merchant API (30s)
//	  ↓
//	Individual retry attempt (10s)
//
// Each layer must complete before its parent times out, so a hung platform
// call cannot hold a run open indefinitely.
type TimeoutConfig struct {
	Run         time.Duration // Whole orchestration run
	Operation   time.Duration // One orchestrator operation
	ExternalAPI time.Duration // One platform/identity call
	SingleRetry time.Duration // One retry attempt
}

// DefaultTimeoutConfig returns production timeout values
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		Run:         120 * time.Second,
		Operation:   50 * time.Second,
		ExternalAPI: 30 * time.Second,
		SingleRetry: 10 * time.Second,
	}
}

// WithOperationTimeout derives a context for one orchestrator operation
func (tc *TimeoutConfig) WithOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, tc.Operation)
}

// WithAPITimeout derives a context for one external API call
func (tc *TimeoutConfig) WithAPITimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, tc.ExternalAPI)
}
