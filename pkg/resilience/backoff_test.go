package resilience_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kevin07696/payment-simulator/pkg/resilience"
)

func TestExponentialBackoff_GrowsWithAttempts(t *testing.T) {
	eb := &resilience.ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     0, // Deterministic for the test
	}

	assert.Equal(t, 100*time.Millisecond, eb.NextDelay(0))
	assert.Equal(t, 200*time.Millisecond, eb.NextDelay(1))
	assert.Equal(t, 400*time.Millisecond, eb.NextDelay(2))
}

func TestExponentialBackoff_CapsAtMaxDelay(t *testing.T) {
	eb := &resilience.ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   1 * time.Second,
		Multiplier: 2.0,
		Jitter:     0,
	}

	assert.Equal(t, 1*time.Second, eb.NextDelay(10))
}

func TestExponentialBackoff_JitterStaysWithinBounds(t *testing.T) {
	eb := resilience.DefaultExponentialBackoff()

	for attempt := 0; attempt < 5; attempt++ {
		for i := 0; i < 50; i++ {
			delay := eb.NextDelay(attempt)
			expected := float64(eb.BaseDelay) * pow(eb.Multiplier, attempt)
			if expected > float64(eb.MaxDelay) {
				expected = float64(eb.MaxDelay)
			}
			min := time.Duration(expected * (1 - eb.Jitter))
			max := time.Duration(expected * (1 + eb.Jitter))
			assert.GreaterOrEqual(t, delay, min)
			assert.LessOrEqual(t, delay, max)
		}
	}
}

func TestExponentialBackoff_NegativeAttemptUsesBase(t *testing.T) {
	eb := resilience.DefaultExponentialBackoff()
	assert.Equal(t, eb.BaseDelay, eb.NextDelay(-1))
}

func TestNoBackoff(t *testing.T) {
	assert.Equal(t, time.Duration(0), resilience.NoBackoff{}.NextDelay(3))
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
