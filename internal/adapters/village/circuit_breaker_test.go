package village

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPlatformDown = errors.New("platform down")

func failingCall() error    { return errPlatformDown }
func succeedingCall() error { return nil }

func testBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:         3,
		Timeout:             50 * time.Millisecond,
		MaxRequestsHalfOpen: 1,
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(testBreakerConfig())

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Call(failingCall), errPlatformDown)
	}
	assert.Equal(t, StateOpen, cb.State())

	assert.ErrorIs(t, cb.Call(succeedingCall), ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(testBreakerConfig())

	require.Error(t, cb.Call(failingCall))
	require.Error(t, cb.Call(failingCall))
	require.NoError(t, cb.Call(succeedingCall))
	assert.Equal(t, uint32(0), cb.Failures())

	require.Error(t, cb.Call(failingCall))
	require.Error(t, cb.Call(failingCall))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbeClosesOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(testBreakerConfig())

	for i := 0; i < 3; i++ {
		cb.Call(failingCall)
	}
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(60 * time.Millisecond)

	require.NoError(t, cb.Call(succeedingCall))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbeReopensOnFailure(t *testing.T) {
	cb := NewCircuitBreaker(testBreakerConfig())

	for i := 0; i < 3; i++ {
		cb.Call(failingCall)
	}
	time.Sleep(60 * time.Millisecond)

	require.ErrorIs(t, cb.Call(failingCall), errPlatformDown)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker(testBreakerConfig())

	for i := 0; i < 3; i++ {
		cb.Call(failingCall)
	}
	require.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	require.NoError(t, cb.Call(succeedingCall))
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(99).String())
}
