package village

import (
	"errors"
	"sync"
	"time"
)

// CircuitState represents the current state of the circuit breaker
type CircuitState int

const (
	// StateClosed - requests flow to the platform normally
	StateClosed CircuitState = iota
	// StateOpen - requests fail immediately without touching the platform
	StateOpen
	// StateHalfOpen - a probe request tests whether the platform recovered
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var (
	// ErrCircuitOpen is returned when the circuit breaker is open
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrTooManyRequests is returned when too many probes run in half-open state
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// CircuitBreakerConfig configures circuit breaker behavior
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before opening
	MaxFailures uint32
	// Timeout is how long to wait before probing an open circuit
	Timeout time.Duration
	// MaxRequestsHalfOpen is the number of concurrent probes allowed
	MaxRequestsHalfOpen uint32
}

// DefaultCircuitBreakerConfig returns the defaults used for platform calls
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:         5,
		Timeout:             30 * time.Second,
		MaxRequestsHalfOpen: 1,
	}
}

// CircuitBreaker guards the customer/merchant API clients against a
// persistently failing platform
type CircuitBreaker struct {
	mu               sync.RWMutex
	state            CircuitState
	failures         uint32
	requestsHalfOpen uint32
	lastStateChange  time.Time
	config           CircuitBreakerConfig
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state:           StateClosed,
		lastStateChange: time.Now(),
		config:          config,
	}
}

// Call executes fn if the circuit allows it and records the result
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := fn()
	cb.afterCall(err)
	return err
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return nil

	case StateOpen:
		if time.Since(cb.lastStateChange) > cb.config.Timeout {
			cb.setState(StateHalfOpen)
			cb.requestsHalfOpen++
			return nil
		}
		return ErrCircuitOpen

	case StateHalfOpen:
		if cb.requestsHalfOpen >= cb.config.MaxRequestsHalfOpen {
			return ErrTooManyRequests
		}
		cb.requestsHalfOpen++
		return nil

	default:
		return ErrCircuitOpen
	}
}

func (cb *CircuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++

	switch cb.state {
	case StateClosed:
		if cb.failures >= cb.config.MaxFailures {
			cb.setState(StateOpen)
		}

	case StateHalfOpen:
		cb.setState(StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.setState(StateClosed)

	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) setState(newState CircuitState) {
	if cb.state == newState {
		return
	}

	cb.state = newState
	cb.lastStateChange = time.Now()

	switch newState {
	case StateClosed, StateHalfOpen:
		cb.failures = 0
		cb.requestsHalfOpen = 0

	case StateOpen:
		cb.requestsHalfOpen = 0
	}
}

// State returns the current circuit state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Failures returns the current consecutive failure count
func (cb *CircuitBreaker) Failures() uint32 {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}

// Reset returns the breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failures = 0
	cb.requestsHalfOpen = 0
	cb.lastStateChange = time.Now()
}
