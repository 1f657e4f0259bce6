// Package circuitbreaker protects calls to the backing store from piling up
// while it is unavailable.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned without calling the backend while the breaker
// is open or its half-open probes are all in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the position of a breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
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

// Config configures a breaker. Zero fields take the DefaultConfig values.
type Config struct {
	// FailureThreshold consecutive failures open a closed breaker.
	FailureThreshold int
	// SuccessThreshold consecutive probe successes close a half-open breaker.
	SuccessThreshold int
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// HalfOpenMaxCalls bounds the probes in flight while half-open.
	HalfOpenMaxCalls int
	// Name identifies the breaker in logs and metrics.
	Name string
	// IsFailure decides whether an error counts against the backend. Nil
	// counts every error except context cancellation.
	IsFailure func(error) bool
	// OnStateChange is called after every transition, outside the lock.
	OnStateChange func(name string, from, to State)
	// Now replaces the clock, for tests.
	Now func() time.Time
}

// DefaultConfig returns the values used for unset Config fields.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
		Name:             "circuit-breaker",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = d.SuccessThreshold
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.HalfOpenMaxCalls <= 0 {
		c.HalfOpenMaxCalls = max(d.HalfOpenMaxCalls, c.SuccessThreshold)
	}
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool { return !errors.Is(err, context.Canceled) }
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// CircuitBreaker counts consecutive failures of the calls it runs. Every
// transition starts a new generation; results of calls started in an older
// generation are ignored.
type CircuitBreaker struct {
	cfg Config

	mu          sync.Mutex
	state       State
	generation  uint64
	failures    int
	successes   int
	inFlight    int
	rejected    int64
	openedAt    time.Time
	lastFailure time.Time
}

// New creates a closed breaker.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg.withDefaults()}
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute runs fn unless the circuit is open or ctx is already done.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gen, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn()
	cb.settle(gen, err != nil && cb.cfg.IsFailure(err))
	return err
}

// admit lets a call through or rejects it, and returns the generation the
// call belongs to.
func (cb *CircuitBreaker) admit() (uint64, error) {
	cb.mu.Lock()
	var change func()
	if cb.state == StateOpen && cb.cfg.Now().Sub(cb.openedAt) >= cb.cfg.Timeout {
		change = cb.moveTo(StateHalfOpen)
	}

	switch {
	case cb.state == StateOpen,
		cb.state == StateHalfOpen && cb.inFlight >= cb.cfg.HalfOpenMaxCalls:
		cb.rejected++
		cb.mu.Unlock()
		notify(change)
		return 0, ErrCircuitOpen
	}

	if cb.state == StateHalfOpen {
		cb.inFlight++
	}
	gen := cb.generation
	cb.mu.Unlock()
	notify(change)
	return gen, nil
}

// settle records the outcome of a call admitted in generation gen.
func (cb *CircuitBreaker) settle(gen uint64, failed bool) {
	cb.mu.Lock()
	if gen != cb.generation {
		cb.mu.Unlock()
		return
	}

	var change func()
	if cb.state == StateHalfOpen {
		cb.inFlight--
	}
	if failed {
		cb.failures++
		cb.successes = 0
		cb.lastFailure = cb.cfg.Now()
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			change = cb.moveTo(StateOpen)
		}
	} else {
		cb.failures = 0
		if cb.state == StateHalfOpen {
			cb.successes++
			if cb.successes >= cb.cfg.SuccessThreshold {
				change = cb.moveTo(StateClosed)
			}
		}
	}
	cb.mu.Unlock()
	notify(change)
}

// moveTo switches state under the lock and returns the notification to send
// once it is released.
func (cb *CircuitBreaker) moveTo(to State) func() {
	from := cb.state
	cb.state = to
	cb.generation++
	cb.successes = 0
	cb.inFlight = 0
	switch to {
	case StateOpen:
		cb.openedAt = cb.cfg.Now()
	case StateClosed:
		cb.failures = 0
	}

	name, hook := cb.cfg.Name, cb.cfg.OnStateChange
	return func() {
		ev := log.Info()
		if to == StateOpen {
			ev = log.Warn()
		}
		ev.Str("circuit_breaker", name).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("Circuit breaker state changed")
		if hook != nil {
			hook(name, from, to)
		}
	}
}

func notify(change func()) {
	if change != nil {
		change()
	}
}

// Reset closes the breaker and clears its counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	var change func()
	if cb.state != StateClosed {
		change = cb.moveTo(StateClosed)
	}
	cb.failures, cb.rejected = 0, 0
	cb.mu.Unlock()
	notify(change)
}

// State returns the current state. An open breaker whose timeout elapsed
// still reports open until the next call probes it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen reports whether calls are currently being rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a snapshot of a breaker for health reporting.
type Stats struct {
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	Rejected     int64     `json:"rejected"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"is_healthy"`
}

// GetStats returns a snapshot of the breaker.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		Rejected:     cb.rejected,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
