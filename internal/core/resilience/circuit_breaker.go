package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when a call is rejected by an open or saturated breaker.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker defaults.
const (
	DefaultMaxRequests           uint32        = 3
	DefaultInterval              time.Duration = 60 * time.Second
	DefaultTimeout               time.Duration = 30 * time.Second
	DefaultFailureThreshold      uint32        = 5
	DefaultFailureRatioThreshold float64       = 0.5
	DefaultMinRequestsToTrip     uint32        = 10
)

// BreakerConfig holds configuration for a circuit breaker.
type BreakerConfig struct {
	MaxRequests           uint32        // requests allowed in half-open state
	Interval              time.Duration // closed-state window after which counts reset
	Timeout               time.Duration // open duration before half-open
	FailureThreshold      uint32        // consecutive failures that trip
	FailureRatioThreshold float64
	MinRequestsToTrip     uint32

	// IsSuccessful reports errors that do not count against the breaker.
	// Nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// DefaultBreakerConfig returns the defaults used for carrier calls.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:           DefaultMaxRequests,
		Interval:              DefaultInterval,
		Timeout:               DefaultTimeout,
		FailureThreshold:      DefaultFailureThreshold,
		FailureRatioThreshold: DefaultFailureRatioThreshold,
		MinRequestsToTrip:     DefaultMinRequestsToTrip,
	}
}

// StateObserver is notified on every breaker state transition.
type StateObserver func(name string, state gobreaker.State)

// Registry lazily creates one breaker per name.
type Registry struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
	config   BreakerConfig
	logger   *zap.Logger
	observer StateObserver
}

// NewRegistry creates a registry; observer may be nil.
func NewRegistry(cfg BreakerConfig, logger *zap.Logger, observer StateObserver) *Registry {
	return &Registry{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		config:   cfg,
		logger:   logger,
		observer: observer,
	}
}

// Get returns the breaker for name, creating it on first use.
func (r *Registry) Get(name string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[name]; ok {
		return cb
	}

	cfg := r.config
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= cfg.FailureThreshold {
				return true
			}
			if counts.Requests >= cfg.MinRequestsToTrip {
				return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatioThreshold
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if r.observer != nil {
				r.observer(name, to)
			}
		},
		IsSuccessful: cfg.IsSuccessful,
	})
	r.breakers[name] = cb
	return cb
}

// Execute runs fn through the named breaker.
func Execute[T any](r *Registry, name string, fn func() (T, error)) (T, error) {
	var zero T

	result, err := r.Get(name).Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, fmt.Errorf("%w: %s", ErrCircuitOpen, name)
	}
	if err != nil {
		return zero, err
	}
	v, _ := result.(T)
	return v, nil
}
