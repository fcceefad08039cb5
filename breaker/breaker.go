// Package breaker guards calls to unreliable dependencies with a circuit
// breaker and deadline wrapper
package breaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"farmweather.app/errors"
)

// Operation is the guarded call
type Operation func() (interface{}, error)

// Fallback produces a degraded result when the operation fails or the
// circuit is open
type Fallback func() (interface{}, error)

// Config holds circuit breaker parameters
type Config struct {
	Name             string
	FailureThreshold int
	RecoveryTimeout  time.Duration
}

// Breaker trips open after consecutive failures and allows a single probe
// call once the recovery timeout elapses
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.RecoveryTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Info("circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Breaker{
		cb:   gobreaker.NewCircuitBreaker(settings),
		name: cfg.Name,
	}
}

// Execute runs the operation through the breaker. On any failure (including
// an open circuit) the fallback result is returned when one is provided;
// without a fallback, an open circuit maps to a ServiceUnavailable error and
// other failures propagate unchanged.
func (b *Breaker) Execute(op Operation, fallback Fallback) (interface{}, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return op()
	})
	if err == nil {
		return result, nil
	}

	if fallback != nil {
		slog.Warn("circuit breaker falling back",
			"name", b.name, "state", b.cb.State().String(), "error", err)
		return fallback()
	}

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, errors.NewServiceUnavailableError(b.name + " is temporarily unavailable")
	}
	return nil, err
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
