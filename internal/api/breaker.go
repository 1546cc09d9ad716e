package api

import (
	stderrors "errors"
	"net/http"

	"atsbuddy/internal/config"
	"atsbuddy/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// RequestBreaker wraps backend calls with circuit breaker protection.
// It is off by default: the client imposes no availability policy beyond
// the transport unless configuration turns it on.
type RequestBreaker struct {
	cb *gobreaker.CircuitBreaker[*http.Response]
}

// NewRequestBreaker builds a breaker from configuration, or nil (pass
// through) when disabled.
func NewRequestBreaker(cfg config.BreakerConfig, logger *errors.Logger) *RequestBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "atsbuddy-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &RequestBreaker{
		cb: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

// Execute runs fn with circuit breaker protection when enabled.
func (b *RequestBreaker) Execute(fn func() (*http.Response, error)) (*http.Response, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// IsBreakerOpen reports whether err is the breaker rejecting the call
// without it ever reaching the transport.
func IsBreakerOpen(err error) bool {
	return stderrors.Is(err, gobreaker.ErrOpenState) ||
		stderrors.Is(err, gobreaker.ErrTooManyRequests)
}

// IsHealthy returns true if the circuit breaker is in closed state
func (b *RequestBreaker) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true // If no circuit breaker, consider it healthy
	}
	return b.cb.State() == gobreaker.StateClosed
}
