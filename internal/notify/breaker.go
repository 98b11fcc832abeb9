// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package notify

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/metrics"
)

// BreakerSender wraps a Sender with a circuit breaker so a dead mail
// provider stops being dialled for every submission.
//
// Default configuration:
//   - Max 3 trial sends in half-open state
//   - 1 minute measurement window
//   - 2 minute wait before attempting recovery
//   - Opens after 60% failure rate with minimum 10 sends
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker[string]
	name string
}

type breakerSettings struct {
	minRequests  uint32
	failureRatio float64
	openTimeout  time.Duration
}

// BreakerOption adjusts BreakerSender thresholds.
type BreakerOption func(*breakerSettings)

// WithTripThreshold sets the minimum sample size and failure ratio that open
// the circuit.
func WithTripThreshold(minRequests uint32, ratio float64) BreakerOption {
	return func(s *breakerSettings) {
		s.minRequests = minRequests
		s.failureRatio = ratio
	}
}

// WithOpenTimeout sets how long the circuit stays open before a trial send.
func WithOpenTimeout(d time.Duration) BreakerOption {
	return func(s *breakerSettings) { s.openTimeout = d }
}

// NewBreakerSender wraps next.
func NewBreakerSender(next Sender, opts ...BreakerOption) *BreakerSender {
	settings := breakerSettings{minRequests: 10, failureRatio: 0.6, openTimeout: 2 * time.Minute}
	for _, opt := range opts {
		opt(&settings)
	}

	name := "email-" + next.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     settings.openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.failureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordCircuitBreakerTransition(name, fromStr, toStr, stateToFloat(to))
		},
	})

	return &BreakerSender{next: next, cb: cb, name: name}
}

// Name reports the wrapped backend's name.
func (b *BreakerSender) Name() string { return b.next.Name() }

// State returns the current breaker state as a string.
func (b *BreakerSender) State() string { return stateToString(b.cb.State()) }

// Send delivers msg through the breaker. An open circuit fails fast with a
// NotificationError of kind circuit_open.
func (b *BreakerSender) Send(ctx context.Context, msg *Message) (string, error) {
	id, err := b.cb.Execute(func() (string, error) {
		return b.next.Send(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitBreakerResult(b.name, "rejected")
			var to []string
			if msg != nil {
				to = msg.To
			}
			return "", &NotificationError{Kind: KindCircuitOpen, Backend: b.next.Name(), To: to, Err: err}
		}
		metrics.RecordCircuitBreakerResult(b.name, "failure")
		return "", err
	}
	metrics.RecordCircuitBreakerResult(b.name, "success")
	return id, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
