// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package ratelimit provides the in-process fixed-window limiter that guards
// the public submission endpoints (apply, contact).
//
// State lives in a map owned by one process. It resets on restart and is not
// shared between replicas behind a load balancer; each replica enforces its
// own budget. Expired windows are removed by a passive sweep piggybacked on
// Allow, so no background goroutine is needed.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultSweepInterval bounds how often Allow scans for expired entries.
const DefaultSweepInterval = time.Minute

type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window counter keyed by caller identity.
// It is safe for concurrent use.
type Limiter struct {
	mu            sync.Mutex
	buckets       map[string]*bucket
	lastSweep     time.Time
	sweepInterval time.Duration
	now           func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now, letting tests advance time.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithSweepInterval sets the minimum gap between passive sweeps.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.sweepInterval = d
		}
	}
}

// New creates an empty limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		buckets:       make(map[string]*bucket),
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

// Allow reports whether one more request for key fits in the current window.
// A missing or elapsed window restarts at count 1; otherwise the request is
// allowed while count < limit.
func (l *Limiter) Allow(key string, limit int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.sweepInterval {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(window)}
		return true
	}
	if b.count < limit {
		b.count++
		return true
	}
	return false
}

// sweep must be called with mu held.
func (l *Limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
