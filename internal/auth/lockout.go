// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package auth

import (
	"sync"
	"time"

	"github.com/tomtom215/jobboard/internal/logging"
)

// LockoutConfig controls admin login lockout.
type LockoutConfig struct {
	// MaxAttempts is the number of consecutive failures before lockout.
	// Zero disables lockout.
	MaxAttempts int

	// LockoutDuration is the first lockout period. Each further lockout
	// doubles it, up to MaxLockoutDuration.
	LockoutDuration    time.Duration
	MaxLockoutDuration time.Duration
}

// lockoutEntry tracks failed logins for one client.
type lockoutEntry struct {
	failedAttempts int
	lockoutCount   int
	lastAttempt    time.Time
	lockedUntil    time.Time
}

// Lockout refuses admin logins from a client after repeated failures.
// State is in memory and resets on restart.
type Lockout struct {
	config  LockoutConfig
	mu      sync.Mutex
	entries map[string]*lockoutEntry
	now     func() time.Time
}

// NewLockout creates a lockout tracker.
func NewLockout(cfg LockoutConfig) *Lockout {
	if cfg.MaxLockoutDuration < cfg.LockoutDuration {
		cfg.MaxLockoutDuration = cfg.LockoutDuration
	}
	return &Lockout{
		config:  cfg,
		entries: make(map[string]*lockoutEntry),
		now:     time.Now,
	}
}

// Enabled reports whether lockout is active.
func (l *Lockout) Enabled() bool {
	return l.config.MaxAttempts > 0
}

// Check returns the time left on subject's lockout, or 0.
func (l *Lockout) Check(subject string) time.Duration {
	if !l.Enabled() {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[subject]
	if !ok {
		return 0
	}
	if remaining := e.lockedUntil.Sub(l.now()); remaining > 0 {
		return remaining
	}
	return 0
}

// RecordFailure counts a failed login. It returns the lockout period when
// this failure triggers a lockout, or 0.
func (l *Lockout) RecordFailure(subject string) time.Duration {
	if !l.Enabled() {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.entries[subject]
	if !ok {
		e = &lockoutEntry{}
		l.entries[subject] = e
	}
	if now.Before(e.lockedUntil) {
		return e.lockedUntil.Sub(now)
	}

	e.failedAttempts++
	e.lastAttempt = now
	if e.failedAttempts < l.config.MaxAttempts {
		return 0
	}

	d := l.lockoutDuration(e.lockoutCount)
	e.lockedUntil = now.Add(d)
	e.lockoutCount++
	e.failedAttempts = 0

	logging.Warn().
		Str("subject", subject).
		Dur("duration", d).
		Int("lockout_count", e.lockoutCount).
		Msg("Admin login locked")
	return d
}

// RecordSuccess clears subject's failure history.
func (l *Lockout) RecordSuccess(subject string) {
	l.mu.Lock()
	delete(l.entries, subject)
	l.mu.Unlock()
}

func (l *Lockout) lockoutDuration(lockoutCount int) time.Duration {
	d := l.config.LockoutDuration
	for i := 0; i < lockoutCount && d < l.config.MaxLockoutDuration; i++ {
		d *= 2
	}
	if d > l.config.MaxLockoutDuration {
		return l.config.MaxLockoutDuration
	}
	return d
}

// sweep drops entries with no failure or lockout within the last
// MaxLockoutDuration. Must be called with mu held.
func (l *Lockout) sweep(now time.Time) {
	idle := l.config.MaxLockoutDuration
	for k, e := range l.entries {
		if now.Sub(e.lastAttempt) > idle && now.Sub(e.lockedUntil) > idle {
			delete(l.entries, k)
		}
	}
}
