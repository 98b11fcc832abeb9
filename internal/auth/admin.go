// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/logging"
)

// DefaultBcryptCost is the work factor for the admin password hash.
const DefaultBcryptCost = 12

// AdminOption configures an AdminAuth.
type AdminOption func(*adminOptions)

type adminOptions struct {
	bcryptCost int
}

// WithBcryptCost overrides the password hash work factor. Tests use
// bcrypt.MinCost.
func WithBcryptCost(cost int) AdminOption {
	return func(o *adminOptions) { o.bcryptCost = cost }
}

// AdminAuth gates the review surface behind one shared password. A
// successful login sets an HTTP-only cookie carrying a fixed marker; every
// admin request must present exactly that marker.
type AdminAuth struct {
	passwordHash []byte
	cookieName   string
	cookieValue  string
	ttl          time.Duration
	secure       bool
	security     *logging.SecurityLogger
	lockout      *Lockout
}

// NewAdminAuth hashes the configured password once so requests never see the
// plaintext. secure sets the cookie Secure flag.
func NewAdminAuth(cfg config.AdminConfig, secure bool, opts ...AdminOption) (*AdminAuth, error) {
	if cfg.Password == "" {
		return nil, errors.New("admin password is required")
	}
	if cfg.CookieName == "" || cfg.CookieValue == "" {
		return nil, errors.New("admin cookie name and value are required")
	}
	o := adminOptions{bcryptCost: DefaultBcryptCost}
	for _, opt := range opts {
		opt(&o)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), o.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &AdminAuth{
		passwordHash: hash,
		cookieName:   cfg.CookieName,
		cookieValue:  cfg.CookieValue,
		ttl:          cfg.SessionTTL,
		secure:       secure,
		security:     logging.NewSecurityLogger(),
		lockout: NewLockout(LockoutConfig{
			MaxAttempts:        cfg.LockoutAttempts,
			LockoutDuration:    cfg.LockoutDuration,
			MaxLockoutDuration: cfg.MaxLockoutDuration,
		}),
	}, nil
}

// CheckPassword reports whether pw is the admin password.
func (a *AdminAuth) CheckPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(pw)) == nil
}

// SetSession issues the session cookie.
func (a *AdminAuth) SetSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    a.cookieValue,
		Path:     "/",
		MaxAge:   int(a.ttl / time.Second),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func (a *AdminAuth) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HasSession reports whether r carries the exact session marker.
func (a *AdminAuth) HasSession(r *http.Request) bool {
	c, err := r.Cookie(a.cookieName)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(a.cookieValue)) == 1
}

// presented returns the raw cookie value for audit logging, or "".
func (a *AdminAuth) presented(r *http.Request) string {
	if c, err := r.Cookie(a.cookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireAdmin rejects requests without a session with 401
// {"error":"Unauthorized"} before next runs.
func (a *AdminAuth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.HasSession(r) {
			a.security.LogUnauthorized(r.URL.Path, r.RemoteAddr, a.presented(r))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck // client may have gone away
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

// RequireAdminText is RequireAdmin for non-JSON downloads: the 401 body is
// plain text.
func (a *AdminAuth) RequireAdminText(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.HasSession(r) {
			a.security.LogUnauthorized(r.URL.Path, r.RemoteAddr, a.presented(r))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// Lockout returns the failed-login tracker.
func (a *AdminAuth) Lockout() *Lockout {
	return a.lockout
}

// Security returns the audit logger used for login events.
func (a *AdminAuth) Security() *logging.SecurityLogger {
	return a.security
}
