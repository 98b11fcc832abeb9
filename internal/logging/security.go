// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityLogger records admin authentication events with sanitized fields.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger tagged component=auth.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger over a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogAdminLogin records a login attempt against the shared admin password.
func (l *SecurityLogger) LogAdminLogin(success bool, ip, userAgent string) {
	var e *zerolog.Event
	if success {
		e = l.logger.Info().Str("status", "success")
	} else {
		e = l.logger.Warn().Str("status", "failed")
	}
	e.Str("event", "admin_login").
		Str("ip", ip).
		Str("user_agent", truncateString(userAgent, 100)).
		Msg("")
}

// LogAdminLogout records a logout.
func (l *SecurityLogger) LogAdminLogout(ip string) {
	l.logger.Info().Str("event", "admin_logout").Str("ip", ip).Msg("")
}

// LogUnauthorized records a rejected admin request. The presented cookie
// value is masked.
func (l *SecurityLogger) LogUnauthorized(path, ip, presented string) {
	l.logger.Warn().
		Str("event", "admin_unauthorized").
		Str("path", path).
		Str("ip", ip).
		Str("cookie", SanitizeToken(presented)).
		Msg("")
}

// SanitizeToken masks a secret, keeping the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeEmail masks the local part of an address.
// Example: "karim@example.com" -> "ka***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// SanitizeValue masks value when key names a secret or value looks like an
// email address.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "password", "secret", "token", "api_key", "apikey", "authorization", "cookie", "session":
		return SanitizeToken(value)
	}
	if strings.Contains(value, "@") && strings.Contains(value, ".") {
		return SanitizeEmail(value)
	}
	return value
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
