// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/jobboard/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateEmail(); err != nil {
		return err
	}

	if err := c.validateAdmin(); err != nil {
		return err
	}

	if err := c.validateRateLimit(); err != nil {
		return err
	}

	if err := c.validateUploads(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	if c.Server.PublicBaseURL != "" {
		u, err := url.Parse(c.Server.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL must be an absolute URL, got %q", c.Server.PublicBaseURL)
		}
	}
	return nil
}

// validateStorage validates the selected storage backend
func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case "s3":
		return c.validateS3()
	case "badger":
		return c.validateBadger()
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: s3, badger (got %q)", c.Storage.Backend)
	}
}

func (c *Config) validateS3() error {
	if c.Storage.S3.Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required when STORAGE_BACKEND=s3")
	}
	if c.Storage.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
	}
	return nil
}

func (c *Config) validateBadger() error {
	if !c.Storage.Badger.InMemory && c.Storage.Badger.Path == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	if c.Storage.Badger.SigningKey != "" && len(c.Storage.Badger.SigningKey) < 32 {
		return fmt.Errorf("BADGER_SIGNING_KEY must be at least 32 characters")
	}
	return nil
}

// validateEmail validates outbound mail configuration
func (c *Config) validateEmail() error {
	if c.Email.From == "" {
		return fmt.Errorf("EMAIL_FROM is required")
	}
	if c.Email.AdminTo == "" {
		return fmt.Errorf("EMAIL_TO is required")
	}
	if c.Email.SMTPHost != "" && (c.Email.SMTPPort < 1 || c.Email.SMTPPort > 65535) {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535")
	}
	if c.Email.SendRatePerSecond <= 0 {
		return fmt.Errorf("EMAIL_RATE_PER_SEC must be positive")
	}
	if c.Email.Timeout <= 0 {
		return fmt.Errorf("EMAIL_TIMEOUT must be positive")
	}
	return nil
}

// validateAdmin validates the admin session configuration
func (c *Config) validateAdmin() error {
	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if c.Admin.CookieName == "" || c.Admin.CookieValue == "" {
		return fmt.Errorf("ADMIN_COOKIE_NAME and ADMIN_COOKIE_VALUE must not be empty")
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("ADMIN_SESSION_TTL must be positive")
	}
	if !strings.HasPrefix(c.Admin.LoginPath, "/") {
		return fmt.Errorf("ADMIN_LOGIN_PATH must start with /")
	}
	if c.Admin.LockoutAttempts < 0 {
		return fmt.Errorf("ADMIN_LOCKOUT_ATTEMPTS must not be negative")
	}
	if c.Admin.LockoutAttempts > 0 && c.Admin.LockoutDuration <= 0 {
		return fmt.Errorf("ADMIN_LOCKOUT_DURATION must be positive when lockout is enabled")
	}
	return nil
}

// validateRateLimit validates the submission limiter settings
func (c *Config) validateRateLimit() error {
	if c.RateLimit.ApplyRequests < 1 {
		return fmt.Errorf("APPLY_RATE_LIMIT must be at least 1")
	}
	if c.RateLimit.ContactRequests < 1 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be at least 1")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("SUBMIT_RATE_WINDOW must be positive")
	}
	if c.RateLimit.SweepInterval <= 0 {
		return fmt.Errorf("RATE_SWEEP_INTERVAL must be positive")
	}
	if c.RateLimit.FallbackIP == "" {
		return fmt.Errorf("RATE_FALLBACK_IP must not be empty")
	}
	return nil
}

// validateUploads validates upload limits
func (c *Config) validateUploads() error {
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// validateSecurity validates HTTP protections
func (c *Config) validateSecurity() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		logging.Warn().Msg("CORS_ORIGINS=* in production; set explicit origins for the admin console")
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates the global httprate bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
