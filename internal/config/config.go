// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  0. .env file in the working directory (never overrides set variables)
//  1. Defaults: built-in values for every optional setting
//  2. Config File: optional config.yaml
//  3. Environment Variables: override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	store, err := storage.NewS3Store(ctx, cfg.Storage.S3)
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Email     EmailConfig     `koanf:"email"`
	Admin     AdminConfig     `koanf:"admin"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Uploads   UploadsConfig   `koanf:"uploads"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`

	// PublicBaseURL prefixes locally signed download links (badger backend)
	// and links in notification emails.
	PublicBaseURL string `koanf:"public_base_url"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects and configures the object store backend.
type StorageConfig struct {
	// Backend is "s3" (any S3-compatible service) or "badger" (embedded).
	Backend string       `koanf:"backend"`
	S3      S3Config     `koanf:"s3"`
	Badger  BadgerConfig `koanf:"badger"`
}

// S3Config configures the S3-compatible backend (AWS S3, Cloudflare R2, MinIO).
type S3Config struct {
	// Endpoint may be a bare host[:port] or a URL; a URL scheme decides Secure.
	Endpoint        string `koanf:"endpoint"`
	Region          string `koanf:"region"`
	Bucket          string `koanf:"bucket"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	Secure          bool   `koanf:"secure"`
	PathStyle       bool   `koanf:"path_style"`
}

// BadgerConfig configures the embedded backend.
type BadgerConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	SigningKey string        `koanf:"signing_key"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EmailConfig configures outbound mail. The backend is picked in order:
// Resend when an API key is set, SMTP when a host is set, else a log-only
// fallback.
type EmailConfig struct {
	ResendAPIKey      string        `koanf:"resend_api_key"`
	ResendEndpoint    string        `koanf:"resend_endpoint"`
	SMTPHost          string        `koanf:"smtp_host"`
	SMTPPort          int           `koanf:"smtp_port"`
	SMTPUser          string        `koanf:"smtp_user"`
	SMTPPassword      string        `koanf:"smtp_password"`
	SMTPTLS           bool          `koanf:"smtp_tls"`
	From              string        `koanf:"from"`
	AdminTo           string        `koanf:"admin_to"`
	SendRatePerSecond float64       `koanf:"send_rate_per_second"`
	Timeout           time.Duration `koanf:"timeout"`
	DrainTimeout      time.Duration `koanf:"drain_timeout"`
}

// AdminRecipients splits AdminTo on commas, dropping blanks.
func (e EmailConfig) AdminRecipients() []string {
	var out []string
	for _, addr := range strings.Split(e.AdminTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// AdminConfig configures the shared-password admin session.
type AdminConfig struct {
	Password     string        `koanf:"password"`
	CookieName   string        `koanf:"cookie_name"`
	CookieValue  string        `koanf:"cookie_value"`
	SessionTTL   time.Duration `koanf:"session_ttl"`
	CookieSecure bool          `koanf:"cookie_secure"`
	LoginPath    string        `koanf:"login_path"`

	// Failed logins from one IP before it is locked out. Zero disables.
	LockoutAttempts    int           `koanf:"lockout_attempts"`
	LockoutDuration    time.Duration `koanf:"lockout_duration"`
	MaxLockoutDuration time.Duration `koanf:"max_lockout_duration"`
}

// RateLimitConfig configures the in-process fixed-window limiter guarding
// public submission endpoints.
type RateLimitConfig struct {
	ApplyRequests   int           `koanf:"apply_requests"`
	ContactRequests int           `koanf:"contact_requests"`
	Window          time.Duration `koanf:"window"`
	SweepInterval   time.Duration `koanf:"sweep_interval"`
	FallbackIP      string        `koanf:"fallback_ip"`
}

// UploadsConfig bounds uploaded files.
type UploadsConfig struct {
	MaxBytes       int64 `koanf:"max_bytes"`
	ResumeRequired bool  `koanf:"resume_required"`
}

// SecurityConfig holds HTTP-level protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// SecureCookies reports whether the admin cookie must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Admin.CookieSecure || c.IsProduction()
}

// Load reads configuration from all layers and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
