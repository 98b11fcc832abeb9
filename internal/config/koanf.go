// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/jobboard/config.yaml",
	"/etc/jobboard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotenvPath is the optional dotenv file read before any other layer.
var DotenvPath = ".env"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          3000,
			Host:          "0.0.0.0",
			Timeout:       30 * time.Second,
			Environment:   "development",
			PublicBaseURL: "http://localhost:3000",
		},
		Storage: StorageConfig{
			Backend: "s3",
			S3: S3Config{
				Region:    "auto",
				Secure:    true,
				PathStyle: true,
			},
			Badger: BadgerConfig{
				Path:       "/data/jobboard",
				InMemory:   false,
				GCInterval: 10 * time.Minute,
			},
		},
		Email: EmailConfig{
			ResendEndpoint:    "https://api.resend.com/emails",
			SMTPPort:          587,
			SMTPTLS:           false,
			From:              "KhedmatBD <noreply@khedmatbd.com>",
			AdminTo:           "admin@example.com",
			SendRatePerSecond: 2,
			Timeout:           15 * time.Second,
			DrainTimeout:      20 * time.Second,
		},
		Admin: AdminConfig{
			CookieName:  "admin_session",
			CookieValue: "yes",
			SessionTTL:  8 * time.Hour,
			LoginPath:   "/admin/login",

			LockoutAttempts:    10,
			LockoutDuration:    15 * time.Minute,
			MaxLockoutDuration: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			ApplyRequests:   5,
			ContactRequests: 5,
			Window:          time.Minute,
			SweepInterval:   time.Minute,
			FallbackIP:      "local",
		},
		Uploads: UploadsConfig{
			MaxBytes:       5 << 20, // 5 MiB
			ResumeRequired: true,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any setting
//
// A .env file, when present, is merged into the process environment first.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotenv(DotenvPath); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// EMAIL_TO wins over its ADMIN_EMAIL alias regardless of environ order.
	if v := os.Getenv("EMAIL_TO"); v != "" {
		if err := k.Set("email.admin_to", v); err != nil {
			return nil, fmt.Errorf("failed to set email.admin_to: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotenv merges a dotenv file into the environment. A missing file is
// not an error; variables already set are never overridden.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML may already provide a list.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// The names follow the deployment conventions of the job board frontend so
// an existing .env keeps working.
var envMappings = map[string]string{
	// Server
	"http_port":            "server.port",
	"http_host":            "server.host",
	"server_timeout":       "server.timeout",
	"environment":          "server.environment",
	"public_base_url":      "server.public_base_url",
	"next_public_site_url": "server.public_base_url",

	// Storage
	"storage_backend":      "storage.backend",
	"s3_endpoint":          "storage.s3.endpoint",
	"s3_region":            "storage.s3.region",
	"s3_bucket":            "storage.s3.bucket",
	"s3_access_key_id":     "storage.s3.access_key_id",
	"s3_secret_access_key": "storage.s3.secret_access_key",
	"s3_secure":            "storage.s3.secure",
	"s3_force_path_style":  "storage.s3.path_style",
	"badger_path":          "storage.badger.path",
	"badger_in_memory":     "storage.badger.in_memory",
	"badger_signing_key":   "storage.badger.signing_key",
	"badger_gc_interval":   "storage.badger.gc_interval",

	// Email
	"resend_api_key":      "email.resend_api_key",
	"resend_endpoint":     "email.resend_endpoint",
	"smtp_host":           "email.smtp_host",
	"smtp_port":           "email.smtp_port",
	"smtp_user":           "email.smtp_user",
	"smtp_pass":           "email.smtp_password",
	"smtp_secure":         "email.smtp_tls",
	"email_from":          "email.from",
	"admin_email":         "email.admin_to",
	"email_rate_per_sec":  "email.send_rate_per_second",
	"email_timeout":       "email.timeout",
	"email_drain_timeout": "email.drain_timeout",

	// Admin
	"admin_password":             "admin.password",
	"admin_cookie_name":          "admin.cookie_name",
	"admin_cookie_value":         "admin.cookie_value",
	"admin_session_ttl":          "admin.session_ttl",
	"admin_cookie_secure":        "admin.cookie_secure",
	"admin_login_path":           "admin.login_path",
	"admin_lockout_attempts":     "admin.lockout_attempts",
	"admin_lockout_duration":     "admin.lockout_duration",
	"admin_max_lockout_duration": "admin.max_lockout_duration",

	// Submission rate limiting
	"apply_rate_limit":    "ratelimit.apply_requests",
	"contact_rate_limit":  "ratelimit.contact_requests",
	"submit_rate_window":  "ratelimit.window",
	"rate_sweep_interval": "ratelimit.sweep_interval",
	"rate_fallback_ip":    "ratelimit.fallback_ip",

	// Uploads
	"upload_max_bytes": "uploads.max_bytes",
	"resume_required":  "uploads.resume_required",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unknown variables return "" and are ignored.
//
// Examples:
//   - S3_BUCKET -> storage.s3.bucket
//   - SMTP_PASS -> email.smtp_password
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
