// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"short", "yes", "***"},
		{"twelve", "abcdefghijkl", "***"},
		{"long", "abcdefghijklmnop", "abcd...mnop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.input); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"karim@example.com", "ka***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"no-at-sign", "***"},
		{"@example.com", "***"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeValue(t *testing.T) {
	if got := SanitizeValue("password", "hunter2"); got != "***" {
		t.Errorf("password not masked: %q", got)
	}
	if got := SanitizeValue("to", "rahim@example.com"); got != "ra***@example.com" {
		t.Errorf("email not masked: %q", got)
	}
	if got := SanitizeValue("job_slug", "imam-dhaka"); got != "imam-dhaka" {
		t.Errorf("plain value changed: %q", got)
	}
}

func TestSecurityLogger_LogAdminLogin(t *testing.T) {
	tests := []struct {
		name       string
		success    bool
		wantLevel  string
		wantStatus string
	}{
		{"success", true, "info", "success"},
		{"failure", false, "warn", "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sl := NewSecurityLoggerWithLogger(NewTestLogger(&buf))
			sl.LogAdminLogin(tt.success, "10.0.0.1", strings.Repeat("a", 150))

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %s", entry["status"], tt.wantStatus)
			}
			if entry["component"] != "auth" {
				t.Errorf("component = %v, want auth", entry["component"])
			}
			if ua, _ := entry["user_agent"].(string); len(ua) != 103 {
				t.Errorf("user_agent not truncated: len %d", len(ua))
			}
		})
	}
}

func TestSecurityLogger_LogUnauthorizedMasksCookie(t *testing.T) {
	var buf bytes.Buffer
	sl := NewSecurityLoggerWithLogger(NewTestLogger(&buf))
	sl.LogUnauthorized("/api/admin/applications", "10.0.0.2", "supersecretcookievalue")

	out := buf.String()
	if strings.Contains(out, "supersecretcookievalue") {
		t.Error("raw cookie value written to log")
	}
	if !strings.Contains(out, "supe...alue") {
		t.Errorf("masked cookie missing: %s", out)
	}
}
