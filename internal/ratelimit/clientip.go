// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package ratelimit

import (
	"net/http"
	"strings"
)

// ClientIP returns the first hop of X-Forwarded-For, or fallback when the
// header is absent or empty. Every caller without the header shares the
// fallback bucket.
func ClientIP(r *http.Request, fallback string) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return fallback
	}
	first, _, _ := strings.Cut(xff, ",")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return fallback
}

// Key builds the limiter key "<endpoint>:<ip>".
func Key(endpoint, ip string) string {
	return endpoint + ":" + ip
}
