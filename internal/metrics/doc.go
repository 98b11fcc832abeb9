// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Submission Metrics:
  - submissions_accepted_total: Stored applications (counter)
  - submissions_rejected_total: Rejected applications (counter)
    Labels: reason (missing_fields, invalid_email, file_too_large, unsupported_type, rate_limited, storage)
  - jobs_posted_total: Stored job postings (counter)
  - ratelimit_denied_total: Local limiter denials (counter)
    Labels: endpoint

Storage Metrics:
  - storage_operation_duration_seconds: Object store latency (histogram)
    Labels: backend, operation
  - storage_operation_errors_total: Object store failures (counter)
    Labels: backend, operation

Notification Metrics:
  - notifications_sent_total / notifications_failed_total (counter)
    Labels: backend
  - notifications_in_flight: Background sends not yet finished (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

All metrics register on the default registry through promauto.
*/
package metrics
