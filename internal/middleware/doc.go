// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

/*
Package middleware provides HTTP middleware shared by the API router.

Components:

  - RequestID: takes or generates X-Request-ID and seeds logging context
  - RequestLogger: one structured log line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for JSON, CSV and text responses

All middleware here is written as func(http.HandlerFunc) http.HandlerFunc;
the api package adapts them to chi.

Typical order, outermost first:

	RequestID -> RequestLogger -> PrometheusMetrics -> Compression -> handler
*/
package middleware
