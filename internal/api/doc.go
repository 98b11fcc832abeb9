// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

/*
Package api exposes the job board over HTTP using the Chi router.

# Routes

Public:
  - POST /apply, POST /api/apply: multipart job application
  - POST /post-job: employer job posting form
  - POST /api/contact: contact form relayed to the admin inbox
  - GET /api/jobs, GET /api/jobs/{slug}: published jobs

Admin (session cookie required except login and logout):
  - POST /api/admin/login, GET /api/admin/logout
  - GET /api/admin/applications[?email=&sort=submittedAt]
  - GET|PATCH /api/admin/applications/{id}
  - GET /api/admin/applications/{id}/resume
  - GET /api/admin/applications.csv
  - GET /api/admin/summary

Operational:
  - GET /api/health/live, GET /api/health/ready
  - GET /metrics
  - GET /files/* (embedded store signed downloads)
  - GET /swagger/* (OpenAPI document and UI)

# Errors

Failures are JSON {"error": "..."} except the CSV export and file downloads,
which answer in plain text. Validation problems are 400, missing admin
sessions 401, rate limits 429 and storage failures a generic 500.

Repeated failed admin logins lock the client IP out with exponential backoff;
a locked login answers 429 with Retry-After.
*/
package api
