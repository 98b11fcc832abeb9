// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

/*
Package main is the entry point for the jobboard server.

The server accepts job applications (with a resume upload), job postings and
contact messages from the public site, stores them in an object store, emails
the admin, and serves a cookie-authenticated review API.

# Application Architecture

	RootSupervisor ("jobboard")
	├── storage-layer
	│   └── Store GC (badger backend only)
	└── api-layer
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog
 3. Object store: S3-compatible bucket (minio-go) or embedded BadgerDB
 4. Email: Resend HTTP API or SMTP behind a circuit breaker and send rate cap
 5. Admin auth: bcrypt-checked shared password, session cookie
 6. Supervisor tree and HTTP server (chi)
 7. On shutdown, after the tree stops: drain queued emails (EMAIL_DRAIN_TIMEOUT)

# Configuration

	# Server
	HTTP_PORT=3000
	PUBLIC_BASE_URL=https://jobs.example.org
	ENVIRONMENT=production

	# Storage
	STORAGE_BACKEND=s3           # s3 or badger
	S3_ENDPOINT=https://<account>.r2.cloudflarestorage.com
	S3_BUCKET=jobboard
	S3_ACCESS_KEY_ID=...
	S3_SECRET_ACCESS_KEY=...
	BADGER_PATH=/data/badger     # badger backend
	BADGER_SIGNING_KEY=<32+ chars>

	# Email (Resend takes precedence over SMTP)
	RESEND_API_KEY=...
	SMTP_HOST=smtp.example.org
	EMAIL_FROM="Jobs <jobs@example.org>"
	ADMIN_EMAIL=admin@example.org,hr@example.org

	# Admin
	ADMIN_PASSWORD=...

	# Submission limits
	APPLY_RATE_LIMIT=5
	CONTACT_RATE_LIMIT=5
	SUBMIT_RATE_WINDOW=1m

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests. Once the tree has stopped, queued
notification emails are given EMAIL_DRAIN_TIMEOUT to finish.
*/
package main
