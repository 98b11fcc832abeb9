// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package main provides the jobboard HTTP server
//
// @title Jobboard API
// @version 1.0
// @description Job application intake, job postings and the cookie-authenticated admin review API.
// @description
// @description ## Errors
// @description
// @description Failures are JSON objects with a single error field, except the CSV export
// @description and signed file downloads, which answer in plain text.
// @description
// @description ## Rate Limiting
// @description
// @description Applications and contact messages: 5 per minute per client IP.
// @description Admin login: 5 per 5 minutes per IP, plus an exponential lockout after repeated failures.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/jobboard/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey AdminSession
// @in cookie
// @name admin_session
// @description Session marker cookie set by /api/admin/login.
//
// @tag.name Core
// @tag.description Health checks
//
// @tag.name Applications
// @tag.description Public job application intake
//
// @tag.name Jobs
// @tag.description Job postings
//
// @tag.name Contact
// @tag.description Contact form
//
// @tag.name Admin
// @tag.description Cookie-authenticated review of applications
package main
