// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"context"
	"time"

	"github.com/tomtom215/jobboard/internal/auth"
	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/jobs"
	"github.com/tomtom215/jobboard/internal/notify"
	"github.com/tomtom215/jobboard/internal/ratelimit"
	"github.com/tomtom215/jobboard/internal/storage"
	"github.com/tomtom215/jobboard/internal/submissions"
)

// Mailer sends one message and waits for the result.
type Mailer interface {
	Send(ctx context.Context, msg *notify.Message) error
}

// Deps are the collaborators the handlers call into.
type Deps struct {
	Config    *config.Config
	Store     storage.Store
	Intake    *submissions.Service
	Review    *submissions.Review
	JobWriter *jobs.Writer
	Jobs      *jobs.Reader
	Admin     *auth.AdminAuth
	Limiter   *ratelimit.Limiter
	Mailer    Mailer
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and form helpers
//   - handlers_apply.go: application intake
//   - handlers_jobs.go: job posting and public job reads
//   - handlers_contact.go: contact form
//   - handlers_admin.go: admin login and review surface
//   - handlers_files.go: locally signed downloads
//   - handlers_health.go: health probes
type Handler struct {
	config    *config.Config
	store     storage.Store
	intake    *submissions.Service
	review    *submissions.Review
	jobWriter *jobs.Writer
	jobs      *jobs.Reader
	admin     *auth.AdminAuth
	limiter   *ratelimit.Limiter
	mailer    Mailer
	adminTo   []string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(api.Deps{Config: cfg, Store: store, ...})
//	router := api.NewRouter(handler, cfg)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(d Deps) *Handler {
	return &Handler{
		config:    d.Config,
		store:     d.Store,
		intake:    d.Intake,
		review:    d.Review,
		jobWriter: d.JobWriter,
		jobs:      d.Jobs,
		admin:     d.Admin,
		limiter:   d.Limiter,
		mailer:    d.Mailer,
		adminTo:   d.Config.Email.AdminRecipients(),
		startTime: time.Now(),
	}
}
