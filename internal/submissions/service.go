// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package submissions implements application intake and the admin review
// operations over the flat object store.
//
// Storage layout:
//
//	submissions/<jobSlug>/<id>.json   one record per application
//	resumes/<jobSlug>/<id>-<name>     the uploaded resume, if any
//
// The JSON record is the only source of truth. A resume whose record write
// failed is left behind as an orphan; it is logged with its key and never
// cleaned up.
package submissions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/metrics"
	"github.com/tomtom215/jobboard/internal/notify"
	"github.com/tomtom215/jobboard/internal/storage"
	"github.com/tomtom215/jobboard/internal/upload"
	"github.com/tomtom215/jobboard/internal/validation"
)

// Notifier queues best-effort email.
type Notifier interface {
	Go(ctx context.Context, msg *notify.Message)
}

// Config controls intake.
type Config struct {
	MaxResumeBytes int64
	ResumeRequired bool
	// AdminTo receives the new-application alert.
	AdminTo []string
}

// Application is the applicant-provided input.
type Application struct {
	JobSlug     string
	Name        string
	Email       string
	CoverLetter string
}

// Service accepts new applications.
type Service struct {
	store    storage.Store
	notifier Notifier
	cfg      Config
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for submittedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides UUID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service. A nil notifier disables email.
func NewService(store storage.Store, notifier Notifier, cfg Config, opts ...Option) *Service {
	if cfg.MaxResumeBytes <= 0 {
		cfg.MaxResumeBytes = upload.DefaultMaxBytes
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxResumeBytes returns the configured resume ceiling.
func (s *Service) MaxResumeBytes() int64 { return s.cfg.MaxResumeBytes }

// Submit validates app and resume, stores the resume and then the record,
// and queues the notification emails. Every validation failure happens
// before the first write.
func (s *Service) Submit(ctx context.Context, app Application, resume *upload.File) (*Submission, error) {
	app.JobSlug = strings.TrimSpace(app.JobSlug)
	app.Name = strings.TrimSpace(app.Name)
	app.Email = strings.TrimSpace(app.Email)
	app.CoverLetter = strings.TrimSpace(app.CoverLetter)

	contentType, err := s.validate(app, resume)
	if err != nil {
		metrics.RecordSubmissionRejected(err.Reason)
		return nil, err
	}

	sub := &Submission{
		ID:          s.newID(),
		JobSlug:     app.JobSlug,
		Name:        app.Name,
		Email:       app.Email,
		CoverLetter: app.CoverLetter,
		Status:      StatusNew,
		SubmittedAt: s.now().UTC().Format(SubmittedAtLayout),
	}
	log := logging.Ctx(ctx).With().
		Str("submission_id", sub.ID).
		Str("job_slug", sub.JobSlug).
		Logger()

	if resume != nil {
		sub.ResumeKey = ResumeKey(sub.JobSlug, sub.ID, upload.SanitizeFilename(resume.Filename))
		if err := s.store.PutFile(ctx, sub.ResumeKey, resume.Data, contentType); err != nil {
			log.Error().Err(err).Str("key", sub.ResumeKey).Msg("Resume upload failed")
			return nil, err
		}
	}

	if err := s.store.PutJSON(ctx, sub.Key(), sub); err != nil {
		ev := log.Error().Err(err).Str("key", sub.Key())
		if sub.ResumeKey != "" {
			ev = ev.Str("orphan_key", sub.ResumeKey)
		}
		ev.Msg("Submission record write failed")
		return nil, err
	}

	metrics.SubmissionsAccepted.Inc()
	log.Info().Bool("has_resume", sub.ResumeKey != "").Msg("Application accepted")

	s.notify(ctx, sub)
	return sub, nil
}

func (s *Service) validate(app Application, resume *upload.File) (string, *ValidationError) {
	if app.JobSlug == "" || app.Name == "" || app.Email == "" {
		return "", invalid(MsgMissingFields, "missing_fields")
	}
	if validation.ValidateVar(app.JobSlug, "jobslug") != nil {
		return "", invalid(MsgInvalidJobSlug, "invalid_job_slug")
	}
	if validation.ValidateVar(app.Email, "email") != nil {
		return "", invalid(MsgInvalidEmail, "invalid_email")
	}

	if resume == nil {
		if s.cfg.ResumeRequired {
			return "", invalid(MsgMissingResume, "missing_resume")
		}
		return "", nil
	}
	if resume.Size() > s.cfg.MaxResumeBytes {
		return "", invalid(MsgFileTooLarge, "file_too_large")
	}
	contentType := upload.ResolveType(resume, upload.ResumeTypes)
	if contentType == "" {
		return "", invalid(MsgUnsupportedType, "unsupported_type")
	}
	return contentType, nil
}

// notify queues the admin alert and the applicant acknowledgement as two
// independent sends.
func (s *Service) notify(ctx context.Context, sub *Submission) {
	if s.notifier == nil {
		return
	}
	alert := notify.ApplicationAlert{
		ID:          sub.ID,
		JobSlug:     sub.JobSlug,
		Name:        sub.Name,
		Email:       sub.Email,
		CoverLetter: sub.CoverLetter,
		ResumeKey:   sub.ResumeKey,
	}
	if len(s.cfg.AdminTo) > 0 {
		s.notifier.Go(ctx, notify.AdminApplicationAlert(s.cfg.AdminTo, alert))
	}
	s.notifier.Go(ctx, notify.ApplicantAcknowledgement(alert))
}
