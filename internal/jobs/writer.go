// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package jobs

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/metrics"
	"github.com/tomtom215/jobboard/internal/notify"
	"github.com/tomtom215/jobboard/internal/storage"
	"github.com/tomtom215/jobboard/internal/upload"
	"github.com/tomtom215/jobboard/internal/validation"
)

// Input is the employer form. Field order matters: the first failing field
// decides the message shown.
type Input struct {
	Title          string `form:"title" validate:"min=3"`
	Description    string `form:"description" validate:"min=20"`
	OrgName        string `form:"orgName" validate:"min=2"`
	City           string `form:"city" validate:"min=2"`
	OrgWebsite     string `form:"orgWebsite" validate:"omitempty,url"`
	Email          string `form:"email" validate:"omitempty,email"`
	ApplicationURL string `form:"applicationUrl" validate:"omitempty,url"`
	Region         string `form:"region"`
	Country        string `form:"country"`
	EmploymentType string `form:"employmentType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP TEMPORARY"`
	ValidThrough   string `form:"validThrough" validate:"omitempty,datetime=2006-01-02"`
	SalaryValue    string `form:"salaryValue" validate:"omitempty,numeric"`
	SalaryCurrency string `form:"salaryCurrency"`
	SalaryUnit     string `form:"salaryUnit" validate:"omitempty,oneof=HOUR DAY WEEK MONTH YEAR"`
}

// fieldMessages are the employer-facing messages per form field.
var fieldMessages = map[string]string{
	"title":          "শিরোনাম কমপক্ষে ৩ অক্ষর দিন",
	"description":    "বর্ণনা কমপক্ষে ২০ অক্ষর দিন",
	"orgName":        "প্রতিষ্ঠানের নাম দিন",
	"city":           "শহর/উপজেলা দিন",
	"orgWebsite":     "সঠিক ওয়েবসাইট লিংক দিন",
	"email":          "সঠিক ইমেইল দিন",
	"applicationUrl": "সঠিক আবেদন লিংক দিন",
	"employmentType": "চাকরির ধরন সঠিক নয়",
	"validThrough":   "শেষ তারিখ YYYY-MM-DD আকারে দিন",
	"salaryValue":    "বেতনের পরিমাণ সংখ্যায় দিন",
	"salaryUnit":     "বেতনের একক সঠিক নয়",
}

// File validation messages.
const (
	MsgFileTooLarge    = "ফাইল ৫MB এর কম হতে হবে"
	MsgUnsupportedFile = "ফাইলের ধরন সমর্থিত নয়"
)

// Allowed media types per attachment.
var (
	LogoTypes = []string{upload.TypePNG, upload.TypeJPEG, upload.TypeWEBP}
	JDTypes   = []string{upload.TypePDF, upload.TypeDOC, upload.TypeDOCX}
)

// Notifier queues best-effort email.
type Notifier interface {
	Go(ctx context.Context, msg *notify.Message)
}

// WriterConfig configures a Writer.
type WriterConfig struct {
	MaxFileBytes int64
	// PublicBaseURL is used to build the job link in the admin alert.
	PublicBaseURL string
	AdminTo       []string
}

// Writer creates job postings.
type Writer struct {
	store    storage.Store
	notifier Notifier
	cfg      WriterConfig
	now      func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterClock overrides the clock used for the slug and datePosted.
func WithWriterClock(now func() time.Time) WriterOption {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a Writer. A nil notifier disables the admin alert.
func NewWriter(store storage.Store, notifier Notifier, cfg WriterConfig, opts ...WriterOption) *Writer {
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = upload.DefaultMaxBytes
	}
	w := &Writer{store: store, notifier: notifier, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// MaxFileBytes returns the per-file ceiling.
func (w *Writer) MaxFileBytes() int64 { return w.cfg.MaxFileBytes }

type attachment struct {
	file        *upload.File
	contentType string
	key         string
}

// Create validates in and the optional files, uploads the files, writes
// jobs/<slug>/job.json with published=true and queues an admin alert.
// Validation failures return *ValidationError before any write.
func (w *Writer) Create(ctx context.Context, in Input, logo, jd *upload.File) (*Job, error) {
	trimInput(&in)
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	now := w.now().UTC()
	slug := NewSlug(in.Title, in.City, now)

	logoAtt, err := w.checkFile(logo, LogoTypes, Prefix+slug+"/logo")
	if err != nil {
		return nil, err
	}
	jdAtt, err := w.checkFile(jd, JDTypes, Prefix+slug+"/jd")
	if err != nil {
		return nil, err
	}

	log := logging.Ctx(ctx).With().Str("job_slug", slug).Logger()

	for _, att := range []*attachment{logoAtt, jdAtt} {
		if att == nil {
			continue
		}
		if err := w.store.PutFile(ctx, att.key, att.file.Data, att.contentType); err != nil {
			log.Error().Err(err).Str("key", att.key).Msg("Job attachment upload failed")
			return nil, err
		}
	}

	job := buildJob(in, slug, now)
	if logoAtt != nil {
		job.HiringOrganization.Logo = logoAtt.key
	}
	if jdAtt != nil {
		job.Attachments = &Attachments{JD: jdAtt.key}
	}

	if err := w.store.PutJSON(ctx, RecordKey(slug), job); err != nil {
		log.Error().Err(err).Msg("Job record write failed")
		return nil, err
	}

	metrics.JobsPosted.Inc()
	log.Info().Str("title", job.Title).Msg("Job posted")

	if w.notifier != nil && len(w.cfg.AdminTo) > 0 {
		w.notifier.Go(ctx, notify.AdminJobPosted(w.cfg.AdminTo, notify.JobAlert{
			Slug:    slug,
			Title:   job.Title,
			OrgName: job.HiringOrganization.Name,
			City:    job.JobLocation.AddressLocality,
			URL:     strings.TrimRight(w.cfg.PublicBaseURL, "/") + "/jobs/" + slug,
		}))
	}
	return job, nil
}

func trimInput(in *Input) {
	for _, p := range []*string{
		&in.Title, &in.Description, &in.OrgName, &in.City, &in.OrgWebsite, &in.Email,
		&in.ApplicationURL, &in.Region, &in.Country, &in.EmploymentType, &in.ValidThrough,
		&in.SalaryValue, &in.SalaryCurrency, &in.SalaryUnit,
	} {
		*p = strings.TrimSpace(*p)
	}
}

func validateInput(in *Input) *ValidationError {
	verr := validation.ValidateStruct(in)
	if verr == nil {
		return nil
	}
	first := verr.First()
	msg, ok := fieldMessages[first.Field()]
	if !ok {
		msg = first.Error()
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}

// checkFile validates one optional attachment and derives its key. A nil
// or empty file yields no attachment.
func (w *Writer) checkFile(f *upload.File, allowed []string, keyBase string) (*attachment, error) {
	if f == nil || f.Size() == 0 {
		return nil, nil
	}
	if f.Size() > w.cfg.MaxFileBytes {
		return nil, &ValidationError{Field: "file", Message: MsgFileTooLarge}
	}
	ct := upload.ResolveType(f, allowed)
	if ct == "" {
		return nil, &ValidationError{Field: "file", Message: MsgUnsupportedFile}
	}
	return &attachment{file: f, contentType: ct, key: keyBase + upload.Extension(ct)}, nil
}

func buildJob(in Input, slug string, now time.Time) *Job {
	published := true
	job := &Job{
		Slug:           slug,
		Title:          in.Title,
		Description:    in.Description,
		EmploymentType: in.EmploymentType,
		DatePosted:     now.Format("2006-01-02"),
		ValidThrough:   in.ValidThrough,
		HiringOrganization: Organization{
			Name:   in.OrgName,
			SameAs: in.OrgWebsite,
		},
		JobLocation: Location{
			AddressLocality: in.City,
			AddressRegion:   in.Region,
			AddressCountry:  orDefault(in.Country, DefaultCountry),
		},
		Published: &published,
	}
	if in.SalaryValue != "" {
		if v, err := strconv.ParseFloat(in.SalaryValue, 64); err == nil {
			job.BaseSalary = &Salary{
				Currency: orDefault(in.SalaryCurrency, DefaultSalaryCurrency),
				Value:    v,
				UnitText: orDefault(in.SalaryUnit, DefaultSalaryUnit),
			}
		}
	}
	if in.Email != "" || in.ApplicationURL != "" {
		job.Contact = &Contact{Email: in.Email, ApplicationURL: in.ApplicationURL}
	}
	return job
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
