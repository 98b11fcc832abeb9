// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package submissions

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/storage"
)

// ResumeURLTTL is the lifetime of a resume download link.
const ResumeURLTTL = 5 * time.Minute

// Review implements the admin operations. Every lookup is a full scan of
// the submissions/ prefix; there is no index.
type Review struct {
	store storage.Store
}

// NewReview creates a Review over store.
func NewReview(store storage.Store) *Review {
	return &Review{store: store}
}

// entry is one successfully decoded record with its listing metadata.
type entry struct {
	key          string
	lastModified time.Time
	sub          *Submission
}

// scan lists submissions/ and decodes every .json record. Records that
// cannot be read or parsed are skipped.
func (r *Review) scan(ctx context.Context) ([]entry, error) {
	infos, err := r.store.ListPrefix(ctx, SubmissionsPrefix)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(infos))
	for _, info := range infos {
		if !isRecordKey(info.Key) {
			continue
		}
		var sub Submission
		if err := r.store.GetJSON(ctx, info.Key, &sub); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logging.Ctx(ctx).Warn().Err(err).Str("key", info.Key).Msg("Skipping unreadable submission")
			continue
		}
		entries = append(entries, entry{key: info.Key, lastModified: info.LastModified, sub: &sub})
	}
	return entries, nil
}

func submissionsOf(entries []entry) []*Submission {
	out := make([]*Submission, len(entries))
	for i, e := range entries {
		out[i] = e.sub
	}
	return out
}

// List returns every readable submission, newest storage write first.
// Ties are broken by key.
func (r *Review) List(ctx context.Context) ([]*Submission, error) {
	entries, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].lastModified.Equal(entries[j].lastModified) {
			return entries[i].lastModified.After(entries[j].lastModified)
		}
		return entries[i].key < entries[j].key
	})
	return submissionsOf(entries), nil
}

// ListBySubmittedAt returns every readable submission ordered by the
// record's own submittedAt, newest first. This can differ from List.
func (r *Review) ListBySubmittedAt(ctx context.Context) ([]*Submission, error) {
	entries, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	sortBySubmittedAt(entries)
	return submissionsOf(entries), nil
}

// ListByEmail returns the submissions made from email (case-insensitive),
// newest submittedAt first.
func (r *Review) ListByEmail(ctx context.Context, email string) ([]*Submission, error) {
	entries, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	filtered := entries[:0]
	for _, e := range entries {
		if strings.EqualFold(strings.TrimSpace(e.sub.Email), email) {
			filtered = append(filtered, e)
		}
	}
	sortBySubmittedAt(filtered)
	return submissionsOf(filtered), nil
}

func sortBySubmittedAt(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].sub.SubmittedTime(), entries[j].sub.SubmittedTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].key < entries[j].key
	})
}

// FindByID scans for the record whose id field equals id and returns it
// with its storage key.
func (r *Review) FindByID(ctx context.Context, id string) (*Submission, string, error) {
	if id == "" {
		return nil, "", ErrNotFound
	}
	infos, err := r.store.ListPrefix(ctx, SubmissionsPrefix)
	if err != nil {
		return nil, "", err
	}
	for _, info := range infos {
		if !isRecordKey(info.Key) {
			continue
		}
		var sub Submission
		if err := r.store.GetJSON(ctx, info.Key, &sub); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, "", err
			}
			continue
		}
		if sub.ID == id {
			return &sub, info.Key, nil
		}
	}
	return nil, "", ErrNotFound
}

// PatchInput carries the admin-writable fields. A nil or empty Status keeps
// the current status; a nil Notes keeps the current notes.
type PatchInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Patch merges status and notes into the record and rewrites it at the
// same key. Concurrent patches are not serialized; the last write wins.
func (r *Review) Patch(ctx context.Context, id string, in PatchInput) (*Submission, error) {
	sub, key, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil && *in.Status != "" {
		sub.Status = *in.Status
	}
	if in.Notes != nil {
		sub.Notes = *in.Notes
	}
	if err := r.store.PutJSON(ctx, key, sub); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().
		Str("submission_id", sub.ID).
		Str("status", sub.EffectiveStatus()).
		Msg("Submission updated")
	return sub, nil
}

// ResumeLink is a time-boxed resume download URL.
type ResumeLink struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// ResumeURL returns a signed download link for the submission's resume.
func (r *Review) ResumeURL(ctx context.Context, id string) (*ResumeLink, error) {
	sub, _, err := r.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoResume
	}
	if err != nil {
		return nil, err
	}
	if sub.ResumeKey == "" {
		return nil, ErrNoResume
	}
	u, err := r.store.SignedURL(ctx, sub.ResumeKey, ResumeURLTTL)
	if storage.IsNotFound(err) {
		return nil, ErrNoResume
	}
	if err != nil {
		return nil, err
	}
	return &ResumeLink{URL: u, ExpiresIn: int(ResumeURLTTL / time.Second)}, nil
}
