// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package jobs

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/storage"
)

// Reader serves published jobs.
type Reader struct {
	store storage.Store
}

// NewReader creates a Reader.
func NewReader(store storage.Store) *Reader {
	return &Reader{store: store}
}

// Get returns the published job with slug. Missing, unreadable and
// unpublished jobs all return ErrNotFound.
func (r *Reader) Get(ctx context.Context, slug string) (*Job, error) {
	if slug == "" || strings.Contains(slug, "/") || strings.Contains(slug, "..") {
		return nil, ErrNotFound
	}
	var job Job
	err := r.store.GetJSON(ctx, RecordKey(slug), &job)
	if err != nil {
		var de *storage.DecodeError
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		if errors.As(err, &de) {
			logging.Ctx(ctx).Warn().Err(err).Str("job_slug", slug).Msg("Unreadable job record")
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !job.IsPublished() {
		return nil, ErrNotFound
	}
	return &job, nil
}

// ListPublished scans jobs/ and returns every readable published job,
// newest datePosted first. Bad records are skipped.
func (r *Reader) ListPublished(ctx context.Context) ([]*Job, error) {
	infos, err := r.store.ListPrefix(ctx, Prefix)
	if err != nil {
		return nil, err
	}

	out := make([]*Job, 0)
	for _, info := range infos {
		if !isRecordKey(info.Key) {
			continue
		}
		var job Job
		if err := r.store.GetJSON(ctx, info.Key, &job); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logging.Ctx(ctx).Warn().Err(err).Str("key", info.Key).Msg("Skipping unreadable job")
			continue
		}
		if job.IsPublished() {
			out = append(out, &job)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DatePosted != out[j].DatePosted {
			return out[i].DatePosted > out[j].DatePosted
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}
