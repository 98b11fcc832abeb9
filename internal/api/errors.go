// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/jobboard/internal/jobs"
	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/storage"
	"github.com/tomtom215/jobboard/internal/submissions"
)

// Messages shown to callers.
const (
	msgTooManyRequests    = "Too many requests"
	msgServerError        = "Server error"
	msgNotFound           = "Not found"
	msgNoResume           = "No resume"
	msgMissingFields      = "Missing fields"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidForm        = "invalid form"
)

// writeServiceError maps service errors to status codes. Validation
// messages are returned as is; storage details never leave the server.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		subErr *submissions.ValidationError
		jobErr *jobs.ValidationError
	)
	switch {
	case errors.As(err, &subErr):
		respondError(w, http.StatusBadRequest, subErr.Message, nil)
	case errors.As(err, &jobErr):
		respondError(w, http.StatusBadRequest, jobErr.Message, nil)
	case errors.Is(err, submissions.ErrNoResume):
		respondError(w, http.StatusNotFound, msgNoResume, nil)
	case errors.Is(err, submissions.ErrNotFound), errors.Is(err, jobs.ErrNotFound), storage.IsNotFound(err):
		respondError(w, http.StatusNotFound, msgNotFound, nil)
	default:
		writeServiceErrorLog(r, err)
		respondError(w, http.StatusInternalServerError, msgServerError, nil)
	}
}

// writeServiceErrorLog logs an infrastructure failure with its storage
// operation and key when known.
func writeServiceErrorLog(r *http.Request, err error) {
	var se *storage.StorageError
	ev := logging.CtxErr(r.Context(), err).Str("path", r.URL.Path)
	if errors.As(err, &se) {
		ev = ev.Str("op", se.Op).Str("key", se.Key)
	}
	ev.Msg("Request failed")
}
