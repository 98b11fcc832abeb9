// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package submissions

import "errors"

// Validation messages returned to applicants.
const (
	MsgMissingFields   = "missing fields"
	MsgInvalidEmail    = "invalid email"
	MsgInvalidJobSlug  = "invalid job slug"
	MsgMissingResume   = "missing resume"
	MsgFileTooLarge    = "file too large"
	MsgUnsupportedType = "unsupported type"
)

// ErrNotFound is returned when no submission has the requested id.
var ErrNotFound = errors.New("not found")

// ErrNoResume is returned when the submission exists but has no resume.
var ErrNoResume = errors.New("no resume")

// ValidationError is caller-correctable bad input. It is always reported
// before anything is written.
type ValidationError struct {
	Message string
	// Reason is a stable metrics label.
	Reason string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg, reason string) *ValidationError {
	return &ValidationError{Message: msg, Reason: reason}
}
