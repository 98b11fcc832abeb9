// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared by every
// request. Field names in errors are the JSON (or form) names of the struct
// fields, so messages read like the request body the client sent.
//
// # Custom tags
//
//   - notblank: non-empty after trimming whitespace
//   - jobslug: no "/", "\" or ".." so a slug cannot leave its storage prefix
//
// # Usage
//
//	type contactRequest struct {
//	    Name    string `json:"name" validate:"notblank"`
//	    Email   string `json:"email" validate:"notblank"`
//	    Message string `json:"message" validate:"notblank"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, "Missing fields")
//	    return
//	}
//
// Note that min and max on strings count runes, not bytes, which is what
// Bangla titles and names need.
package validation
