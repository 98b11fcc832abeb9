// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/jobboard/internal/metrics"
	"github.com/tomtom215/jobboard/internal/ratelimit"
	"github.com/tomtom215/jobboard/internal/submissions"
	"github.com/tomtom215/jobboard/internal/upload"
)

// formOverhead is the body allowance on top of the file ceiling for the
// text fields and multipart framing.
const formOverhead = 1 << 20

type applyResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// allow applies the fixed-window limit for endpoint and answers 429 on deny.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, endpoint string, limit int) bool {
	ip := ratelimit.ClientIP(r, h.config.RateLimit.FallbackIP)
	if h.limiter.Allow(ratelimit.Key(endpoint, ip), limit, h.config.RateLimit.Window) {
		return true
	}
	metrics.RecordRateLimitDenied(endpoint)
	respondError(w, http.StatusTooManyRequests, msgTooManyRequests, nil)
	return false
}

// Apply accepts one multipart job application.
//
// Form fields: jobSlug (or slug), name, email, coverLetter (or cover) and an
// optional resume file. Responds 200 {"ok":true,"id":...}.
//
// @Summary Submit a job application
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Param jobSlug formData string true "Job slug"
// @Param name formData string true "Applicant name"
// @Param email formData string true "Applicant email"
// @Param coverLetter formData string false "Cover letter"
// @Param resume formData file false "PDF, DOC or DOCX"
// @Success 200 {object} applyResponse
// @Failure 400 {object} errorBody
// @Failure 429 {object} errorBody
// @Router /api/apply [post]
// @Router /apply [post]
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "apply", h.config.RateLimit.ApplyRequests) {
		return
	}

	maxBytes := h.intake.MaxResumeBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+formOverhead)
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxBytes + formOverhead); err != nil {
			h.rejectForm(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup
	} else if err := r.ParseForm(); err != nil {
		h.rejectForm(w, err)
		return
	}

	resume, err := upload.FromForm(r, "resume", maxBytes)
	if err != nil {
		h.rejectForm(w, err)
		return
	}

	sub, err := h.intake.Submit(r.Context(), submissions.Application{
		JobSlug:     formValue(r, "jobSlug", "slug"),
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		CoverLetter: formValue(r, "coverLetter", "cover"),
	}, resume)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, applyResponse{OK: true, ID: sub.ID})
}

// rejectForm answers an unreadable or oversized form body.
func (h *Handler) rejectForm(w http.ResponseWriter, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || errors.Is(err, upload.ErrTooLarge) {
		metrics.RecordSubmissionRejected("file_too_large")
		respondError(w, http.StatusBadRequest, submissions.MsgFileTooLarge, nil)
		return
	}
	metrics.RecordSubmissionRejected("invalid_form")
	respondError(w, http.StatusBadRequest, msgInvalidForm, nil)
}
