// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/ratelimit"
	"github.com/tomtom215/jobboard/internal/submissions"
	"github.com/tomtom215/jobboard/internal/validation"
)

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type patchRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type applicationsResponse struct {
	Items []*submissions.Submission `json:"items"`
}

// AdminLogin checks the shared password and sets the session cookie.
//
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} okResponse
// @Failure 401 {object} errorBody "Invalid credentials"
// @Failure 429 {object} errorBody "Locked out, see Retry-After"
// @Router /api/admin/login [post]
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	lockout := h.admin.Lockout()
	ip := ratelimit.ClientIP(r, h.config.RateLimit.FallbackIP)
	if remaining := lockout.Check(ip); remaining > 0 {
		respondLocked(w, remaining)
		return
	}

	var req loginRequest
	// An unreadable body is treated as an empty password.
	_ = decodeJSON(w, r, &req)

	ok := validation.ValidateStruct(&req) == nil && h.admin.CheckPassword(req.Password)
	h.admin.Security().LogAdminLogin(ok, r.RemoteAddr, r.UserAgent())
	if !ok {
		lockout.RecordFailure(ip)
		respondError(w, http.StatusUnauthorized, msgInvalidCredentials, nil)
		return
	}

	lockout.RecordSuccess(ip)
	h.admin.SetSession(w)
	respondJSON(w, http.StatusOK, okResponse{OK: true})
}

func respondLocked(w http.ResponseWriter, remaining time.Duration) {
	secs := int(math.Ceil(remaining.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	respondError(w, http.StatusTooManyRequests, msgTooManyRequests, nil)
}

// AdminLogout clears the session cookie and redirects to the login page.
//
// @Summary Admin logout
// @Tags Admin
// @Success 302
// @Router /api/admin/logout [get]
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.admin.ClearSession(w)
	h.admin.Security().LogAdminLogout(r.RemoteAddr)
	http.Redirect(w, r, h.config.Admin.LoginPath, http.StatusFound)
}

// ListApplications returns {"items": [...]}.
//
// Query parameters:
//   - email: only this applicant's submissions, newest submittedAt first
//   - sort=submittedAt: order by submittedAt instead of storage modification time
//
// @Summary List applications
// @Tags Admin
// @Produce json
// @Param email query string false "Applicant email"
// @Param sort query string false "submittedAt"
// @Success 200 {object} applicationsResponse
// @Failure 401 {object} errorBody
// @Security AdminSession
// @Router /api/admin/applications [get]
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	var (
		items []*submissions.Submission
		err   error
	)
	q := r.URL.Query()
	switch {
	case strings.TrimSpace(q.Get("email")) != "":
		items, err = h.review.ListByEmail(r.Context(), q.Get("email"))
	case q.Get("sort") == "submittedAt":
		items, err = h.review.ListBySubmittedAt(r.Context())
	default:
		items, err = h.review.List(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, applicationsResponse{Items: items})
}

// GetApplication returns one submission by id.
//
// @Summary Get one application
// @Tags Admin
// @Produce json
// @Param id path string true "Submission id"
// @Success 200 {object} submissions.Submission
// @Failure 404 {object} errorBody
// @Security AdminSession
// @Router /api/admin/applications/{id} [get]
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	sub, _, err := h.review.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// PatchApplication merges status and notes into a submission. A malformed
// body changes nothing.
//
// @Summary Update application status or notes
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Submission id"
// @Param request body patchRequest false "Fields to change"
// @Success 200 {object} submissions.Submission
// @Failure 404 {object} errorBody
// @Security AdminSession
// @Router /api/admin/applications/{id} [patch]
func (h *Handler) PatchApplication(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring malformed patch body")
		req = patchRequest{}
	}

	sub, err := h.review.Patch(r.Context(), chi.URLParam(r, "id"), submissions.PatchInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// ApplicationResume returns a short-lived resume download link.
//
// @Summary Get a signed resume download link
// @Tags Admin
// @Produce json
// @Param id path string true "Submission id"
// @Success 200 {object} submissions.ResumeLink
// @Failure 404 {object} errorBody "No resume"
// @Security AdminSession
// @Router /api/admin/applications/{id}/resume [get]
func (h *Handler) ApplicationResume(w http.ResponseWriter, r *http.Request) {
	link, err := h.review.ResumeURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, link)
}

// ExportApplications downloads every submission as CSV.
//
// @Summary Export applications as CSV
// @Tags Admin
// @Produce text/csv
// @Success 200 {string} string
// @Security AdminSession
// @Router /api/admin/applications.csv [get]
func (h *Handler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	data, err := h.review.ExportCSV(r.Context())
	if err != nil {
		writeServiceErrorLog(r, err)
		http.Error(w, msgServerError, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to write CSV export")
	}
}

// AdminSummary returns dashboard counters.
//
// @Summary Dashboard counters
// @Tags Admin
// @Produce json
// @Success 200 {object} submissions.Summary
// @Security AdminSession
// @Router /api/admin/summary [get]
func (h *Handler) AdminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.review.Summary(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
