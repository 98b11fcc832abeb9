// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/jobboard/internal/jobs"
	"github.com/tomtom215/jobboard/internal/upload"
)

type postJobResponse struct {
	OK    bool   `json:"ok"`
	Slug  string `json:"slug,omitempty"`
	Error string `json:"error,omitempty"`
}

type jobResponse struct {
	Item *jobs.Job `json:"item"`
}

type jobsResponse struct {
	Items []*jobs.Job `json:"items"`
}

// PostJob creates a job posting from a form. Browsers are redirected 303 to
// /jobs/<slug>; clients sending Accept: application/json get {"ok":true,"slug"}.
// Failures are always {"ok":false,"error"}.
//
// @Summary Publish a job posting
// @Tags Jobs
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} postJobResponse
// @Success 303
// @Failure 400 {object} postJobResponse
// @Router /post-job [post]
func (h *Handler) PostJob(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.jobWriter.MaxFileBytes()
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxBytes+formOverhead)

	var err error
	if isMultipart(r) {
		err = r.ParseMultipartForm(2*maxBytes + formOverhead)
		if err == nil {
			defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup
		}
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		h.postJobFailed(w, r, err)
		return
	}

	logo, err := upload.FromForm(r, "logo", maxBytes)
	if err != nil {
		h.postJobFailed(w, r, err)
		return
	}
	jd, err := upload.FromForm(r, "jd", maxBytes)
	if err != nil {
		h.postJobFailed(w, r, err)
		return
	}

	job, err := h.jobWriter.Create(r.Context(), jobs.Input{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		OrgName:        r.FormValue("orgName"),
		City:           r.FormValue("city"),
		OrgWebsite:     r.FormValue("orgWebsite"),
		Email:          r.FormValue("email"),
		ApplicationURL: r.FormValue("applicationUrl"),
		Region:         r.FormValue("region"),
		Country:        r.FormValue("country"),
		EmploymentType: r.FormValue("employmentType"),
		ValidThrough:   r.FormValue("validThrough"),
		SalaryValue:    r.FormValue("salaryValue"),
		SalaryCurrency: r.FormValue("salaryCurrency"),
		SalaryUnit:     r.FormValue("salaryUnit"),
	}, logo, jd)
	if err != nil {
		h.postJobFailed(w, r, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, postJobResponse{OK: true, Slug: job.Slug})
		return
	}
	http.Redirect(w, r, "/jobs/"+job.Slug, http.StatusSeeOther)
}

func (h *Handler) postJobFailed(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *jobs.ValidationError
		mbe  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, postJobResponse{Error: verr.Message})
	case errors.As(err, &mbe), errors.Is(err, upload.ErrTooLarge):
		respondJSON(w, http.StatusBadRequest, postJobResponse{Error: jobs.MsgFileTooLarge})
	default:
		writeServiceErrorLog(r, err)
		respondJSON(w, http.StatusInternalServerError, postJobResponse{Error: msgServerError})
	}
}

// ListJobs returns every published job, newest first.
//
// @Summary List published jobs
// @Tags Jobs
// @Produce json
// @Success 200 {object} jobsResponse
// @Router /api/jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	items, err := h.jobs.ListPublished(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, jobsResponse{Items: items})
}

// GetJob returns one published job.
//
// @Summary Get one published job
// @Tags Jobs
// @Produce json
// @Param slug path string true "Job slug"
// @Success 200 {object} jobResponse
// @Failure 404 {object} errorBody
// @Router /api/jobs/{slug} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, jobResponse{Item: job})
}
