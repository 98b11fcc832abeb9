// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/notify"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Contact forwards a contact form message to the admin inbox. The send is
// awaited so the caller learns about delivery failures.
//
// @Summary Send a contact message to the admin
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body contactRequest true "Message"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorBody "Missing fields"
// @Failure 429 {object} errorBody
// @Router /api/contact [post]
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "contact", h.config.RateLimit.ContactRequests) {
		return
	}

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgMissingFields, nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, msgMissingFields, nil)
		return
	}

	msg := notify.ContactMessage(h.adminTo, req.Name, req.Email, req.Message)
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		logging.CtxErr(r.Context(), err).
			Str("from", logging.SanitizeEmail(req.Email)).
			Msg("Contact message not delivered")
		respondError(w, http.StatusInternalServerError, msgServerError, nil)
		return
	}

	respondJSON(w, http.StatusOK, okResponse{OK: true})
}
