// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"context"
	"net/http"
	"time"
)

// readinessTimeout bounds the storage probe.
const readinessTimeout = 3 * time.Second

// readinessPrefix is listed to prove the store answers. It holds no objects.
const readinessPrefix = "health/"

type healthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
	Error  string  `json:"error,omitempty"`
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} healthResponse
// @Router /api/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the object store answers a listing.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /api/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if _, err := h.store.ListPrefix(ctx, readinessPrefix); err != nil {
		writeServiceErrorLog(r, err)
		respondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status: "not_ready",
			Uptime: time.Since(h.startTime).Seconds(),
			Error:  "storage unavailable",
		})
		return
	}

	respondJSON(w, http.StatusOK, healthResponse{
		Status: "ready",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}
