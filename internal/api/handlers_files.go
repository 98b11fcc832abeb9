// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/storage"
)

// ServeFile streams an object addressed by a locally signed URL
// (/files/<key>?token=...). It is only routed when the store verifies its
// own tokens.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	verifier, ok := h.store.(storage.TokenVerifier)
	if !ok {
		http.NotFound(w, r)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, storage.FilesPath)
	if key == "" || key == r.URL.Path {
		http.NotFound(w, r)
		return
	}
	if err := verifier.VerifyToken(r.URL.Query().Get("token"), key); err != nil {
		logging.Ctx(r.Context()).Warn().Str("key", key).Msg("Rejected download token")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	obj, err := h.store.GetObject(r.Context(), key)
	if err != nil {
		if storage.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		writeServiceErrorLog(r, err)
		http.Error(w, msgServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(obj.Data); err != nil {
		logging.CtxErr(r.Context(), err).Str("key", key).Msg("Failed to stream file")
	}
}
