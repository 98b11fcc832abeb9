// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/middleware"
	"github.com/tomtom215/jobboard/internal/storage"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router with middleware built from the security settings.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		chiMiddleware: NewChiMiddlewareFromSecurity(
			cfg.Security.CORSOrigins,
			cfg.Security.RateLimitReqs,
			cfg.Security.RateLimitWindow,
			cfg.Security.RateLimitDisabled,
		),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows our existing middleware to work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))     // X-Request-ID and logging context
	r.Use(chimiddleware.RealIP)                    // Extract real IP from X-Forwarded-For
	r.Use(chiMiddleware(middleware.RequestLogger)) // Access log with real IP
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(router.chiMiddleware.CORS())             // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health, Metrics and API docs
	// ========================
	r.Route("/api/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Public form posts
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/apply", h.Apply)
		r.Post("/post-job", h.PostJob)
	})

	// ========================
	// API
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Post("/apply", h.Apply)
		r.Post("/contact", h.Contact)
		r.Get("/jobs", h.ListJobs)
		r.Get("/jobs/{slug}", h.GetJob)

		r.Route("/admin", router.registerAdminRoutes)
	})

	// Locally signed downloads (embedded store only)
	if _, ok := h.store.(storage.TokenVerifier); ok {
		r.Get(storage.FilesPath+"*", h.ServeFile)
	}

	return r
}

// registerAdminRoutes mounts the review surface. Everything except login
// and logout requires the admin session, checked before any store access.
func (router *Router) registerAdminRoutes(r chi.Router) {
	h := router.handler

	// Login has strictest rate limiting (5 attempts per 5 minutes)
	r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", h.AdminLogin)
	r.Get("/logout", h.AdminLogout)

	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware(h.admin.RequireAdmin))

		r.Get("/applications", h.ListApplications)
		r.Get("/applications/{id}", h.GetApplication)
		r.Patch("/applications/{id}", h.PatchApplication)
		r.Get("/applications/{id}/resume", h.ApplicationResume)
		r.Get("/summary", h.AdminSummary)
	})

	// CSV download answers 401 in plain text
	r.With(chiMiddleware(h.admin.RequireAdminText)).Get("/applications.csv", h.ExportApplications)
}
