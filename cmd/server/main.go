// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/jobboard/docs" // Register the OpenAPI document
	"github.com/tomtom215/jobboard/internal/api"
	"github.com/tomtom215/jobboard/internal/auth"
	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/jobs"
	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/metrics"
	"github.com/tomtom215/jobboard/internal/notify"
	"github.com/tomtom215/jobboard/internal/ratelimit"
	"github.com/tomtom215/jobboard/internal/storage"
	"github.com/tomtom215/jobboard/internal/submissions"
	"github.com/tomtom215/jobboard/internal/supervisor"
	"github.com/tomtom215/jobboard/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const bucketCheckTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("storage_backend", cfg.Storage.Backend).
		Str("environment", cfg.Server.Environment).
		Msg("Starting jobboard with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, gc, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer closeStore()

	metrics.AppInfo.WithLabelValues(version, runtime.Version(), cfg.Storage.Backend).Set(1)

	sender := notify.NewSenderFromConfig(cfg.Email, &http.Client{Timeout: cfg.Email.Timeout})
	dispatcher := notify.NewDispatcher(sender, notify.DispatcherConfig{
		From:          cfg.Email.From,
		RatePerSecond: cfg.Email.SendRatePerSecond,
		Timeout:       cfg.Email.Timeout,
	})
	adminTo := cfg.Email.AdminRecipients()
	logging.Info().
		Str("backend", dispatcher.Backend()).
		Int("admin_recipients", len(adminTo)).
		Msg("Email delivery configured")

	admin, err := auth.NewAdminAuth(cfg.Admin, cfg.SecureCookies())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize admin auth")
	}

	handler := api.NewHandler(api.Deps{
		Config: cfg,
		Store:  store,
		Intake: submissions.NewService(store, dispatcher, submissions.Config{
			MaxResumeBytes: cfg.Uploads.MaxBytes,
			ResumeRequired: cfg.Uploads.ResumeRequired,
			AdminTo:        adminTo,
		}),
		Review: submissions.NewReview(store),
		JobWriter: jobs.NewWriter(store, dispatcher, jobs.WriterConfig{
			MaxFileBytes:  cfg.Uploads.MaxBytes,
			PublicBaseURL: cfg.Server.PublicBaseURL,
			AdminTo:       adminTo,
		}),
		Jobs:    jobs.NewReader(store),
		Admin:   admin,
		Limiter: ratelimit.New(ratelimit.WithSweepInterval(cfg.RateLimit.SweepInterval)),
		Mailer:  dispatcher,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, cfg).SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Leave room for the HTTP server's own graceful shutdown.
	httpShutdownTimeout := 10 * time.Second
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  httpShutdownTimeout + time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if gc != nil {
		tree.AddStorageService(services.NewStoreGCService(gc, cfg.Storage.Badger.GCInterval))
		logging.Info().Dur("interval", cfg.Storage.Badger.GCInterval).Msg("Store GC service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	// The HTTP server has stopped, so no request can queue more mail.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.Email.DrainTimeout)
	if err := dispatcher.Close(drainCtx); err != nil {
		logging.Warn().Dur("timeout", cfg.Email.DrainTimeout).Msg("Shutdown before all emails were sent")
	} else {
		logging.Info().Msg("Queued emails drained")
	}
	drainCancel()

	logging.Info().Msg("Application stopped gracefully")
}

// openStore builds the configured object store. gc is non-nil only for the
// embedded backend.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, services.GarbageCollector, func(), error) {
	switch cfg.Storage.Backend {
	case "s3":
		s3, err := storage.NewS3Store(cfg.Storage.S3)
		if err != nil {
			return nil, nil, nil, err
		}
		checkCtx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
		defer cancel()
		if err := s3.EnsureBucket(checkCtx, cfg.Storage.S3.Region); err != nil {
			return nil, nil, nil, fmt.Errorf("bucket %s: %w", cfg.Storage.S3.Bucket, err)
		}
		logging.Info().
			Str("endpoint", cfg.Storage.S3.Endpoint).
			Str("bucket", cfg.Storage.S3.Bucket).
			Msg("S3 object store ready")
		return s3, nil, func() {}, nil

	case "badger":
		b, err := storage.OpenBadger(cfg.Storage.Badger, cfg.Server.PublicBaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		logging.Info().
			Str("path", cfg.Storage.Badger.Path).
			Bool("in_memory", cfg.Storage.Badger.InMemory).
			Msg("Badger object store opened")
		closeFn := func() {
			if err := b.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing badger store")
			}
		}
		return b, b, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
