// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

/*
Package supervisor provides process supervision using suture v4.

The tree has two layers, each restarting its own children:

	jobboard
	├── storage-layer
	│   └── StoreGCService (badger backend)
	└── api-layer
	    └── HTTPServerService

Setup in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    FailureThreshold: 5,
	    FailureBackoff:   15 * time.Second,
	    ShutdownTimeout:  10 * time.Second,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)

Supervisor events (start, failure, backoff) are logged through sutureslog.

Background emails are drained by main once Serve has returned, so every
request the HTTP server finished has already queued its mail.
*/
package supervisor
