// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

/*
Package services adapts the server's long-running components to suture's
Serve(ctx) error contract.

  - HTTPServerService: ListenAndServe with graceful Shutdown
  - StoreGCService: periodic BadgerDB value log GC (badger backend only)

Each wrapper returns ctx.Err() on cancellation and a wrapped error on
failure, which suture counts toward the layer's restart budget.
*/
package services
