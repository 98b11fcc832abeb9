// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

//go:build integration

// Package testinfra provides container-backed infrastructure for integration
// tests. Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/storage/...
//
// # MinIO Container
//
// MinIOContainer runs a real S3-compatible server so the S3 storage backend
// is exercised against the actual wire protocol:
//
//	func TestS3Store(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    minio, err := testinfra.NewMinIOContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.CleanupContainer(t, minio)
//
//	    store, err := storage.NewS3Store(config.S3Config{
//	        Endpoint:        minio.Endpoint,
//	        AccessKeyID:     minio.AccessKey,
//	        SecretAccessKey: minio.SecretKey,
//	        Bucket:          "jobboard",
//	        PathStyle:       true,
//	    })
//	    // ...
//	}
package testinfra
