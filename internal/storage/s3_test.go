// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/jobboard/internal/config"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		secure     bool
		wantHost   string
		wantSecure bool
		wantErr    bool
	}{
		{"bare host keeps flag", "minio:9000", false, "minio:9000", false, false},
		{"bare host secure", "s3.amazonaws.com", true, "s3.amazonaws.com", true, false},
		{"https url", "https://acct.r2.cloudflarestorage.com", false, "acct.r2.cloudflarestorage.com", true, false},
		{"http url", "http://127.0.0.1:9000", true, "127.0.0.1:9000", false, false},
		{"empty", "", true, "", false, true},
		{"bad scheme", "ftp://host", true, "", false, true},
		{"missing host", "https://", true, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure, err := parseEndpoint(tt.endpoint, tt.secure)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if host != tt.wantHost || secure != tt.wantSecure {
				t.Errorf("got (%q, %v), want (%q, %v)", host, secure, tt.wantHost, tt.wantSecure)
			}
		})
	}
}

func TestS3Store_LocalChecks(t *testing.T) {
	s, err := NewS3Store(config.S3Config{
		Endpoint:        "http://127.0.0.1:1",
		Bucket:          "jobboard",
		AccessKeyID:     "ak",
		SecretAccessKey: "sk",
		Region:          "us-east-1",
	})
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}
	ctx := context.Background()

	var se *StorageError
	if err := s.PutFile(ctx, "", []byte("x"), "text/plain"); !errors.As(err, &se) {
		t.Errorf("empty key: err = %v, want *StorageError", err)
	}
	_, err = s.SignedURL(ctx, "k", -time.Second)
	if !errors.Is(err, ErrInvalidTTL) || !errors.As(err, &se) {
		t.Errorf("negative ttl: err = %v, want *StorageError wrapping ErrInvalidTTL", err)
	}

	// Presigning is computed locally and needs no server.
	u, err := s.SignedURL(ctx, "resumes/a/1-cv.pdf", 5*time.Minute)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if u == "" {
		t.Error("empty presigned url")
	}
}
