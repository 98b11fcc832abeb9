// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/jobboard/internal/logging"
)

// GarbageCollector is satisfied by *storage.BadgerStore.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService runs value log garbage collection on a fixed interval.
// A GC error is returned so the supervisor restarts the loop with backoff.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService wraps store. A non-positive interval means 10m.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				return fmt.Errorf("store gc: %w", err)
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Store GC pass complete")
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *StoreGCService) String() string {
	return s.name
}
