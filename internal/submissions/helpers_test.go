// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package submissions

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/notify"
	"github.com/tomtom215/jobboard/internal/storage"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

// testClock is a settable clock shared by the store and the service.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, clock *testClock) *storage.BadgerStore {
	t.Helper()
	var opts []storage.BadgerOption
	if clock != nil {
		opts = append(opts, storage.WithBadgerClock(clock.Now))
	}
	s, err := storage.OpenBadger(config.BadgerConfig{InMemory: true, SigningKey: testSigningKey}, "http://jobs.test", opts...)
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// countingStore counts calls and can fail selected operations.
type countingStore struct {
	storage.Store
	puts     atomic.Int32
	gets     atomic.Int32
	lists    atomic.Int32
	failFile bool
	failJSON bool
}

var errInjected = errors.New("injected failure")

func (c *countingStore) PutFile(ctx context.Context, key string, data []byte, ct string) error {
	c.puts.Add(1)
	if c.failFile {
		return &storage.StorageError{Op: "put_file", Key: key, Err: errInjected}
	}
	return c.Store.PutFile(ctx, key, data, ct)
}

func (c *countingStore) PutJSON(ctx context.Context, key string, v any) error {
	c.puts.Add(1)
	if c.failJSON {
		return &storage.StorageError{Op: "put_json", Key: key, Err: errInjected}
	}
	return c.Store.PutJSON(ctx, key, v)
}

func (c *countingStore) GetJSON(ctx context.Context, key string, v any) error {
	c.gets.Add(1)
	return c.Store.GetJSON(ctx, key, v)
}

func (c *countingStore) ListPrefix(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	c.lists.Add(1)
	return c.Store.ListPrefix(ctx, prefix)
}

func (c *countingStore) writes() int32 { return c.puts.Load() }

// recordingNotifier captures queued messages.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []*notify.Message
}

func (n *recordingNotifier) Go(_ context.Context, msg *notify.Message) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) messages() []*notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*notify.Message(nil), n.msgs...)
}

func putSubmission(t *testing.T, s storage.Store, sub *Submission) {
	t.Helper()
	if err := s.PutJSON(context.Background(), sub.Key(), sub); err != nil {
		t.Fatalf("PutJSON %s: %v", sub.Key(), err)
	}
}
