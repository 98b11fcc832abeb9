// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/jobboard/internal/auth"
	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/jobs"
	"github.com/tomtom215/jobboard/internal/notify"
	"github.com/tomtom215/jobboard/internal/ratelimit"
	"github.com/tomtom215/jobboard/internal/storage"
	"github.com/tomtom215/jobboard/internal/submissions"
)

const (
	testAdminPassword = "correct horse battery"
	testMaxFileBytes  = 1024
)

// testClock is shared by the store and the submission limiter.
type testClock struct {
	mu  sync.Mutex
	now time.Time
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

// countingStore counts every call that reaches the backend.
type countingStore struct {
	*storage.BadgerStore
	calls  atomic.Int32
	writes atomic.Int32

	listErr error
}

func (c *countingStore) PutFile(ctx context.Context, key string, data []byte, ct string) error {
	c.calls.Add(1)
	c.writes.Add(1)
	return c.BadgerStore.PutFile(ctx, key, data, ct)
}

func (c *countingStore) PutJSON(ctx context.Context, key string, v any) error {
	c.calls.Add(1)
	c.writes.Add(1)
	return c.BadgerStore.PutJSON(ctx, key, v)
}

func (c *countingStore) GetObject(ctx context.Context, key string) (*storage.Object, error) {
	c.calls.Add(1)
	return c.BadgerStore.GetObject(ctx, key)
}

func (c *countingStore) GetObjectText(ctx context.Context, key string) (string, error) {
	c.calls.Add(1)
	return c.BadgerStore.GetObjectText(ctx, key)
}

func (c *countingStore) GetJSON(ctx context.Context, key string, v any) error {
	c.calls.Add(1)
	return c.BadgerStore.GetJSON(ctx, key, v)
}

func (c *countingStore) ListPrefix(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	c.calls.Add(1)
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.BadgerStore.ListPrefix(ctx, prefix)
}

func (c *countingStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	c.calls.Add(1)
	return c.BadgerStore.SignedURL(ctx, key, ttl)
}

func (c *countingStore) reset() {
	c.calls.Store(0)
	c.writes.Store(0)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []*notify.Message
}

func (n *recordingNotifier) Go(_ context.Context, msg *notify.Message) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []*notify.Message
}

func (m *fakeMailer) Send(_ context.Context, msg *notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testEnv struct {
	t        *testing.T
	clock    *testClock
	store    *countingStore
	notifier *recordingNotifier
	mailer   *fakeMailer
	handler  http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{PublicBaseURL: "http://jobs.test"},
		Email:  config.EmailConfig{AdminTo: "admin@example.com"},
		Admin: config.AdminConfig{
			Password:    testAdminPassword,
			CookieName:  "admin_session",
			CookieValue: "yes",
			SessionTTL:  8 * time.Hour,
			LoginPath:   "/admin/login",
		},
		RateLimit: config.RateLimitConfig{
			ApplyRequests:   5,
			ContactRequests: 5,
			Window:          time.Minute,
			FallbackIP:      "local",
		},
		Security: config.SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, testConfig())
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}

	badger, err := storage.OpenBadger(
		config.BadgerConfig{InMemory: true, SigningKey: "0123456789abcdef0123456789abcdef"},
		cfg.Server.PublicBaseURL,
		storage.WithBadgerClock(clock.Now),
	)
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = badger.Close() })
	store := &countingStore{BadgerStore: badger}

	admin, err := auth.NewAdminAuth(cfg.Admin, false, auth.WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}

	notifier := &recordingNotifier{}
	mailer := &fakeMailer{}
	adminTo := cfg.Email.AdminRecipients()

	h := NewHandler(Deps{
		Config: cfg,
		Store:  store,
		Intake: submissions.NewService(store, notifier, submissions.Config{
			MaxResumeBytes: testMaxFileBytes,
			ResumeRequired: true,
			AdminTo:        adminTo,
		}, submissions.WithClock(clock.Now)),
		Review: submissions.NewReview(store),
		JobWriter: jobs.NewWriter(store, notifier, jobs.WriterConfig{
			MaxFileBytes:  testMaxFileBytes,
			PublicBaseURL: cfg.Server.PublicBaseURL,
			AdminTo:       adminTo,
		}, jobs.WithWriterClock(clock.Now)),
		Jobs:    jobs.NewReader(store),
		Admin:   admin,
		Limiter: ratelimit.New(ratelimit.WithClock(clock.Now)),
		Mailer:  mailer,
	})

	return &testEnv{
		t:        t,
		clock:    clock,
		store:    store,
		notifier: notifier,
		mailer:   mailer,
		handler:  NewRouter(h, cfg).SetupChi(),
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// login returns the session cookie issued for the admin password.
func (e *testEnv) login() *http.Cookie {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"`+testAdminPassword+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := e.do(req)
	if rec.Code != http.StatusOK {
		e.t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "admin_session" {
			return c
		}
	}
	e.t.Fatal("login set no session cookie")
	return nil
}

func (e *testEnv) adminRequest(method, path string, body io.Reader, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

// formFile is one file part of a multipart body.
type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validApplyFields() map[string]string {
	return map[string]string{
		"jobSlug":     "imam-1",
		"name":        "Karim",
		"email":       "k@example.com",
		"coverLetter": "Hafiz, ten years of experience.",
	}
}

func validResume() formFile {
	return formFile{field: "resume", filename: "valid.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4 resume")}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decodeBody(t, rec, &body)
	return body.Error
}
