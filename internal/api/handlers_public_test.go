// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "github.com/tomtom215/jobboard/docs"
	"github.com/tomtom215/jobboard/internal/jobs"
	"github.com/tomtom215/jobboard/internal/submissions"
)

func TestApply_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		fields map[string]string
	}{
		{"root path", "/apply", validApplyFields()},
		{"api path", "/api/apply", validApplyFields()},
		{"field aliases", "/apply", map[string]string{
			"slug":  "imam-1",
			"name":  "Karim",
			"email": "k@example.com",
			"cover": "Hafiz.",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(multipartRequest(t, tt.path, tt.fields, validResume()))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			var resp applyResponse
			decodeBody(t, rec, &resp)

			var sub submissions.Submission
			if err := env.store.BadgerStore.GetJSON(context.Background(), submissions.RecordKey("imam-1", resp.ID), &sub); err != nil {
				t.Fatalf("stored record: %v", err)
			}
			if sub.CoverLetter == "" {
				t.Error("cover letter not stored")
			}
			if sub.SubmittedAt != "2026-03-01T09:30:00.000Z" {
				t.Errorf("submittedAt = %q", sub.SubmittedAt)
			}
			if n := env.store.writes.Load(); n != 2 {
				t.Errorf("writes = %d, want 2", n)
			}
			if len(env.notifier.msgs) != 2 {
				t.Errorf("notifications = %d, want 2", len(env.notifier.msgs))
			}
		})
	}
}

func TestApply_Rejects(t *testing.T) {
	withoutField := func(name string) map[string]string {
		f := validApplyFields()
		delete(f, name)
		return f
	}
	withField := func(name, value string) map[string]string {
		f := validApplyFields()
		f[name] = value
		return f
	}

	tests := []struct {
		name    string
		fields  map[string]string
		files   []formFile
		wantMsg string
	}{
		{"missing name", withoutField("name"), []formFile{validResume()}, submissions.MsgMissingFields},
		{"missing job slug", withoutField("jobSlug"), []formFile{validResume()}, submissions.MsgMissingFields},
		{"bad email", withField("email", "not-an-email"), []formFile{validResume()}, submissions.MsgInvalidEmail},
		{"traversal slug", withField("jobSlug", "../etc"), []formFile{validResume()}, submissions.MsgInvalidJobSlug},
		{"missing resume", validApplyFields(), nil, submissions.MsgMissingResume},
		{"oversized resume", validApplyFields(), []formFile{{
			field: "resume", filename: "big.pdf", contentType: "application/pdf",
			data: bytes.Repeat([]byte("a"), testMaxFileBytes+1),
		}}, submissions.MsgFileTooLarge},
		{"unsupported resume", validApplyFields(), []formFile{{
			field: "resume", filename: "photo.png", contentType: "image/png", data: []byte("png"),
		}}, submissions.MsgUnsupportedType},
		{"image declared with pdf name", validApplyFields(), []formFile{{
			field: "resume", filename: "a.pdf", contentType: "image/png", data: []byte("png"),
		}}, submissions.MsgUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(multipartRequest(t, "/apply", tt.fields, tt.files...))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if msg := errorOf(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
			if n := env.store.writes.Load(); n != 0 {
				t.Errorf("writes = %d, want 0", n)
			}
			if len(env.notifier.msgs) != 0 {
				t.Errorf("notifications = %d, want 0", len(env.notifier.msgs))
			}
		})
	}
}

func TestApply_RateLimit(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		rec := env.do(multipartRequest(t, "/apply", validApplyFields(), validResume()))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, body %s", i+1, rec.Code, rec.Body)
		}
	}

	env.store.reset()
	rec := env.do(multipartRequest(t, "/api/apply", validApplyFields(), validResume()))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("6th request: status = %d, want 429", rec.Code)
	}
	if msg := errorOf(t, rec); msg != msgTooManyRequests {
		t.Errorf("error = %q", msg)
	}
	if n := env.store.calls.Load(); n != 0 {
		t.Errorf("store calls after limit = %d, want 0", n)
	}

	env.clock.Advance(time.Minute + time.Second)
	rec = env.do(multipartRequest(t, "/apply", validApplyFields(), validResume()))
	if rec.Code != http.StatusOK {
		t.Errorf("after window: status = %d, want 200", rec.Code)
	}
}

func TestApply_URLEncodedForm(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{}
	for k, v := range validApplyFields() {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := errorOf(t, rec); msg != submissions.MsgMissingResume {
		t.Errorf("error = %q, want %q", msg, submissions.MsgMissingResume)
	}
}

func validJobFields() map[string]string {
	return map[string]string{
		"title":       "Imam",
		"description": "Lead the five daily prayers and Jumuah.",
		"orgName":     "Baitul Aman Masjid",
		"city":        "Dhaka",
	}
}

func TestPostJob(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/post-job", validJobFields(), formFile{
		field: "logo", filename: "logo.png", contentType: "image/png", data: []byte("png"),
	})
	req.Header.Set("Accept", "application/json")
	rec := env.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("json post: status = %d, body %s", rec.Code, rec.Body)
	}
	var resp postJobResponse
	decodeBody(t, rec, &resp)
	if !resp.OK || !strings.HasPrefix(resp.Slug, "imam-dhaka-") {
		t.Fatalf("resp = %+v", resp)
	}
	if n := env.store.writes.Load(); n != 2 {
		t.Errorf("writes = %d, want 2", n)
	}
	if len(env.notifier.msgs) != 1 {
		t.Errorf("alerts = %d, want 1", len(env.notifier.msgs))
	}

	env.clock.Advance(time.Second)
	rec = env.do(multipartRequest(t, "/post-job", validJobFields()))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("form post: status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/jobs/imam-dhaka-") || loc == "/jobs/"+resp.Slug {
		t.Errorf("Location = %q", loc)
	}
}

func TestPostJob_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		files   []formFile
		wantMsg string
	}{
		{"short title", "title", "ab", nil, "শিরোনাম কমপক্ষে ৩ অক্ষর দিন"},
		{"bad email", "email", "nope", nil, "সঠিক ইমেইল দিন"},
		{"bad logo type", "", "", []formFile{{
			field: "logo", filename: "logo.gif", contentType: "image/gif", data: []byte("gif"),
		}}, jobs.MsgUnsupportedFile},
		{"oversized jd", "", "", []formFile{{
			field: "jd", filename: "jd.pdf", contentType: "application/pdf",
			data: bytes.Repeat([]byte("a"), testMaxFileBytes+1),
		}}, jobs.MsgFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			fields := validJobFields()
			if tt.field != "" {
				fields[tt.field] = tt.value
			}
			req := multipartRequest(t, "/post-job", fields, tt.files...)
			req.Header.Set("Accept", "application/json")
			rec := env.do(req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp postJobResponse
			decodeBody(t, rec, &resp)
			if resp.OK || resp.Error != tt.wantMsg {
				t.Errorf("resp = %+v, want error %q", resp, tt.wantMsg)
			}
			if n := env.store.writes.Load(); n != 0 {
				t.Errorf("writes = %d, want 0", n)
			}
		})
	}
}

func TestJobsAPI(t *testing.T) {
	env := newTestEnv(t)
	req := multipartRequest(t, "/post-job", validJobFields())
	req.Header.Set("Accept", "application/json")
	rec := env.do(req)
	var posted postJobResponse
	decodeBody(t, rec, &posted)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list jobsResponse
	decodeBody(t, rec, &list)
	if len(list.Items) != 1 || list.Items[0].Slug != posted.Slug {
		t.Fatalf("items = %+v", list.Items)
	}

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/jobs/"+posted.Slug, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var one jobResponse
	decodeBody(t, rec, &one)
	if one.Item == nil || one.Item.Title != "Imam" || one.Item.HiringOrganization.Name != "Baitul Aman Masjid" {
		t.Errorf("item = %+v", one.Item)
	}

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/jobs/no-such-job", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want 404", rec.Code)
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mailErr    error
		wantStatus int
		wantSent   int
	}{
		{"delivered", `{"name":"Rahim","email":"r@example.com","message":"Salam"}`, nil, http.StatusOK, 1},
		{"blank message", `{"name":"Rahim","email":"r@example.com","message":"  "}`, nil, http.StatusBadRequest, 0},
		{"missing name", `{"email":"r@example.com","message":"Salam"}`, nil, http.StatusBadRequest, 0},
		{"malformed", `{"name":`, nil, http.StatusBadRequest, 0},
		{"mailer down", `{"name":"Rahim","email":"r@example.com","message":"Salam"}`, errors.New("smtp: 421"), http.StatusInternalServerError, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.mailer.err = tt.mailErr
			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := env.do(req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if len(env.mailer.sent) != tt.wantSent {
				t.Fatalf("sent = %d, want %d", len(env.mailer.sent), tt.wantSent)
			}
			if tt.wantSent == 1 {
				msg := env.mailer.sent[0]
				if len(msg.To) != 1 || msg.To[0] != "admin@example.com" || !strings.Contains(msg.Text, "Salam") {
					t.Errorf("message = %+v", msg)
				}
			}
		})
	}
}

func TestContact_RateLimit(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"Rahim","email":"r@example.com","message":"Salam"}`
	for i := 0; i < 5; i++ {
		rec := env.do(httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	rec := env.do(httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if len(env.mailer.sent) != 5 {
		t.Errorf("sent = %d, want 5", len(env.mailer.sent))
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/health/live", nil))
	var live healthResponse
	decodeBody(t, rec, &live)
	if rec.Code != http.StatusOK || live.Status != "alive" {
		t.Errorf("live = %d %+v", rec.Code, live)
	}

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	var ready healthResponse
	decodeBody(t, rec, &ready)
	if rec.Code != http.StatusOK || ready.Status != "ready" {
		t.Errorf("ready = %d %+v", rec.Code, ready)
	}

	env.store.listErr = errors.New("bucket unreachable")
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready after close = %d, want 503", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestSwagger(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d, want 200", rec.Code)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	decodeBody(t, rec, &doc)
	for _, path := range []string{"/api/apply", "/api/admin/login", "/api/admin/applications.csv"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("doc.json missing %s", path)
		}
	}
	if env.store.calls.Load() != 0 {
		t.Errorf("store calls = %d, want 0", env.store.calls.Load())
	}

	rec = env.do(httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("index.html status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Error("index.html does not mount swagger-ui")
	}
}
