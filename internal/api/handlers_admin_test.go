// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package api

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/jobboard/internal/submissions"
)

func TestAdminEndpoints_RequireSession(t *testing.T) {
	env := newTestEnv(t)
	putTestSubmission(t, env, &submissions.Submission{ID: "abc", JobSlug: "imam-1", Name: "Karim", Email: "k@example.com", SubmittedAt: "2026-03-01T09:00:00.000Z"})

	endpoints := []struct {
		method   string
		path     string
		body     string
		wantType string
	}{
		{http.MethodGet, "/api/admin/applications", "", "application/json"},
		{http.MethodGet, "/api/admin/applications?sort=submittedAt", "", "application/json"},
		{http.MethodGet, "/api/admin/applications?email=k@example.com", "", "application/json"},
		{http.MethodGet, "/api/admin/applications/abc", "", "application/json"},
		{http.MethodPatch, "/api/admin/applications/abc", `{"status":"hired"}`, "application/json"},
		{http.MethodGet, "/api/admin/applications/abc/resume", "", "application/json"},
		{http.MethodGet, "/api/admin/summary", "", "application/json"},
		{http.MethodGet, "/api/admin/applications.csv", "", "text/plain; charset=utf-8"},
	}
	cookies := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"wrong value", &http.Cookie{Name: "admin_session", Value: "no"}},
		{"wrong name", &http.Cookie{Name: "session", Value: "yes"}},
	}

	for _, ep := range endpoints {
		for _, c := range cookies {
			t.Run(ep.method+" "+ep.path+" "+c.name, func(t *testing.T) {
				env.store.reset()
				rec := env.adminRequest(ep.method, ep.path, strings.NewReader(ep.body), c.cookie)

				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("status = %d, want 401", rec.Code)
				}
				if got := rec.Header().Get("Content-Type"); got != ep.wantType {
					t.Errorf("Content-Type = %q, want %q", got, ep.wantType)
				}
				if !strings.Contains(rec.Body.String(), "Unauthorized") {
					t.Errorf("body = %q", rec.Body)
				}
				if n := env.store.calls.Load(); n != 0 {
					t.Errorf("store calls = %d, want 0", n)
				}
			})
		}
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"wrong password", `{"password":"nope"}`, http.StatusUnauthorized},
		{"empty password", `{"password":""}`, http.StatusUnauthorized},
		{"malformed body", `{"password":`, http.StatusUnauthorized},
		{"correct password", `{"password":"` + testAdminPassword + `"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body)))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			setCookie := rec.Header().Get("Set-Cookie")
			if tt.wantStatus == http.StatusOK {
				if !strings.Contains(setCookie, "admin_session=yes") || !strings.Contains(setCookie, "HttpOnly") {
					t.Errorf("Set-Cookie = %q", setCookie)
				}
				return
			}
			if setCookie != "" {
				t.Errorf("cookie set on failure: %q", setCookie)
			}
			if msg := errorOf(t, rec); msg != msgInvalidCredentials {
				t.Errorf("error = %q", msg)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	rec := env.adminRequest(http.MethodGet, "/api/admin/logout", nil, env.login())
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q", loc)
	}
	if sc := rec.Header().Get("Set-Cookie"); !strings.Contains(sc, "admin_session=") || !strings.Contains(sc, "Max-Age=0") {
		t.Errorf("Set-Cookie = %q", sc)
	}
}

func TestLogin_Lockout(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.LockoutAttempts = 2
	cfg.Admin.LockoutDuration = time.Minute
	cfg.Admin.MaxLockoutDuration = time.Hour
	env := newTestEnvWithConfig(t, cfg)

	login := func(pw string) *httptest.ResponseRecorder {
		return env.do(httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"`+pw+`"}`)))
	}

	for i := 0; i < 2; i++ {
		if rec := login("guess"); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, rec.Code)
		}
	}
	rec := login(testAdminPassword)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("locked login status = %d, want 429", rec.Code)
	}
	if ra := rec.Header().Get("Retry-After"); ra == "" || ra == "0" {
		t.Errorf("Retry-After = %q", ra)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Error("session issued while locked")
	}
}

// End-to-end: wrong password, then the list without ever holding a cookie.
func TestScenario_WrongPasswordThenList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"guess"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	env.store.reset()
	rec = env.do(req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("list status = %d, want 401", rec.Code)
	}
	if n := env.store.calls.Load(); n != 0 {
		t.Errorf("store calls = %d, want 0", n)
	}
}

// End-to-end: apply with a resume, then find it in the admin list.
func TestScenario_ApplyThenList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(multipartRequest(t, "/apply", validApplyFields(), validResume()))
	if rec.Code != http.StatusOK {
		t.Fatalf("apply status = %d, body %s", rec.Code, rec.Body)
	}
	var applied applyResponse
	decodeBody(t, rec, &applied)
	if !applied.OK {
		t.Error("ok = false")
	}
	if _, err := uuid.Parse(applied.ID); err != nil {
		t.Errorf("id %q is not a uuid: %v", applied.ID, err)
	}

	rec = env.adminRequest(http.MethodGet, "/api/admin/applications", nil, env.login())
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Items []*submissions.Submission `json:"items"`
	}
	decodeBody(t, rec, &list)

	var found *submissions.Submission
	for _, s := range list.Items {
		if s.ID == applied.ID {
			found = s
		}
	}
	if found == nil {
		t.Fatalf("submission %s not listed", applied.ID)
	}
	if found.Status != "new" {
		t.Errorf("status = %q, want new", found.Status)
	}
	if !strings.HasPrefix(found.ResumeKey, "resumes/imam-1/") {
		t.Errorf("resumeKey = %q", found.ResumeKey)
	}

	obj, err := env.store.BadgerStore.GetObject(context.Background(), found.ResumeKey)
	if err != nil {
		t.Fatalf("resume object: %v", err)
	}
	if obj.ContentType != "application/pdf" {
		t.Errorf("resume content type = %q", obj.ContentType)
	}
}

func TestAdminReview(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(multipartRequest(t, "/api/apply", validApplyFields(), validResume()))
	if rec.Code != http.StatusOK {
		t.Fatalf("apply status = %d, body %s", rec.Code, rec.Body)
	}
	var applied applyResponse
	decodeBody(t, rec, &applied)
	cookie := env.login()
	base := "/api/admin/applications/" + applied.ID

	t.Run("get", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, base, nil, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var sub submissions.Submission
		decodeBody(t, rec, &sub)
		if sub.Name != "Karim" {
			t.Errorf("name = %q", sub.Name)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, "/api/admin/applications/nope", nil, cookie)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("patch status only", func(t *testing.T) {
		rec := env.adminRequest(http.MethodPatch, base, strings.NewReader(`{"notes":"call back"}`), cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("notes patch status = %d", rec.Code)
		}
		rec = env.adminRequest(http.MethodPatch, base, strings.NewReader(`{"status":"hired"}`), cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status patch = %d", rec.Code)
		}
		var sub submissions.Submission
		decodeBody(t, rec, &sub)
		if sub.Status != "hired" || sub.Notes != "call back" || sub.Email != "k@example.com" {
			t.Errorf("merged = %+v", sub)
		}
	})

	t.Run("patch malformed body", func(t *testing.T) {
		rec := env.adminRequest(http.MethodPatch, base, strings.NewReader(`{"status":`), cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var sub submissions.Submission
		decodeBody(t, rec, &sub)
		if sub.Status != "hired" {
			t.Errorf("status changed to %q", sub.Status)
		}
	})

	t.Run("patch missing", func(t *testing.T) {
		rec := env.adminRequest(http.MethodPatch, "/api/admin/applications/nope", strings.NewReader(`{}`), cookie)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("resume link downloads", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, base+"/resume", nil, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var link submissions.ResumeLink
		decodeBody(t, rec, &link)
		if link.ExpiresIn != 300 {
			t.Errorf("expiresIn = %d", link.ExpiresIn)
		}
		u, err := url.Parse(link.URL)
		if err != nil {
			t.Fatal(err)
		}

		dl := env.do(httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
		if dl.Code != http.StatusOK {
			t.Fatalf("download status = %d", dl.Code)
		}
		if dl.Header().Get("Content-Type") != "application/pdf" || dl.Body.String() != "%PDF-1.4 resume" {
			t.Errorf("download = %s %q", dl.Header().Get("Content-Type"), dl.Body)
		}

		q := u.Query()
		q.Set("token", q.Get("token")+"x")
		u.RawQuery = q.Encode()
		if bad := env.do(httptest.NewRequest(http.MethodGet, u.RequestURI(), nil)); bad.Code != http.StatusForbidden {
			t.Errorf("tampered token status = %d, want 403", bad.Code)
		}
	})

	t.Run("resume missing", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, "/api/admin/applications/nope/resume", nil, cookie)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if msg := errorOf(t, rec); msg != "No resume" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("csv", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, "/api/admin/applications.csv", nil, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
			t.Errorf("Content-Type = %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="applications.csv"` {
			t.Errorf("Content-Disposition = %q", cd)
		}
		rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
		if err != nil {
			t.Fatalf("parse csv: %v", err)
		}
		if len(rows) != 2 || rows[1][0] != applied.ID || rows[1][4] != "hired" {
			t.Errorf("rows = %v", rows)
		}
	})

	t.Run("summary", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, "/api/admin/summary", nil, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var s submissions.Summary
		decodeBody(t, rec, &s)
		if s.TotalApplications != 1 || s.StatusCounts["hired"] != 1 {
			t.Errorf("summary = %+v", s)
		}
	})

	t.Run("filter by email", func(t *testing.T) {
		rec := env.adminRequest(http.MethodGet, "/api/admin/applications?email=K@EXAMPLE.COM", nil, cookie)
		var list applicationsResponse
		decodeBody(t, rec, &list)
		if len(list.Items) != 1 {
			t.Errorf("items = %d, want 1", len(list.Items))
		}
		rec = env.adminRequest(http.MethodGet, "/api/admin/applications?email=other@example.com", nil, cookie)
		decodeBody(t, rec, &list)
		if len(list.Items) != 0 {
			t.Errorf("items = %d, want 0", len(list.Items))
		}
	})
}

func putTestSubmission(t *testing.T, env *testEnv, sub *submissions.Submission) {
	t.Helper()
	if err := env.store.BadgerStore.PutJSON(context.Background(), sub.Key(), sub); err != nil {
		t.Fatal(err)
	}
}
