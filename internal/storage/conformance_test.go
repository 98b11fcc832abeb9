// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package storage

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// runStoreConformance exercises the Store contract against any backend.
func runStoreConformance(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("put and get file", func(t *testing.T) {
		data := []byte("%PDF-1.4 fake")
		if err := s.PutFile(ctx, "resumes/imam/1-cv.pdf", data, "application/pdf"); err != nil {
			t.Fatalf("PutFile: %v", err)
		}
		obj, err := s.GetObject(ctx, "resumes/imam/1-cv.pdf")
		if err != nil {
			t.Fatalf("GetObject: %v", err)
		}
		if string(obj.Data) != string(data) {
			t.Errorf("data = %q, want %q", obj.Data, data)
		}
		if obj.ContentType != "application/pdf" {
			t.Errorf("content type = %q, want application/pdf", obj.ContentType)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := s.PutFile(ctx, "misc/x.txt", []byte("one"), "text/plain"); err != nil {
			t.Fatal(err)
		}
		if err := s.PutFile(ctx, "misc/x.txt", []byte("two"), "text/plain"); err != nil {
			t.Fatal(err)
		}
		text, err := s.GetObjectText(ctx, "misc/x.txt")
		if err != nil {
			t.Fatal(err)
		}
		if text != "two" {
			t.Errorf("text = %q, want two", text)
		}
	})

	t.Run("json round trip", func(t *testing.T) {
		in := map[string]any{"id": "abc", "status": "new"}
		if err := s.PutJSON(ctx, "submissions/imam/abc.json", in); err != nil {
			t.Fatalf("PutJSON: %v", err)
		}
		var out map[string]any
		if err := s.GetJSON(ctx, "submissions/imam/abc.json", &out); err != nil {
			t.Fatalf("GetJSON: %v", err)
		}
		if out["id"] != "abc" || out["status"] != "new" {
			t.Errorf("out = %v", out)
		}
		obj, err := s.GetObject(ctx, "submissions/imam/abc.json")
		if err != nil {
			t.Fatal(err)
		}
		if obj.ContentType != "application/json" {
			t.Errorf("content type = %q, want application/json", obj.ContentType)
		}
	})

	t.Run("decode error", func(t *testing.T) {
		if err := s.PutFile(ctx, "submissions/imam/bad.json", []byte("{not json"), "application/json"); err != nil {
			t.Fatal(err)
		}
		var out map[string]any
		err := s.GetJSON(ctx, "submissions/imam/bad.json", &out)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v, want *DecodeError", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetObject(ctx, "nope/missing.json")
		if !IsNotFound(err) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		var out map[string]any
		if err := s.GetJSON(ctx, "nope/missing.json", &out); !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetJSON err = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty key", func(t *testing.T) {
		err := s.PutFile(ctx, "", []byte("x"), "text/plain")
		var se *StorageError
		if !errors.As(err, &se) {
			t.Fatalf("err = %v, want *StorageError", err)
		}
	})

	t.Run("list prefix", func(t *testing.T) {
		for _, k := range []string{"list/a/1.json", "list/a/2.json", "list/b/1.json", "listing/other.json"} {
			if err := s.PutJSON(ctx, k, map[string]string{"k": k}); err != nil {
				t.Fatal(err)
			}
		}
		infos, err := s.ListPrefix(ctx, "list/")
		if err != nil {
			t.Fatalf("ListPrefix: %v", err)
		}
		keys := make([]string, 0, len(infos))
		for _, info := range infos {
			keys = append(keys, info.Key)
			if info.Size == 0 {
				t.Errorf("%s: size 0", info.Key)
			}
			if info.LastModified.IsZero() {
				t.Errorf("%s: zero LastModified", info.Key)
			}
		}
		sort.Strings(keys)
		want := []string{"list/a/1.json", "list/a/2.json", "list/b/1.json"}
		if len(keys) != len(want) {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
			}
		}

		empty, err := s.ListPrefix(ctx, "nothing-here/")
		if err != nil {
			t.Fatal(err)
		}
		if len(empty) != 0 {
			t.Errorf("expected empty listing, got %d", len(empty))
		}
	})

	t.Run("signed url ttl bounds", func(t *testing.T) {
		for _, ttl := range []time.Duration{0, -time.Minute, MaxSignedURLTTL + time.Second} {
			u, err := s.SignedURL(ctx, "resumes/imam/1-cv.pdf", ttl)
			if !errors.Is(err, ErrInvalidTTL) {
				t.Errorf("ttl %v: err = %v, want ErrInvalidTTL", ttl, err)
			}
			var se *StorageError
			if !errors.As(err, &se) || se.Op != "signed_url" || se.Key != "resumes/imam/1-cv.pdf" {
				t.Errorf("ttl %v: err = %#v, want *StorageError for signed_url", ttl, err)
			}
			if u != "" {
				t.Errorf("ttl %v: url = %q, want empty", ttl, u)
			}
		}
		u, err := s.SignedURL(ctx, "resumes/imam/1-cv.pdf", 5*time.Minute)
		if err != nil {
			t.Fatalf("SignedURL: %v", err)
		}
		if u == "" {
			t.Error("empty signed url")
		}
	})
}
