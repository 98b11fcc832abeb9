// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package storage provides the flat key/value object store that backs every
// persisted artifact: uploaded binaries, application records and job
// postings.
//
// Keys are '/'-separated paths with no leading slash. Two backends exist:
//   - S3Store: any S3-compatible service (AWS S3, Cloudflare R2, MinIO)
//   - BadgerStore: embedded BadgerDB for single-node deployments and tests
//
// Key layout used by the rest of the service:
//
//	resumes/<jobSlug>/<id>-<sanitizedFilename>
//	submissions/<jobSlug>/<id>.json
//	jobs/<slug>/job.json
//	jobs/<slug>/logo<ext>
//	jobs/<slug>/jd<ext>
//
// There is no transaction, conditional write, or delete. Writes to the same
// key are last-writer-wins.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// MaxSignedURLTTL is the longest validity a signed URL may carry.
const MaxSignedURLTTL = 7 * 24 * time.Hour

// ErrNotFound is returned (wrapped) when a key does not exist.
var ErrNotFound = errors.New("object not found")

// ErrInvalidTTL is wrapped in the *StorageError SignedURL returns for a
// non-positive or too long ttl.
var ErrInvalidTTL = errors.New("signed url ttl out of range")

// ObjectInfo describes a stored object as returned by a listing.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// Object is a fetched object.
type Object struct {
	Key         string
	Data        []byte
	ContentType string
}

// Store is the object store contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// PutFile stores data under key, silently replacing any existing object.
	PutFile(ctx context.Context, key string, data []byte, contentType string) error

	// PutJSON marshals v and stores it with content type application/json.
	PutJSON(ctx context.Context, key string, v any) error

	// GetObject fetches the bytes and content type stored under key.
	GetObject(ctx context.Context, key string) (*Object, error)

	// GetObjectText fetches key as UTF-8 text.
	GetObjectText(ctx context.Context, key string) (string, error)

	// GetJSON fetches key and decodes it into v. Malformed JSON yields a
	// *DecodeError.
	GetJSON(ctx context.Context, key string, v any) error

	// ListPrefix returns every object whose key starts with prefix,
	// following pagination until exhausted.
	ListPrefix(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// SignedURL returns a time-limited read URL for key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// TokenVerifier is implemented by backends that serve their own signed
// download URLs.
type TokenVerifier interface {
	VerifyToken(token, key string) error
}

// StorageError reports a failed backend operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DecodeError reports a stored object that is not valid JSON for the target.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}

func checkKey(op, key string) error {
	if key == "" {
		return &StorageError{Op: op, Key: key, Err: errors.New("empty key")}
	}
	return nil
}

func checkTTL(key string, ttl time.Duration) error {
	if ttl <= 0 || ttl > MaxSignedURLTTL {
		return &StorageError{Op: "signed_url", Key: key, Err: fmt.Errorf("%w: %v", ErrInvalidTTL, ttl)}
	}
	return nil
}

// marshalJSON and decodeJSON keep the JSON codec in one place for both
// backends.
func marshalJSON(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &StorageError{Op: "put_json", Key: key, Err: fmt.Errorf("marshal: %w", err)}
	}
	return data, nil
}

func decodeJSON(key string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

// getJSON and getText implement the derived reads on top of GetObject.
func getJSON(ctx context.Context, s Store, key string, v any) error {
	obj, err := s.GetObject(ctx, key)
	if err != nil {
		return err
	}
	return decodeJSON(key, obj.Data, v)
}

func getText(ctx context.Context, s Store, key string) (string, error) {
	obj, err := s.GetObject(ctx, key)
	if err != nil {
		return "", err
	}
	return string(obj.Data), nil
}
