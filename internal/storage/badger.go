// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/logging"
)

const badgerBackend = "badger"

// Key prefixes for BadgerDB storage
const (
	dataKeyPrefix = "d/"
	metaKeyPrefix = "m/"
)

// FilesPath is the route prefix under which BadgerStore signed URLs are served.
const FilesPath = "/files/"

type badgerMeta struct {
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// BadgerStore implements Store on an embedded BadgerDB. Each object is two
// entries written in one transaction: its bytes under d/<key> and a small
// JSON metadata record under m/<key>.
type BadgerStore struct {
	db       *badger.DB
	signer   *URLSigner
	baseURL  string
	inMemory bool
	now      func() time.Time
}

// BadgerOption configures a BadgerStore.
type BadgerOption func(*BadgerStore)

// WithBadgerClock overrides the clock used for LastModified and token expiry.
func WithBadgerClock(now func() time.Time) BadgerOption {
	return func(s *BadgerStore) {
		s.now = now
		s.signer.now = now
	}
}

// OpenBadger opens (or creates) the embedded store. baseURL prefixes signed
// URLs, which are served by the API under FilesPath.
func OpenBadger(cfg config.BadgerConfig, baseURL string, opts ...BadgerOption) (*BadgerStore, error) {
	secret := []byte(cfg.SigningKey)
	if len(secret) == 0 {
		secret = make([]byte, MinSigningKeyLength)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		logging.Warn().Msg("BADGER_SIGNING_KEY not set; resume links will not survive a restart")
	}
	signer, err := NewURLSigner(secret)
	if err != nil {
		return nil, err
	}

	bopts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := &BadgerStore{
		db:       db,
		signer:   signer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		inMemory: cfg.InMemory,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// PutFile stores data and its metadata atomically.
func (s *BadgerStore) PutFile(_ context.Context, key string, data []byte, contentType string) (err error) {
	if err := checkKey("put_file", key); err != nil {
		return err
	}
	defer observe(badgerBackend, "put_file", time.Now(), &err)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	meta, err := json.Marshal(badgerMeta{
		ContentType:  contentType,
		Size:         int64(len(data)),
		LastModified: s.now().UTC(),
	})
	if err != nil {
		return &StorageError{Op: "put_file", Key: key, Err: err}
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(dataKeyPrefix+key), data); err != nil {
			return fmt.Errorf("set data: %w", err)
		}
		return txn.Set([]byte(metaKeyPrefix+key), meta)
	})
	if err != nil {
		return &StorageError{Op: "put_file", Key: key, Err: err}
	}
	return nil
}

// PutJSON marshals v and stores it as application/json.
func (s *BadgerStore) PutJSON(ctx context.Context, key string, v any) error {
	data, err := marshalJSON(key, v)
	if err != nil {
		return err
	}
	return s.PutFile(ctx, key, data, "application/json")
}

// GetObject reads key.
func (s *BadgerStore) GetObject(_ context.Context, key string) (_ *Object, err error) {
	if err := checkKey("get_object", key); err != nil {
		return nil, err
	}
	defer observe(badgerBackend, "get_object", time.Now(), &err)

	obj := &Object{Key: key}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound(key)
		}
		if err != nil {
			return err
		}
		var meta badgerMeta
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("read metadata: %w", err)
		}
		obj.ContentType = meta.ContentType

		item, err = txn.Get([]byte(dataKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound(key)
		}
		if err != nil {
			return err
		}
		obj.Data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &StorageError{Op: "get_object", Key: key, Err: err}
	}
	return obj, nil
}

// GetObjectText reads key as text.
func (s *BadgerStore) GetObjectText(ctx context.Context, key string) (string, error) {
	return getText(ctx, s, key)
}

// GetJSON reads key and decodes it into v.
func (s *BadgerStore) GetJSON(ctx context.Context, key string, v any) error {
	return getJSON(ctx, s, key, v)
}

// ListPrefix iterates the metadata entries under prefix in key order.
func (s *BadgerStore) ListPrefix(ctx context.Context, prefix string) (_ []ObjectInfo, err error) {
	defer observe(badgerBackend, "list_prefix", time.Now(), &err)

	var out []ObjectInfo
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(metaKeyPrefix + prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var meta badgerMeta
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return fmt.Errorf("read metadata %s: %w", item.Key(), err)
			}
			out = append(out, ObjectInfo{
				Key:          strings.TrimPrefix(string(item.Key()), metaKeyPrefix),
				Size:         meta.Size,
				LastModified: meta.LastModified,
				ContentType:  meta.ContentType,
			})
		}
		return nil
	})
	if err != nil {
		return nil, &StorageError{Op: "list_prefix", Key: prefix, Err: err}
	}
	return out, nil
}

// SignedURL returns <baseURL>/files/<key>?token=<jwt>. The key must exist.
func (s *BadgerStore) SignedURL(_ context.Context, key string, ttl time.Duration) (_ string, err error) {
	if err := checkKey("signed_url", key); err != nil {
		return "", err
	}
	if err := checkTTL(key, ttl); err != nil {
		return "", err
	}
	defer observe(badgerBackend, "signed_url", time.Now(), &err)

	err = s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(metaKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound(key)
		}
		return err
	})
	if err != nil {
		if IsNotFound(err) {
			return "", err
		}
		return "", &StorageError{Op: "signed_url", Key: key, Err: err}
	}

	token, err := s.signer.Sign(key, ttl)
	if err != nil {
		return "", &StorageError{Op: "signed_url", Key: key, Err: err}
	}
	return s.baseURL + FilesPath + escapeKey(key) + "?token=" + url.QueryEscape(token), nil
}

// VerifyToken checks a download token issued by SignedURL for key.
func (s *BadgerStore) VerifyToken(token, key string) error {
	return s.signer.Verify(token, key)
}

// RunGC reclaims value log space until there is nothing left to rewrite.
func (s *BadgerStore) RunGC() error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
