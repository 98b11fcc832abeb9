// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/metrics"
)

const s3Backend = "s3"

// S3Store implements Store on an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store creates a client for the configured bucket. No request is made
// until the first operation.
func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	host, secure, err := parseEndpoint(cfg.Endpoint, cfg.Secure)
	if err != nil {
		return nil, err
	}

	lookup := minio.BucketLookupAuto
	if cfg.PathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// parseEndpoint accepts "host:port" or a URL. A URL scheme overrides secure.
func parseEndpoint(endpoint string, secure bool) (string, bool, error) {
	if !strings.Contains(endpoint, "://") {
		if endpoint == "" {
			return "", false, errors.New("s3 endpoint is empty")
		}
		return endpoint, secure, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid s3 endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid s3 endpoint %q: missing host", endpoint)
	}
	switch u.Scheme {
	case "https":
		return u.Host, true, nil
	case "http":
		return u.Host, false, nil
	default:
		return "", false, fmt.Errorf("invalid s3 endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Store) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return &StorageError{Op: "bucket_exists", Key: s.bucket, Err: err}
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return &StorageError{Op: "make_bucket", Key: s.bucket, Err: err}
	}
	logging.Info().Str("bucket", s.bucket).Msg("Created storage bucket")
	return nil
}

// PutFile uploads data under key.
func (s *S3Store) PutFile(ctx context.Context, key string, data []byte, contentType string) (err error) {
	if err := checkKey("put_file", key); err != nil {
		return err
	}
	defer observe(s3Backend, "put_file", time.Now(), &err)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return &StorageError{Op: "put_file", Key: key, Err: fmt.Errorf("s3 put object: %w", err)}
	}
	return nil
}

// PutJSON marshals v and uploads it as application/json.
func (s *S3Store) PutJSON(ctx context.Context, key string, v any) error {
	data, err := marshalJSON(key, v)
	if err != nil {
		return err
	}
	return s.PutFile(ctx, key, data, "application/json")
}

// GetObject downloads key.
func (s *S3Store) GetObject(ctx context.Context, key string) (_ *Object, err error) {
	if err := checkKey("get_object", key); err != nil {
		return nil, err
	}
	defer observe(s3Backend, "get_object", time.Now(), &err)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapErr("get_object", key, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, s.wrapErr("get_object", key, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrapErr("get_object", key, err)
	}

	return &Object{Key: key, Data: data, ContentType: info.ContentType}, nil
}

// GetObjectText downloads key as text.
func (s *S3Store) GetObjectText(ctx context.Context, key string) (string, error) {
	return getText(ctx, s, key)
}

// GetJSON downloads key and decodes it into v.
func (s *S3Store) GetJSON(ctx context.Context, key string, v any) error {
	return getJSON(ctx, s, key, v)
}

// ListPrefix lists every object under prefix. The minio listing channel
// follows continuation tokens internally.
func (s *S3Store) ListPrefix(ctx context.Context, prefix string) (_ []ObjectInfo, err error) {
	defer observe(s3Backend, "list_prefix", time.Now(), &err)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, &StorageError{Op: "list_prefix", Key: prefix, Err: fmt.Errorf("s3 list objects: %w", obj.Err)}
		}
		out = append(out, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ContentType:  obj.ContentType,
		})
	}
	return out, nil
}

// SignedURL presigns a GET for key.
func (s *S3Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (_ string, err error) {
	if err := checkKey("signed_url", key); err != nil {
		return "", err
	}
	if err := checkTTL(key, ttl); err != nil {
		return "", err
	}
	defer observe(s3Backend, "signed_url", time.Now(), &err)

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", &StorageError{Op: "signed_url", Key: key, Err: fmt.Errorf("presigned get object: %w", err)}
	}
	return u.String(), nil
}

func (s *S3Store) wrapErr(op, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
		return notFound(key)
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

// observe records latency for one operation. A missing key is an answer,
// not a backend failure.
func observe(backend, op string, start time.Time, errp *error) {
	err := *errp
	if IsNotFound(err) {
		err = nil
	}
	metrics.RecordStorageOp(backend, op, time.Since(start), err)
}
