// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSigningKeyLength is the minimum HMAC key size accepted by NewURLSigner.
const MinSigningKeyLength = 32

// ErrInvalidToken is returned when a download token is malformed, expired,
// tampered with, or issued for a different key.
var ErrInvalidToken = errors.New("invalid download token")

// URLSigner issues and checks HS256 download tokens. The token subject is
// the object key; exp bounds its validity.
type URLSigner struct {
	secret []byte
	now    func() time.Time
}

// NewURLSigner creates a signer. The secret must be at least
// MinSigningKeyLength bytes.
func NewURLSigner(secret []byte) (*URLSigner, error) {
	if len(secret) < MinSigningKeyLength {
		return nil, fmt.Errorf("signing key must be at least %d bytes", MinSigningKeyLength)
	}
	return &URLSigner{secret: secret, now: time.Now}, nil
}

// Sign returns a token granting read access to key for ttl.
func (s *URLSigner) Sign(key string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   key,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks that token is a valid, unexpired grant for key.
func (s *URLSigner) Verify(token, key string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(key),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
