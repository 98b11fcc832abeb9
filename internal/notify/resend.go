// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// DefaultResendEndpoint is the Resend send-email API.
const DefaultResendEndpoint = "https://api.resend.com/emails"

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Name    string `json:"name"`
}

// NewResendSender creates a Resend backend. A nil client gets a 30s timeout.
func NewResendSender(apiKey, endpoint string, client *http.Client) *ResendSender {
	if endpoint == "" {
		endpoint = DefaultResendEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ResendSender{apiKey: apiKey, endpoint: endpoint, client: client}
}

// Name returns the backend identifier.
func (s *ResendSender) Name() string { return "resend" }

// Send posts msg to the API and returns the message id.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := validateMessage(msg); err != nil {
		return "", &NotificationError{Kind: KindInvalidMessage, Backend: s.Name(), Err: err}
	}

	body, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", &NotificationError{Kind: KindInvalidMessage, Backend: s.Name(), To: msg.To, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &NotificationError{Kind: KindUnknown, Backend: s.Name(), To: msg.To, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		kind := KindConnection
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return "", &NotificationError{Kind: kind, Backend: s.Name(), To: msg.To, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", &NotificationError{Kind: KindConnection, Backend: s.Name(), To: msg.To, Err: err}
	}

	var out resendResponse
	_ = json.Unmarshal(raw, &out) //nolint:errcheck // body may be empty or non-JSON on errors

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := KindProvider
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuth
		}
		detail := out.Message
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return "", &NotificationError{
			Kind:    kind,
			Backend: s.Name(),
			To:      msg.To,
			Err:     fmt.Errorf("resend status %d: %s", resp.StatusCode, detail),
		}
	}

	return out.ID, nil
}
