// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package notify sends transactional email: admin alerts for new
// applications and postings, applicant acknowledgements, and contact form
// relays.
//
// The backend is chosen once at startup, in order of preference:
//  1. Resend HTTP API (RESEND_API_KEY)
//  2. SMTP (SMTP_HOST)
//  3. LogSender, which only writes a preview to the log
//
// The chosen backend is wrapped in a circuit breaker. Application and job
// alerts go through a Dispatcher that sends in the background; a failed
// send is logged and counted, never reported to the HTTP caller.
package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/jobboard/internal/config"
	"github.com/tomtom215/jobboard/internal/logging"
)

// Message is one outbound email.
type Message struct {
	To      []string
	From    string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a Message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
	Name() string
}

// Error kinds carried by NotificationError.
const (
	KindInvalidMessage = "invalid_message"
	KindProvider       = "provider"
	KindConnection     = "connection"
	KindAuth           = "auth"
	KindTimeout        = "timeout"
	KindCircuitOpen    = "circuit_open"
	KindUnknown        = "unknown"
)

// NotificationError reports a failed send.
type NotificationError struct {
	Kind    string
	Backend string
	To      []string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify %s via %s to %v: %v", e.Kind, e.Backend, e.To, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

func validateMessage(msg *Message) error {
	if msg == nil || len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}
	if msg.From == "" {
		return fmt.Errorf("message has no sender")
	}
	if msg.HTML == "" && msg.Text == "" {
		return fmt.Errorf("message has no body")
	}
	return nil
}

// NewSenderFromConfig picks the backend from configuration and wraps it in a
// circuit breaker.
func NewSenderFromConfig(cfg config.EmailConfig, client *http.Client) Sender {
	var backend Sender
	switch {
	case cfg.ResendAPIKey != "":
		backend = NewResendSender(cfg.ResendAPIKey, cfg.ResendEndpoint, client)
	case cfg.SMTPHost != "":
		backend = NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			Implicit: cfg.SMTPTLS,
			Timeout:  cfg.Timeout,
		})
	default:
		backend = NewLogSender()
	}
	logging.Info().Str("backend", backend.Name()).Msg("Email backend selected")
	return NewBreakerSender(backend)
}
