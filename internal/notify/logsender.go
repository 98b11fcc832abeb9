// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package notify

import (
	"context"
	"strings"

	"github.com/tomtom215/jobboard/internal/logging"
)

// LogSenderID is the message id returned by LogSender.
const LogSenderID = "dev-fallback"

const previewLength = 200

// LogSender writes a preview of each message to the log instead of sending
// it. It is selected when no mail provider is configured.
type LogSender struct{}

// NewLogSender creates a LogSender.
func NewLogSender() *LogSender { return &LogSender{} }

// Name returns the backend identifier.
func (LogSender) Name() string { return "log" }

// Send logs msg and returns LogSenderID.
func (s LogSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := validateMessage(msg); err != nil {
		return "", &NotificationError{Kind: KindInvalidMessage, Backend: s.Name(), Err: err}
	}
	body := msg.Text
	if body == "" {
		body = msg.HTML
	}
	logging.Ctx(ctx).Warn().
		Str("to", strings.Join(msg.To, ",")).
		Str("subject", msg.Subject).
		Str("preview", preview(body)).
		Msg("No email provider configured; message not sent")
	return LogSenderID, nil
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength])
}
