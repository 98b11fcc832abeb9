// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/jobboard/internal/logging"
	"github.com/tomtom215/jobboard/internal/metrics"
)

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// From is applied to messages that have no sender.
	From string
	// RatePerSecond caps outbound sends. Zero or negative disables the cap.
	RatePerSecond float64
	// Timeout bounds each send, including the wait for a rate token.
	Timeout time.Duration
}

// Dispatcher sends messages through a Sender, either synchronously or in the
// background. Background sends outlive the request that queued them and
// are drained by Close on shutdown.
type Dispatcher struct {
	sender  Sender
	from    string
	limiter *rate.Limiter
	timeout time.Duration

	mu     sync.Mutex // guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(sender Sender, cfg DispatcherConfig) *Dispatcher {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSecond > 0 {
		burst := int(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Dispatcher{
		sender:  sender,
		from:    cfg.From,
		limiter: limiter,
		timeout: cfg.Timeout,
	}
}

// Backend names the underlying sender.
func (d *Dispatcher) Backend() string { return d.sender.Name() }

// Send delivers msg and waits for the result.
func (d *Dispatcher) Send(ctx context.Context, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	_, err := d.send(ctx, msg)
	return err
}

// Go delivers msg in the background. Failures are logged and counted; the
// caller never sees them. After Close, msg is delivered on the calling
// goroutine instead.
func (d *Dispatcher) Go(ctx context.Context, msg *Message) {
	bg := logging.DetachedContext(ctx)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.deliver(bg, msg)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	metrics.NotificationsInFlight.Inc()
	go func() {
		defer d.wg.Done()
		defer metrics.NotificationsInFlight.Dec()
		d.deliver(bg, msg)
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, msg *Message) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if _, err := d.send(sendCtx, msg); err != nil {
		logging.CtxErr(ctx, err).
			Str("subject", msg.Subject).
			Str("to", strings.Join(redactAll(msg.To), ",")).
			Msg("Background email failed")
	}
}

// Wait blocks until background sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops queueing background sends and waits for the queued ones, as
// Wait does. Call it once nothing can queue new work through the HTTP
// server. It is safe to call more than once.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.Wait(ctx)
}

func (d *Dispatcher) send(ctx context.Context, msg *Message) (string, error) {
	if msg != nil && msg.From == "" {
		msg.From = d.from
	}
	if err := d.limiter.Wait(ctx); err != nil {
		kind := KindTimeout
		if errors.Is(err, context.Canceled) {
			kind = KindUnknown
		}
		nerr := &NotificationError{Kind: kind, Backend: d.Backend(), Err: err}
		if msg != nil {
			nerr.To = msg.To
		}
		metrics.RecordNotification(d.Backend(), nerr)
		return "", nerr
	}

	id, err := d.sender.Send(ctx, msg)
	metrics.RecordNotification(d.Backend(), err)
	if err == nil {
		logging.Ctx(ctx).Debug().Str("backend", d.Backend()).Str("message_id", id).Msg("Email sent")
	}
	return id, err
}

func redactAll(addrs []string) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = logging.SanitizeEmail(a)
	}
	return out
}
