package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guestbook-api/internal/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Dispatch results, used as the metrics label
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
	ResultSkipped = "skipped"
)

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithRate throttles outbound notifications to perSec with the given burst.
// Notifications over budget are dropped.
func WithRate(perSec float64, burst int) DispatcherOption {
	return func(d *Dispatcher) {
		if perSec > 0 && burst > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithTimeout bounds each delivery attempt
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithMetrics records delivery results
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the dispatcher logger
func WithLogger(log zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = log.With().Str("component", "notify").Logger() }
}

// Dispatcher runs notifications in the background. Failures and panics are
// logged and never reach the caller.
type Dispatcher struct {
	notifier Notifier
	limiter  *rate.Limiter
	timeout  time.Duration
	metrics  *metrics.Metrics
	log      zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher delivering through n
func NewDispatcher(n Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		timeout:  10 * time.Second,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch starts delivery of entry and returns immediately
func (d *Dispatcher) Dispatch(entry NewEntry) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.record(ResultDropped)
		d.log.Warn().Int64("post_id", entry.ID).Msg("Notification dropped, dispatcher closed")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.record(ResultFailed)
				d.log.Error().
					Interface("panic", r).
					Int64("post_id", entry.ID).
					Msg("Notification panicked - recovered")
			}
		}()
		d.deliver(entry)
	}()
}

func (d *Dispatcher) deliver(entry NewEntry) {
	if d.limiter != nil && !d.limiter.Allow() {
		d.record(ResultDropped)
		d.log.Warn().Int64("post_id", entry.ID).Msg("Notification dropped, outbound rate exceeded")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err := d.notifier.NotifyNewEntry(ctx, entry)
	switch {
	case err == nil:
		d.record(ResultSent)
		d.log.Debug().Int64("post_id", entry.ID).Msg("Notification sent")
	case errors.Is(err, ErrNotConfigured):
		d.record(ResultSkipped)
		d.log.Debug().Int64("post_id", entry.ID).Msg("Notification skipped, email not configured")
	default:
		d.record(ResultFailed)
		d.log.Error().Err(err).Int64("post_id", entry.ID).Msg("Failed to send notification")
	}
}

func (d *Dispatcher) record(result string) {
	if d.metrics != nil {
		d.metrics.Notifications.WithLabelValues(result).Inc()
	}
}

// Close stops accepting notifications and waits for in-flight ones until ctx is done
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for notifications: %w", ctx.Err())
	}
}
