// Package notify delivers new-entry notifications without blocking the request path.
package notify

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by notifiers that lack the settings to deliver
var ErrNotConfigured = errors.New("notifier not configured")

// NewEntry carries the fields of a freshly created guestbook entry
type NewEntry struct {
	ID        int64
	Name      string
	Message   string
	CreatedAt time.Time
}

// Notifier delivers a notification about a new entry
type Notifier interface {
	NotifyNewEntry(ctx context.Context, entry NewEntry) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, entry NewEntry) error

// NotifyNewEntry calls f
func (f NotifierFunc) NotifyNewEntry(ctx context.Context, entry NewEntry) error {
	return f(ctx, entry)
}

// Nop is a Notifier that reports ErrNotConfigured for every entry
var Nop Notifier = NotifierFunc(func(context.Context, NewEntry) error { return ErrNotConfigured })
