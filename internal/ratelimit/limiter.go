// Package ratelimit implements fixed-window request counting per caller.
//
// A window opens on the first request from an identifier and closes
// window later; up to max requests are admitted inside it. Denied requests
// do not count. Two adjacent windows can admit up to 2*max requests in a
// short burst.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the verdict for a single check
type Result struct {
	Success   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Checker decides whether a request from identifier is admitted
type Checker interface {
	Check(ctx context.Context, identifier string) Result
}

// Entry tracks one identifier's current window
type Entry struct {
	Count   int
	ResetAt time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// Limiter is an in-memory fixed-window rate limiter. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*Entry
	max     int
	window  time.Duration
	now     func() time.Time
}

var _ Checker = (*Limiter)(nil)

// New creates a limiter admitting maxRequests per window per identifier
func New(maxRequests int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		entries: make(map[string]*Entry),
		max:     maxRequests,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Max returns the number of requests admitted per window
func (l *Limiter) Max() int { return l.max }

// Window returns the window length
func (l *Limiter) Window() time.Duration { return l.window }

// Check records a request from identifier and returns the verdict.
// The context is unused; it is accepted to satisfy Checker.
func (l *Limiter) Check(_ context.Context, identifier string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok || !now.Before(entry.ResetAt) {
		resetAt := now.Add(l.window)
		l.entries[identifier] = &Entry{Count: 1, ResetAt: resetAt}
		return Result{Success: true, Limit: l.max, Remaining: l.max - 1, ResetAt: resetAt}
	}

	if entry.Count >= l.max {
		return Result{Success: false, Limit: l.max, Remaining: 0, ResetAt: entry.ResetAt}
	}

	entry.Count++
	return Result{Success: true, Limit: l.max, Remaining: l.max - entry.Count, ResetAt: entry.ResetAt}
}

// Get returns a copy of the entry for identifier
func (l *Limiter) Get(identifier string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Reset forgets identifier's current window
func (l *Limiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, identifier)
}

// Clear forgets every identifier
func (l *Limiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*Entry)
}

// Len returns the number of tracked identifiers
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Sweep removes entries whose window has closed and returns how many were removed
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, entry := range l.entries {
		if !now.Before(entry.ResetAt) {
			delete(l.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired entries every interval until ctx is cancelled
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
