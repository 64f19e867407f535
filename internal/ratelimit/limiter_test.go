package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_AdmitsUpToMax(t *testing.T) {
	clock := newFakeClock()
	l := New(5, 15*time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	for n := 1; n <= 5; n++ {
		res := l.Check(ctx, "1.2.3.4")
		require.True(t, res.Success, "request %d should be admitted", n)
		assert.Equal(t, 5-n, res.Remaining)
		assert.Equal(t, clock.Now().Add(15*time.Minute), res.ResetAt)
		assert.Equal(t, 5, res.Limit)
	}
}

func TestLimiter_DeniesOverBudgetWithoutIncrementing(t *testing.T) {
	clock := newFakeClock()
	l := New(3, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		l.Check(ctx, "client")
	}
	windowEnd := clock.Now().Add(time.Minute)

	for i := 0; i < 4; i++ {
		res := l.Check(ctx, "client")
		assert.False(t, res.Success)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, windowEnd, res.ResetAt)
	}

	entry, ok := l.Get("client")
	require.True(t, ok)
	assert.Equal(t, 3, entry.Count, "denied requests must not be counted")
}

func TestLimiter_WindowExpiryRestartsCount(t *testing.T) {
	clock := newFakeClock()
	l := New(2, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	l.Check(ctx, "client")
	l.Check(ctx, "client")
	require.False(t, l.Check(ctx, "client").Success)

	// now == resetAt counts as expired
	clock.Advance(time.Minute)

	res := l.Check(ctx, "client")
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, clock.Now().Add(time.Minute), res.ResetAt)

	entry, _ := l.Get("client")
	assert.Equal(t, 1, entry.Count)
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	l := New(1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Check(ctx, "a").Success)
	assert.False(t, l.Check(ctx, "a").Success)
	assert.True(t, l.Check(ctx, "b").Success)
}

func TestLimiter_BoundaryBurst(t *testing.T) {
	clock := newFakeClock()
	l := New(5, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	admitted := 0
	clock.Advance(59 * time.Second)
	for i := 0; i < 5; i++ {
		if l.Check(ctx, "burst").Success {
			admitted++
		}
	}
	clock.Advance(time.Minute)
	for i := 0; i < 5; i++ {
		if l.Check(ctx, "burst").Success {
			admitted++
		}
	}

	assert.Equal(t, 10, admitted)
}

func TestLimiter_ResetAndClear(t *testing.T) {
	l := New(1, time.Hour)
	ctx := context.Background()

	l.Check(ctx, "a")
	l.Check(ctx, "b")
	require.False(t, l.Check(ctx, "a").Success)

	l.Reset("a")
	assert.True(t, l.Check(ctx, "a").Success)
	assert.Equal(t, 2, l.Len())

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Check(ctx, "b").Success)
}

func TestLimiter_SweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	l := New(5, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	l.Check(ctx, "old")
	clock.Advance(30 * time.Second)
	l.Check(ctx, "fresh")
	clock.Advance(40 * time.Second)

	removed := l.Sweep()

	assert.Equal(t, 1, removed)
	_, ok := l.Get("old")
	assert.False(t, ok)
	entry, ok := l.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, entry.Count)
}

func TestLimiter_RunStopsOnCancel(t *testing.T) {
	l := New(1, time.Millisecond)
	l.Check(context.Background(), "a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLimiter_ConcurrentChecksNeverExceedMax(t *testing.T) {
	l := New(50, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check(ctx, "shared").Success {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}

	// sweeping concurrently must not admit over budget inside the live window
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			l.Sweep()
		}
	}()
	wg.Wait()

	assert.Equal(t, 50, admitted)
}

func BenchmarkLimiter_Check(b *testing.B) {
	l := New(100, time.Minute)
	ctx := context.Background()
	ids := make([]string, 1024)
	for i := range ids {
		ids[i] = fmt.Sprintf("10.0.%d.%d", i/256, i%256)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l.Check(ctx, ids[i%len(ids)])
	}
}

func BenchmarkLimiter_CheckParallel(b *testing.B) {
	l := New(100, time.Minute)
	ctx := context.Background()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			l.Check(ctx, fmt.Sprintf("client-%d", i%64))
			i++
		}
	})
}
