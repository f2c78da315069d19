package web2pdf

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock drives the limiter deterministically.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(limit int, window time.Duration, clock *fakeClock) *RateLimiter {
	l := NewRateLimiter(limit, window)
	l.now = clock.now
	return l
}

func TestRateLimiterAdmitsUpToLimit(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newTestLimiter(60, time.Minute, clock)

	for i := 0; i < 60; i++ {
		if !l.Allow("client") {
			t.Fatalf("request %d denied, want admitted", i+1)
		}
	}
	if l.Allow("client") {
		t.Fatal("request 61 admitted, want denied")
	}
}

func TestRateLimiterTrailingWindow(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newTestLimiter(60, time.Minute, clock)

	// One request per second for a full minute fills the window.
	for i := 0; i < 60; i++ {
		if !l.Allow("client") {
			t.Fatalf("request at t=%ds denied", i)
		}
		clock.advance(time.Second)
	}

	// At t=60s the t=0 entry is exactly window-old and expires, so one
	// slot is free again.
	if !l.Allow("client") {
		t.Error("request at t=60s denied, want admitted after oldest entry expired")
	}
	if l.Allow("client") {
		t.Error("second request at t=60s admitted, want denied")
	}

	// A full window of silence clears everything.
	clock.advance(2 * time.Minute)
	for i := 0; i < 60; i++ {
		if !l.Allow("client") {
			t.Fatalf("request %d after idle period denied", i+1)
		}
	}
}

// A denied request must not consume capacity: hammering a full window
// does not push the recovery point further out.
func TestRateLimiterRejectionRecordsNothing(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newTestLimiter(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		l.Allow("client")
	}
	for i := 0; i < 100; i++ {
		if l.Allow("client") {
			t.Fatal("over-limit request admitted")
		}
	}

	clock.advance(time.Minute + time.Millisecond)
	if !l.Allow("client") {
		t.Error("request after window denied; rejections must not extend the window")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newTestLimiter(2, time.Minute, clock)

	l.Allow("a")
	l.Allow("a")
	if l.Allow("a") {
		t.Error("client a over limit admitted")
	}
	if !l.Allow("b") {
		t.Error("client b denied, want independent budget")
	}
}

func TestRateLimiterConcurrentSameKey(t *testing.T) {
	t.Parallel()

	l := NewRateLimiter(50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 50 {
		t.Errorf("admitted = %d, want exactly 50", admitted)
	}
}

func TestRateLimiterSweepKeepsMapBounded(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newTestLimiter(1, time.Minute, clock)

	for i := 0; i < maxTrackedClients; i++ {
		l.Allow(fmt.Sprintf("client-%d", i))
	}
	if got := l.TrackedClients(); got != maxTrackedClients {
		t.Fatalf("TrackedClients() = %d, want %d", got, maxTrackedClients)
	}

	// Once every window has aged out, one more new client triggers the
	// sweep instead of growing the map.
	clock.advance(2 * time.Minute)
	if !l.Allow("newcomer") {
		t.Fatal("newcomer denied")
	}
	if got := l.TrackedClients(); got != 1 {
		t.Errorf("TrackedClients() after sweep = %d, want 1", got)
	}
}

func TestNewRateLimiterClampsArguments(t *testing.T) {
	t.Parallel()

	l := NewRateLimiter(0, 0)
	if l.limit != 1 {
		t.Errorf("limit = %d, want clamp to 1", l.limit)
	}
	if l.window != DefaultRateWindow {
		t.Errorf("window = %v, want %v", l.window, DefaultRateWindow)
	}
}
