package web2pdf

import (
	"sync"
	"time"
)

// Rate limiting defaults: 60 requests per trailing 60-second window.
const (
	DefaultRateLimit  = 60
	DefaultRateWindow = 60 * time.Second
)

// maxTrackedClients caps the client map. Exceeding it triggers a sweep
// that drops clients whose windows have fully aged out, so an attacker
// rotating source addresses cannot grow the map without bound.
const maxTrackedClients = 10000

// RateLimiter admits up to limit requests per client key within a
// trailing window. The window slides with "now"; it is not aligned to
// calendar minutes. State is in-memory only and resets on restart.
//
// Safe for concurrent use: prune, count, and append happen as a single
// step under one lock, so simultaneous requests from the same client
// cannot double-count or under-count.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string][]time.Time
	now     func() time.Time // injectable for tests
}

// NewRateLimiter creates a limiter admitting limit requests per key per
// trailing window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether a request from key is admitted. Entries older
// than the trailing window are pruned first; a rejected request records
// no timestamp.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	stamps := pruneBefore(l.clients[key], cutoff)
	if len(stamps) >= l.limit {
		l.clients[key] = stamps
		return false
	}

	if _, tracked := l.clients[key]; !tracked && len(l.clients) >= maxTrackedClients {
		l.sweepLocked(cutoff)
	}

	l.clients[key] = append(stamps, now)
	return true
}

// TrackedClients returns the number of client keys currently held.
func (l *RateLimiter) TrackedClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweepLocked drops clients with no entries inside the window. Caller
// must hold the lock.
func (l *RateLimiter) sweepLocked(cutoff time.Time) {
	for key, stamps := range l.clients {
		if len(pruneBefore(stamps, cutoff)) == 0 {
			delete(l.clients, key)
		}
	}
}

// pruneBefore drops timestamps at or before cutoff. Timestamps are
// appended in order, so the first live entry marks the boundary.
func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	return stamps[i:]
}
