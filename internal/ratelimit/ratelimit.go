package ratelimit

import (
	"sync"
	"time"
)

// Limiter caps the number of outbound feed requests per window. The feed
// endpoint tolerates bursts badly, so the fetcher checks the budget before
// every attempt.
type Limiter struct {
	mu      sync.Mutex
	count   int
	max     int
	window  time.Duration
	resetAt time.Time
	now     func() time.Time
}

// New creates a limiter allowing max requests per window. max <= 0 means
// unlimited.
func New(max int, window time.Duration) *Limiter {
	l := &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
	}
	l.resetAt = l.now().Add(window)
	return l
}

// Allow reports whether another request fits in the current window and
// consumes one slot if it does.
func (l *Limiter) Allow() bool {
	if l == nil || l.max <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.count >= l.max {
		return false
	}
	l.count++
	return true
}

// Stats returns the consumed budget, the cap, and when the window resets.
func (l *Limiter) Stats() (used, max int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkReset()
	return l.count, l.max, l.resetAt
}

func (l *Limiter) checkReset() {
	if l.now().After(l.resetAt) {
		l.count = 0
		l.resetAt = l.now().Add(l.window)
	}
}
