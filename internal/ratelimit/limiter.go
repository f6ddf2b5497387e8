// Package ratelimit provides the sliding-window limiter that paces
// generation requests. At most Burst acquisitions are admitted inside any
// window; callers beyond that block until the oldest admission ages out.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Defaults applied when configuration leaves the limiter unset.
const (
	DefaultBurst  = 10
	DefaultWindow = 60 * time.Second
)

// Limiter admits at most burst acquisitions within any sliding window.
// Admission timestamps come from the runtime monotonic clock, so wall-clock
// adjustments never widen or shrink the window.
type Limiter struct {
	mu     sync.Mutex
	burst  int
	window time.Duration
	stamps []time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New returns a limiter admitting burst acquisitions per window.
// Non-positive arguments fall back to the defaults.
func New(burst int, window time.Duration) *Limiter {
	if burst <= 0 {
		burst = DefaultBurst
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		burst:  burst,
		window: window,
		now:    time.Now,
		sleep:  sleepWithContext,
	}
}

// Acquire blocks until an admission slot is free, returning how long the
// caller waited. A zero duration means the request passed straight through.
func (l *Limiter) Acquire(ctx context.Context) (time.Duration, error) {
	if ctx == nil {
		return 0, errors.New("context unavailable")
	}
	var waited time.Duration
	for {
		l.mu.Lock()
		now := l.now()
		l.evict(now)
		if len(l.stamps) < l.burst {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return waited, nil
		}
		wait := l.window - now.Sub(l.stamps[0])
		l.mu.Unlock()

		if wait <= 0 {
			// The oldest admission expired between computing and sleeping;
			// loop around and re-evict.
			continue
		}
		if err := l.sleep(ctx, wait); err != nil {
			return waited, err
		}
		waited += wait
	}
}

// Delay reports how long the next Acquire would block without consuming a
// slot.
func (l *Limiter) Delay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.evict(now)
	if len(l.stamps) < l.burst {
		return 0
	}
	wait := l.window - now.Sub(l.stamps[0])
	if wait < 0 {
		return 0
	}
	return wait
}

// evict drops admissions older than one window. Callers hold l.mu.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.window)
	idx := 0
	for idx < len(l.stamps) && !l.stamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[idx:]...)
	}
}

// sleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
