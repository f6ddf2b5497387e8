package ratelimit

import (
	"context"
	"testing"
	"time"
)

// fakeTime drives the limiter on a synthetic clock: sleeps advance the clock
// instead of blocking.
func fakeTime(l *Limiter) *time.Time {
	current := time.Unix(0, 0)
	l.now = func() time.Time { return current }
	l.sleep = func(_ context.Context, d time.Duration) error {
		current = current.Add(d)
		return nil
	}
	return &current
}

func TestAcquireKeepsSlidingWindowBounded(t *testing.T) {
	const (
		burst  = 10
		window = 60 * time.Second
	)
	limiter := New(burst, window)
	clock := fakeTime(limiter)

	var admissions []time.Time
	for i := 0; i < 25; i++ {
		if _, err := limiter.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
		admissions = append(admissions, *clock)
	}

	for i := range admissions {
		count := 0
		for j := i; j < len(admissions); j++ {
			if admissions[j].Sub(admissions[i]) < window {
				count++
			}
		}
		if count > burst {
			t.Fatalf("window starting at admission %d holds %d > %d", i, count, burst)
		}
	}

	if elapsed := clock.Sub(time.Unix(0, 0)); elapsed != 2*window {
		t.Fatalf("25 admissions took %v, want %v", elapsed, 2*window)
	}
}

func TestAcquireReportsWaitedDuration(t *testing.T) {
	limiter := New(2, 10*time.Second)
	fakeTime(limiter)

	for i := 0; i < 2; i++ {
		waited, err := limiter.Acquire(context.Background())
		if err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
		if waited != 0 {
			t.Fatalf("acquire %d waited %v, want 0", i, waited)
		}
	}

	waited, err := limiter.Acquire(context.Background())
	if err != nil {
		t.Fatalf("gated acquire: %v", err)
	}
	if waited != 10*time.Second {
		t.Fatalf("gated acquire waited %v, want 10s", waited)
	}
}

func TestAcquireHonorsCancellation(t *testing.T) {
	limiter := New(1, time.Hour)
	if _, err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := limiter.Acquire(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDelayDoesNotConsumeSlot(t *testing.T) {
	limiter := New(1, 30*time.Second)
	fakeTime(limiter)

	if d := limiter.Delay(); d != 0 {
		t.Fatalf("empty limiter delay = %v, want 0", d)
	}
	if _, err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if d := limiter.Delay(); d != 30*time.Second {
		t.Fatalf("full limiter delay = %v, want 30s", d)
	}
	// A second call must see the same state.
	if d := limiter.Delay(); d != 30*time.Second {
		t.Fatalf("repeat delay = %v, want 30s", d)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	limiter := New(0, 0)
	if limiter.burst != DefaultBurst {
		t.Fatalf("burst = %d, want %d", limiter.burst, DefaultBurst)
	}
	if limiter.window != DefaultWindow {
		t.Fatalf("window = %v, want %v", limiter.window, DefaultWindow)
	}
}
