package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fastWaiter runs the loop with millisecond timing and a no-op sleep so
// tests exercise the deadline logic without real delays.
func fastWaiter(interval, timeout time.Duration) Waiter {
	return Waiter{
		Interval: interval,
		Timeout:  timeout,
		sleep:    func(time.Duration) {},
	}
}

func TestWait_SucceedsAfterRetries(t *testing.T) {
	attempts := 0
	fn := func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	}

	w := fastWaiter(time.Millisecond, time.Second)
	if err := w.Wait(context.Background(), "cache", fn); err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWait_TimesOut(t *testing.T) {
	fn := func(ctx context.Context) error {
		return errors.New("connection refused")
	}

	// Real (short) sleeps here so the deadline actually elapses.
	w := Waiter{Interval: 2 * time.Millisecond, Timeout: 20 * time.Millisecond}

	start := time.Now()
	err := w.Wait(context.Background(), "store", fn)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("Wait() = %v, want ErrWaitTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait() took %s, deadline not honored", elapsed)
	}

	// The diagnostic carries the dependency name and the last error.
	for _, want := range []string{"store", "connection refused"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := fastWaiter(time.Millisecond, time.Second)
	err := w.Wait(ctx, "cache", func(ctx context.Context) error { return errors.New("nope") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() = %v, want context.Canceled", err)
	}
}

func TestWait_DefaultTiming(t *testing.T) {
	var w Waiter
	if got := w.interval(); got != DefaultInterval {
		t.Errorf("interval() = %s, want %s", got, DefaultInterval)
	}
	if got := w.timeout(); got != DefaultTimeout {
		t.Errorf("timeout() = %s, want %s", got, DefaultTimeout)
	}
}
