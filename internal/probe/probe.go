// Package probe implements bounded readiness waits for the external
// dependencies the dispatcher gates on: the Redis cache and the
// Postgres store.
//
// Each wait is a fixed retry-until-deadline loop: one attempt per
// interval, deadline computed once at loop entry. There is no backoff
// and no concurrency; the entrypoint is a polling loop, not a
// supervisor.
package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salahapp/salat-bootstrap/internal/logger"
)

// Fixed timing of the readiness loop. Each dependency gets its own
// 30 second budget, evaluated independently.
const (
	DefaultInterval = 1 * time.Second
	DefaultTimeout  = 30 * time.Second
)

// ErrWaitTimeout reports that a dependency never became ready before
// its deadline. Always fatal to the caller: dispatching a role against
// an unready dependency fails in harder-to-diagnose ways downstream.
var ErrWaitTimeout = errors.New("dependency not ready before deadline")

// Func is a single readiness attempt. It must respect ctx and return
// nil only when the dependency is ready.
type Func func(ctx context.Context) error

// Waiter runs readiness attempts at a fixed interval until success or
// deadline. The zero value uses the default 1s/30s timing; tests set
// shorter durations.
type Waiter struct {
	Interval time.Duration
	Timeout  time.Duration

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

func (w Waiter) interval() time.Duration {
	if w.Interval > 0 {
		return w.Interval
	}
	return DefaultInterval
}

func (w Waiter) timeout() time.Duration {
	if w.Timeout > 0 {
		return w.Timeout
	}
	return DefaultTimeout
}

// Wait blocks until fn succeeds, the deadline elapses, or ctx is
// cancelled. name is used for diagnostics only.
func (w Waiter) Wait(ctx context.Context, name string, fn Func) error {
	interval := w.interval()
	timeout := w.timeout()
	sleep := w.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	deadline := time.Now().Add(timeout)
	logger.Info("waiting for dependency", "dependency", name, "timeout", timeout)

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%s: %w after %s (last error: %v)", name, ErrWaitTimeout, timeout, lastErr)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, min(interval, remaining))
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			logger.Info("dependency ready", "dependency", name, "attempts", attempt)
			return nil
		}
		lastErr = err
		logger.Debug("dependency not ready", "dependency", name, "attempt", attempt, "error", err)

		if time.Until(deadline) <= interval {
			// One last partial sleep so the loop exits close to the
			// deadline instead of overshooting by a full interval.
			sleep(time.Until(deadline))
			continue
		}
		sleep(interval)
	}
}
