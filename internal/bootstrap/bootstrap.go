// Package bootstrap runs the startup sequence for a role: readiness
// gating, one-time store initialization, then process hand-off.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salahapp/salat-bootstrap/internal/config"
	"github.com/salahapp/salat-bootstrap/internal/logger"
	"github.com/salahapp/salat-bootstrap/internal/probe"
	"github.com/salahapp/salat-bootstrap/internal/role"
	"github.com/salahapp/salat-bootstrap/internal/store"
)

// Bootstrap executes the fixed startup sequence. The function fields
// are seams for tests; New wires the real implementations.
type Bootstrap struct {
	cfg    *config.Config
	waiter probe.Waiter

	// cacheCheck and storeCheck are nil when the corresponding env var
	// is unset, which skips that readiness wait entirely.
	cacheCheck probe.Func
	storeCheck probe.Func

	initStore func(ctx context.Context, databaseURL string) error
	dispatch  func(spec role.Spec, cfg *config.Config) error
}

// New builds a Bootstrap for the given configuration snapshot. Probe
// construction fails fast on malformed endpoint URLs, before any
// waiting starts.
func New(cfg *config.Config) (*Bootstrap, error) {
	b := &Bootstrap{
		cfg:       cfg,
		initStore: store.Initialize,
		dispatch:  role.Dispatch,
	}

	if cfg.RedisURL != "" {
		p, err := probe.NewCacheProbe(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		b.cacheCheck = p.Check
	}

	if cfg.DatabaseURL != "" {
		p, err := probe.NewStoreProbe(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.storeCheck = p.Check
	}

	return b, nil
}

// Run performs the bootstrap sequence for the selected role, in order:
//
//  1. Wait for the cache, if REDIS_URL is set.
//  2. Wait for the store, if DATABASE_URL is set.
//  3. Initialize the store schema, if DATABASE_URL is set. A configured
//     store is always initialized, even when gating was skipped, so
//     every replica converges on the same schema no matter how it was
//     started.
//  4. Replace the process with the role's command.
//
// On success Run does not return. Every error it returns means no role
// was started and the process must exit non-zero.
func (b *Bootstrap) Run(ctx context.Context, spec role.Spec) error {
	runID := uuid.NewString()
	logger.Info("bootstrap starting",
		"role", spec.Name,
		"run_id", runID,
		"cache_gating", b.cacheCheck != nil,
		"store_gating", b.storeCheck != nil,
	)

	if b.cacheCheck != nil {
		if err := b.waiter.Wait(ctx, "cache", b.cacheCheck); err != nil {
			return fmt.Errorf("dependency gating failed: %w", err)
		}
	}

	if b.storeCheck != nil {
		if err := b.waiter.Wait(ctx, "store", b.storeCheck); err != nil {
			return fmt.Errorf("dependency gating failed: %w", err)
		}
	}

	if b.cfg.DatabaseURL != "" {
		if err := b.initStore(ctx, b.cfg.DatabaseURL); err != nil {
			return fmt.Errorf("store initialization failed: %w", err)
		}
	}

	// No cleanup between here and exec: the image swap discards this
	// process's resources atomically.
	return b.dispatch(spec, b.cfg)
}
