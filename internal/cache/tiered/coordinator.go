package tiered

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fpl-cache/internal/cache"
	"fpl-cache/internal/cache/local"
	"fpl-cache/internal/config"
	"fpl-cache/internal/interfaces"
	"fpl-cache/internal/metrics"
	"fpl-cache/internal/models"
	"fpl-cache/internal/policy"
	"fpl-cache/internal/scheduler"
)

// FetchFunc returns the authoritative value for the key being populated. It
// must not call back into the coordinator for that same key: the call is made
// outside any lock, so it would not deadlock, but it can trigger duplicate
// concurrent fetches.
type FetchFunc func(ctx context.Context) ([]byte, error)

// WarmFetchFunc returns the authoritative value for one identifier during
// cache warming.
type WarmFetchFunc func(ctx context.Context, id string) ([]byte, error)

// Coordinator orchestrates read-through across the local tier, the remote
// tier, and a caller-supplied fetch function, write-through population of
// both tiers, event-based invalidation, and cache warming. Tier failures
// degrade to the next tier; only a source-fetch failure reaches the caller.
type Coordinator struct {
	registry       *policy.Registry
	locals         map[models.DataCategory]*local.Store
	remote         interfaces.RemoteStore
	sampler        interfaces.Sampler
	logger         *zap.Logger
	sweeper        *scheduler.Scheduler
	warmBatchSize  int
	warmBatchPause time.Duration
}

// NewCoordinator builds the coordinator, one local store per category sized
// by that category's budget, and starts the background expiry sweep.
func NewCoordinator(registry *policy.Registry, remote interfaces.RemoteStore, sampler interfaces.Sampler, cfg *config.Config, logger *zap.Logger) *Coordinator {
	locals := make(map[models.DataCategory]*local.Store)
	for _, cat := range registry.Categories() {
		pol := registry.PolicyFor(cat)
		locals[cat] = local.NewStore(string(cat), pol.LocalBudget, cfg.Local.SweepEvery, logger)
	}

	c := &Coordinator{
		registry:       registry,
		locals:         locals,
		remote:         remote,
		sampler:        sampler,
		logger:         logger,
		warmBatchSize:  cfg.Warm.BatchSize,
		warmBatchPause: cfg.Warm.BatchPause,
	}

	c.sweeper = scheduler.New(cfg.Local.SweepInterval, c.sweepLocals)
	c.sweeper.Start()

	return c
}

// Get resolves a value through local tier, remote tier, and fetch, in that
// order. With no fetch function a full miss returns (nil, TierMiss, nil).
// Only a fetch failure is returned as an error.
func (c *Coordinator) Get(ctx context.Context, category models.DataCategory, id string, fetch FetchFunc) ([]byte, models.Tier, error) {
	pol := c.registry.PolicyFor(category)
	key := cache.BuildKey(category, id)
	start := time.Now()

	metrics.RecordCacheRequest(string(category))

	if val, ok := c.locals[category].Get(key); ok {
		c.observe(category, models.TierLocal, start)
		return val, models.TierLocal, nil
	}

	if val, ok := c.remote.Get(ctx, key); ok {
		// Promotion always uses the local policy TTL, never the remaining
		// remote TTL.
		c.locals[category].Set(key, val, pol.LocalTTL)
		c.observe(category, models.TierRemote, start)
		return val, models.TierRemote, nil
	}

	if fetch == nil {
		c.observe(category, models.TierMiss, start)
		return nil, models.TierMiss, nil
	}

	val, err := fetch(ctx)
	if err != nil {
		c.logger.Warn("Source fetch failed",
			zap.String("key", key),
			zap.String("category", string(category)),
			zap.Error(err))
		c.observe(category, models.TierMiss, start)
		return nil, models.TierMiss, fmt.Errorf("source fetch for %s: %w", key, err)
	}

	c.Set(ctx, category, id, val)
	c.observe(category, models.TierSource, start)
	return val, models.TierSource, nil
}

// Set writes a value through both tiers. Each tier is best-effort and fails
// independently; the remote tier logs its own errors.
func (c *Coordinator) Set(ctx context.Context, category models.DataCategory, id string, val []byte) {
	pol := c.registry.PolicyFor(category)
	key := cache.BuildKey(category, id)

	c.locals[category].Set(key, val, pol.LocalTTL)
	c.remote.Set(ctx, key, val, pol.RemoteTTL, pol.Compress)
}

// Delete removes a key from both tiers independently.
func (c *Coordinator) Delete(ctx context.Context, category models.DataCategory, id string) {
	// PolicyFor guards against unregistered categories reaching the tiers.
	c.registry.PolicyFor(category)
	key := cache.BuildKey(category, id)

	c.locals[category].Delete(key)
	c.remote.Delete(ctx, key)
}

// InvalidatePattern clears the category's entire local store (it has no
// pattern matching) and scan-deletes matching remote keys, returning the
// remote deletion count.
func (c *Coordinator) InvalidatePattern(ctx context.Context, category models.DataCategory, pattern string) int {
	c.registry.PolicyFor(category)

	c.locals[category].Clear()
	count := c.remote.DeletePattern(ctx, cache.BuildPattern(category, pattern))

	metrics.RecordInvalidation(string(category), count)
	c.logger.Info("Invalidated cache pattern",
		zap.String("category", string(category)),
		zap.String("pattern", pattern),
		zap.Int("remote_deleted", count))

	return count
}

// InvalidateByEvent invalidates every category whose policy lists event,
// returning the total remote deletion count. Unknown event names match no
// category and are a no-op.
func (c *Coordinator) InvalidateByEvent(ctx context.Context, event string) int {
	total := 0
	for _, cat := range c.registry.CategoriesForEvent(event) {
		total += c.InvalidatePattern(ctx, cat, "*")
	}

	c.logger.Info("Processed invalidation event",
		zap.String("event", event),
		zap.Int("remote_deleted", total))

	return total
}

// WarmCache proactively populates both tiers for the given identifiers, in
// batches with a pause between them to bound burst load on the source and the
// remote store. Identifiers already cached locally are skipped. Warming is
// best-effort per key; only cancellation ends it early. Categories not marked
// for pre-warming are skipped entirely. Returns the number of keys populated.
func (c *Coordinator) WarmCache(ctx context.Context, category models.DataCategory, ids []string, fetch WarmFetchFunc) (int, error) {
	pol := c.registry.PolicyFor(category)
	if !pol.PreWarm {
		c.logger.Debug("Skipping warm for category without pre-warm",
			zap.String("category", string(category)))
		return 0, nil
	}

	var warmed atomic.Int64
	for offset := 0; offset < len(ids); offset += c.warmBatchSize {
		end := offset + c.warmBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range ids[offset:end] {
			if c.locals[category].Contains(cache.BuildKey(category, id)) {
				continue
			}

			id := id
			g.Go(func() error {
				val, err := fetch(gctx, id)
				if err != nil {
					c.logger.Warn("Warm fetch failed",
						zap.String("category", string(category)),
						zap.String("id", id),
						zap.Error(err))
					return nil
				}
				c.Set(gctx, category, id, val)
				metrics.RecordWarmedKey(string(category))
				warmed.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return int(warmed.Load()), err
		}

		if end < len(ids) {
			select {
			case <-ctx.Done():
				return int(warmed.Load()), ctx.Err()
			case <-time.After(c.warmBatchPause):
			}
		}
	}

	return int(warmed.Load()), nil
}

// RemoteInfo exposes remote server statistics for the observability surface.
func (c *Coordinator) RemoteInfo(ctx context.Context) (map[string]string, error) {
	return c.remote.Info(ctx)
}

// Close stops background tasks and releases the remote connection.
func (c *Coordinator) Close() error {
	c.sweeper.Stop()
	return c.remote.Close()
}

// sweepLocals runs the periodic bulk expiry sweep across every local store
// and refreshes the per-store gauges.
func (c *Coordinator) sweepLocals() {
	for cat, store := range c.locals {
		store.Sweep()
		entries, bytes, _ := store.Stats()
		metrics.UpdateLocalStoreStats(string(cat), entries, bytes)
	}
}

func (c *Coordinator) observe(category models.DataCategory, tier models.Tier, start time.Time) {
	d := time.Since(start)
	c.sampler.Record(tier, d)
	metrics.ObserveGetDuration(string(tier), d)

	switch tier {
	case models.TierMiss:
		metrics.RecordCacheMiss(string(category))
	default:
		metrics.RecordCacheHit(string(category), string(tier))
	}
}
