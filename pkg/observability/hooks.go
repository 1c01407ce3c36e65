// Package observability provides hooks for metrics, tracing, and logging.
//
// The package uses a simple hooks pattern: hook interfaces for different
// event categories, no-op default implementations, and a registry populated
// by main at startup. Libraries emit events without depending on any
// observability backend:
//
//	observability.Analytics().OnComputeComplete(ctx, "influence", n, d, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// GraphHooks receives events from graph mutations.
type GraphHooks interface {
	// OnMutation records a completed store mutation (upsert-node,
	// delete-edge, rename-node, ...) and the resulting graph size.
	OnMutation(ctx context.Context, op string, nodes, edges int)
}

// AnalyticsHooks receives events from analytics recomputation.
type AnalyticsHooks interface {
	// OnComputeStart records the beginning of a recompute pass.
	OnComputeStart(ctx context.Context, kind string, nodeCount int)

	// OnComputeComplete records a finished recompute pass.
	OnComputeComplete(ctx context.Context, kind string, nodeCount int, duration time.Duration, err error)
}

// CacheHooks receives events from payload cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnMutation(context.Context, string, int, int) {}

// NoopAnalyticsHooks is a no-op implementation of AnalyticsHooks.
type NoopAnalyticsHooks struct{}

func (NoopAnalyticsHooks) OnComputeStart(context.Context, string, int) {}

func (NoopAnalyticsHooks) OnComputeComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	graphHooks     GraphHooks     = NoopGraphHooks{}
	analyticsHooks AnalyticsHooks = NoopAnalyticsHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetGraphHooks registers the graph mutation hooks. Call at startup.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = h
}

// SetAnalyticsHooks registers the analytics hooks. Call at startup.
func SetAnalyticsHooks(h AnalyticsHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	analyticsHooks = h
}

// SetCacheHooks registers the cache hooks. Call at startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cacheHooks = h
}

// Reset restores all hooks to their no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
	analyticsHooks = NoopAnalyticsHooks{}
	cacheHooks = NoopCacheHooks{}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Analytics returns the registered analytics hooks.
func Analytics() AnalyticsHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analyticsHooks
}

// CacheEvents returns the registered cache hooks.
func CacheEvents() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}
