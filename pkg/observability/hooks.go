// Package observability provides hooks for metrics, tracing, and logging.
//
// The floorplanning packages never log on their own. Instead they emit
// events through the hook interfaces defined here; the defaults are no-ops,
// so instrumentation costs nothing unless a consumer installs hooks.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup, or injection
//     per instance (floorplan.WithLayoutHooks, neighborhood.WithOperatorHooks)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetOperatorHooks(observability.NewPromHooks(prometheus.DefaultRegisterer))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnDecode(die.Layer, die.Len(), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from decoding and compaction.
type LayoutHooks interface {
	// OnDecode records a finished decode pass of one die.
	OnDecode(layer, blocks int, duration time.Duration)

	// OnPacking records a compaction pass of one die.
	OnPacking(layer int, dir string)

	// OnAlignment records the evaluation of one alignment request.
	OnAlignment(requestID int, fulfilled bool)
}

// =============================================================================
// Operator Hooks
// =============================================================================

// OperatorHooks receives events from the neighborhood operator set.
type OperatorHooks interface {
	// OnOperation records an attempted operator and whether it was applied.
	OnOperation(op string, guided, applied bool)

	// OnRevert records the revert of the last applied operator.
	OnRevert(op string)

	// OnBest records storing or applying the best snapshot.
	OnBest(stored, ok bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnDecode(int, int, time.Duration) {}
func (NoopLayoutHooks) OnPacking(int, string)            {}
func (NoopLayoutHooks) OnAlignment(int, bool)            {}

// NoopOperatorHooks is a no-op implementation of OperatorHooks.
type NoopOperatorHooks struct{}

func (NoopOperatorHooks) OnOperation(string, bool, bool) {}
func (NoopOperatorHooks) OnRevert(string)                {}
func (NoopOperatorHooks) OnBest(bool, bool)              {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	operatorHooks OperatorHooks = NoopOperatorHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any decoding.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetOperatorHooks registers custom operator hooks.
func SetOperatorHooks(h OperatorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		operatorHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Operator returns the registered operator hooks.
func Operator() OperatorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return operatorHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	operatorHooks = NoopOperatorHooks{}
	cacheHooks = NoopCacheHooks{}
}
