// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about engine mutations and canvas queries.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are a side channel: the engines behave identically whether or not a
// hook is registered.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCanvasHooks(&myCanvasHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... shift ...
//	observability.Engine().OnShift(ctx, sheetID, len(chain), ok, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the shift, move and swap engines.
type EngineHooks interface {
	// OnShift records a shift attempt and the size of the chain it considered.
	OnShift(ctx context.Context, sheetID string, cards int, ok bool, duration time.Duration)

	// OnMove records a move with its per-card outcome counts.
	OnMove(ctx context.Context, sheetID string, moved, dropped, reverted int, duration time.Duration)

	// OnSwap records a swap attempt.
	OnSwap(ctx context.Context, sheetID string, ok bool)
}

// =============================================================================
// Canvas Hooks
// =============================================================================

// CanvasHooks receives events from the canvas facade.
type CanvasHooks interface {
	// OnCardsChanged records a change notification and the number of cards in it.
	OnCardsChanged(ctx context.Context, op string, cards int)

	// OnClusters records a cluster computation.
	OnClusters(ctx context.Context, sheetID string, clusters int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnShift(context.Context, string, int, bool, time.Duration)     {}
func (NoopEngineHooks) OnMove(context.Context, string, int, int, int, time.Duration) {}
func (NoopEngineHooks) OnSwap(context.Context, string, bool)                         {}

// NoopCanvasHooks is a no-op implementation of CanvasHooks.
type NoopCanvasHooks struct{}

func (NoopCanvasHooks) OnCardsChanged(context.Context, string, int)               {}
func (NoopCanvasHooks) OnClusters(context.Context, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	canvasHooks CanvasHooks = NoopCanvasHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCanvasHooks registers custom canvas hooks.
// This should be called once at application startup before any canvas operations.
func SetCanvasHooks(h CanvasHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		canvasHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Canvas returns the registered canvas hooks.
func Canvas() CanvasHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return canvasHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	canvasHooks = NoopCanvasHooks{}
}
