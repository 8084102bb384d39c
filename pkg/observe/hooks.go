// Package observe provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about editor gestures and document
// store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observe.SetSessionHooks(&mySessionHooks{})
//	    observe.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observe.Session().OnGestureBegin(ctx, kind, target)
//	// ... process gesture frames ...
//	observe.Session().OnGestureEnd(ctx, kind, target, frames, commits)
package observe

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from editor sessions.
//
// Gesture frames that fail validation are dropped without individual
// events; the frames/commits counts on OnGestureEnd expose the drop rate
// without per-frame noise.
type SessionHooks interface {
	// Gesture events. kind is "drag", "resize", or "divider"; target is the
	// region name or the divider description.
	OnGestureBegin(ctx context.Context, kind, target string)
	OnGestureEnd(ctx context.Context, kind, target string, frames, commits int)

	// Document boundary events
	OnImport(ctx context.Context, regionCount int, err error)
	OnExport(ctx context.Context, regionCount int)
	OnReset(ctx context.Context, scope string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from document store operations.
type StoreHooks interface {
	// OnLoad records a document read. found is false when the key had no
	// document, which is not an error.
	OnLoad(ctx context.Context, backend, key string, found bool, duration time.Duration, err error)

	// OnSave records a document write.
	OnSave(ctx context.Context, backend, key string, size int, duration time.Duration, err error)

	// OnDelete records a document removal.
	OnDelete(ctx context.Context, backend, key string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnGestureBegin(context.Context, string, string)         {}
func (NoopSessionHooks) OnGestureEnd(context.Context, string, string, int, int) {}
func (NoopSessionHooks) OnImport(context.Context, int, error)                   {}
func (NoopSessionHooks) OnExport(context.Context, int)                          {}
func (NoopSessionHooks) OnReset(context.Context, string)                        {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, time.Duration, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, string, int, time.Duration, error)  {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, time.Duration, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sessionHooks SessionHooks = NoopSessionHooks{}
	storeHooks   StoreHooks   = NoopStoreHooks{}
	hooksMu      sync.RWMutex
)

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before any editing.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store use.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sessionHooks = NoopSessionHooks{}
	storeHooks = NoopStoreHooks{}
}
