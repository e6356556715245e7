// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about editing sessions, autosave persistence, and
// share-link activity.
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
// Hook delivery is best-effort: implementations must not block, and errors
// they encounter never propagate back into the calling path.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetSaveHooks(&mySaveHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Save().OnSaveScheduled(ctx, docID)
//	// ... debounce elapses, save runs ...
//	observability.Save().OnSaveSucceeded(ctx, docID, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from editing sessions.
type EditorHooks interface {
	// OnDocumentLoaded records a document being opened, including how much
	// repair the sanitization pass had to perform.
	OnDocumentLoaded(ctx context.Context, docID string, nodeCount, edgeCount, prunedEdges int)

	// OnCommandApplied records a structural mutation being applied.
	OnCommandApplied(ctx context.Context, docID, label string)

	// OnUndo and OnRedo record history navigation.
	OnUndo(ctx context.Context, docID, label string)
	OnRedo(ctx context.Context, docID, label string)
}

// =============================================================================
// Save Hooks
// =============================================================================

// SaveHooks receives events from the autosave coordinator.
type SaveHooks interface {
	// OnSaveScheduled records a debounced save being (re)scheduled.
	OnSaveScheduled(ctx context.Context, docID string)

	// OnSaveSucceeded records a completed persistence call.
	OnSaveSucceeded(ctx context.Context, docID string, duration time.Duration)

	// OnSaveFailed records a failed persistence call.
	OnSaveFailed(ctx context.Context, docID string, err error)
}

// =============================================================================
// Share Hooks
// =============================================================================

// ShareHooks receives events from share-link issuance and resolution.
type ShareHooks interface {
	// OnShareIssued records a new share token being created.
	OnShareIssued(ctx context.Context, docID string, expiresAt time.Time)

	// OnShareResolved records a resolution attempt.
	// The outcome is one of "ok", "not_found", or "expired".
	OnShareResolved(ctx context.Context, outcome string)

	// OnShareRevoked records tokens being invalidated for a document.
	OnShareRevoked(ctx context.Context, docID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnDocumentLoaded(context.Context, string, int, int, int) {}
func (NoopEditorHooks) OnCommandApplied(context.Context, string, string)       {}
func (NoopEditorHooks) OnUndo(context.Context, string, string)                 {}
func (NoopEditorHooks) OnRedo(context.Context, string, string)                 {}

// NoopSaveHooks is a no-op implementation of SaveHooks.
type NoopSaveHooks struct{}

func (NoopSaveHooks) OnSaveScheduled(context.Context, string)                {}
func (NoopSaveHooks) OnSaveSucceeded(context.Context, string, time.Duration) {}
func (NoopSaveHooks) OnSaveFailed(context.Context, string, error)            {}

// NoopShareHooks is a no-op implementation of ShareHooks.
type NoopShareHooks struct{}

func (NoopShareHooks) OnShareIssued(context.Context, string, time.Time) {}
func (NoopShareHooks) OnShareResolved(context.Context, string)          {}
func (NoopShareHooks) OnShareRevoked(context.Context, string)           {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	saveHooks   SaveHooks   = NoopSaveHooks{}
	shareHooks  ShareHooks  = NoopShareHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup before any editing sessions.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetSaveHooks registers custom save hooks.
// This should be called once at application startup before any autosave activity.
func SetSaveHooks(h SaveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		saveHooks = h
	}
}

// SetShareHooks registers custom share hooks.
// This should be called once at application startup before any share activity.
func SetShareHooks(h ShareHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		shareHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Save returns the registered save hooks.
func Save() SaveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return saveHooks
}

// Share returns the registered share hooks.
func Share() ShareHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return shareHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	saveHooks = NoopSaveHooks{}
	shareHooks = NoopShareHooks{}
}
