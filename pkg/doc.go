// Package pkg provides the core libraries for the coursemap graph builder.
//
// # Overview
//
// Coursemap is the editing core behind the Formation Builder (course path
// authoring) and the Blueprint Builder (mind-map authoring): an interactive
// node/edge graph editor with structural invariants, auto-layout,
// reachability-based statistics, undo/redo, debounced autosave, and expiring
// read-only share links. The pkg directory is organized into:
//
//  1. [document] - Canonical graph model and the sanitization pass
//  2. [layout] - Deterministic layered auto-layout
//  3. [stats] - Reachability traversal and path statistics
//  4. [history] - Command stacks for undo/redo
//  5. [autosave] - Debounced, serialized persistence coordination
//  6. [share] - Single-active expiring share links
//  7. [store] - Document persistence backends (memory, file, MongoDB)
//  8. [editor] - Per-document editing sessions tying the above together
//
// # Architecture
//
// The typical data flow through an editing session:
//
//	UI structural event (node added/moved, edge connected, ...)
//	         ↓
//	    [editor] session (validate, build an invertible command)
//	         ↓
//	    [history] (push command, apply to the document value)
//	         ↓
//	    [autosave] (debounce, persist via [store])
//
// [layout] and [stats] are pure functions invoked on demand over the current
// document; [share] operates on persisted snapshots independent of live edits.
//
// # Quick Start
//
// Open a document, edit it, and compute statistics:
//
//	import (
//	    "github.com/jverdier/coursemap/pkg/document"
//	    "github.com/jverdier/coursemap/pkg/editor"
//	)
//
//	sess := editor.NewSession(document.NewFormation("Forklift onboarding"))
//	id, _ := sess.AddNode("module-practice", document.Position{X: 0, Y: 120})
//	_, _ = sess.Connect(document.StartNodeID, id)
//	summary := sess.Stats()
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [document]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/document
// [layout]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/layout
// [stats]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/stats
// [history]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/history
// [autosave]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/autosave
// [share]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/share
// [store]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/store
// [editor]: https://pkg.go.dev/github.com/jverdier/coursemap/pkg/editor
package pkg
