package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Editor hooks
	e := NoopEditorHooks{}
	e.OnDocumentLoaded(ctx, "doc-1", 10, 9, 0)
	e.OnCommandApplied(ctx, "doc-1", "add node")
	e.OnUndo(ctx, "doc-1", "add node")
	e.OnRedo(ctx, "doc-1", "add node")

	// Save hooks
	s := NoopSaveHooks{}
	s.OnSaveScheduled(ctx, "doc-1")
	s.OnSaveSucceeded(ctx, "doc-1", time.Second)
	s.OnSaveFailed(ctx, "doc-1", nil)

	// Share hooks
	sh := NoopShareHooks{}
	sh.OnShareIssued(ctx, "doc-1", time.Now())
	sh.OnShareResolved(ctx, "ok")
	sh.OnShareRevoked(ctx, "doc-1")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Editor().(NoopEditorHooks); !ok {
		t.Error("Editor() should return NoopEditorHooks by default")
	}
	if _, ok := Save().(NoopSaveHooks); !ok {
		t.Error("Save() should return NoopSaveHooks by default")
	}
	if _, ok := Share().(NoopShareHooks); !ok {
		t.Error("Share() should return NoopShareHooks by default")
	}

	// Set custom hooks
	customEditor := &testEditorHooks{}
	SetEditorHooks(customEditor)
	if Editor() != customEditor {
		t.Error("SetEditorHooks should set custom hooks")
	}

	customSave := &testSaveHooks{}
	SetSaveHooks(customSave)
	if Save() != customSave {
		t.Error("SetSaveHooks should set custom hooks")
	}

	customShare := &testShareHooks{}
	SetShareHooks(customShare)
	if Share() != customShare {
		t.Error("SetShareHooks should set custom hooks")
	}

	// Reset restores noop
	Reset()
	if _, ok := Editor().(NoopEditorHooks); !ok {
		t.Error("Reset() should restore NoopEditorHooks")
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	Reset()

	SetEditorHooks(nil)
	SetSaveHooks(nil)
	SetShareHooks(nil)

	if Editor() == nil || Save() == nil || Share() == nil {
		t.Error("setting nil hooks must not clear the registry")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	hooks := &testSaveHooks{}
	SetSaveHooks(hooks)

	ctx := context.Background()
	Save().OnSaveScheduled(ctx, "doc-1")
	Save().OnSaveScheduled(ctx, "doc-1")
	Save().OnSaveSucceeded(ctx, "doc-1", time.Millisecond)

	if hooks.scheduled != 2 {
		t.Errorf("scheduled = %d, want 2", hooks.scheduled)
	}
	if hooks.succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", hooks.succeeded)
	}
}

// Test hook implementations

type testEditorHooks struct {
	loaded, applied, undo, redo int
}

func (h *testEditorHooks) OnDocumentLoaded(_ context.Context, _ string, _, _, _ int) { h.loaded++ }
func (h *testEditorHooks) OnCommandApplied(_ context.Context, _, _ string)           { h.applied++ }
func (h *testEditorHooks) OnUndo(_ context.Context, _, _ string)                     { h.undo++ }
func (h *testEditorHooks) OnRedo(_ context.Context, _, _ string)                     { h.redo++ }

type testSaveHooks struct {
	scheduled, succeeded, failed int
}

func (h *testSaveHooks) OnSaveScheduled(context.Context, string)                { h.scheduled++ }
func (h *testSaveHooks) OnSaveSucceeded(context.Context, string, time.Duration) { h.succeeded++ }
func (h *testSaveHooks) OnSaveFailed(context.Context, string, error)            { h.failed++ }

type testShareHooks struct{}

func (h *testShareHooks) OnShareIssued(context.Context, string, time.Time) {}
func (h *testShareHooks) OnShareResolved(context.Context, string)          {}
func (h *testShareHooks) OnShareRevoked(context.Context, string)           {}
