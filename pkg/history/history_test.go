package history

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/jverdier/coursemap/pkg/document"
)

// setTitle builds a command that captures both the old and new title, so it
// is a pure function of its parameters.
func setTitle(from, to string) Command {
	return Command{
		Label: "set title",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Title = to
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Title = from
			return out
		},
	}
}

func TestDoUndoRedo(t *testing.T) {
	h := New()
	doc := document.NewFormation("v0")

	doc = h.Do(setTitle("v0", "v1"), doc)
	if doc.Title != "v1" {
		t.Fatalf("after Do: title = %q", doc.Title)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Errorf("CanUndo = %v, CanRedo = %v, want true/false", h.CanUndo(), h.CanRedo())
	}

	doc, ok := h.Undo(doc)
	if !ok || doc.Title != "v0" {
		t.Fatalf("after Undo: ok = %v, title = %q", ok, doc.Title)
	}
	if h.CanUndo() || !h.CanRedo() {
		t.Errorf("CanUndo = %v, CanRedo = %v, want false/true", h.CanUndo(), h.CanRedo())
	}

	doc, ok = h.Redo(doc)
	if !ok || doc.Title != "v1" {
		t.Fatalf("after Redo: ok = %v, title = %q", ok, doc.Title)
	}
}

func TestUndoRedoEmptyStacksAreNoOps(t *testing.T) {
	h := New()
	doc := document.NewFormation("unchanged")

	if out, ok := h.Undo(doc); ok || out.Title != "unchanged" {
		t.Errorf("Undo on empty stack: ok = %v, title = %q", ok, out.Title)
	}
	if out, ok := h.Redo(doc); ok || out.Title != "unchanged" {
		t.Errorf("Redo on empty stack: ok = %v, title = %q", ok, out.Title)
	}
}

func TestDoClearsRedoStack(t *testing.T) {
	h := New()
	doc := document.NewFormation("v0")

	doc = h.Do(setTitle("v0", "v1"), doc)
	doc, _ = h.Undo(doc)
	doc = h.Do(setTitle("v0", "v2"), doc)

	if h.CanRedo() {
		t.Error("redo stack not cleared by a new edit")
	}
	if doc.Title != "v2" {
		t.Errorf("title = %q, want v2", doc.Title)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	// N commands, then undo x N and redo x N must reproduce the
	// post-sequence document exactly.
	const n = 8
	h := New()
	doc := document.NewFormation("t0")

	for i := 0; i < n; i++ {
		doc = h.Do(setTitle(fmt.Sprintf("t%d", i), fmt.Sprintf("t%d", i+1)), doc)
	}
	want := doc.Clone()

	for i := 0; i < n; i++ {
		var ok bool
		if doc, ok = h.Undo(doc); !ok {
			t.Fatalf("Undo #%d failed", i+1)
		}
	}
	if doc.Title != "t0" {
		t.Fatalf("after full undo: title = %q, want t0", doc.Title)
	}

	for i := 0; i < n; i++ {
		var ok bool
		if doc, ok = h.Redo(doc); !ok {
			t.Fatalf("Redo #%d failed", i+1)
		}
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("round trip diverged:\n%+v\n%+v", doc, want)
	}
}

func TestLabels(t *testing.T) {
	h := New()
	doc := document.NewFormation("v0")

	if h.UndoLabel() != "" || h.RedoLabel() != "" {
		t.Error("labels on empty history should be empty")
	}

	doc = h.Do(setTitle("v0", "v1"), doc)
	if h.UndoLabel() != "set title" {
		t.Errorf("UndoLabel = %q", h.UndoLabel())
	}
	if _, ok := h.Undo(doc); !ok {
		t.Fatal("Undo failed")
	}
	if h.RedoLabel() != "set title" {
		t.Errorf("RedoLabel = %q", h.RedoLabel())
	}
}

func TestReset(t *testing.T) {
	h := New()
	doc := document.NewFormation("v0")

	doc = h.Do(setTitle("v0", "v1"), doc)
	h.Do(setTitle("v1", "v2"), doc)
	h.Reset()

	if h.CanUndo() || h.CanRedo() || h.Len() != 0 {
		t.Errorf("Reset left state: CanUndo=%v CanRedo=%v Len=%d", h.CanUndo(), h.CanRedo(), h.Len())
	}
}
