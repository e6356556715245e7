// Package history provides per-session undo/redo over graph documents as a
// classic two-stack command history.
//
// Commands are pure: Apply and Invert take a document value and return a new
// one, capturing all their parameters up front. Nothing in a command may
// depend on wall-clock time or fresh randomness, so replaying the undo stack
// from the initial document always reproduces the current one.
package history

import "github.com/jverdier/coursemap/pkg/document"

// Command is a reversible unit of graph mutation.
type Command struct {
	// Label names the mutation for display in undo menus and logs.
	Label string

	// Apply performs the mutation, returning a new document value.
	Apply func(document.Document) document.Document

	// Invert reverses the mutation, returning a new document value.
	// Invert(Apply(d)) must equal d for every document the command is
	// applied to.
	Invert func(document.Document) document.Document
}

// History is the undo/redo state for one editing session. Create one per open
// document with New; never share an instance across documents. History is not
// safe for concurrent use, matching the single-writer session model.
type History struct {
	undo []Command
	redo []Command
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Do applies cmd to doc, pushes it onto the undo stack, and clears the redo
// stack. A new edit invalidates redo history; branches are discarded, not
// kept as a tree.
func (h *History) Do(cmd Command, doc document.Document) document.Document {
	out := cmd.Apply(doc)
	h.undo = append(h.undo, cmd)
	h.redo = h.redo[:0]
	return out
}

// Undo reverts the most recent command and moves it to the redo stack.
// Returns doc unchanged and false when there is nothing to undo.
func (h *History) Undo(doc document.Document) (document.Document, bool) {
	if len(h.undo) == 0 {
		return doc, false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd.Invert(doc), true
}

// Redo reapplies the most recently undone command and moves it back to the
// undo stack. Returns doc unchanged and false when there is nothing to redo.
func (h *History) Redo(doc document.Document) (document.Document, bool) {
	if len(h.redo) == 0 {
		return doc, false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd.Apply(doc), true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLabel returns the label of the command Undo would revert, or "".
func (h *History) UndoLabel() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Label
}

// RedoLabel returns the label of the command Redo would reapply, or "".
func (h *History) RedoLabel() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Label
}

// Len returns the number of commands on the undo stack.
func (h *History) Len() int { return len(h.undo) }

// Reset discards both stacks. Called on session end or explicit document
// reload; history is never persisted.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
