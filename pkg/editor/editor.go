// Package editor ties the core together into an editing session: one open
// document, its undo/redo history, the sanitizer on load, autosave
// scheduling, and the template catalog for node instantiation.
//
// A Session follows the single-writer model: all mutations are synchronous
// and the session is not safe for concurrent use. Every structural operation
// is an invertible command pushed onto the history, and every accepted
// mutation schedules an autosave when a coordinator is attached.
package editor

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/jverdier/coursemap/pkg/autosave"
	"github.com/jverdier/coursemap/pkg/catalog"
	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/history"
	"github.com/jverdier/coursemap/pkg/observability"
	"github.com/jverdier/coursemap/pkg/stats"
)

// Session is an editing session over one graph document.
type Session struct {
	doc       document.Document
	loadStats document.SanitizeStats
	hist      *history.History
	saver     *autosave.Coordinator
	catalog   *catalog.Catalog
	logger    *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog sets the template catalog used by AddNode.
// Defaults to the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithAutosave attaches an autosave coordinator. Every accepted mutation
// schedules a save of the full current document.
func WithAutosave(c *autosave.Coordinator) Option {
	return func(s *Session) { s.saver = c }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession opens a document for editing. The raw document is sanitized
// first; whatever the repair pass had to fix is available via LoadStats.
// History starts empty.
func NewSession(raw document.Document, opts ...Option) *Session {
	doc, st := document.Sanitize(raw)
	s := &Session{
		doc:       doc,
		loadStats: st,
		hist:      history.New(),
		catalog:   catalog.Default(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	observability.Editor().OnDocumentLoaded(context.Background(), doc.ID,
		len(doc.Nodes), len(doc.Edges), st.PrunedEdgeCount())
	s.logger.Debug("document loaded", "doc", doc.ID,
		"nodes", len(doc.Nodes), "edges", len(doc.Edges), "pruned", st.PrunedEdgeCount())
	return s
}

// Document returns a deep copy of the current document.
func (s *Session) Document() document.Document { return s.doc.Clone() }

// LoadStats reports what sanitization repaired when the session opened.
func (s *Session) LoadStats() document.SanitizeStats { return s.loadStats }

// Stats computes reachability metrics from the document's root node.
func (s *Session) Stats() stats.Summary {
	root, ok := s.doc.Root()
	if !ok {
		return stats.Compute(s.doc, document.StartNodeID)
	}
	return stats.Compute(s.doc, root.ID)
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Undo reverts the most recent command. Returns false when history is empty.
func (s *Session) Undo() bool {
	label := s.hist.UndoLabel()
	doc, ok := s.hist.Undo(s.doc)
	if !ok {
		return false
	}
	s.doc = doc
	observability.Editor().OnUndo(context.Background(), s.doc.ID, label)
	s.scheduleSave()
	return true
}

// Redo reapplies the most recently undone command. Returns false when there
// is nothing to redo.
func (s *Session) Redo() bool {
	label := s.hist.RedoLabel()
	doc, ok := s.hist.Redo(s.doc)
	if !ok {
		return false
	}
	s.doc = doc
	observability.Editor().OnRedo(context.Background(), s.doc.ID, label)
	s.scheduleSave()
	return true
}

// Reload replaces the open document, discarding history. Used when the
// caller fetched a fresh snapshot from persistence.
func (s *Session) Reload(raw document.Document) {
	s.doc, s.loadStats = document.Sanitize(raw)
	s.hist.Reset()
	observability.Editor().OnDocumentLoaded(context.Background(), s.doc.ID,
		len(s.doc.Nodes), len(s.doc.Edges), s.loadStats.PrunedEdgeCount())
}

// Close flushes pending autosave work.
func (s *Session) Close() error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Close()
}

// apply runs a command through history and schedules persistence.
func (s *Session) apply(cmd history.Command) {
	s.doc = s.hist.Do(cmd, s.doc)
	observability.Editor().OnCommandApplied(context.Background(), s.doc.ID, cmd.Label)
	s.logger.Debug("command applied", "doc", s.doc.ID, "label", cmd.Label)
	s.scheduleSave()
}

func (s *Session) scheduleSave() {
	if s.saver != nil {
		s.saver.Schedule(s.doc)
	}
}
