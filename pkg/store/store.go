// Package store persists graph documents.
//
// The Store interface is the narrow persistence collaborator the editor core
// depends on, with implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files on disk for CLI usage
//   - mongo: MongoDB for server deployments
//
// Saves always carry the full current document, never a diff; the most recent
// save wins. Failures are surfaced as typed errors so callers can distinguish
// a missing document from a denied one and retry only transient faults.
package store

import (
	"context"
	"time"

	"github.com/jverdier/coursemap/pkg/document"
)

// Store is the interface for document persistence backends.
type Store interface {
	// Load retrieves a document by ID.
	// Returns ErrNotFound if no document exists under the ID.
	Load(ctx context.Context, id string) (document.Document, error)

	// Save persists the full document under the given ID. An empty ID
	// creates a new document; the assigned ID is in the result. The stored
	// UpdatedAt is set to the save time.
	Save(ctx context.Context, id string, doc document.Document) (SaveResult, error)

	// Duplicate stores an independent copy of the document under a fresh ID
	// and returns that ID.
	Duplicate(ctx context.Context, doc document.Document) (string, error)

	// Delete removes a document. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// SaveResult reports the outcome of a successful save.
type SaveResult struct {
	ID        string
	UpdatedAt time.Time
}
