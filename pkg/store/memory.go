package store

import (
	"context"
	"sync"
	"time"

	"github.com/jverdier/coursemap/pkg/document"
)

// MemoryStore keeps documents in a map. Intended for development and tests;
// nothing survives process exit. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]document.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]document.Document)}
}

// Load retrieves a document by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return document.Document{}, ErrNotFound
	}
	return doc.Clone(), nil
}

// Save stores a deep copy of the document. An empty ID creates a new entry.
func (s *MemoryStore) Save(ctx context.Context, id string, doc document.Document) (SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = document.NewID()
	}
	stored := doc.Clone()
	stored.ID = id
	stored.UpdatedAt = time.Now().UTC()
	s.docs[id] = stored

	return SaveResult{ID: id, UpdatedAt: stored.UpdatedAt}, nil
}

// Duplicate stores an independent copy under a fresh ID.
func (s *MemoryStore) Duplicate(ctx context.Context, doc document.Document) (string, error) {
	res, err := s.Save(ctx, document.NewID(), doc)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
