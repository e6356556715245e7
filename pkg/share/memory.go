package share

import (
	"context"
	"sync"
)

// MemoryStore keeps share records in a map. Intended for development and
// tests. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byTok  map[string]Record
	byDoc  map[string]string // docID -> token
}

// NewMemoryStore creates an empty in-memory share store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byTok: make(map[string]Record),
		byDoc: make(map[string]string),
	}
}

// Put stores a record keyed by its token.
func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTok[rec.Token] = rec
	s.byDoc[rec.DocumentID] = rec.Token
	return nil
}

// Get retrieves a record by token.
func (s *MemoryStore) Get(ctx context.Context, token string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byTok[token]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes a record by token.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.byTok[token]; ok {
		delete(s.byTok, token)
		if s.byDoc[rec.DocumentID] == token {
			delete(s.byDoc, rec.DocumentID)
		}
	}
	return nil
}

// DeleteByDocument removes all records for a document.
func (s *MemoryStore) DeleteByDocument(ctx context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byDoc[docID]; ok {
		delete(s.byTok, token)
		delete(s.byDoc, docID)
	}
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
