package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jverdier/coursemap/pkg/document"
)

// FileStore persists each document as a JSON file in a directory, named by
// document ID. Intended for CLI usage where a local workspace directory is
// the natural storage location.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load retrieves a document by ID.
func (s *FileStore) Load(ctx context.Context, id string) (document.Document, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return document.Document{}, ErrNotFound
	}
	if os.IsPermission(err) {
		return document.Document{}, ErrPermissionDenied
	}
	if err != nil {
		return document.Document{}, Transient(err)
	}
	return document.Unmarshal(data)
}

// Save writes the full document to disk. An empty ID creates a new file.
func (s *FileStore) Save(ctx context.Context, id string, doc document.Document) (SaveResult, error) {
	if id == "" {
		id = document.NewID()
	}
	stored := doc.Clone()
	stored.ID = id
	stored.UpdatedAt = time.Now().UTC()

	if err := document.WriteFile(stored, s.path(id)); err != nil {
		if os.IsPermission(err) {
			return SaveResult{}, ErrPermissionDenied
		}
		return SaveResult{}, Transient(err)
	}
	return SaveResult{ID: id, UpdatedAt: stored.UpdatedAt}, nil
}

// Duplicate writes an independent copy under a fresh ID.
func (s *FileStore) Duplicate(ctx context.Context, doc document.Document) (string, error) {
	res, err := s.Save(ctx, document.NewID(), doc)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// Delete removes a document file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if os.IsPermission(err) {
		return ErrPermissionDenied
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
