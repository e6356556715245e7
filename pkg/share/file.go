package share

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists share records as JSON files in a directory, named by
// token. Intended for CLI usage. Expired records stay on disk until resolved
// or replaced; the Manager treats them as gone either way.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based share store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create share directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Put stores a record keyed by its token.
func (s *FileStore) Put(ctx context.Context, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(rec.Token), data, 0600)
}

// Get retrieves a record by token.
func (s *FileStore) Get(ctx context.Context, token string) (Record, error) {
	data, err := os.ReadFile(s.path(token))
	if os.IsNotExist(err) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt record, treat as missing.
		_ = os.Remove(s.path(token))
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes a record by token.
func (s *FileStore) Delete(ctx context.Context, token string) error {
	err := os.Remove(s.path(token))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// DeleteByDocument removes all records for a document by scanning the
// directory. Share directories hold a handful of records at most, so a
// linear scan is fine.
func (s *FileStore) DeleteByDocument(ctx context.Context, docID string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		token := strings.TrimSuffix(entry.Name(), ".json")
		rec, err := s.Get(ctx, token)
		if err != nil {
			continue
		}
		if rec.DocumentID == docID {
			if err := s.Delete(ctx, token); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(token string) string {
	// Tokens are base64url, which is filename-safe.
	return filepath.Join(s.dir, token+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
