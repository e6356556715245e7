// Package share manages expiring read-only share links for graph documents.
//
// A share link grants access to a point-in-time snapshot of a document: the
// snapshot is captured at issuance and never tracks later edits. At most one
// token is live per document; issuing a new one invalidates the previous.
// Tokens expire after a fixed TTL, and an expired token behaves exactly like
// a nonexistent one as far as data access goes.
package share

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/observability"
)

// Sentinel errors for share resolution.
var (
	// ErrNotFound is returned when a token does not exist.
	ErrNotFound = errors.New("share not found")

	// ErrExpired is returned when a token exists but is past its TTL.
	// No snapshot data accompanies it; the distinction from ErrNotFound only
	// drives the user-facing message.
	ErrExpired = errors.New("share expired")
)

// DefaultTTL is how long a share link stays valid after issuance.
const DefaultTTL = 7 * 24 * time.Hour

// Record is a stored share token with its captured snapshot.
type Record struct {
	Token      string            `json:"token"`
	DocumentID string            `json:"document_id"`
	Snapshot   document.Document `json:"snapshot"`
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// IsExpired reports whether the record is past its TTL at the given time.
func (r *Record) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Link is the result of issuing a share.
type Link struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is the interface for share-token storage backends.
type Store interface {
	// Put stores a record keyed by its token.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by token. Returns ErrNotFound if absent.
	// Backends with native expiry may also return ErrNotFound for records
	// they have already evicted.
	Get(ctx context.Context, token string) (Record, error)

	// Delete removes a record by token. Missing tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByDocument removes all records for a document.
	DeleteByDocument(ctx context.Context, docID string) error

	// Close releases backend resources.
	Close() error
}

// GenerateToken creates a cryptographically secure random share token.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Manager issues, resolves, and revokes share links against a Store.
type Manager struct {
	store   Store
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithBaseURL sets the public base URL used to build share links,
// e.g. "https://app.example.com".
func WithBaseURL(u string) Option {
	return func(m *Manager) { m.baseURL = strings.TrimRight(u, "/") }
}

// withNow overrides the clock, for tests.
func withNow(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a share manager on top of the given store.
func NewManager(s Store, opts ...Option) *Manager {
	m := &Manager{
		store: s,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue creates a share link for the document, capturing the snapshot as it
// is right now. Any previous token for the same document is invalidated
// first, so at most one link is ever live per document.
func (m *Manager) Issue(ctx context.Context, docID string, snapshot document.Document) (Link, error) {
	if err := m.store.DeleteByDocument(ctx, docID); err != nil {
		return Link{}, fmt.Errorf("invalidate previous share: %w", err)
	}

	token, err := GenerateToken()
	if err != nil {
		return Link{}, fmt.Errorf("generate share token: %w", err)
	}

	now := m.now().UTC()
	rec := Record{
		Token:      token,
		DocumentID: docID,
		Snapshot:   snapshot.Clone(),
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
	}
	if err := m.store.Put(ctx, rec); err != nil {
		return Link{}, fmt.Errorf("store share token: %w", err)
	}

	observability.Share().OnShareIssued(ctx, docID, rec.ExpiresAt)
	return Link{Token: token, URL: m.url(token), ExpiresAt: rec.ExpiresAt}, nil
}

// Resolve returns the snapshot behind a token. Unknown tokens yield
// ErrNotFound; expired tokens are deleted and yield ErrExpired with no data.
func (m *Manager) Resolve(ctx context.Context, token string) (document.Document, error) {
	rec, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		observability.Share().OnShareResolved(ctx, "not_found")
		return document.Document{}, ErrNotFound
	}
	if err != nil {
		return document.Document{}, err
	}

	if rec.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		observability.Share().OnShareResolved(ctx, "expired")
		return document.Document{}, ErrExpired
	}

	observability.Share().OnShareResolved(ctx, "ok")
	return rec.Snapshot.Clone(), nil
}

// Revoke invalidates all tokens for a document.
func (m *Manager) Revoke(ctx context.Context, docID string) error {
	if err := m.store.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	observability.Share().OnShareRevoked(ctx, docID)
	return nil
}

func (m *Manager) url(token string) string {
	if m.baseURL == "" {
		return "/api/shares/" + token
	}
	return m.baseURL + "/api/shares/" + token
}
