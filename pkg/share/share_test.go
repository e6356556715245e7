package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jverdier/coursemap/pkg/document"
)

// backends returns the stores exercised by the shared contract tests.
// Redis is excluded: it needs a running server.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestIssueAndResolve(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(s, WithBaseURL("https://app.example.com/"))
			doc := document.NewFormation("shared course")

			link, err := m.Issue(ctx, "doc-1", doc)
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			if link.Token == "" {
				t.Fatal("empty token")
			}
			if want := "https://app.example.com/api/shares/" + link.Token; link.URL != want {
				t.Errorf("URL = %q, want %q", link.URL, want)
			}
			if time.Until(link.ExpiresAt) <= 0 {
				t.Errorf("ExpiresAt = %v, must be in the future", link.ExpiresAt)
			}

			got, err := m.Resolve(ctx, link.Token)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got.Title != "shared course" {
				t.Errorf("snapshot title = %q", got.Title)
			}
		})
	}
}

func TestSingleActiveShare(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(s)
			doc := document.NewFormation("doc")

			first, err := m.Issue(ctx, "doc-1", doc)
			if err != nil {
				t.Fatalf("first Issue: %v", err)
			}
			second, err := m.Issue(ctx, "doc-1", doc)
			if err != nil {
				t.Fatalf("second Issue: %v", err)
			}

			if _, err := m.Resolve(ctx, first.Token); !errors.Is(err, ErrNotFound) {
				t.Errorf("old token resolve = %v, want ErrNotFound", err)
			}
			if _, err := m.Resolve(ctx, second.Token); err != nil {
				t.Errorf("new token resolve = %v", err)
			}
		})
	}
}

func TestSharesOfOtherDocumentsSurvive(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	a, err := m.Issue(ctx, "doc-a", document.NewFormation("a"))
	if err != nil {
		t.Fatalf("Issue a: %v", err)
	}
	if _, err := m.Issue(ctx, "doc-b", document.NewFormation("b")); err != nil {
		t.Fatalf("Issue b: %v", err)
	}

	if _, err := m.Resolve(ctx, a.Token); err != nil {
		t.Errorf("issuing for doc-b invalidated doc-a's token: %v", err)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	m := NewManager(NewMemoryStore())
	if _, err := m.Resolve(context.Background(), "no-such-token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	clock := time.Now()
	m := NewManager(store, WithTTL(time.Hour), withNow(func() time.Time { return clock }))

	link, err := m.Issue(ctx, "doc-1", document.NewFormation("doc"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock = clock.Add(2 * time.Hour)
	if _, err := m.Resolve(ctx, link.Token); !errors.Is(err, ErrExpired) {
		t.Fatalf("resolve past TTL = %v, want ErrExpired", err)
	}

	// The expired record is gone, so a retry looks like a missing token.
	if _, err := m.Resolve(ctx, link.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("second resolve = %v, want ErrNotFound", err)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	doc := document.NewFormation("before edit")
	link, err := m.Issue(ctx, "doc-1", doc)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Edits after issuance never leak into the snapshot.
	doc.Title = "after edit"
	doc.Nodes[0].Title = "renamed"

	got, err := m.Resolve(ctx, link.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Title != "before edit" || got.Nodes[0].Title != "Start" {
		t.Errorf("snapshot tracked live edits: %+v", got)
	}
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	link, err := m.Issue(ctx, "doc-1", document.NewFormation("doc"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := m.Revoke(ctx, "doc-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := m.Resolve(ctx, link.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("resolve after revoke = %v, want ErrNotFound", err)
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if seen[tok] {
			t.Fatal("duplicate token generated")
		}
		seen[tok] = true
	}
}
