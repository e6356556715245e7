package editor

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/jverdier/coursemap/pkg/autosave"
	"github.com/jverdier/coursemap/pkg/catalog"
	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/errors"
	"github.com/jverdier/coursemap/pkg/layout"
	"github.com/jverdier/coursemap/pkg/stats"
	"github.com/jverdier/coursemap/pkg/store"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Template{
		{ID: "practice", Title: "Practice module", DefaultDurationUnits: 2, Family: "practice"},
		{ID: "theory", Title: "Theory module", DefaultDurationUnits: 1, Family: "theory"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestAuthoringScenario(t *testing.T) {
	// Start with only the start anchor; add module A (2 duration units)
	// connected from start and an orphan B; stats must count A only.
	s := NewSession(document.NewFormation("Forklift onboarding"), WithCatalog(testCatalog(t)))

	a, err := s.AddNode("practice", document.Position{X: 100, Y: 200})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if _, err := s.Connect(document.StartNodeID, a); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := s.AddNode("theory", document.Position{X: 400, Y: 200}); err != nil {
		t.Fatalf("AddNode orphan: %v", err)
	}

	sum := s.Stats()
	if sum.ModuleCount != 1 {
		t.Errorf("ModuleCount = %d, want 1", sum.ModuleCount)
	}
	if want := 2 * stats.SessionLength; sum.TotalDuration != want {
		t.Errorf("TotalDuration = %v, want %v", sum.TotalDuration, want)
	}
	if len(sum.Connected) != 2 || !sum.Connected[document.StartNodeID] || !sum.Connected[a] {
		t.Errorf("Connected = %v, want {start, %s}", sum.Connected, a)
	}
}

func TestSessionSanitizesOnLoad(t *testing.T) {
	raw := document.Document{
		Nodes: []document.Node{
			{ID: document.StartNodeID, Kind: document.KindRoot},
			{ID: "not-a-uuid", Kind: document.KindElement},
		},
		Edges: []document.Edge{
			{ID: document.NewID(), Source: document.StartNodeID, Target: "ghost"},
		},
	}

	s := NewSession(raw)

	if s.LoadStats().NodeIDsRegenerated != 1 || s.LoadStats().PrunedEdgeCount() != 1 {
		t.Errorf("LoadStats = %+v", s.LoadStats())
	}
	doc := s.Document()
	ids := doc.NodeIDs()
	for _, e := range doc.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			t.Error("session opened with dangling edges")
		}
	}
}

func TestStartNodeProtected(t *testing.T) {
	s := NewSession(document.NewFormation("doc"))

	err := s.RemoveNode(document.StartNodeID)
	if !errors.Is(err, errors.ErrCodeStartProtected) {
		t.Errorf("RemoveNode(start) = %v, want START_NODE_PROTECTED", err)
	}
	if len(s.Document().Nodes) != 1 {
		t.Error("start node disappeared")
	}
}

func TestConnectValidation(t *testing.T) {
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)))
	a, _ := s.AddNode("theory", document.Position{})
	if _, err := s.Connect(document.StartNodeID, a); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	tests := []struct {
		name   string
		source string
		target string
		code   errors.Code
	}{
		{"missing source", "ghost", a, errors.ErrCodeNodeNotFound},
		{"missing target", a, "ghost", errors.ErrCodeNodeNotFound},
		{"self loop", a, a, errors.ErrCodeInvalidEdge},
		{"duplicate", document.StartNodeID, a, errors.ErrCodeDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Connect(tt.source, tt.target); !errors.Is(err, tt.code) {
				t.Errorf("Connect = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRemoveNodePrunesIncidentEdges(t *testing.T) {
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)))
	a, _ := s.AddNode("theory", document.Position{})
	b, _ := s.AddNode("practice", document.Position{})
	s.Connect(document.StartNodeID, a)
	s.Connect(a, b)

	if err := s.RemoveNode(a); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}

	doc := s.Document()
	if len(doc.Edges) != 0 {
		t.Errorf("edges = %d, want 0 after removing the shared endpoint", len(doc.Edges))
	}
	if _, ok := doc.Node(a); ok {
		t.Error("node a still present")
	}
}

func TestSetFieldClosedKeySet(t *testing.T) {
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)))
	a, _ := s.AddNode("theory", document.Position{})

	if err := s.SetField(a, "objective", "identify hazards"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := s.SetField(a, "favorite_color", "blue"); !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Errorf("unrecognized key error = %v, want INVALID_FIELD", err)
	}
	if err := s.SetField(document.StartNodeID, "objective", "x"); !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Errorf("root objective error = %v, want INVALID_FIELD", err)
	}

	doc := s.Document()
	node, _ := doc.Node(a)
	if node.Fields["objective"] != "identify hazards" {
		t.Errorf("fields = %v", node.Fields)
	}
}

func TestUndoRedoRoundTripAcrossOperations(t *testing.T) {
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)))

	a, _ := s.AddNode("theory", document.Position{X: 10, Y: 10})
	b, _ := s.AddNode("practice", document.Position{X: 20, Y: 20})
	s.Connect(document.StartNodeID, a)
	edgeAB, _ := s.Connect(a, b)
	s.MoveNode(b, document.Position{X: 300, Y: 400})
	s.SetTitle(a, "Hazards 101")
	s.SetField(a, "objective", "identify hazards")
	s.Disconnect(edgeAB)
	s.AutoLayout(layout.Options{})
	s.RenameDocument("Final title")

	want := s.Document()
	n := 10

	for i := 0; i < n; i++ {
		if !s.Undo() {
			t.Fatalf("Undo #%d failed", i+1)
		}
	}
	if s.CanUndo() {
		t.Error("CanUndo after full unwind")
	}
	base := s.Document()
	if len(base.Nodes) != 1 || len(base.Edges) != 0 || base.Title != "doc" {
		t.Errorf("fully unwound document = %+v", base)
	}

	for i := 0; i < n; i++ {
		if !s.Redo() {
			t.Fatalf("Redo #%d failed", i+1)
		}
	}
	if !reflect.DeepEqual(s.Document(), want) {
		t.Errorf("redo did not reproduce the document:\n%+v\n%+v", s.Document(), want)
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)))

	s.AddNode("theory", document.Position{})
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("CanRedo = false after undo")
	}
	s.AddNode("practice", document.Position{})
	if s.CanRedo() {
		t.Error("redo history survived a new edit")
	}
}

func TestAutoLayoutUndoRestoresPositions(t *testing.T) {
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)))
	a, _ := s.AddNode("theory", document.Position{X: 777, Y: 888})
	s.Connect(document.StartNodeID, a)

	s.AutoLayout(layout.Options{})
	doc := s.Document()
	node, _ := doc.Node(a)
	if node.Position.X == 777 && node.Position.Y == 888 {
		t.Fatal("AutoLayout did not move the node")
	}

	s.Undo()
	doc = s.Document()
	node, _ = doc.Node(a)
	if node.Position.X != 777 || node.Position.Y != 888 {
		t.Errorf("undo did not restore hand-arranged position: %+v", node.Position)
	}
}

func TestEditsScheduleAutosave(t *testing.T) {
	st := store.NewMemoryStore()
	saver := autosave.New(st, "", autosave.WithDebounce(time.Hour))
	s := NewSession(document.NewFormation("doc"), WithCatalog(testCatalog(t)), WithAutosave(saver))

	if _, err := s.AddNode("theory", document.Position{}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if saver.State() != autosave.StatePending {
		t.Errorf("saver state = %v, want pending after an edit", saver.State())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got, err := st.Load(context.Background(), saver.DocumentID())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("persisted nodes = %d, want 2", len(got.Nodes))
	}
}
