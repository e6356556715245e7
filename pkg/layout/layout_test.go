package layout

import (
	"reflect"
	"testing"

	"github.com/jverdier/coursemap/pkg/document"
)

func nodesFromIDs(ids ...string) []document.Node {
	nodes := make([]document.Node, len(ids))
	for i, id := range ids {
		nodes[i] = document.Node{ID: id, Kind: document.KindElement}
	}
	return nodes
}

func edgesFromPairs(pairs ...[2]string) []document.Edge {
	edges := make([]document.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = document.Edge{ID: document.NewID(), Source: p[0], Target: p[1]}
	}
	return edges
}

func TestComputeDeterministic(t *testing.T) {
	nodes := nodesFromIDs("start", "a", "b", "c", "d")
	edges := edgesFromPairs([2]string{"start", "a"}, [2]string{"start", "b"}, [2]string{"a", "c"}, [2]string{"b", "c"})

	first := Compute(nodes, edges, Options{})
	second := Compute(nodes, edges, Options{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Compute diverged:\n%v\n%v", first, second)
	}
}

func TestComputeIndependentOfInputOrder(t *testing.T) {
	nodes := nodesFromIDs("start", "a", "b", "c")
	edges := edgesFromPairs([2]string{"start", "a"}, [2]string{"start", "b"}, [2]string{"b", "c"})

	reversedNodes := make([]document.Node, len(nodes))
	for i, n := range nodes {
		reversedNodes[len(nodes)-1-i] = n
	}
	reversedEdges := make([]document.Edge, len(edges))
	for i, e := range edges {
		reversedEdges[len(edges)-1-i] = e
	}

	want := Compute(nodes, edges, Options{})
	got := Compute(reversedNodes, reversedEdges, Options{})

	if !reflect.DeepEqual(want, got) {
		t.Errorf("input order changed layout:\n%v\n%v", want, got)
	}
}

func TestComputeIgnoresPriorPositions(t *testing.T) {
	nodes := nodesFromIDs("start", "a")
	edges := edgesFromPairs([2]string{"start", "a"})

	moved := make([]document.Node, len(nodes))
	copy(moved, nodes)
	moved[1].Position = document.Position{X: 9999, Y: -42}

	want := Compute(nodes, edges, Options{})
	got := Compute(moved, edges, Options{})

	if !reflect.DeepEqual(want, got) {
		t.Errorf("prior positions leaked into layout:\n%v\n%v", want, got)
	}
}

func TestComputeRanks(t *testing.T) {
	nodes := nodesFromIDs("start", "a", "b", "c")
	edges := edgesFromPairs([2]string{"start", "a"}, [2]string{"start", "b"}, [2]string{"a", "c"}, [2]string{"b", "c"})

	positions := Compute(nodes, edges, Options{})

	rowStep := DefaultNodeHeight + DefaultVGap
	if positions["start"].Y != 0 {
		t.Errorf("start Y = %v, want 0", positions["start"].Y)
	}
	if positions["a"].Y != rowStep || positions["b"].Y != rowStep {
		t.Errorf("rank 1 Y = %v / %v, want %v", positions["a"].Y, positions["b"].Y, rowStep)
	}
	if positions["c"].Y != 2*rowStep {
		t.Errorf("c Y = %v, want %v; longest path must push c below both parents", positions["c"].Y, 2*rowStep)
	}
	if positions["a"].X == positions["b"].X {
		t.Error("nodes in the same rank overlap horizontally")
	}
}

func TestComputeReducesCrossings(t *testing.T) {
	// Sorted initial order [a b] / [c d] with edges a->d, b->c has one
	// crossing; a barycenter sweep removes it by swapping the lower rank.
	nodes := nodesFromIDs("a", "b", "c", "d")
	edges := edgesFromPairs([2]string{"a", "d"}, [2]string{"b", "c"})

	positions := Compute(nodes, edges, Options{})

	if positions["d"].X >= positions["c"].X {
		t.Errorf("crossing not removed: d.X = %v, c.X = %v", positions["d"].X, positions["c"].X)
	}
}

func TestComputeIsolatedFallbackRow(t *testing.T) {
	nodes := nodesFromIDs("start", "a", "z-orphan", "b-orphan")
	edges := edgesFromPairs([2]string{"start", "a"})

	positions := Compute(nodes, edges, Options{})

	if len(positions) != 4 {
		t.Fatalf("positions = %d entries, want 4", len(positions))
	}
	deepest := positions["a"].Y
	if positions["b-orphan"].Y <= deepest || positions["z-orphan"].Y <= deepest {
		t.Error("isolated nodes not placed below the deepest rank")
	}
	if positions["b-orphan"].Y != positions["z-orphan"].Y {
		t.Error("isolated nodes not in a single fallback row")
	}
	if positions["b-orphan"].X >= positions["z-orphan"].X {
		t.Error("fallback row not ordered by id")
	}
}

func TestComputeSurvivesCycle(t *testing.T) {
	nodes := nodesFromIDs("a", "b")
	edges := edgesFromPairs([2]string{"a", "b"}, [2]string{"b", "a"})

	positions := Compute(nodes, edges, Options{})

	if len(positions) != 2 {
		t.Fatalf("positions = %d entries, want 2", len(positions))
	}
	if positions["a"].Y == positions["b"].Y {
		t.Error("cycle members share a rank; back edge not removed")
	}
}

func TestComputeCustomSizes(t *testing.T) {
	nodes := nodesFromIDs("start", "wide")
	edges := edgesFromPairs([2]string{"start", "wide"})

	opts := Options{Sizes: map[string]Size{"wide": {Width: 500, Height: 300}}}
	positions := Compute(nodes, edges, opts)

	// The wide row is the widest, so the narrow start row is centered on it.
	if want := (500 - DefaultNodeWidth) / 2; positions["start"].X != want {
		t.Errorf("start X = %v, want %v", positions["start"].X, want)
	}
	if positions["wide"].X != 0 {
		t.Errorf("wide X = %v, want 0", positions["wide"].X)
	}
}

func TestApplyReplacesPositionsOnly(t *testing.T) {
	nodes := []document.Node{
		{ID: "a", Kind: document.KindElement, Title: "A", Position: document.Position{X: 1, Y: 1}},
		{ID: "b", Kind: document.KindElement, Title: "B", Position: document.Position{X: 2, Y: 2}},
	}
	positions := map[string]document.Position{"a": {X: 10, Y: 20}}

	out := Apply(nodes, positions)

	if out[0].Position.X != 10 || out[0].Position.Y != 20 {
		t.Errorf("a position = %+v, want {10 20}", out[0].Position)
	}
	if out[1].Position.X != 2 {
		t.Error("node without an entry lost its position")
	}
	if out[0].Title != "A" || out[1].Title != "B" {
		t.Error("Apply changed something other than positions")
	}
	if nodes[0].Position.X != 1 {
		t.Error("Apply mutated its input")
	}
}

func TestCountLayerCrossings(t *testing.T) {
	nodes := nodesFromIDs("u1", "u2", "v1", "v2")
	tests := []struct {
		name  string
		edges []document.Edge
		upper []string
		lower []string
		want  int
	}{
		{
			name:  "parallel edges",
			edges: edgesFromPairs([2]string{"u1", "v1"}, [2]string{"u2", "v2"}),
			upper: []string{"u1", "u2"},
			lower: []string{"v1", "v2"},
			want:  0,
		},
		{
			name:  "crossing pair",
			edges: edgesFromPairs([2]string{"u1", "v2"}, [2]string{"u2", "v1"}),
			upper: []string{"u1", "u2"},
			lower: []string{"v1", "v2"},
			want:  1,
		},
		{
			name:  "empty rank",
			edges: nil,
			upper: []string{"u1"},
			lower: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newDigraph(nodes, tt.edges)
			if got := countLayerCrossings(g, tt.upper, tt.lower); got != tt.want {
				t.Errorf("countLayerCrossings = %d, want %d", got, tt.want)
			}
		})
	}
}
