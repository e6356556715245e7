package layout

import (
	"sort"

	"github.com/jverdier/coursemap/pkg/document"
)

// digraph is the internal directed-graph view the layout pipeline works on.
// All node and adjacency slices are kept in sorted order so every pipeline
// stage iterates deterministically regardless of input order.
type digraph struct {
	ids      []string
	outgoing map[string][]string
	incoming map[string][]string
}

// newDigraph builds the internal graph from document nodes and edges.
// Edges with a missing endpoint, self-loops, and duplicate source/target
// pairs are skipped; the layout contract assumes sanitized input but does
// not depend on it.
func newDigraph(nodes []document.Node, edges []document.Edge) *digraph {
	g := &digraph{
		ids:      make([]string, 0, len(nodes)),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}

	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if present[n.ID] {
			continue
		}
		present[n.ID] = true
		g.ids = append(g.ids, n.ID)
	}
	sort.Strings(g.ids)

	seen := make(map[[2]string]bool, len(edges))
	for _, e := range edges {
		if !present[e.Source] || !present[e.Target] || e.Source == e.Target {
			continue
		}
		pair := [2]string{e.Source, e.Target}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
		g.incoming[e.Target] = append(g.incoming[e.Target], e.Source)
	}
	for _, adj := range []map[string][]string{g.outgoing, g.incoming} {
		for _, list := range adj {
			sort.Strings(list)
		}
	}

	return g
}

func (g *digraph) children(id string) []string { return g.outgoing[id] }
func (g *digraph) parents(id string) []string  { return g.incoming[id] }

// isolated returns the ids with no incident edges, in sorted order.
func (g *digraph) isolated() []string {
	var out []string
	for _, id := range g.ids {
		if len(g.outgoing[id]) == 0 && len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// removeEdge drops the directed edge from→to from both adjacency indexes.
func (g *digraph) removeEdge(from, to string) {
	g.outgoing[from] = deleteString(g.outgoing[from], to)
	g.incoming[to] = deleteString(g.incoming[to], from)
}

func deleteString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// breakCycles removes back edges found by depth-first search so the graph
// becomes acyclic. Traversal starts from sources and visits nodes in sorted
// id order, so the set of removed edges is deterministic. Returns the number
// of edges removed.
func (g *digraph) breakCycles() int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.ids))
	var backEdges [][2]string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.children(id) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{id, child})
			}
		}
		color[id] = black
	}

	for _, id := range g.ids {
		if len(g.incoming[id]) == 0 && color[id] == white {
			dfs(id)
		}
	}
	for _, id := range g.ids {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range backEdges {
		g.removeEdge(e[0], e[1])
	}
	return len(backEdges)
}

// assignRanks computes the longest-path rank of every non-isolated node via
// topological traversal (Kahn's algorithm). Each node lands at one plus the
// maximum rank of its parents; sources sit at rank 0. Assumes breakCycles ran
// first, otherwise nodes on a cycle keep rank 0.
func (g *digraph) assignRanks() map[string]int {
	inDegree := make(map[string]int, len(g.ids))
	ranks := make(map[string]int)
	queue := make([]string, 0, len(g.ids))

	for _, id := range g.ids {
		if len(g.outgoing[id]) == 0 && len(g.incoming[id]) == 0 {
			continue
		}
		degree := len(g.incoming[id])
		inDegree[id] = degree
		ranks[id] = 0
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}
