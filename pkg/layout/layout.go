// Package layout places the nodes of a graph document with a deterministic
// layered layout: longest-path ranking assigns each node a row, barycenter
// sweeps order the rows to reduce edge crossings, and coordinate assignment
// centers each row horizontally.
//
// Identical input (same node ids, edge set, and dimensions) always yields
// identical positions. Prior node positions never influence the result, so
// layouts are reproducible test fixtures.
package layout

import "github.com/jverdier/coursemap/pkg/document"

// Default node dimensions and gaps, in canvas units.
const (
	DefaultNodeWidth  = 180.0
	DefaultNodeHeight = 80.0
	DefaultHGap       = 60.0
	DefaultVGap       = 120.0
)

// Size is a node's width and height on the canvas.
type Size struct {
	Width  float64
	Height float64
}

// Options configures a layout computation. The zero value uses the default
// dimensions for every node.
type Options struct {
	// NodeWidth and NodeHeight are the dimensions applied to nodes without an
	// entry in Sizes. Zero values fall back to the package defaults.
	NodeWidth  float64
	NodeHeight float64

	// Sizes overrides dimensions per node id. Entries with zero width or
	// height fall back to NodeWidth/NodeHeight for that dimension.
	Sizes map[string]Size

	// HGap and VGap are the horizontal gap between nodes in a row and the
	// vertical gap between rows. Zero values fall back to the defaults.
	HGap float64
	VGap float64
}

func (o Options) withDefaults() Options {
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.HGap <= 0 {
		o.HGap = DefaultHGap
	}
	if o.VGap <= 0 {
		o.VGap = DefaultVGap
	}
	return o
}

func (o Options) size(id string) Size {
	s := o.Sizes[id]
	if s.Width <= 0 {
		s.Width = o.NodeWidth
	}
	if s.Height <= 0 {
		s.Height = o.NodeHeight
	}
	return s
}

// Compute returns a position for every node. The pipeline:
//
//  1. Build the internal directed graph (dangling edges, self-loops, and
//     duplicate edges are ignored).
//  2. Break cycles by removing back edges in deterministic DFS order.
//  3. Assign ranks by longest path from the sources.
//  4. Order each rank with barycenter sweeps, minimizing edge crossings.
//  5. Assign coordinates: rows stacked top to bottom, each row centered on
//     the widest row.
//
// Isolated nodes (no edges at all) are placed in their own fallback row below
// the deepest rank, ordered by id, so they never pile up at the origin.
func Compute(nodes []document.Node, edges []document.Edge, opts Options) map[string]document.Position {
	opts = opts.withDefaults()
	g := newDigraph(nodes, edges)

	isolated := g.isolated()
	g.breakCycles()
	orders := orderRanks(g, g.assignRanks())
	if len(isolated) > 0 {
		orders = append(orders, isolated)
	}

	return assignCoordinates(orders, opts)
}

// Apply returns a copy of nodes with positions replaced from the map. Nodes
// without an entry keep their current position; nothing else changes.
func Apply(nodes []document.Node, positions map[string]document.Position) []document.Node {
	out := make([]document.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if p, ok := positions[n.ID]; ok {
			out[i].Position = p
		}
	}
	return out
}

// assignCoordinates turns row orderings into concrete positions. A node's
// position is its top-left corner. Rows advance downward by the tallest node
// in the row plus the vertical gap; within a row, nodes advance rightward by
// their width plus the horizontal gap, and each row is centered on the widest
// row.
func assignCoordinates(orders [][]string, opts Options) map[string]document.Position {
	positions := make(map[string]document.Position)

	widest := 0.0
	for _, row := range orders {
		if w := rowWidth(row, opts); w > widest {
			widest = w
		}
	}

	y := 0.0
	for _, row := range orders {
		if len(row) == 0 {
			continue
		}
		x := (widest - rowWidth(row, opts)) / 2
		tallest := 0.0
		for _, id := range row {
			s := opts.size(id)
			positions[id] = document.Position{X: x, Y: y}
			x += s.Width + opts.HGap
			if s.Height > tallest {
				tallest = s.Height
			}
		}
		y += tallest + opts.VGap
	}

	return positions
}

func rowWidth(row []string, opts Options) float64 {
	if len(row) == 0 {
		return 0
	}
	w := float64(len(row)-1) * opts.HGap
	for _, id := range row {
		w += opts.size(id).Width
	}
	return w
}
