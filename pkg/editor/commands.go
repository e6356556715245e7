package editor

import (
	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/errors"
	"github.com/jverdier/coursemap/pkg/history"
	"github.com/jverdier/coursemap/pkg/layout"
)

// AddNode instantiates a node from a catalog template at the given position
// and returns the new node's id. The id is generated here and captured by the
// command, so undo/redo replays deterministically.
func (s *Session) AddNode(templateID string, pos document.Position) (string, error) {
	tpl, ok := s.catalog.Get(templateID)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidTemplate, "unknown template: %s", templateID)
	}

	node := document.Node{
		ID:            document.NewID(),
		Kind:          document.KindElement,
		Position:      pos,
		Title:         tpl.Title,
		Family:        tpl.Family,
		Subfamily:     tpl.Subfamily,
		DurationUnits: tpl.DefaultDurationUnits,
	}
	if tpl.Description != "" {
		node.Fields = map[string]string{"description": tpl.Description}
	}

	s.apply(history.Command{
		Label: "add node",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Nodes = append(out.Nodes, node)
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Nodes = removeNode(out.Nodes, node.ID)
			return out
		},
	})
	return node.ID, nil
}

// MoveNode changes a node's position.
func (s *Session) MoveNode(id string, pos document.Position) error {
	node, ok := s.doc.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node not found: %s", id)
	}
	from := node.Position

	s.apply(history.Command{
		Label: "move node",
		Apply: func(d document.Document) document.Document {
			return setPosition(d, id, pos)
		},
		Invert: func(d document.Document) document.Document {
			return setPosition(d, id, from)
		},
	})
	return nil
}

// RemoveNode deletes a node and prunes its incident edges. The root/start
// node is protected and cannot be removed.
func (s *Session) RemoveNode(id string) error {
	node, ok := s.doc.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node not found: %s", id)
	}
	if node.IsRoot() {
		return errors.New(errors.ErrCodeStartProtected, "the start node cannot be removed")
	}

	// Capture the node and its incident edges with their slice indices so
	// undo restores the exact document shape.
	nodeIdx := indexOfNode(s.doc.Nodes, id)
	type indexedEdge struct {
		idx  int
		edge document.Edge
	}
	var removed []indexedEdge
	for i, e := range s.doc.Edges {
		if e.Source == id || e.Target == id {
			removed = append(removed, indexedEdge{i, e})
		}
	}

	s.apply(history.Command{
		Label: "remove node",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Nodes = removeNode(out.Nodes, id)
			kept := out.Edges[:0]
			for _, e := range out.Edges {
				if e.Source != id && e.Target != id {
					kept = append(kept, e)
				}
			}
			out.Edges = kept
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Nodes = insertNode(out.Nodes, nodeIdx, node)
			for _, ie := range removed {
				out.Edges = insertEdge(out.Edges, ie.idx, ie.edge)
			}
			return out
		},
	})
	return nil
}

// Connect adds a directed edge between two existing nodes and returns its id.
// Self-loops and duplicate source/target pairs are rejected.
func (s *Session) Connect(sourceID, targetID string) (string, error) {
	if _, ok := s.doc.Node(sourceID); !ok {
		return "", errors.New(errors.ErrCodeNodeNotFound, "source node not found: %s", sourceID)
	}
	if _, ok := s.doc.Node(targetID); !ok {
		return "", errors.New(errors.ErrCodeNodeNotFound, "target node not found: %s", targetID)
	}
	if sourceID == targetID {
		return "", errors.New(errors.ErrCodeInvalidEdge, "self-loops are not allowed")
	}
	if s.doc.HasEdge(sourceID, targetID) {
		return "", errors.New(errors.ErrCodeDuplicateEdge, "edge already exists: %s -> %s", sourceID, targetID)
	}

	edge := document.Edge{ID: document.NewID(), Source: sourceID, Target: targetID}

	s.apply(history.Command{
		Label: "connect",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Edges = append(out.Edges, edge)
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Edges = removeEdge(out.Edges, edge.ID)
			return out
		},
	})
	return edge.ID, nil
}

// Disconnect removes an edge by id.
func (s *Session) Disconnect(edgeID string) error {
	edge, ok := s.doc.Edge(edgeID)
	if !ok {
		return errors.New(errors.ErrCodeEdgeNotFound, "edge not found: %s", edgeID)
	}
	idx := indexOfEdge(s.doc.Edges, edgeID)

	s.apply(history.Command{
		Label: "disconnect",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Edges = removeEdge(out.Edges, edgeID)
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Edges = insertEdge(out.Edges, idx, edge)
			return out
		},
	})
	return nil
}

// SetTitle changes a node's title.
func (s *Session) SetTitle(nodeID, title string) error {
	node, ok := s.doc.Node(nodeID)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node not found: %s", nodeID)
	}
	if err := errors.ValidateTitle(title); err != nil {
		return err
	}
	old := node.Title

	s.apply(history.Command{
		Label: "set title",
		Apply: func(d document.Document) document.Document {
			return setTitle(d, nodeID, title)
		},
		Invert: func(d document.Document) document.Document {
			return setTitle(d, nodeID, old)
		},
	})
	return nil
}

// RenameDocument changes the document title.
func (s *Session) RenameDocument(title string) error {
	if err := errors.ValidateTitle(title); err != nil {
		return err
	}
	old := s.doc.Title

	s.apply(history.Command{
		Label: "rename document",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Title = title
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Title = old
			return out
		},
	})
	return nil
}

// SetField sets a field value on a node. The key must belong to the closed
// field key set of the node's kind.
func (s *Session) SetField(nodeID, key, value string) error {
	node, ok := s.doc.Node(nodeID)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node not found: %s", nodeID)
	}
	if err := errors.ValidateFieldKey(key); err != nil {
		return err
	}
	if !document.RecognizedField(node.Kind, key) {
		return errors.New(errors.ErrCodeInvalidField, "field %q is not recognized for %s nodes", key, node.Kind)
	}
	old, had := node.Fields[key]

	s.apply(history.Command{
		Label: "set field",
		Apply: func(d document.Document) document.Document {
			return setField(d, nodeID, key, value, true)
		},
		Invert: func(d document.Document) document.Document {
			return setField(d, nodeID, key, old, had)
		},
	})
	return nil
}

// AutoLayout recomputes all node positions with the layered layout. Both the
// previous and the new positions are captured up front, so undo restores the
// hand-arranged layout exactly.
func (s *Session) AutoLayout(opts layout.Options) {
	before := make(map[string]document.Position, len(s.doc.Nodes))
	for _, n := range s.doc.Nodes {
		before[n.ID] = n.Position
	}
	after := layout.Compute(s.doc.Nodes, s.doc.Edges, opts)

	s.apply(history.Command{
		Label: "auto layout",
		Apply: func(d document.Document) document.Document {
			out := d.Clone()
			out.Nodes = layout.Apply(out.Nodes, after)
			return out
		},
		Invert: func(d document.Document) document.Document {
			out := d.Clone()
			out.Nodes = layout.Apply(out.Nodes, before)
			return out
		},
	})
}

// =============================================================================
// Slice helpers
// =============================================================================

func indexOfNode(nodes []document.Node, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func indexOfEdge(edges []document.Edge, id string) int {
	for i, e := range edges {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func removeNode(nodes []document.Node, id string) []document.Node {
	if i := indexOfNode(nodes, id); i >= 0 {
		return append(nodes[:i], nodes[i+1:]...)
	}
	return nodes
}

func removeEdge(edges []document.Edge, id string) []document.Edge {
	if i := indexOfEdge(edges, id); i >= 0 {
		return append(edges[:i], edges[i+1:]...)
	}
	return edges
}

func insertNode(nodes []document.Node, idx int, n document.Node) []document.Node {
	if idx < 0 || idx > len(nodes) {
		return append(nodes, n)
	}
	nodes = append(nodes, document.Node{})
	copy(nodes[idx+1:], nodes[idx:])
	nodes[idx] = n
	return nodes
}

func insertEdge(edges []document.Edge, idx int, e document.Edge) []document.Edge {
	if idx < 0 || idx > len(edges) {
		return append(edges, e)
	}
	edges = append(edges, document.Edge{})
	copy(edges[idx+1:], edges[idx:])
	edges[idx] = e
	return edges
}

func setPosition(d document.Document, id string, pos document.Position) document.Document {
	out := d.Clone()
	if i := indexOfNode(out.Nodes, id); i >= 0 {
		out.Nodes[i].Position = pos
	}
	return out
}

func setTitle(d document.Document, id, title string) document.Document {
	out := d.Clone()
	if i := indexOfNode(out.Nodes, id); i >= 0 {
		out.Nodes[i].Title = title
	}
	return out
}

func setField(d document.Document, id, key, value string, present bool) document.Document {
	out := d.Clone()
	i := indexOfNode(out.Nodes, id)
	if i < 0 {
		return out
	}
	if !present {
		delete(out.Nodes[i].Fields, key)
		if len(out.Nodes[i].Fields) == 0 {
			out.Nodes[i].Fields = nil
		}
		return out
	}
	if out.Nodes[i].Fields == nil {
		out.Nodes[i].Fields = make(map[string]string)
	}
	out.Nodes[i].Fields[key] = value
	return out
}
