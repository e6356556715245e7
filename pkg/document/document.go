package document

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kinds.
const (
	// KindRoot marks the single anchor node a path grows from.
	KindRoot = "root"
	// KindElement marks a regular course module or blueprint element.
	KindElement = "element"
)

// StartNodeID is the reserved identifier of the start anchor in Formation
// Builder documents. It is always present, never removable, and exempt from
// the UUID shape requirement that applies to every other identifier.
const StartNodeID = "start"

// =============================================================================
// Node
// =============================================================================

// Position is a node's placement on the canvas, in canvas units.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a vertex in a graph document: a course module, a blueprint element,
// or the root/start anchor.
type Node struct {
	ID            string            `json:"id" bson:"id"`
	Kind          string            `json:"kind" bson:"kind"`
	Position      Position          `json:"position" bson:"position"`
	Title         string            `json:"title" bson:"title"`
	Family        string            `json:"family,omitempty" bson:"family,omitempty"`
	Subfamily     string            `json:"subfamily,omitempty" bson:"subfamily,omitempty"`
	Fields        map[string]string `json:"fields,omitempty" bson:"fields,omitempty"`
	DurationUnits int               `json:"duration_units,omitempty" bson:"duration_units,omitempty"`
}

// IsRoot reports whether the node is the root/start anchor.
func (n *Node) IsRoot() bool { return n.Kind == KindRoot }

// DisplayTitle returns the title if set, otherwise the ID.
func (n *Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string            `json:"id" bson:"id"`
	Source string            `json:"source" bson:"source"`
	Target string            `json:"target" bson:"target"`
	Meta   map[string]string `json:"meta,omitempty" bson:"meta,omitempty"`
}

// =============================================================================
// Document
// =============================================================================

// Document is the canonical serialization format for graph documents.
// Used for API responses, storage, share snapshots, and CLI files.
//
// A Document is a value: editing code never mutates one in place but derives
// new values via [Document.Clone]. Persisted snapshots are the source of
// truth between sessions.
type Document struct {
	ID        string    `json:"id,omitempty" bson:"id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Nodes     []Node    `json:"nodes" bson:"nodes"`
	Edges     []Edge    `json:"edges" bson:"edges"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// NewFormation creates an empty Formation Builder document containing only
// the non-removable start anchor.
func NewFormation(title string) Document {
	return Document{
		Title: title,
		Nodes: []Node{{
			ID:    StartNodeID,
			Kind:  KindRoot,
			Title: "Start",
		}},
	}
}

// Node returns the node with the given ID and true, or a zero node and false.
func (d *Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given ID and true, or a zero edge and false.
func (d *Document) Edge(id string) (Edge, bool) {
	for _, e := range d.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// Root returns the root/start anchor node and true, or a zero node and false.
// When multiple nodes claim the root kind (only possible on unsanitized
// input), the first in slice order wins.
func (d *Document) Root() (Node, bool) {
	for _, n := range d.Nodes {
		if n.Kind == KindRoot {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the set of node identifiers.
func (d *Document) NodeIDs() map[string]bool {
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		ids[n.ID] = true
	}
	return ids
}

// HasEdge reports whether a directed edge source→target already exists.
func (d *Document) HasEdge(source, target string) bool {
	for _, e := range d.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document. Node and edge slices and their
// nested maps are copied, so mutations of the clone never alias the original.
func (d Document) Clone() Document {
	out := d
	out.Nodes = make([]Node, len(d.Nodes))
	for i, n := range d.Nodes {
		out.Nodes[i] = n
		out.Nodes[i].Fields = copyStringMap(n.Fields)
	}
	out.Edges = make([]Edge, len(d.Edges))
	for i, e := range d.Edges {
		out.Edges[i] = e
		out.Edges[i].Meta = copyStringMap(e.Meta)
	}
	return out
}

// copyStringMap creates a copy of a string map, preserving nil.
func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// =============================================================================
// Identifiers
// =============================================================================

// NewID generates a fresh unique node/edge/document identifier.
func NewID() string { return uuid.NewString() }

// ValidID reports whether id is a well-formed identifier: the reserved start
// id, or a canonical UUID string.
func ValidID(id string) bool {
	if id == StartNodeID {
		return true
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	// uuid.Parse accepts several variants (braces, URN prefix); only the
	// canonical 36-character form round-trips through storage unchanged.
	return u.String() == id
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a Document to pretty-printed JSON bytes.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Document.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return d, nil
}

// WriteFile writes a Document to a JSON file.
func WriteFile(d Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Document from a JSON file.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
