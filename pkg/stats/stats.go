// Package stats derives aggregate metrics from a graph document by directed
// reachability from the start node.
//
// Only nodes on the authored path count: traversal follows edges source to
// target from the start anchor, so orphaned nodes present in the document do
// not contribute to module counts, durations, or families.
package stats

import (
	"sort"
	"time"

	"github.com/jverdier/coursemap/pkg/document"
)

// SessionLength is the fixed wall-clock length of one duration unit. A node
// with DurationUnits = 2 contributes 90 minutes to the path total.
const SessionLength = 45 * time.Minute

// Summary holds the metrics derived from one reachability pass.
type Summary struct {
	// ModuleCount is the number of connected nodes, excluding the start node.
	ModuleCount int

	// TotalDuration is the summed duration of connected non-start nodes.
	TotalDuration time.Duration

	// Families lists the family tags present on connected non-start nodes,
	// sorted and deduplicated.
	Families []string

	// Connected is the set of node ids reachable from the start node,
	// including the start node itself.
	Connected map[string]bool

	// Classification is the human-readable path classification derived from
	// Families, see Classify.
	Classification string
}

// Compute runs a breadth-first traversal of doc from startID and aggregates
// the summary metrics. Traversal is directed (source to target only) and
// visits each node at most once. If startID is absent from the node set the
// connected set is empty and all metrics are zero; this is not an error.
func Compute(doc document.Document, startID string) Summary {
	s := Summary{Connected: make(map[string]bool)}

	if _, ok := doc.Node(startID); !ok {
		s.Classification = Classify(nil)
		return s
	}

	adjacency := make(map[string][]string, len(doc.Nodes))
	for _, e := range doc.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	queue := []string{startID}
	s.Connected[startID] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[cur] {
			if s.Connected[next] {
				continue
			}
			s.Connected[next] = true
			queue = append(queue, next)
		}
	}

	families := make(map[string]bool)
	for _, n := range doc.Nodes {
		if !s.Connected[n.ID] || n.ID == startID {
			continue
		}
		s.ModuleCount++
		s.TotalDuration += time.Duration(n.DurationUnits) * SessionLength
		if n.Family != "" {
			families[n.Family] = true
		}
	}

	s.Families = make([]string, 0, len(families))
	for f := range families {
		s.Families = append(s.Families, f)
	}
	sort.Strings(s.Families)
	s.Classification = Classify(s.Families)

	return s
}
