package document

// SanitizeStats reports what the sanitization pass had to repair.
// A freshly sanitized document run through [Sanitize] again yields all-zero
// stats; anything else is a bug.
type SanitizeStats struct {
	// NodeIDsRegenerated counts nodes whose identifier was missing,
	// malformed, or a duplicate and had to be replaced.
	NodeIDsRegenerated int

	// EdgeIDsRegenerated counts edges whose identifier had to be replaced.
	EdgeIDsRegenerated int

	// Pruned holds the edges dropped because an endpoint did not resolve to
	// an existing node after remapping. Pruned edges are reported here, never
	// silently lost.
	Pruned []Edge
}

// PrunedEdgeCount returns the number of pruned edges.
func (s SanitizeStats) PrunedEdgeCount() int { return len(s.Pruned) }

// Clean reports whether sanitization found nothing to repair.
func (s SanitizeStats) Clean() bool {
	return s.NodeIDsRegenerated == 0 && s.EdgeIDsRegenerated == 0 && len(s.Pruned) == 0
}

// Sanitize repairs a raw document into a structurally valid one:
//
//   - Every node lacking a valid unique identifier gets a fresh one; the
//     old→new mapping is applied to edge endpoints.
//   - Every edge lacking a valid unique identifier gets a fresh one.
//   - After remapping, edges whose source or target does not match an
//     existing node are pruned and reported in the stats.
//   - At most one node keeps the root kind (first in slice order); any
//     further root claims are demoted to elements. Nodes with an unknown
//     kind become elements.
//   - Unrecognized field keys are dropped per the closed per-kind key sets.
//
// Sanitize is idempotent and never fails: malformed input is repaired, not
// rejected. The input document is not mutated; the returned document shares
// no slices or maps with it.
func Sanitize(raw Document) (Document, SanitizeStats) {
	doc := raw.Clone()
	var stats SanitizeStats

	// Pass 1: node identifiers and kinds.
	remap := make(map[string]string)
	seen := make(map[string]bool, len(doc.Nodes))
	rootSeen := false
	for i := range doc.Nodes {
		n := &doc.Nodes[i]

		if !ValidID(n.ID) || seen[n.ID] {
			fresh := NewID()
			// Only the first holder of an id owns it: remapping applies to
			// invalid ids, not to the later duplicates of a valid one.
			if n.ID != "" && !seen[n.ID] {
				remap[n.ID] = fresh
			}
			n.ID = fresh
			stats.NodeIDsRegenerated++
		}
		seen[n.ID] = true

		switch n.Kind {
		case KindRoot:
			if rootSeen {
				n.Kind = KindElement
			}
			rootSeen = true
		case KindElement:
		default:
			n.Kind = KindElement
		}

		n.Fields = filterFields(n.Kind, n.Fields)
	}

	// Pass 2: edge identifiers, endpoint remapping, and pruning.
	nodeIDs := doc.NodeIDs()
	seenEdges := make(map[string]bool, len(doc.Edges))
	kept := doc.Edges[:0]
	for _, e := range doc.Edges {
		if to, ok := remap[e.Source]; ok {
			e.Source = to
		}
		if to, ok := remap[e.Target]; ok {
			e.Target = to
		}

		if !nodeIDs[e.Source] || !nodeIDs[e.Target] {
			stats.Pruned = append(stats.Pruned, e)
			continue
		}

		if !ValidID(e.ID) || e.ID == StartNodeID || seenEdges[e.ID] {
			e.ID = NewID()
			stats.EdgeIDsRegenerated++
		}
		seenEdges[e.ID] = true
		kept = append(kept, e)
	}
	doc.Edges = kept

	return doc, stats
}
