package layout

import "sort"

// orderRanks arranges the nodes of each rank left to right, minimizing edge
// crossings with the classic barycenter heuristic: each node is pulled toward
// the average position of its neighbors in the adjacent rank, alternating
// top-down and bottom-up sweeps. The ordering with the fewest total crossings
// seen across sweeps wins; ties and neighborless nodes fall back to the
// current position, and the initial order is sorted by id, so the result is
// fully deterministic.
func orderRanks(g *digraph, ranks map[string]int) [][]string {
	maxRank := -1
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	if maxRank < 0 {
		return nil
	}

	orders := make([][]string, maxRank+1)
	for _, id := range g.ids {
		if r, ok := ranks[id]; ok {
			orders[r] = append(orders[r], id)
		}
	}
	for _, row := range orders {
		sort.Strings(row)
	}

	best := cloneOrders(orders)
	bestCrossings := totalCrossings(g, best)

	const passes = 4
	for p := 0; p < passes && bestCrossings > 0; p++ {
		if p%2 == 0 {
			for r := 1; r <= maxRank; r++ {
				sortByBarycenter(orders[r], orders[r-1], g.parents)
			}
		} else {
			for r := maxRank - 1; r >= 0; r-- {
				sortByBarycenter(orders[r], orders[r+1], g.children)
			}
		}

		if c := totalCrossings(g, orders); c < bestCrossings {
			bestCrossings = c
			best = cloneOrders(orders)
		}
	}

	return best
}

// sortByBarycenter reorders row in place by the average position of each
// node's neighbors in the adjacent rank. Nodes without neighbors keep their
// current position as the barycenter, and the sort is stable, so neighborless
// nodes never move relative to each other.
func sortByBarycenter(row, adjacent []string, neighbors func(string) []string) {
	adjPos := posMap(adjacent)
	bary := make(map[string]float64, len(row))
	for i, id := range row {
		sum, count := 0.0, 0
		for _, n := range neighbors(id) {
			if p, ok := adjPos[n]; ok {
				sum += float64(p)
				count++
			}
		}
		if count == 0 {
			bary[id] = float64(i)
		} else {
			bary[id] = sum / float64(count)
		}
	}
	sort.SliceStable(row, func(i, j int) bool { return bary[row[i]] < bary[row[j]] })
}

// totalCrossings sums the edge crossings between every pair of adjacent ranks.
func totalCrossings(g *digraph, orders [][]string) int {
	crossings := 0
	for r := 0; r < len(orders)-1; r++ {
		crossings += countLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// countLayerCrossings counts edge crossings between two adjacent ranks by
// counting inversions in the sequence of target positions with a Fenwick
// tree, O(E log V) instead of the naive O(E²) pairwise check. Two edges
// (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and pos(v1) > pos(v2).
func countLayerCrossings(g *digraph, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := posMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, id := range upper {
		for _, child := range g.children(id) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].upper != edges[j].upper {
			return edges[i].upper < edges[j].upper
		}
		return edges[i].lower < edges[j].lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

func posMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func cloneOrders(orders [][]string) [][]string {
	out := make([][]string, len(orders))
	for i, row := range orders {
		out[i] = append([]string(nil), row...)
	}
	return out
}
