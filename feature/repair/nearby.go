package repair

import (
	"math"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

// openEdge identifies one still-unmatched directed edge. Coordinates
// are always fetched live from the Store because snapping may move them
// while the pass runs.
type openEdge struct {
	facet   int
	edge    int
	matched bool
}

// cellKey addresses one cell of the uniform matching grid.
type cellKey struct {
	x, y, z int64
}

func cellOf(v geom.Vector3, size float64) cellKey {
	return cellKey{
		x: int64(math.Floor(float64(v.X) / size)),
		y: int64(math.Floor(float64(v.Y) / size)),
		z: int64(math.Floor(float64(v.Z) / size)),
	}
}

// CheckNearby runs one iteration of tolerance-based matching over the
// edges the exact matcher left unmatched. Two unmatched edges of
// different facets merge when their corresponding endpoints lie within
// tolerance of each other; the second edge's endpoints snap to the
// first edge's coordinates, and the link is recorded exactly as an
// exact match would be, including backwards accounting for
// same-direction pairs. Returns the number of edges newly fixed (one
// per facet, so a merged pair counts two).
//
// The pass is heuristic: a larger tolerance risks merging edges that
// were never meant to coincide on small or dense meshes. The caller
// bounds it through the iteration cap.
func (s *Service) CheckNearby(tolerance float64) (int, error) {
	if err := s.store.Fault(); err != nil {
		return 0, err
	}
	if tolerance <= 0 {
		return 0, nil
	}
	st := s.store

	var edges []openEdge
	for i := range st.Neighbors {
		if st.Facets[i].IsDegenerate() {
			continue
		}
		for j := 0; j < 3; j++ {
			if st.Neighbors[i][j].Kind == mesh.LinkNone {
				edges = append(edges, openEdge{facet: i, edge: j})
			}
		}
	}
	if len(edges) == 0 {
		return 0, nil
	}

	// Index edges by the grid cell of their midpoint. Endpoints within
	// tolerance imply midpoints within tolerance, so a candidate is
	// always in one of the 27 cells around the query midpoint.
	grid := make(map[cellKey][]int, len(edges))
	for idx, e := range edges {
		p1, p2 := st.Facets[e.facet].Edge(e.edge)
		mid := p1.Add(p2).Scale(0.5)
		c := cellOf(mid, tolerance)
		grid[c] = append(grid[c], idx)
	}

	fixed := 0
	for idx := range edges {
		e := &edges[idx]
		if e.matched {
			continue
		}
		p1, p2 := st.Facets[e.facet].Edge(e.edge)
		mid := p1.Add(p2).Scale(0.5)
		center := cellOf(mid, tolerance)

		var (
			found     *openEdge
			foundKind mesh.LinkKind
		)
	search:
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					c := cellKey{center.x + dx, center.y + dy, center.z + dz}
					for _, cidx := range grid[c] {
						if cidx == idx {
							continue
						}
						cand := &edges[cidx]
						if cand.matched || cand.facet == e.facet {
							continue
						}
						q1, q2 := st.Facets[cand.facet].Edge(cand.edge)
						switch {
						case p1.DistanceTo(q2) <= tolerance && p2.DistanceTo(q1) <= tolerance:
							found, foundKind = cand, mesh.LinkForward
							break search
						case p1.DistanceTo(q1) <= tolerance && p2.DistanceTo(q2) <= tolerance:
							found, foundKind = cand, mesh.LinkBackward
							break search
						}
					}
				}
			}
		}
		if found == nil {
			continue
		}

		// Snap the candidate's endpoints onto this edge's coordinates,
		// propagating each move through facets already sharing the old
		// position so existing exact links stay bit-identical.
		if foundKind == mesh.LinkForward {
			s.changeVertex(found.facet, found.edge, p2)
			s.changeVertex(found.facet, (found.edge+1)%3, p1)
		} else {
			s.changeVertex(found.facet, found.edge, p1)
			s.changeVertex(found.facet, (found.edge+1)%3, p2)
		}

		st.LinkEdges(e.facet, e.edge, found.facet, found.edge, foundKind)
		if foundKind == mesh.LinkBackward {
			st.Stats.BackwardsEdges++
		}
		e.matched = true
		found.matched = true
		fixed += 2
	}

	st.Stats.EdgesFixed += fixed
	st.RecountDegrees()
	if fixed > 0 {
		st.ComputeStats()
	}
	return fixed, nil
}

// changeVertex moves vertex vi of facet f to a new position and applies
// the same move to every facet reachable through neighbor links that
// holds the old position, keeping linked edges bit-identical.
func (s *Service) changeVertex(f, vi int, to geom.Vector3) {
	st := s.store
	from := st.Facets[f].Vertices[vi]
	if from == to {
		return
	}

	type facetVertex struct {
		facet, vertex int
	}
	seen := make(map[facetVertex]bool)
	stack := []facetVertex{{f, vi}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		st.Facets[cur.facet].Vertices[cur.vertex] = to

		// The vertex sits on two of the facet's edges: the one it
		// starts and the one it ends.
		for _, j := range [2]int{cur.vertex, (cur.vertex + 2) % 3} {
			l := st.Neighbors[cur.facet][j]
			if l.Kind == mesh.LinkNone {
				continue
			}
			for nv := 0; nv < 3; nv++ {
				if st.Facets[l.Facet].Vertices[nv] == from {
					stack = append(stack, facetVertex{l.Facet, nv})
				}
			}
		}
	}
}
