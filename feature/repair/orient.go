package repair

import (
	"fmt"

	"mesh-doctor/core/mesh"
)

// FixNormalDirections propagates a consistent winding across every
// connected component of the adjacency graph. A breadth-first traversal
// is seeded from an arbitrary unvisited facet per component: a facet
// reached over a forward link keeps its winding, one reached over a
// backwards link is reversed in place, which also updates the
// orientation flags of its own links. Each facet is processed exactly
// once, so the pass terminates in O(facets + edges).
//
// Consistency is guaranteed only within a component; the volume
// corrector settles the sign across components afterwards.
func (s *Service) FixNormalDirections() error {
	if err := s.store.Fault(); err != nil {
		return err
	}
	st := s.store
	n := len(st.Facets)

	visited := make([]bool, n)
	queue := make([]int, 0, n)
	reversed := 0

	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		// The seed keeps its winding; the rest of the component follows.
		visited[seed] = true
		queue = append(queue[:0], seed)

		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]

			for j := 0; j < 3; j++ {
				l := st.Neighbors[f][j]
				if l.Kind == mesh.LinkNone {
					continue
				}
				if l.Facet < 0 || l.Facet >= n {
					s.reporter.Defect(DefectEvent{
						Phase:   PhaseNormalDirections,
						Kind:    DefectNeighborOutOfRange,
						Message: fmt.Sprintf("edge %d of facet %d links to facet %d, outside 0..%d", j, f, l.Facet, n-1),
						FacetA:  f,
						EdgeA:   j,
						FacetB:  l.Facet,
					})
					continue
				}
				if visited[l.Facet] {
					continue
				}
				if l.Kind == mesh.LinkBackward {
					st.ReverseFacet(l.Facet)
					reversed++
				}
				visited[l.Facet] = true
				queue = append(queue, l.Facet)
			}
		}
	}

	st.Stats.FacetsReversed += reversed
	st.Stats.BackwardsEdges = st.RecountBackwards()
	return nil
}
