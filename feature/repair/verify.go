package repair

import (
	"fmt"

	"mesh-doctor/core/mesh"
)

// VerifyNeighbors recomputes the expected reverse-neighbor relationship
// for every recorded link and reports any mismatch as a structured
// diagnostic naming both facets: an asymmetric link, a wrong
// shared-edge index, or shared-edge coordinates that no longer line up. The
// pass is diagnostic only and never mutates the mesh; an out-of-range
// neighbor reference is surfaced prominently but halts nothing.
func (s *Service) VerifyNeighbors() error {
	if err := s.store.Fault(); err != nil {
		return err
	}
	st := s.store
	n := len(st.Facets)

	backwards := 0
	for i := range st.Neighbors {
		for j := 0; j < 3; j++ {
			l := st.Neighbors[i][j]
			if l.Kind == mesh.LinkNone {
				continue
			}
			if l.Kind == mesh.LinkBackward {
				backwards++
			}
			if l.Facet < 0 || l.Facet >= n {
				s.reporter.Defect(DefectEvent{
					Phase:   PhaseVerify,
					Kind:    DefectNeighborOutOfRange,
					Message: fmt.Sprintf("edge %d of facet %d links to facet %d, outside 0..%d", j, i, l.Facet, n-1),
					FacetA:  i,
					EdgeA:   j,
					FacetB:  l.Facet,
				})
				continue
			}

			back := st.Neighbors[l.Facet][l.NeighborEdge()]
			if back.Kind == mesh.LinkNone || back.Facet != i || back.NeighborEdge() != j || back.Kind != l.Kind {
				s.reporter.Defect(DefectEvent{
					Phase:   PhaseVerify,
					Kind:    DefectAsymmetricLink,
					Message: fmt.Sprintf("edge %d of facet %d links to facet %d, which does not link back", j, i, l.Facet),
					FacetA:  i,
					EdgeA:   j,
					FacetB:  l.Facet,
				})
				continue
			}

			p1, p2 := st.Facets[i].Edge(j)
			q1, q2 := st.Facets[l.Facet].Edge(l.NeighborEdge())
			matches := false
			switch l.Kind {
			case mesh.LinkForward:
				matches = p1 == q2 && p2 == q1
			case mesh.LinkBackward:
				matches = p1 == q1 && p2 == q2
			}
			if !matches {
				s.reporter.Defect(DefectEvent{
					Phase:   PhaseVerify,
					Kind:    DefectEdgeMismatch,
					Message: fmt.Sprintf("edge %d of facet %d does not match edge %d of facet %d", j, i, l.NeighborEdge(), l.Facet),
					FacetA:  i,
					EdgeA:   j,
					FacetB:  l.Facet,
				})
			}
		}
	}

	st.Stats.BackwardsEdges = backwards / 2
	return nil
}
