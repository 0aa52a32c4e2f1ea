package repair

import (
	"math"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

// edgeKey is the direction-independent identity of an edge: the bit
// patterns of both endpoints with the lexicographically smaller one
// first. Two edges share a key exactly when their endpoint coordinates
// are bit-identical.
type edgeKey [6]uint32

// pendingEdge is an edge waiting in the exact index for its partner.
// swapped records whether canonicalization reversed the endpoint order,
// which is what distinguishes a reverse-direction match from a
// same-direction one.
type pendingEdge struct {
	facet   int
	edge    int
	swapped bool
}

func packVertex(v geom.Vector3) [3]uint32 {
	return [3]uint32{
		math.Float32bits(v.X),
		math.Float32bits(v.Y),
		math.Float32bits(v.Z),
	}
}

func lessBits(a, b [3]uint32) bool {
	for c := 0; c < 3; c++ {
		if a[c] != b[c] {
			return a[c] < b[c]
		}
	}
	return false
}

// makeEdgeKey canonicalizes the directed edge p1->p2 and reports
// whether the endpoints were swapped to do so.
func makeEdgeKey(p1, p2 geom.Vector3) (edgeKey, bool) {
	a, b := packVertex(p1), packVertex(p2)
	swapped := lessBits(b, a)
	if swapped {
		a, b = b, a
	}
	return edgeKey{a[0], a[1], a[2], b[0], b[1], b[2]}, swapped
}

// CheckExact rebuilds the neighbor table from scratch by pairing edges
// with bit-identical endpoint coordinates. A reverse-direction pair is
// a correct neighbor link; a same-direction pair is recorded too but
// counted as a backwards edge. With non-manifold input the first match
// wins and later duplicates stay unmatched, surfacing as residual
// defects for the nearby and hole passes. Runs in time proportional to
// the total edge count.
func (s *Service) CheckExact() error {
	if err := s.store.Fault(); err != nil {
		return err
	}
	st := s.store
	st.ResetNeighbors()

	index := make(map[edgeKey][]pendingEdge, 3*len(st.Facets))
	for i := range st.Facets {
		// Zero-area facets are never offered as match targets; they end
		// up at degree 0 and get pruned as noise.
		if st.Facets[i].IsDegenerate() {
			continue
		}
		for j := 0; j < 3; j++ {
			p1, p2 := st.Facets[i].Edge(j)
			key, swapped := makeEdgeKey(p1, p2)

			matched := false
			pending := index[key]
			for k, cand := range pending {
				if cand.facet == i {
					continue
				}
				kind := mesh.LinkForward
				if cand.swapped == swapped {
					// Both edges run the same way: the neighbor is
					// wound oppositely.
					kind = mesh.LinkBackward
					st.Stats.BackwardsEdges++
				}
				st.LinkEdges(i, j, cand.facet, cand.edge, kind)
				index[key] = append(pending[:k], pending[k+1:]...)
				matched = true
				break
			}
			if !matched {
				index[key] = append(pending, pendingEdge{facet: i, edge: j, swapped: swapped})
			}
		}
	}

	st.RecountDegrees()
	return nil
}
