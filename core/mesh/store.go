package mesh

import (
	"fmt"

	"mesh-doctor/core/geom"
)

// Store owns the facet array, the derived neighbor table and the
// aggregate statistics for the lifetime of one repair call. Mutation is
// exclusive to the passes the orchestrator runs; no external actor
// touches a Store mid-repair.
type Store struct {
	Facets    []Facet
	Neighbors []Neighbors
	Stats     Stats

	fault error
}

// Load builds a fresh Store from an externally supplied facet sequence.
// declared is the facet count the source claimed to contain (an STL
// header, for example); pass a negative value to trust the slice. A
// mismatch marks the Store faulted.
func Load(facets []Facet, declared int) (*Store, error) {
	s := &Store{
		Facets:    make([]Facet, len(facets)),
		Neighbors: make([]Neighbors, len(facets)),
	}
	copy(s.Facets, facets)

	if declared >= 0 && declared != len(facets) {
		s.fault = fmt.Errorf("facet count mismatch: header declares %d facets, data contains %d", declared, len(facets))
		return s, s.fault
	}

	s.Stats.FacetCount = len(facets)
	s.ComputeStats()
	return s, nil
}

// Export returns a copy of the facet array in load order. With no
// repair in between, the result is identical to what was loaded.
func (s *Store) Export() []Facet {
	out := make([]Facet, len(s.Facets))
	copy(out, s.Facets)
	return out
}

// Len returns the current facet count.
func (s *Store) Len() int {
	return len(s.Facets)
}

// Fault returns the sticky fault, if any. Once set, every pass refuses
// to run until the mesh is reloaded.
func (s *Store) Fault() error {
	return s.fault
}

// MarkFault records a fault. The first fault sticks; later ones are
// ignored.
func (s *Store) MarkFault(err error) {
	if s.fault == nil {
		s.fault = err
	}
}

// ComputeStats recomputes the bounding box, bounding diameter and
// shortest-edge estimate from the facet array.
func (s *Store) ComputeStats() {
	s.Stats.FacetCount = len(s.Facets)
	if len(s.Facets) == 0 {
		s.Stats.Min, s.Stats.Max, s.Stats.Size = geom.Vector3{}, geom.Vector3{}, geom.Vector3{}
		s.Stats.BoundingDiameter = 0
		s.Stats.ShortestEdge = 0
		return
	}

	mn := s.Facets[0].Vertices[0]
	mx := mn
	shortest := 0.0
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			v := s.Facets[i].Vertices[j]
			mn = mn.Min(v)
			mx = mx.Max(v)

			p1, p2 := s.Facets[i].Edge(j)
			if l := p1.DistanceTo(p2); l > 0 && (shortest == 0 || l < shortest) {
				shortest = l
			}
		}
	}
	s.Stats.Min = mn
	s.Stats.Max = mx
	s.Stats.Size = mx.Sub(mn)
	s.Stats.BoundingDiameter = s.Stats.Size.Length()
	s.Stats.ShortestEdge = shortest
}

// ResetNeighbors discards the neighbor table, leaving every slot
// unlinked, and zeroes the degree counts derived from it.
func (s *Store) ResetNeighbors() {
	s.Neighbors = make([]Neighbors, len(s.Facets))
	s.Stats.FacetsByDegree = [4]int{}
	s.Stats.BackwardsEdges = 0
}

// RecountDegrees rebuilds the facets-by-degree histogram from the
// neighbor table.
func (s *Store) RecountDegrees() {
	s.Stats.FacetsByDegree = [4]int{}
	for i := range s.Neighbors {
		s.Stats.FacetsByDegree[s.Neighbors[i].Degree()]++
	}
}

// RecountBackwards counts backwards edges from the neighbor table.
// Links are symmetric, so each backwards pair is counted once.
func (s *Store) RecountBackwards() int {
	n := 0
	for i := range s.Neighbors {
		for _, l := range s.Neighbors[i] {
			if l.Kind == LinkBackward {
				n++
			}
		}
	}
	return n / 2
}

// LinkEdges records a symmetric neighbor relationship between edge ja
// of facet a and edge jb of facet b. kind is the orientation as seen
// from either side: forward when the edges run in reverse directions,
// backward when they run the same way.
func (s *Store) LinkEdges(a, ja, b, jb int, kind LinkKind) {
	s.Neighbors[a][ja] = Link{Kind: kind, Facet: b, VertexNot: (jb + 2) % 3}
	s.Neighbors[b][jb] = Link{Kind: kind, Facet: a, VertexNot: (ja + 2) % 3}
}

// reverse permutation bookkeeping: swapping vertices 0 and 1 turns old
// edge 0 into new edge 0 reversed, old edge 1 into new edge 2 reversed
// and old edge 2 into new edge 1 reversed.
var (
	reverseEdgePerm   = [3]int{0, 2, 1}
	reverseVertexPerm = [3]int{1, 0, 2}
)

func flipKind(k LinkKind) LinkKind {
	switch k {
	case LinkForward:
		return LinkBackward
	case LinkBackward:
		return LinkForward
	default:
		return k
	}
}

// ReverseFacet flips the winding of facet i by swapping its first two
// vertices and negating its normal, then rewrites the affected neighbor
// links on both sides: the facet's own slots permute and flip
// orientation, and each neighbor's back link gets its vertex-not index
// remapped and its orientation flipped.
func (s *Store) ReverseFacet(i int) {
	f := &s.Facets[i]
	f.Vertices[0], f.Vertices[1] = f.Vertices[1], f.Vertices[0]
	f.Normal = f.Normal.Neg()

	old := s.Neighbors[i]

	var flipped Neighbors
	for j := 0; j < 3; j++ {
		l := old[j]
		l.Kind = flipKind(l.Kind)
		flipped[reverseEdgePerm[j]] = l
	}
	s.Neighbors[i] = flipped

	for j := 0; j < 3; j++ {
		l := old[j]
		if l.Kind == LinkNone {
			continue
		}
		back := &s.Neighbors[l.Facet][l.NeighborEdge()]
		if back.Kind == LinkNone || back.Facet != i {
			// Asymmetric link; the verifier reports these.
			continue
		}
		back.VertexNot = reverseVertexPerm[back.VertexNot]
		back.Kind = flipKind(back.Kind)
	}
}

// ReverseAll flips the winding of every facet. Relative orientation
// between neighbors is preserved, so each link's orientation flag ends
// up unchanged.
func (s *Store) ReverseAll() {
	for i := range s.Facets {
		s.ReverseFacet(i)
	}
	s.Stats.FacetsReversed += len(s.Facets)
}

// Append adds a facet with no neighbor links and returns its index. The
// caller is expected to re-run exact matching to integrate it.
func (s *Store) Append(f Facet) int {
	s.Facets = append(s.Facets, f)
	s.Neighbors = append(s.Neighbors, Neighbors{})
	s.Stats.FacetCount = len(s.Facets)
	return len(s.Facets) - 1
}

// Compact removes every facet whose keep flag is false. The neighbor
// table is invalidated: pre-compaction facet indices must not be reused
// and adjacency has to be rebuilt before any pass depends on it.
func (s *Store) Compact(keep []bool) int {
	removed := 0
	out := s.Facets[:0]
	for i := range s.Facets {
		if keep[i] {
			out = append(out, s.Facets[i])
		} else {
			removed++
		}
	}
	s.Facets = out
	s.Stats.FacetCount = len(s.Facets)
	s.Stats.FacetsRemoved += removed
	s.ResetNeighbors()
	return removed
}
