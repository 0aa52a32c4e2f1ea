package mesh

import "mesh-doctor/core/geom"

// Stats aggregates the measurements and repair counters of one Store.
// Passes update it through the Store they operate on; nothing here is
// global state.
type Stats struct {
	// FacetCount is the current number of facets.
	FacetCount int `json:"facet_count"`

	// Min and Max span the axis-aligned bounding box.
	Min geom.Vector3 `json:"min"`
	Max geom.Vector3 `json:"max"`
	// Size is Max - Min.
	Size geom.Vector3 `json:"size"`
	// BoundingDiameter is the length of Size, used to seed the nearby
	// tolerance increment.
	BoundingDiameter float64 `json:"bounding_diameter"`
	// ShortestEdge is the length of the shortest non-zero facet edge,
	// used to seed the nearby tolerance.
	ShortestEdge float64 `json:"shortest_edge"`

	// Volume is the signed volume, made non-negative by the volume
	// corrector.
	Volume float64 `json:"volume"`

	// FacetsByDegree counts facets by connectivity degree 0-3.
	FacetsByDegree [4]int `json:"facets_by_degree"`
	// BackwardsEdges counts edges matched to a same-direction neighbor.
	BackwardsEdges int `json:"backwards_edges"`
	// EdgesFixed accumulates edges newly connected by the nearby
	// matcher; a merged pair counts one edge on each facet.
	EdgesFixed int `json:"edges_fixed"`

	// FacetsRemoved counts facets dropped by the unconnected pruner.
	FacetsRemoved int `json:"facets_removed"`
	// FacetsAdded counts facets appended by the hole filler.
	FacetsAdded int `json:"facets_added"`
	// FacetsReversed counts windings flipped by the orientation fixer,
	// the global reverse, and the volume corrector.
	FacetsReversed int `json:"facets_reversed"`
	// NormalsFixed counts normals rewritten from vertex order.
	NormalsFixed int `json:"normals_fixed"`
	// OpenChains counts boundary chains the hole filler could not
	// close; they remain as residual defects.
	OpenChains int `json:"open_chains"`
}

// FullyConnected reports whether every facet has reached degree 3.
func (st Stats) FullyConnected() bool {
	return st.FacetsByDegree[3] == st.FacetCount
}

// FacetsWithBadEdges returns the number of facets with exactly 1, 2 and
// 3 unmatched edges.
func (st Stats) FacetsWithBadEdges() (one, two, three int) {
	return st.FacetsByDegree[2], st.FacetsByDegree[1], st.FacetsByDegree[0]
}
