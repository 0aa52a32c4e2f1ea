package mesh

import "mesh-doctor/core/geom"

// Facet is a single triangle: three vertex positions and a normal. The
// vertex order defines the outward side via the right-hand rule.
type Facet struct {
	Normal   geom.Vector3
	Vertices [3]geom.Vector3
}

// Edge returns the directed edge j of the facet, running from vertex j
// to vertex (j+1) mod 3. Direction is significant: a correctly oriented
// neighbor holds the same edge in reverse.
func (f Facet) Edge(j int) (geom.Vector3, geom.Vector3) {
	return f.Vertices[j], f.Vertices[(j+1)%3]
}

// ComputedNormal derives the unit normal from the vertex order,
// ignoring the stored Normal field.
func (f Facet) ComputedNormal() geom.Vector3 {
	a := f.Vertices[1].Sub(f.Vertices[0])
	b := f.Vertices[2].Sub(f.Vertices[0])
	return a.Cross(b).Normalized()
}

// IsDegenerate reports whether the facet has zero area because two of
// its vertices coincide exactly.
func (f Facet) IsDegenerate() bool {
	return f.Vertices[0] == f.Vertices[1] ||
		f.Vertices[1] == f.Vertices[2] ||
		f.Vertices[2] == f.Vertices[0]
}

// LinkKind classifies one slot of the neighbor table.
type LinkKind uint8

const (
	// LinkNone marks an edge with no known neighbor.
	LinkNone LinkKind = iota
	// LinkForward marks a neighbor whose matching edge runs in reverse
	// direction, i.e. both facets are wound consistently.
	LinkForward
	// LinkBackward marks a neighbor whose matching edge runs in the
	// same direction, a backwards edge: the neighbor is wound
	// oppositely.
	LinkBackward
)

// Link is one slot of the neighbor table: the edge's neighbor facet, if
// any, together with the index of the neighbor's vertex that is not on
// the shared edge.
type Link struct {
	Kind LinkKind
	// Facet is the neighbor facet index. Only meaningful when Kind is
	// not LinkNone.
	Facet int
	// VertexNot is the index (0-2) of the neighbor's vertex that lies
	// off the shared edge. The shared edge on the neighbor side is
	// therefore its edge (VertexNot+1) mod 3.
	VertexNot int
}

// NeighborEdge returns the neighbor's edge index for the shared edge.
func (l Link) NeighborEdge() int {
	return (l.VertexNot + 1) % 3
}

// Neighbors holds the three neighbor links of one facet, slot j
// covering directed edge j.
type Neighbors [3]Link

// Degree returns the facet's connectivity degree: how many of its three
// edges have a neighbor of either orientation.
func (n Neighbors) Degree() int {
	d := 0
	for _, l := range n {
		if l.Kind != LinkNone {
			d++
		}
	}
	return d
}
