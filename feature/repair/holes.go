package repair

import (
	"fmt"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

// FillHoles traces the cycles formed by unmatched edges and
// triangulates every closed loop, appending the new facets to the
// Store. A chain that never closes is left unrepaired and reported as a
// residual defect. The caller must re-run exact matching afterwards to
// integrate the appended facets into the neighbor table. Returns the
// number of facets added.
func (s *Service) FillHoles() (int, error) {
	if err := s.store.Fault(); err != nil {
		return 0, err
	}
	st := s.store

	type boundaryEdge struct {
		facet, edge int
		used        bool
	}
	var edges []boundaryEdge
	byStart := make(map[[3]uint32][]int)
	for i := range st.Neighbors {
		if st.Facets[i].IsDegenerate() {
			continue
		}
		for j := 0; j < 3; j++ {
			if st.Neighbors[i][j].Kind != mesh.LinkNone {
				continue
			}
			p1, _ := st.Facets[i].Edge(j)
			edges = append(edges, boundaryEdge{facet: i, edge: j})
			byStart[packVertex(p1)] = append(byStart[packVertex(p1)], len(edges)-1)
		}
	}

	added := 0
	for start := range edges {
		if edges[start].used {
			continue
		}

		// Walk unmatched edges end to start until the loop closes or no
		// continuation exists.
		var (
			loop    []geom.Vector3
			borders []int
			closed  bool
		)
		first, _ := st.Facets[edges[start].facet].Edge(edges[start].edge)
		startKey := packVertex(first)
		cur := start
		for {
			edges[cur].used = true
			p1, p2 := st.Facets[edges[cur].facet].Edge(edges[cur].edge)
			loop = append(loop, p1)
			borders = append(borders, edges[cur].facet)

			endKey := packVertex(p2)
			if endKey == startKey {
				closed = true
				break
			}
			next := -1
			for _, cand := range byStart[endKey] {
				if !edges[cand].used {
					next = cand
					break
				}
			}
			if next < 0 {
				st.Stats.OpenChains++
				s.reporter.Defect(DefectEvent{
					Phase:   PhaseFillHoles,
					Kind:    DefectOpenChain,
					Message: fmt.Sprintf("boundary chain of %d edges starting at facet %d does not close", len(loop), edges[start].facet),
					FacetA:  edges[start].facet,
					EdgeA:   edges[start].edge,
					FacetB:  edges[cur].facet,
				})
				break
			}
			cur = next
		}
		if !closed || len(loop) < 3 {
			continue
		}

		tris, ok := triangulateLoop(loop)
		if !ok {
			s.reporter.Defect(DefectEvent{
				Phase:   PhaseFillHoles,
				Kind:    DefectUnfillableLoop,
				Message: fmt.Sprintf("no valid triangulation for boundary loop of %d vertices at facet %d", len(loop), borders[0]),
				FacetA:  borders[0],
				EdgeA:   edges[start].edge,
				FacetB:  -1,
			})
			continue
		}
		for _, tri := range tris {
			f := mesh.Facet{Vertices: tri}
			f.Normal = f.ComputedNormal()
			st.Append(f)
			added++
		}
	}

	st.Stats.FacetsAdded += added
	if added > 0 {
		st.ComputeStats()
	}
	return added, nil
}

// triangulateLoop covers a closed boundary loop with len(loop)-2
// facets. The loop arrives in the direction the bordering facets' edges
// run, so it is reversed first: each new facet must present the shared
// edge backwards to reverse-match its border neighbor. The reversed
// loop's own plane normal serves as the facing reference. Fan
// decomposition from the first vertex is tried before falling back to
// ear clipping.
func triangulateLoop(loop []geom.Vector3) ([][3]geom.Vector3, bool) {
	rev := make([]geom.Vector3, len(loop))
	rev[0] = loop[0]
	for i := 1; i < len(loop); i++ {
		rev[i] = loop[len(loop)-i]
	}
	ref := newellNormal(rev)
	if ref.Length() == 0 {
		return nil, false
	}

	if tris, ok := fanTriangulate(rev, ref); ok {
		return tris, true
	}
	return earClip(rev, ref)
}

// newellNormal returns the average plane normal of a closed polygon,
// oriented by its winding.
func newellNormal(poly []geom.Vector3) geom.Vector3 {
	var n geom.Vector3
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalized()
}

// triValid reports whether the triangle a-b-c has area and faces the
// same way as the reference normal.
func triValid(a, b, c, ref geom.Vector3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() == 0 {
		return false
	}
	return n.Dot(ref) > 0
}

// fanTriangulate decomposes the polygon from its first vertex. It fails
// as soon as any fan facet would be degenerate or inverted.
func fanTriangulate(poly []geom.Vector3, ref geom.Vector3) ([][3]geom.Vector3, bool) {
	tris := make([][3]geom.Vector3, 0, len(poly)-2)
	for i := 1; i < len(poly)-1; i++ {
		if !triValid(poly[0], poly[i], poly[i+1], ref) {
			return nil, false
		}
		tris = append(tris, [3]geom.Vector3{poly[0], poly[i], poly[i+1]})
	}
	return tris, true
}

// earClip repeatedly removes a vertex whose ear triangle is valid. It
// gives up when no vertex qualifies.
func earClip(poly []geom.Vector3, ref geom.Vector3) ([][3]geom.Vector3, bool) {
	verts := make([]geom.Vector3, len(poly))
	copy(verts, poly)

	var tris [][3]geom.Vector3
	for len(verts) > 3 {
		clipped := false
		for i := 0; i < len(verts); i++ {
			n := len(verts)
			a, b, c := verts[(i-1+n)%n], verts[i], verts[(i+1)%n]
			if !triValid(a, b, c, ref) {
				continue
			}
			tris = append(tris, [3]geom.Vector3{a, b, c})
			verts = append(verts[:i], verts[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, false
		}
	}
	if !triValid(verts[0], verts[1], verts[2], ref) {
		return nil, false
	}
	tris = append(tris, [3]geom.Vector3{verts[0], verts[1], verts[2]})
	return tris, true
}
