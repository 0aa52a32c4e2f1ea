package repair

import (
	"errors"
	"math"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

// ErrNumericFault is returned when volume computation produces a
// non-finite result; the Store is marked faulted.
var ErrNumericFault = errors.New("non-finite result during volume computation")

// vec3d is the float64 working representation for the volume pass.
// Cross products over large coordinate magnitudes overflow float32
// before cancellation, so everything here stays wide until the end.
type vec3d struct {
	x, y, z float64
}

func widen(v geom.Vector3) vec3d {
	return vec3d{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (a vec3d) sub(b vec3d) vec3d {
	return vec3d{a.x - b.x, a.y - b.y, a.z - b.z}
}

func (a vec3d) add(b vec3d) vec3d {
	return vec3d{a.x + b.x, a.y + b.y, a.z + b.z}
}

func (a vec3d) dot(b vec3d) float64 {
	return a.x*b.x + a.y*b.y + a.z*b.z
}

func (a vec3d) cross(b vec3d) vec3d {
	return vec3d{
		x: a.y*b.z - a.z*b.y,
		y: a.z*b.x - a.x*b.z,
		z: a.x*b.y - a.y*b.x,
	}
}

func (a vec3d) unit() vec3d {
	l := math.Sqrt(a.dot(a))
	if l == 0 {
		return a
	}
	return vec3d{a.x / l, a.y / l, a.z / l}
}

// facetVolume returns the facet's contribution to the signed volume
// relative to the reference point: triangle area times the signed
// distance from the reference to the facet plane, divided by three. The
// normal used for the sign is recomputed from vertex order, never
// trusted from input.
func facetVolume(f mesh.Facet, ref vec3d) float64 {
	v := [3]vec3d{widen(f.Vertices[0]), widen(f.Vertices[1]), widen(f.Vertices[2])}

	n := v[1].sub(v[0]).cross(v[2].sub(v[0])).unit()

	// Summing the pairwise cross products gives a vector of twice the
	// area along the plane normal.
	var sum vec3d
	for i := 0; i < 3; i++ {
		sum = sum.add(v[i].cross(v[(i+1)%3]))
	}
	area := 0.5 * n.dot(sum)

	height := n.dot(v[0].sub(ref))
	return area * height / 3.0
}

// CalculateVolume computes the signed volume of the whole mesh against
// an arbitrary fixed reference point. A negative result means the mesh
// is globally inside-out: every facet's winding is reversed once and
// the sign flipped, making this the final authority on inside/outside
// sense regardless of per-component orientation decisions.
func (s *Service) CalculateVolume() error {
	if err := s.store.Fault(); err != nil {
		return err
	}
	st := s.store
	if len(st.Facets) == 0 {
		st.Stats.Volume = 0
		return nil
	}

	ref := widen(st.Facets[0].Vertices[0])
	volume := 0.0
	for i := range st.Facets {
		volume += facetVolume(st.Facets[i], ref)
	}

	if math.IsNaN(volume) || math.IsInf(volume, 0) {
		st.MarkFault(ErrNumericFault)
		s.reporter.Defect(DefectEvent{
			Phase:   PhaseVolume,
			Kind:    DefectNumericFault,
			Message: "volume computation produced a non-finite result",
			FacetA:  -1, EdgeA: -1, FacetB: -1,
		})
		return ErrNumericFault
	}

	if volume < 0 {
		st.ReverseAll()
		volume = -volume
	}
	st.Stats.Volume = volume
	return nil
}
