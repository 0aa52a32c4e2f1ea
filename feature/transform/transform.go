package transform

import (
	"math"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
)

// Translate moves the mesh so its bounding-box minimum lands on to.
func Translate(s *mesh.Store, to geom.Vector3) error {
	if err := s.Fault(); err != nil {
		return err
	}
	shift := to.Sub(s.Stats.Min)
	return TranslateRelative(s, shift)
}

// TranslateRelative shifts every vertex by delta from wherever the mesh
// currently is.
func TranslateRelative(s *mesh.Store, delta geom.Vector3) error {
	if err := s.Fault(); err != nil {
		return err
	}
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			s.Facets[i].Vertices[j] = s.Facets[i].Vertices[j].Add(delta)
		}
	}
	s.ComputeStats()
	return nil
}

// Scale scales the mesh uniformly about the origin.
func Scale(s *mesh.Store, factor float32) error {
	return ScaleVersor(s, geom.Vector3{X: factor, Y: factor, Z: factor})
}

// ScaleVersor scales each axis by the corresponding component of v.
// The stored volume scales with the axis product so a later info call
// stays truthful without a full recompute.
func ScaleVersor(s *mesh.Store, v geom.Vector3) error {
	if err := s.Fault(); err != nil {
		return err
	}
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			p := &s.Facets[i].Vertices[j]
			p.X *= v.X
			p.Y *= v.Y
			p.Z *= v.Z
		}
	}
	if s.Stats.Volume > 0 {
		s.Stats.Volume *= float64(v.X) * float64(v.Y) * float64(v.Z)
	}
	s.ComputeStats()
	recomputeNormals(s)
	return nil
}

// RotateX rotates the mesh about the X axis by angle degrees.
func RotateX(s *mesh.Store, angle float64) error {
	if err := s.Fault(); err != nil {
		return err
	}
	c, sn := cosSin(angle)
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			p := &s.Facets[i].Vertices[j]
			p.Y, p.Z = rotate(p.Y, p.Z, c, sn)
		}
	}
	s.ComputeStats()
	recomputeNormals(s)
	return nil
}

// RotateY rotates the mesh about the Y axis by angle degrees.
func RotateY(s *mesh.Store, angle float64) error {
	if err := s.Fault(); err != nil {
		return err
	}
	c, sn := cosSin(angle)
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			p := &s.Facets[i].Vertices[j]
			p.Z, p.X = rotate(p.Z, p.X, c, sn)
		}
	}
	s.ComputeStats()
	recomputeNormals(s)
	return nil
}

// RotateZ rotates the mesh about the Z axis by angle degrees.
func RotateZ(s *mesh.Store, angle float64) error {
	if err := s.Fault(); err != nil {
		return err
	}
	c, sn := cosSin(angle)
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			p := &s.Facets[i].Vertices[j]
			p.X, p.Y = rotate(p.X, p.Y, c, sn)
		}
	}
	s.ComputeStats()
	recomputeNormals(s)
	return nil
}

// MirrorXY mirrors the mesh across the XY plane.
func MirrorXY(s *mesh.Store) error {
	return mirrorAxis(s, 2)
}

// MirrorYZ mirrors the mesh across the YZ plane.
func MirrorYZ(s *mesh.Store) error {
	return mirrorAxis(s, 0)
}

// MirrorXZ mirrors the mesh across the XZ plane.
func MirrorXZ(s *mesh.Store) error {
	return mirrorAxis(s, 1)
}

// Apply3x4 applies a row-major 3x4 affine transform to every vertex.
func Apply3x4(s *mesh.Store, m [12]float64) error {
	if err := s.Fault(); err != nil {
		return err
	}
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			p := &s.Facets[i].Vertices[j]
			x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
			p.X = float32(m[0]*x + m[1]*y + m[2]*z + m[3])
			p.Y = float32(m[4]*x + m[5]*y + m[6]*z + m[7])
			p.Z = float32(m[8]*x + m[9]*y + m[10]*z + m[11])
		}
	}
	s.ComputeStats()
	recomputeNormals(s)
	return nil
}

func mirrorAxis(s *mesh.Store, axis int) error {
	if err := s.Fault(); err != nil {
		return err
	}
	for i := range s.Facets {
		for j := 0; j < 3; j++ {
			p := &s.Facets[i].Vertices[j]
			switch axis {
			case 0:
				p.X = -p.X
			case 1:
				p.Y = -p.Y
			case 2:
				p.Z = -p.Z
			}
		}
	}
	// Mirroring flips the surface inside out; reverse every facet to
	// keep it facing outward without altering the reversal counter.
	s.ReverseAll()
	s.Stats.FacetsReversed -= len(s.Facets)
	s.ComputeStats()
	recomputeNormals(s)
	return nil
}

func cosSin(angleDeg float64) (float64, float64) {
	rad := angleDeg / 180.0 * math.Pi
	return math.Cos(rad), math.Sin(rad)
}

func rotate(x, y float32, c, s float64) (float32, float32) {
	xo, yo := float64(x), float64(y)
	return float32(c*xo - s*yo), float32(s*xo + c*yo)
}

func recomputeNormals(s *mesh.Store) {
	for i := range s.Facets {
		s.Facets[i].Normal = s.Facets[i].ComputedNormal()
	}
}
