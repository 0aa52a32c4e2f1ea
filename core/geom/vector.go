package geom

import "math"

// Vector3 is a point or direction in 3D space. Coordinates carry no
// identity beyond their value; two vectors are the same vertex exactly
// when their bit patterns match.
type Vector3 struct {
	X, Y, Z float32
}

// Add returns a + b.
func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a scaled by s.
func (a Vector3) Scale(s float32) Vector3 {
	return Vector3{a.X * s, a.Y * s, a.Z * s}
}

// Neg returns -a.
func (a Vector3) Neg() Vector3 {
	return Vector3{-a.X, -a.Y, -a.Z}
}

// Dot returns the dot product of a and b, accumulated in float64.
func (a Vector3) Dot(b Vector3) float64 {
	return float64(a.X)*float64(b.X) +
		float64(a.Y)*float64(b.Y) +
		float64(a.Z)*float64(b.Z)
}

// Cross returns the cross product of a and b. The intermediate products
// are computed in float64 so large coordinates cannot overflow before
// cancellation.
func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		X: float32(float64(a.Y)*float64(b.Z) - float64(a.Z)*float64(b.Y)),
		Y: float32(float64(a.Z)*float64(b.X) - float64(a.X)*float64(b.Z)),
		Z: float32(float64(a.X)*float64(b.Y) - float64(a.Y)*float64(b.X)),
	}
}

// Length returns the Euclidean length of a.
func (a Vector3) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// DistanceTo returns the Euclidean distance between a and b.
func (a Vector3) DistanceTo(b Vector3) float64 {
	return a.Sub(b).Length()
}

// Normalized returns a scaled to unit length. The zero vector is
// returned unchanged.
func (a Vector3) Normalized() Vector3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	inv := float32(1 / l)
	return Vector3{a.X * inv, a.Y * inv, a.Z * inv}
}

// Min returns the component-wise minimum of a and b.
func (a Vector3) Min(b Vector3) Vector3 {
	return Vector3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vector3) Max(b Vector3) Vector3 {
	return Vector3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// NearlyEqual reports whether a and b lie within eps of each other on
// every axis.
func (a Vector3) NearlyEqual(b Vector3, eps float64) bool {
	return math.Abs(float64(a.X)-float64(b.X)) <= eps &&
		math.Abs(float64(a.Y)-float64(b.Y)) <= eps &&
		math.Abs(float64(a.Z)-float64(b.Z)) <= eps
}

// IsFinite reports whether every component is a finite number.
func (a Vector3) IsFinite() bool {
	for _, c := range [3]float32{a.X, a.Y, a.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
