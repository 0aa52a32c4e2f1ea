package geom_test

import (
	"math"
	"testing"

	"mesh-doctor/core/geom"

	"github.com/stretchr/testify/assert"
)

func TestVector3_Arithmetic(t *testing.T) {
	a := geom.Vector3{X: 1, Y: 2, Z: 3}
	b := geom.Vector3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, geom.Vector3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, geom.Vector3{X: -3, Y: -3, Z: -3}, a.Sub(b))
	assert.Equal(t, geom.Vector3{X: 2, Y: 4, Z: 6}, a.Scale(2))
	assert.Equal(t, geom.Vector3{X: -1, Y: -2, Z: -3}, a.Neg())
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVector3_Cross(t *testing.T) {
	x := geom.Vector3{X: 1}
	y := geom.Vector3{Y: 1}

	assert.Equal(t, geom.Vector3{Z: 1}, x.Cross(y))
	assert.Equal(t, geom.Vector3{Z: -1}, y.Cross(x))
	assert.Equal(t, geom.Vector3{}, x.Cross(x))
}

func TestVector3_Length(t *testing.T) {
	v := geom.Vector3{X: 3, Y: 4}
	assert.Equal(t, 5.0, v.Length())
	assert.Equal(t, 5.0, geom.Vector3{}.DistanceTo(v))
}

func TestVector3_Normalized(t *testing.T) {
	v := geom.Vector3{X: 0, Y: 3, Z: 4}
	n := v.Normalized()
	assert.InDelta(t, 1.0, n.Length(), 1e-6)
	assert.InDelta(t, 0.6, n.Y, 1e-6)
	assert.InDelta(t, 0.8, n.Z, 1e-6)

	// The zero vector stays put instead of producing NaN.
	assert.Equal(t, geom.Vector3{}, geom.Vector3{}.Normalized())
}

func TestVector3_MinMax(t *testing.T) {
	a := geom.Vector3{X: 1, Y: 5, Z: 3}
	b := geom.Vector3{X: 2, Y: 4, Z: 3}

	assert.Equal(t, geom.Vector3{X: 1, Y: 4, Z: 3}, a.Min(b))
	assert.Equal(t, geom.Vector3{X: 2, Y: 5, Z: 3}, a.Max(b))
}

func TestVector3_NearlyEqual(t *testing.T) {
	a := geom.Vector3{X: 1, Y: 1, Z: 1}
	b := geom.Vector3{X: 1.0005, Y: 1, Z: 1}

	assert.True(t, a.NearlyEqual(b, 1e-3))
	assert.False(t, a.NearlyEqual(b, 1e-4))
}

func TestVector3_IsFinite(t *testing.T) {
	assert.True(t, geom.Vector3{X: 1, Y: 2, Z: 3}.IsFinite())
	assert.False(t, geom.Vector3{X: float32(math.NaN())}.IsFinite())
	assert.False(t, geom.Vector3{Z: float32(math.Inf(1))}.IsFinite())
}
