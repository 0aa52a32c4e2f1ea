package transform_test

import (
	"testing"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
	"mesh-doctor/feature/repair"
	"mesh-doctor/feature/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadCube builds a unit cube Store with statistics and volume in place.
func loadCube(t *testing.T) *mesh.Store {
	t.Helper()
	c := [8]geom.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	tris := [12][3]int{
		{0, 2, 1}, {0, 3, 2},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{1, 2, 6}, {1, 6, 5},
		{2, 3, 7}, {2, 7, 6},
		{3, 0, 4}, {3, 4, 7},
	}
	facets := make([]mesh.Facet, len(tris))
	for i, tri := range tris {
		f := mesh.Facet{Vertices: [3]geom.Vector3{c[tri[0]], c[tri[1]], c[tri[2]]}}
		f.Normal = f.ComputedNormal()
		facets[i] = f
	}
	s, err := mesh.Load(facets, -1)
	require.NoError(t, err)
	require.NoError(t, repair.NewService(s, nil, nil).CalculateVolume())
	return s
}

func TestTranslate(t *testing.T) {
	s := loadCube(t)

	require.NoError(t, transform.Translate(s, geom.Vector3{X: 10, Y: 20, Z: 30}))

	assert.Equal(t, geom.Vector3{X: 10, Y: 20, Z: 30}, s.Stats.Min)
	assert.Equal(t, geom.Vector3{X: 11, Y: 21, Z: 31}, s.Stats.Max)
}

func TestTranslateRelative(t *testing.T) {
	s := loadCube(t)

	require.NoError(t, transform.TranslateRelative(s, geom.Vector3{X: -1, Y: 0, Z: 2}))

	assert.Equal(t, geom.Vector3{X: -1, Y: 0, Z: 2}, s.Stats.Min)
	assert.Equal(t, geom.Vector3{X: 0, Y: 1, Z: 3}, s.Stats.Max)
}

func TestScale(t *testing.T) {
	s := loadCube(t)

	require.NoError(t, transform.Scale(s, 2))

	assert.Equal(t, geom.Vector3{X: 2, Y: 2, Z: 2}, s.Stats.Max)
	assert.InDelta(t, 8.0, s.Stats.Volume, 1e-6)
}

func TestScaleVersor(t *testing.T) {
	s := loadCube(t)

	require.NoError(t, transform.ScaleVersor(s, geom.Vector3{X: 2, Y: 3, Z: 4}))

	assert.Equal(t, geom.Vector3{X: 2, Y: 3, Z: 4}, s.Stats.Max)
	assert.InDelta(t, 24.0, s.Stats.Volume, 1e-6)
}

func TestRotateZ(t *testing.T) {
	s := loadCube(t)

	require.NoError(t, transform.RotateZ(s, 90))

	// The unit cube swings into the -x half space.
	assert.InDelta(t, -1.0, float64(s.Stats.Min.X), 1e-5)
	assert.InDelta(t, 0.0, float64(s.Stats.Max.X), 1e-5)
	assert.InDelta(t, 0.0, float64(s.Stats.Min.Y), 1e-5)
	assert.InDelta(t, 1.0, float64(s.Stats.Max.Y), 1e-5)
}

func TestRotate_FullTurnRestoresVolume(t *testing.T) {
	s := loadCube(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, transform.RotateX(s, 90))
	}

	require.NoError(t, repair.NewService(s, nil, nil).CalculateVolume())
	assert.InDelta(t, 1.0, s.Stats.Volume, 1e-4)
}

func TestMirror_KeepsSurfaceOutward(t *testing.T) {
	s := loadCube(t)

	require.NoError(t, transform.MirrorXY(s))

	assert.InDelta(t, -1.0, float64(s.Stats.Min.Z), 1e-6)
	// Every facet was reversed to compensate the reflection, so the
	// reversal counter is untouched and the volume stays positive.
	assert.Equal(t, 0, s.Stats.FacetsReversed)

	svc := repair.NewService(s, nil, nil)
	require.NoError(t, svc.CheckExact())
	assert.Equal(t, 0, s.Stats.BackwardsEdges)
	require.NoError(t, svc.CalculateVolume())
	assert.InDelta(t, 1.0, s.Stats.Volume, 1e-6)
	assert.Equal(t, 0, s.Stats.FacetsReversed)
}

func TestApply3x4(t *testing.T) {
	s := loadCube(t)

	// Pure translation expressed as an affine matrix.
	m := [12]float64{
		1, 0, 0, 5,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
	require.NoError(t, transform.Apply3x4(s, m))

	assert.Equal(t, geom.Vector3{X: 5, Y: 0, Z: 0}, s.Stats.Min)
	assert.Equal(t, geom.Vector3{X: 6, Y: 1, Z: 1}, s.Stats.Max)
}

func TestTransform_Faulted(t *testing.T) {
	s := loadCube(t)
	s.MarkFault(assert.AnError)

	assert.Error(t, transform.Translate(s, geom.Vector3{}))
	assert.Error(t, transform.Scale(s, 2))
	assert.Error(t, transform.RotateX(s, 90))
	assert.Error(t, transform.MirrorXY(s))
}
