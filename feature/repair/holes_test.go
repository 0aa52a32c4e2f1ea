package repair

import (
	"testing"

	"mesh-doctor/core/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillHoles_TriangularHole(t *testing.T) {
	svc, rep := newTestService(t, cubeFacets(3))
	require.NoError(t, svc.CheckExact())

	added, err := svc.FillHoles()
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 12, svc.Store().Len())
	assert.Equal(t, 1, svc.Store().Stats.FacetsAdded)
	assert.Empty(t, rep.Defects)

	// The appended facet closes the surface once adjacency is rebuilt.
	require.NoError(t, svc.CheckExact())
	st := svc.Store().Stats
	assert.True(t, st.FullyConnected())
	assert.Equal(t, 0, st.BackwardsEdges)

	require.NoError(t, svc.CalculateVolume())
	assert.InDelta(t, 1.0, svc.Store().Stats.Volume, 1e-6)
}

func TestFillHoles_QuadHole(t *testing.T) {
	// Removing both top facets leaves a four-vertex boundary loop.
	svc, rep := newTestService(t, cubeFacets(2, 3))
	require.NoError(t, svc.CheckExact())

	added, err := svc.FillHoles()
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Empty(t, rep.Defects)

	require.NoError(t, svc.CheckExact())
	assert.True(t, svc.Store().Stats.FullyConnected())

	require.NoError(t, svc.CalculateVolume())
	assert.InDelta(t, 1.0, svc.Store().Stats.Volume, 1e-6)
}

func TestFillHoles_OpenChain(t *testing.T) {
	svc, rep := newTestService(t, cubeFacets(3))
	require.NoError(t, svc.CheckExact())

	// Shift one boundary vertex copy after matching so the boundary keys
	// no longer chain into a cycle.
	svc.Store().Facets[10].Vertices[2].Z += 1e-4

	added, err := svc.FillHoles()
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Greater(t, svc.Store().Stats.OpenChains, 0)

	require.NotEmpty(t, rep.Defects)
	for _, d := range rep.Defects {
		assert.Equal(t, DefectOpenChain, d.Kind)
		assert.Equal(t, PhaseFillHoles, d.Phase)
	}
}

func TestFillHoles_NothingToFill(t *testing.T) {
	svc, _ := newTestService(t, cubeFacets())
	require.NoError(t, svc.CheckExact())

	added, err := svc.FillHoles()
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestTriangulateLoop_Fan(t *testing.T) {
	// A planar quad boundary traced in +z winding. The filler reverses
	// the loop, so the produced facets face -z.
	loop := []geom.Vector3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	down := geom.Vector3{Z: -1}

	tris, ok := triangulateLoop(loop)
	require.True(t, ok)
	assert.Len(t, tris, 2)
	for _, tri := range tris {
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		assert.Greater(t, n.Dot(down), 0.0)
	}
}

func TestTriangulateLoop_RejectsCollinearLoop(t *testing.T) {
	loop := []geom.Vector3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	}

	_, ok := triangulateLoop(loop)
	assert.False(t, ok)
}

func TestEarClip_NonConvexLoop(t *testing.T) {
	// An arrowhead polygon whose fan from vertex 0 produces an inverted
	// facet, forcing the ear-clipping fallback.
	poly := []geom.Vector3{
		{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 4, Y: 0}, {X: 2, Y: 3},
	}
	ref := geom.Vector3{Z: 1}

	_, ok := fanTriangulate(poly, ref)
	require.False(t, ok)

	tris, ok := earClip(poly, ref)
	require.True(t, ok)
	assert.Len(t, tris, 2)
	for _, tri := range tris {
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		assert.Greater(t, n.Dot(ref), 0.0)
	}
}
