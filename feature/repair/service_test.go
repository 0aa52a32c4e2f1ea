package repair

import (
	"testing"

	"mesh-doctor/core/mesh"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair_EmptyMesh(t *testing.T) {
	store, err := mesh.Load(nil, -1)
	require.NoError(t, err)
	rep := &CollectingReporter{}
	svc := NewService(store, nil, rep)

	err = svc.Repair(Options{FixAll: true})
	require.ErrorIs(t, err, ErrEmptyMesh)
	require.Len(t, rep.Defects, 1)
	assert.Equal(t, DefectEmptyMesh, rep.Defects[0].Kind)
}

func TestRepair_Faulted(t *testing.T) {
	store, err := mesh.Load(cubeFacets(), 99)
	require.Error(t, err)
	svc := NewService(store, nil, nil)

	assert.Error(t, svc.Repair(Options{FixAll: true}))
}

func TestRepair_FixAll_CleanCube(t *testing.T) {
	svc, rep := newTestService(t, cubeFacets())

	require.NoError(t, svc.Repair(Options{FixAll: true}))

	st := svc.Store().Stats
	assert.True(t, st.FullyConnected())
	assert.Equal(t, 0, st.EdgesFixed)
	assert.Equal(t, 0, st.FacetsRemoved)
	assert.Equal(t, 0, st.FacetsAdded)
	assert.Equal(t, 0, st.FacetsReversed)
	assert.Equal(t, 0, st.BackwardsEdges)
	assert.InDelta(t, 1.0, st.Volume, 1e-9)
	assert.Empty(t, rep.Defects)
	assert.NotEmpty(t, rep.Events)
}

func TestRepair_FixAll_PerturbedCube(t *testing.T) {
	svc, rep := newTestService(t, perturbedCube(1e-4))

	require.NoError(t, svc.Repair(Options{FixAll: true}))

	st := svc.Store().Stats
	assert.True(t, st.FullyConnected())
	assert.Equal(t, 4, st.EdgesFixed)
	assert.InDelta(t, 1.0, st.Volume, 1e-3)
	assert.Empty(t, rep.Defects)
}

func TestRepair_FixAll_Hole(t *testing.T) {
	svc, rep := newTestService(t, cubeFacets(3))

	// The tolerance is pinned far below the hole size so the nearby pass
	// leaves the boundary to the hole filler.
	require.NoError(t, svc.Repair(Options{
		FixAll:    true,
		Tolerance: 1e-6, ToleranceSet: true,
		Increment: 0, IncrementSet: true,
	}))

	st := svc.Store().Stats
	assert.Equal(t, 12, st.FacetCount)
	assert.Equal(t, 1, st.FacetsAdded)
	assert.True(t, st.FullyConnected())
	assert.InDelta(t, 1.0, st.Volume, 1e-6)
	assert.Empty(t, rep.Defects)
}

func TestRepair_FixAll_InvertedFacet(t *testing.T) {
	facets := cubeFacets()
	f := &facets[6]
	f.Vertices[0], f.Vertices[1] = f.Vertices[1], f.Vertices[0]
	f.Normal = f.ComputedNormal()

	svc, rep := newTestService(t, facets)
	require.NoError(t, svc.Repair(Options{FixAll: true}))

	st := svc.Store().Stats
	assert.Equal(t, 1, st.FacetsReversed)
	assert.Equal(t, 0, st.BackwardsEdges)
	assert.InDelta(t, 1.0, st.Volume, 1e-9)
	assert.Empty(t, rep.Defects)
}

func TestRepair_FixAll_InsideOut(t *testing.T) {
	facets := cubeFacets()
	for i := range facets {
		f := &facets[i]
		f.Vertices[0], f.Vertices[1] = f.Vertices[1], f.Vertices[0]
		f.Normal = f.ComputedNormal()
	}

	svc, _ := newTestService(t, facets)
	require.NoError(t, svc.Repair(Options{FixAll: true}))

	st := svc.Store().Stats
	assert.Equal(t, 12, st.FacetsReversed)
	assert.InDelta(t, 1.0, st.Volume, 1e-9)
	assert.Equal(t, 0, st.BackwardsEdges)
}

func TestRepair_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, perturbedCube(1e-4))
	require.NoError(t, svc.Repair(Options{FixAll: true}))

	before := svc.Store().Stats
	require.NoError(t, svc.Repair(Options{FixAll: true}))
	after := svc.Store().Stats

	assert.Equal(t, before.EdgesFixed, after.EdgesFixed)
	assert.Equal(t, before.FacetsAdded, after.FacetsAdded)
	assert.Equal(t, before.FacetsRemoved, after.FacetsRemoved)
	assert.Equal(t, before.FacetsReversed, after.FacetsReversed)
	assert.InDelta(t, before.Volume, after.Volume, 1e-9)
}

func TestRepair_NearbyImpliesExact(t *testing.T) {
	svc, _ := newTestService(t, perturbedCube(1e-4))

	require.NoError(t, svc.Repair(Options{Nearby: true, Tolerance: 1e-3, ToleranceSet: true}))

	assert.True(t, svc.Store().Stats.FullyConnected())
}

func TestRepair_ExactOnlyLeavesHole(t *testing.T) {
	svc, _ := newTestService(t, cubeFacets(3))

	require.NoError(t, svc.Repair(Options{ExactCheck: true}))

	st := svc.Store().Stats
	assert.Equal(t, 11, st.FacetCount)
	assert.False(t, st.FullyConnected())
}

func TestRepair_ReverseAll(t *testing.T) {
	// Reversing a correct cube turns it inside out; the volume pass
	// reverses it right back.
	svc, _ := newTestService(t, cubeFacets())

	require.NoError(t, svc.Repair(Options{ExactCheck: true, ReverseAll: true}))

	st := svc.Store().Stats
	assert.Equal(t, 24, st.FacetsReversed)
	assert.InDelta(t, 1.0, st.Volume, 1e-9)
}

func TestRepair_DerivedTolerance(t *testing.T) {
	// With no explicit tolerance the nearby pass starts at the shortest
	// edge length, which dwarfs a 1e-4 gap on the unit cube.
	svc, _ := newTestService(t, perturbedCube(1e-4))

	require.NoError(t, svc.Repair(Options{Nearby: true}))
	assert.True(t, svc.Store().Stats.FullyConnected())
}

func TestRepair_ProgressEventsCarryPhases(t *testing.T) {
	svc, rep := newTestService(t, cubeFacets())
	require.NoError(t, svc.Repair(Options{FixAll: true}))

	seen := make(map[Phase]bool)
	for _, e := range rep.Events {
		seen[e.Phase] = true
	}
	assert.True(t, seen[PhaseExact])
	assert.True(t, seen[PhaseNearby])
	assert.True(t, seen[PhaseVolume])
	assert.True(t, seen[PhaseVerify])
}

func TestOptions_NeedsExact(t *testing.T) {
	assert.False(t, Options{}.needsExact())
	assert.True(t, Options{FixAll: true}.needsExact())
	assert.True(t, Options{ExactCheck: true}.needsExact())
	assert.True(t, Options{Nearby: true}.needsExact())
	assert.True(t, Options{FillHoles: true}.needsExact())
	assert.True(t, Options{RemoveUnconnected: true}.needsExact())
	assert.True(t, Options{NormalDirections: true}.needsExact())
	assert.False(t, Options{NormalValues: true}.needsExact())
	assert.False(t, Options{ReverseAll: true}.needsExact())
}

func TestOptions_Iterations(t *testing.T) {
	assert.Equal(t, DefaultIterations, Options{}.iterations())
	assert.Equal(t, DefaultIterations, Options{Iterations: -1}.iterations())
	assert.Equal(t, 5, Options{Iterations: 5}.iterations())
}
