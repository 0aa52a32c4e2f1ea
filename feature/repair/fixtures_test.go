package repair

import (
	"testing"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"

	"github.com/stretchr/testify/require"
)

// cubeCorners are the eight corners of the unit cube.
var cubeCorners = [8]geom.Vector3{
	{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
}

// cubeTris index into cubeCorners; every triangle is wound outward.
var cubeTris = [12][3]int{
	{0, 2, 1}, {0, 3, 2},
	{4, 5, 6}, {4, 6, 7},
	{0, 1, 5}, {0, 5, 4},
	{1, 2, 6}, {1, 6, 5},
	{2, 3, 7}, {2, 7, 6},
	{3, 0, 4}, {3, 4, 7},
}

// cubeFacets returns a watertight unit cube. skip drops the facets at
// the given indices, leaving a hole.
func cubeFacets(skip ...int) []mesh.Facet {
	skipped := make(map[int]bool, len(skip))
	for _, i := range skip {
		skipped[i] = true
	}
	var facets []mesh.Facet
	for i, tri := range cubeTris {
		if skipped[i] {
			continue
		}
		f := mesh.Facet{Vertices: [3]geom.Vector3{
			cubeCorners[tri[0]], cubeCorners[tri[1]], cubeCorners[tri[2]],
		}}
		f.Normal = f.ComputedNormal()
		facets = append(facets, f)
	}
	return facets
}

// newTestService loads facets into a fresh Store and wraps it in a
// service with a collecting reporter.
func newTestService(t *testing.T, facets []mesh.Facet) (*Service, *CollectingReporter) {
	t.Helper()
	store, err := mesh.Load(facets, -1)
	require.NoError(t, err)
	rep := &CollectingReporter{}
	return NewService(store, nil, rep), rep
}
