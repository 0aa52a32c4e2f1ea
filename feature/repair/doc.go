// Package repair reconstructs facet-to-facet adjacency from raw
// geometry and applies corrective passes to a mesh Store.
//
// # Passes Provided
//
//   - CheckExact: builds the neighbor table from bit-identical
//     reversed-edge matches, counting backwards edges.
//   - CheckNearby: extends the table by matching near-duplicate edges
//     under an escalating tolerance, snapping merged vertices.
//   - RemoveUnconnected: prunes facets no matcher could attach.
//   - FillHoles: traces boundary loops of unmatched edges and
//     triangulates them.
//   - FixNormalDirections: propagates a consistent winding across each
//     connected component.
//   - FixNormalValues: rewrites stored normals from vertex order.
//   - CalculateVolume: computes signed volume and reverses the whole
//     mesh when it comes out negative.
//   - VerifyNeighbors: diagnostic-only symmetry recheck.
//
// The Service sequences the passes in a fixed order driven by Options.
// Progress and defects are delivered as structured events to a
// caller-supplied Reporter; the package never writes to the console.
package repair
