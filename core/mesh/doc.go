// Package mesh owns the in-memory representation that every repair and
// transform pass operates on: the facet array, the derived neighbor
// table, and the aggregate statistics.
//
// A mesh is "facet soup": each facet carries its own three vertex
// positions and a normal, with no shared-vertex indexing. Adjacency is
// reconstructed from raw geometry by the repair feature and recorded in
// the neighbor table: a contiguous, index-addressed table of tagged
// links (none / forward / backward), never raw pointers.
//
// # Lifecycle
//
// A Store is created fresh per repair invocation from externally
// supplied facets and exported back to the same shape afterwards. The
// neighbor table is invalidated and must be rebuilt whenever the facet
// array changes topologically (pruning, hole filling). Faults are
// sticky: once a Store is marked faulted, every pass becomes a no-op
// until it is reloaded with fresh data.
package mesh
