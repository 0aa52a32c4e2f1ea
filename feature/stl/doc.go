// Package stl reads and writes meshes in the STL file format, binary
// and ASCII, with auto-detection on read. It is the ingestion/export
// collaborator of the repair engine: it produces the facet sequence the
// mesh Store loads and serializes the sequence the Store exports.
//
// A binary file whose header declares more facets than the data
// contains is returned together with its declared count; the Store
// flags the mismatch as a fault on load rather than the codec guessing.
package stl
