// Package geom provides the small 3D vector toolkit used by the mesh
// packages. Coordinates are float32, matching the on-disk STL precision,
// while products that are prone to overflow or cancellation (cross
// products, lengths, volumes) are computed in float64 and narrowed back.
package geom
