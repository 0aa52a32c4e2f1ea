// Package transform applies rigid-body and affine maps to a mesh
// Store: translation, scaling, rotation about the axes, mirroring
// across the coordinate planes, and a general 3x4 affine transform.
// Every operation re-derives the size statistics and recomputes facet
// normals from the transformed vertex order. Mirroring additionally
// reverses every facet so the surface keeps facing outward.
package transform
