package repair

// DefaultIterations is the nearby matcher's iteration cap when the
// caller does not set one.
const DefaultIterations = 2

// Options mirrors the repair CLI flags 1:1. The *Set fields record
// whether the numeric overrides were given explicitly; when absent the
// defaults are derived from mesh geometry (shortest edge, bounding
// diameter / 10000).
type Options struct {
	// FixAll enables every corrective pass.
	FixAll bool
	// ExactCheck builds adjacency from bit-identical edges.
	ExactCheck bool
	// Nearby matches remaining edges under an escalating tolerance.
	Nearby bool
	// Tolerance is the starting nearby tolerance.
	Tolerance    float64
	ToleranceSet bool
	// Increment is added to the tolerance before each nearby iteration
	// after the first.
	Increment    float64
	IncrementSet bool
	// Iterations caps the nearby matcher; zero means DefaultIterations.
	Iterations int
	// RemoveUnconnected prunes facets with no matched edge.
	RemoveUnconnected bool
	// FillHoles triangulates closed boundary loops.
	FillHoles bool
	// ReverseAll flips the winding of every facet before orientation
	// fixing.
	ReverseAll bool
	// NormalDirections propagates consistent winding per component.
	NormalDirections bool
	// NormalValues rewrites stored normals from vertex order.
	NormalValues bool
}

// needsExact reports whether the requested passes depend on a valid
// neighbor table, which forces exact matching to run first.
func (o Options) needsExact() bool {
	return o.ExactCheck || o.FixAll || o.Nearby || o.RemoveUnconnected ||
		o.FillHoles || o.NormalDirections
}

// iterations returns the effective nearby iteration cap.
func (o Options) iterations() int {
	if o.Iterations <= 0 {
		return DefaultIterations
	}
	return o.Iterations
}
