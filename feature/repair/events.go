package repair

import "go.uber.org/zap"

// Phase identifies the repair pass an event originated from.
type Phase string

const (
	PhaseExact            Phase = "exact-check"
	PhaseNearby           Phase = "nearby-check"
	PhasePrune            Phase = "remove-unconnected"
	PhaseFillHoles        Phase = "fill-holes"
	PhaseReverseAll       Phase = "reverse-all"
	PhaseNormalDirections Phase = "fix-normal-directions"
	PhaseNormalValues     Phase = "fix-normal-values"
	PhaseVolume           Phase = "calculate-volume"
	PhaseVerify           Phase = "verify-neighbors"
)

// ProgressEvent is emitted when a pass starts or completes an
// iteration. Counters are snapshots taken at emission time.
type ProgressEvent struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message"`
	// Iteration and Iterations describe the nearby matcher's position
	// in its escalation loop; both are zero for single-shot passes.
	Iteration  int `json:"iteration,omitempty"`
	Iterations int `json:"iterations,omitempty"`
	// Tolerance is the nearby matching distance in effect.
	Tolerance float64 `json:"tolerance,omitempty"`
	// EdgesFixed counts edges newly connected by this iteration.
	EdgesFixed int `json:"edges_fixed"`
	// BackwardsEdges and FacetsByDegree snapshot the mesh counters.
	BackwardsEdges int    `json:"backwards_edges"`
	FacetsByDegree [4]int `json:"facets_by_degree"`
}

// DefectKind classifies a diagnostic event.
type DefectKind string

const (
	// DefectOpenChain marks a boundary chain that never closed into a
	// loop; the hole it bounds is left unrepaired.
	DefectOpenChain DefectKind = "open-chain"
	// DefectUnfillableLoop marks a closed loop no triangulation could
	// cover without degenerate facets.
	DefectUnfillableLoop DefectKind = "unfillable-loop"
	// DefectAsymmetricLink marks a neighbor table entry whose reverse
	// direction does not point back.
	DefectAsymmetricLink DefectKind = "asymmetric-link"
	// DefectEdgeMismatch marks a recorded link whose shared edge
	// coordinates do not line up.
	DefectEdgeMismatch DefectKind = "edge-mismatch"
	// DefectNeighborOutOfRange marks a link to a facet index outside
	// the facet array.
	DefectNeighborOutOfRange DefectKind = "neighbor-out-of-range"
	// DefectEmptyMesh marks a repair request against zero facets.
	DefectEmptyMesh DefectKind = "empty-mesh"
	// DefectNumericFault marks a non-finite result during volume
	// computation.
	DefectNumericFault DefectKind = "numeric-fault"
)

// DefectEvent is a structured diagnostic naming the facets involved in
// a residual or detected defect. Defects never halt the repair; they
// are counted and surfaced.
type DefectEvent struct {
	Phase   Phase      `json:"phase"`
	Kind    DefectKind `json:"kind"`
	Message string     `json:"message"`
	// FacetA/EdgeA locate the defect; FacetB is the other facet of a
	// broken link. Negative values mean not applicable.
	FacetA int `json:"facet_a"`
	EdgeA  int `json:"edge_a"`
	FacetB int `json:"facet_b"`
}

// Reporter receives structured progress and diagnostic events from the
// repair passes. Rendering is the caller's responsibility; the core
// never performs console output.
type Reporter interface {
	Progress(e ProgressEvent)
	Defect(e DefectEvent)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) Progress(ProgressEvent) {}
func (NopReporter) Defect(DefectEvent)     {}

// CollectingReporter buffers every event in order of arrival. The HTTP
// handler uses it to return diagnostics to the caller; tests use it to
// assert on emitted events.
type CollectingReporter struct {
	Events  []ProgressEvent
	Defects []DefectEvent
}

func (r *CollectingReporter) Progress(e ProgressEvent) {
	r.Events = append(r.Events, e)
}

func (r *CollectingReporter) Defect(e DefectEvent) {
	r.Defects = append(r.Defects, e)
}

// ZapReporter renders events through a zap logger: progress at info,
// defects at warn.
type ZapReporter struct {
	logger *zap.Logger
}

// NewZapReporter wraps a logger as a Reporter.
func NewZapReporter(logger *zap.Logger) *ZapReporter {
	return &ZapReporter{logger: logger}
}

func (r *ZapReporter) Progress(e ProgressEvent) {
	fields := []zap.Field{
		zap.String("phase", string(e.Phase)),
		zap.Int("edges_fixed", e.EdgesFixed),
		zap.Int("backwards_edges", e.BackwardsEdges),
		zap.Ints("facets_by_degree", e.FacetsByDegree[:]),
	}
	if e.Iterations > 0 {
		fields = append(fields,
			zap.Int("iteration", e.Iteration),
			zap.Int("iterations", e.Iterations),
			zap.Float64("tolerance", e.Tolerance),
		)
	}
	r.logger.Info(e.Message, fields...)
}

func (r *ZapReporter) Defect(e DefectEvent) {
	r.logger.Warn(e.Message,
		zap.String("phase", string(e.Phase)),
		zap.String("kind", string(e.Kind)),
		zap.Int("facet_a", e.FacetA),
		zap.Int("edge_a", e.EdgeA),
		zap.Int("facet_b", e.FacetB),
	)
}
