package repair

import (
	"errors"
	"fmt"

	"mesh-doctor/core/mesh"

	"go.uber.org/zap"
)

// ErrEmptyMesh is returned when a repair is requested against a Store
// with zero facets.
var ErrEmptyMesh = errors.New("mesh contains no facets")

// Service runs repair passes against a single Store. It owns the Store
// for the duration of a call; passes execute strictly sequentially
// because each reads adjacency state written by the previous one.
type Service struct {
	store    *mesh.Store
	logger   *zap.Logger
	reporter Reporter
}

// NewService creates a repair service around a loaded Store. A nil
// logger or reporter is replaced with a no-op implementation.
func NewService(store *mesh.Store, logger *zap.Logger, reporter Reporter) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Service{store: store, logger: logger, reporter: reporter}
}

// Store returns the Store the service operates on.
func (s *Service) Store() *mesh.Store {
	return s.store
}

// progress emits a progress event carrying current counter snapshots.
func (s *Service) progress(e ProgressEvent) {
	st := s.store.Stats
	e.BackwardsEdges = st.BackwardsEdges
	e.FacetsByDegree = st.FacetsByDegree
	s.reporter.Progress(e)
}

// Repair executes the requested passes in their fixed order:
// exact -> nearby -> prune -> fill holes -> reverse all -> fix normal
// directions -> fix normal values -> volume correction -> verification.
// Requesting nearby, prune, fill-holes or fix-normal-directions
// implicitly forces exact matching first, since each depends on a valid
// neighbor table. Volume correction always runs; verification runs
// whenever exact matching did.
func (s *Service) Repair(opts Options) error {
	if err := s.store.Fault(); err != nil {
		return fmt.Errorf("mesh is faulted: %w", err)
	}
	if s.store.Len() == 0 {
		s.reporter.Defect(DefectEvent{
			Phase:   PhaseExact,
			Kind:    DefectEmptyMesh,
			Message: "repair requested on an empty mesh",
			FacetA:  -1, EdgeA: -1, FacetB: -1,
		})
		return ErrEmptyMesh
	}

	if opts.needsExact() {
		if err := s.CheckExact(); err != nil {
			return fmt.Errorf("exact check: %w", err)
		}
		s.progress(ProgressEvent{Phase: PhaseExact, Message: "checked exact adjacency"})
	}

	if opts.Nearby || opts.FixAll {
		if err := s.runNearby(opts); err != nil {
			return fmt.Errorf("nearby check: %w", err)
		}
	}

	if opts.RemoveUnconnected || opts.FixAll || opts.FillHoles {
		if !s.store.Stats.FullyConnected() {
			removed, err := s.RemoveUnconnected()
			if err != nil {
				return fmt.Errorf("remove unconnected: %w", err)
			}
			if removed > 0 {
				// Topology changed; rebuild adjacency before anything
				// else reads it.
				if err := s.CheckExact(); err != nil {
					return fmt.Errorf("exact recheck after prune: %w", err)
				}
			}
			s.progress(ProgressEvent{Phase: PhasePrune, Message: "removed unconnected facets"})
		}
	}

	if opts.FillHoles || opts.FixAll {
		if !s.store.Stats.FullyConnected() {
			added, err := s.FillHoles()
			if err != nil {
				return fmt.Errorf("fill holes: %w", err)
			}
			if added > 0 {
				if err := s.CheckExact(); err != nil {
					return fmt.Errorf("exact recheck after fill: %w", err)
				}
			}
			s.progress(ProgressEvent{Phase: PhaseFillHoles, Message: "filled holes"})
		}
	}

	if opts.ReverseAll {
		s.store.ReverseAll()
		s.progress(ProgressEvent{Phase: PhaseReverseAll, Message: "reversed all facets"})
	}

	if opts.NormalDirections || opts.FixAll {
		if err := s.FixNormalDirections(); err != nil {
			return fmt.Errorf("fix normal directions: %w", err)
		}
		s.progress(ProgressEvent{Phase: PhaseNormalDirections, Message: "fixed normal directions"})
	}

	if opts.NormalValues || opts.FixAll {
		if err := s.FixNormalValues(); err != nil {
			return fmt.Errorf("fix normal values: %w", err)
		}
		s.progress(ProgressEvent{Phase: PhaseNormalValues, Message: "fixed normal values"})
	}

	// The volume is always calculated; it is the final authority on the
	// mesh's inside/outside sense.
	if err := s.CalculateVolume(); err != nil {
		return fmt.Errorf("calculate volume: %w", err)
	}
	s.progress(ProgressEvent{Phase: PhaseVolume, Message: "calculated volume"})

	if opts.needsExact() {
		if err := s.VerifyNeighbors(); err != nil {
			return fmt.Errorf("verify neighbors: %w", err)
		}
		s.progress(ProgressEvent{Phase: PhaseVerify, Message: "verified neighbors"})
	}

	return nil
}

// runNearby drives the tolerance-escalation loop around CheckNearby.
func (s *Service) runNearby(opts Options) error {
	st := &s.store.Stats

	tolerance := opts.Tolerance
	if !opts.ToleranceSet {
		tolerance = st.ShortestEdge
	}
	increment := opts.Increment
	if !opts.IncrementSet {
		increment = st.BoundingDiameter / 10000.0
	}
	iterations := opts.iterations()

	if st.FullyConnected() {
		s.progress(ProgressEvent{Phase: PhaseNearby, Message: "all facets connected, no nearby check necessary"})
		return nil
	}

	for i := 0; i < iterations; i++ {
		if st.FullyConnected() {
			s.progress(ProgressEvent{Phase: PhaseNearby, Message: "all facets connected, no further nearby check necessary"})
			break
		}
		fixed, err := s.CheckNearby(tolerance)
		if err != nil {
			return err
		}
		s.progress(ProgressEvent{
			Phase:      PhaseNearby,
			Message:    "checked nearby adjacency",
			Iteration:  i + 1,
			Iterations: iterations,
			Tolerance:  tolerance,
			EdgesFixed: fixed,
		})
		tolerance += increment
	}
	return nil
}
