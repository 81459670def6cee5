// Package stepper implements the Step Pipeline (C4) and the caller-facing
// step API of spec §6: assembling the Action Registry into the fixed
// begin_run/pre_step/along/pre_post/post/post_post/end_run order, looping
// substeps until the Initializer Buffer drains or a substep budget is
// exhausted, and exposing state()/counters() for introspection.
package stepper

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
	"github.com/sarchlab/celerigo/internal/logx"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/sort"
	"github.com/sarchlab/celerigo/state"
	"github.com/sarchlab/celerigo/trackinit"
)

var log = logx.For("stepper")

// Options configures a Stepper beyond what CoreParams already carries.
type Options struct {
	// MaxSubsteps bounds how many pipeline iterations a single Step() call
	// may run while draining the Initializer Buffer (spec §6's
	// `max_substeps`, implicit in "run until ... or max_substeps is
	// reached"). Defaults to 1 if left zero.
	MaxSubsteps int
	// CheckInvariants runs CoreState.CheckInvariants() after every Step()
	// call, surfacing an InvariantFailure immediately instead of letting a
	// corrupted state silently propagate (SPEC_FULL.md's StatusChecker
	// supplement).
	CheckInvariants bool
}

// Stepper is the caller-facing external API (spec §6): one per stream,
// owning that stream's CoreState, Initializer Buffer, and the sealed
// Action Registry driving its pipeline.
type Stepper struct {
	params   *params.CoreParams
	streamID ids.StreamId
	state    *state.CoreState
	registry *action.Registry
	ext      *trackinit.Extension
	sorter   *sort.Sorter
	opts     Options

	ranBeginRun bool
}

// New constructs a Stepper. registry must already hold every action the
// pipeline needs — including the trackinit extend-from-secondaries/
// initialize-tracks actions and exactly one Order()==action.Along action —
// and must be sealed. ext is the stream's Primary/Secondary Extension (C6),
// owning the same Initializer Buffer the registry's trackinit actions were
// built around; Step's own extend-from-primaries path (spec §6) pushes
// through this same Extension so every primary gets a track id stamped
// from the one counter the stream uses for both primaries and secondaries.
func New(p *params.CoreParams, streamID ids.StreamId, numSlots int, registry *action.Registry, ext *trackinit.Extension, opts Options) *Stepper {
	if !registry.Sealed() {
		panic(errs.Configuration("stepper", "registry must be sealed before constructing a Stepper"))
	}
	if len(registry.InOrder(action.Along)) != 1 {
		panic(errs.Configuration("stepper", "exactly one along-step action must be registered, found %d",
			len(registry.InOrder(action.Along))))
	}
	if opts.MaxSubsteps <= 0 {
		opts.MaxSubsteps = 1
	}

	var sorter *sort.Sorter
	if p.TrackOrder() == params.PartitionByAction {
		sorter = sort.NewSorter(registry.NumActions())
	}

	s := &Stepper{
		params:   p,
		streamID: streamID,
		state:    state.New(p, streamID, numSlots),
		registry: registry,
		ext:      ext,
		sorter:   sorter,
		opts:     opts,
	}
	log.Info("stepper constructed", "stream", streamID, "slots", numSlots, "sorted", sorter != nil)
	return s
}

// State returns the stream's CoreState for introspection (spec §6's
// `state()`).
func (s *Stepper) State() *state.CoreState { return s.state }

// Counters returns the stream's run-time counters (spec §6's `counters()`).
func (s *Stepper) Counters() state.Counters {
	s.state.RefreshCounters()
	return s.state.Counters()
}

// Step pushes primaries (which may be empty, to continue transport of
// already-alive tracks) and runs the pipeline until the Initializer Buffer
// drains or MaxSubsteps is reached, per spec §6.
func (s *Stepper) Step(primaries []initializer.Primary) (state.Counters, error) {
	if len(primaries) > 0 {
		if err := s.ext.ExtendFromPrimaries(primaries); err != nil {
			return s.Counters(), err
		}
		s.state.SetInitializerCount(s.ext.Buffer().Len())
	}

	substeps := 0
	for {
		if err := s.runOnce(); err != nil {
			return s.Counters(), err
		}
		substeps++
		if s.state.Counters().NumInitializers == 0 {
			break
		}
		if substeps >= s.opts.MaxSubsteps {
			break
		}
	}

	if s.opts.CheckInvariants {
		if err := s.state.CheckInvariants(); err != nil {
			return s.Counters(), err
		}
	}
	return s.Counters(), nil
}

func (s *Stepper) runOnce() error {
	if !s.ranBeginRun {
		if err := s.runPhase(action.BeginRun); err != nil {
			return err
		}
		s.ranBeginRun = true
	}
	for _, phase := range []action.Order{
		action.PreStep,
		action.Along,
		action.PrePost,
		action.Post,
		action.PostPost,
	} {
		if err := s.runPhase(phase); err != nil {
			return err
		}
	}
	if s.sorter != nil {
		s.sorter.Partition(s.state)
	}
	s.state.IncStepIters()
	return nil
}

func (s *Stepper) runPhase(o action.Order) error {
	for _, a := range s.registry.InOrder(o) {
		if err := a.Step(s.params, s.state); err != nil {
			return err
		}
	}
	return nil
}

// Finish runs every registered end_run action once. Callers invoke this
// after the last Step() call of a run, not as part of Step() itself (spec
// §4.3: begin_run/end_run actions run "once per run").
func (s *Stepper) Finish() error {
	return s.runPhase(action.EndRun)
}

// Reset returns the stream's state to its freshly constructed invariant and
// clears the Initializer Buffer, without forgetting that begin_run already
// ran (spec doesn't require begin_run to rerun on reset). If a "kill-active"
// action (trackinit.KillActive, SPEC_FULL.md item 3) is registered, it runs
// first so any track still alive at reset time gets a deterministic
// Errored transition recorded before the state is wiped, instead of
// silently vanishing into the fresh slot bank.
func (s *Stepper) Reset() {
	if id, ok := s.registry.ByLabel("kill-active"); ok {
		if a, err := s.registry.At(id); err == nil {
			if err := a.Step(s.params, s.state); err != nil {
				log.Warn("kill-active failed during reset", "stream", s.streamID, "err", err)
			}
		}
	}
	s.state.Reset()
	s.ext.Buffer().Clear()
}
