package trackinit

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// KillActive is the run-level action of SPEC_FULL.md item 3, grounded on
// the original `global/detail/KillActive.cc`: it force-transitions every
// currently alive slot to Errored. It is registered at order=begin_run like
// any other action, but a Stepper also invokes it directly (by label, via
// Registry.ByLabel) from Reset, so a stream that still has active tracks
// gets a deterministic terminal transition recorded before its state is
// wiped, rather than those tracks silently vanishing. The Offload Pipeline
// uses the same path when shutting down its nested optical stepper.
type KillActive struct {
	action.Base
}

// NewKillActive constructs the kill-active action.
func NewKillActive() *KillActive {
	return &KillActive{
		Base: action.NewBase(
			"kill-active",
			"force-transitions every alive slot to errored",
			action.BeginRun,
		),
	}
}

// Step implements action.Interface.
func (a *KillActive) Step(_ *params.CoreParams, s *state.CoreState) error {
	s.KillAllActive()
	return nil
}
