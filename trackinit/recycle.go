package trackinit

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// RecycleTerminal implements the end-of-step slot recycling spec §3's
// Lifecycle requires: "killed/errored -> inactive: the slot is cleared and
// its index appended to the vacancy list at the end of the step." Register
// at order=post_post, after any boundary/tracking-cut action that may kill
// or error a slot this step, and before ExtendSecondaries/InitializeTracks
// — the same "insertion order settles sub-phase ordering within post_post"
// convention collector.Collector's doc comment already relies on. Placing
// it there makes slots vacated this step (spec §8 scenario S2, the
// capacity-16/22-primaries walkthrough) available to this same step's
// initialize-tracks pass, not the next one.
type RecycleTerminal struct {
	action.Base
}

// NewRecycleTerminal constructs the terminal-slot recycling action.
func NewRecycleTerminal() *RecycleTerminal {
	return &RecycleTerminal{
		Base: action.NewBase(
			"recycle-terminal-slots",
			"clears killed/errored slots to inactive and rebuilds the vacancy list",
			action.PostPost,
		),
	}
}

// Step implements action.Interface.
func (a *RecycleTerminal) Step(_ *params.CoreParams, s *state.CoreState) error {
	s.ClearTerminal()
	s.RecomputeVacancies()
	return nil
}
