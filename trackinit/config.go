package trackinit

import (
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// PostStepSelector assigns a single slot's post_step_action immediately upon
// activation, satisfied by the discrete-select action. Spec §3 invariant 3
// requires every alive slot to carry a valid post_step_action, but
// discrete-select (pipeline step 3) runs before extend-from-secondaries and
// initialize-tracks (steps 6-7) within the same step() call, so a track
// activated this step would otherwise sit with ids.NullActionId until the
// next step's discrete-select pass. Wiring a selector closes that window;
// leaving it nil accepts the gap (only observable via an explicit debug
// invariant check run between step() calls).
type PostStepSelector interface {
	SelectOne(p *params.CoreParams, s *state.CoreState, slot ids.TrackSlotId) error
}

// PreStepZeroer runs the registered pre-step action against a single slot,
// used by initialize-tracks (spec §4.7: "run the registered pre-step action
// to zero step-local scratch") without re-running it over every already
// pre-stepped alive slot in the state.
type PreStepZeroer interface {
	ZeroOne(p *params.CoreParams, s *state.CoreState, slot ids.TrackSlotId) error
}

// Config carries the shared, build-time configuration both
// extend-from-secondaries and initialize-tracks need.
type Config struct {
	// AlongStepAction is the single along-step action installed for this
	// stream (spec §4.8); stamped onto every newly activated slot.
	AlongStepAction ids.ActionId
	Selector        PostStepSelector
	PreStep         PreStepZeroer
}
