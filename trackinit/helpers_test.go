package trackinit_test

import (
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

func minimalParams(initializerCap int) *params.CoreParams {
	return params.NewBuilder().
		WithMaxStreams(1).
		WithTracksPerStream(1).
		WithInitializerCapacity(initializerCap).
		WithRng(params.Rng{Seed: 7}).
		Build()
}

// fakeSelector records every slot it was asked to assign, and stamps a
// fixed post-step action id, standing in for the discrete-select action.
type fakeSelector struct {
	action ids.ActionId
	called []ids.TrackSlotId
}

func (f *fakeSelector) SelectOne(p *params.CoreParams, s *state.CoreState, slot ids.TrackSlotId) error {
	f.called = append(f.called, slot)
	s.Slot(slot).Sim().PostStepAction = f.action
	return nil
}

// fakeZeroer records every slot it was asked to zero.
type fakeZeroer struct {
	called []ids.TrackSlotId
}

func (f *fakeZeroer) ZeroOne(p *params.CoreParams, s *state.CoreState, slot ids.TrackSlotId) error {
	f.called = append(f.called, slot)
	s.Slot(slot).Physics().ELossScratch = 0
	return nil
}
