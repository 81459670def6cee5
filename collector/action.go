package collector

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// PreAction snapshots each alive slot's pre-step kinetic energy, the input
// to the post-step `EnergyDeposit` computation. Register at order=pre_step.
type PreAction struct {
	action.Base
	c *Collector
}

// NewPreAction constructs the pre-step snapshot action around c.
func NewPreAction(c *Collector) *PreAction {
	return &PreAction{
		Base: action.NewBase("collect-pre-step", "snapshots pre-step kinetic energy for the step collector", action.PreStep),
		c:    c,
	}
}

// Step implements action.Interface.
func (a *PreAction) Step(_ *params.CoreParams, s *state.CoreState) error {
	a.c.snapshotPre(s)
	return nil
}

// PostAction gathers and delivers the step's collected rows. Register at
// order=post_post, before any action that clears terminal slots or
// recycles vacancies, per the Collector doc comment.
type PostAction struct {
	action.Base
	c *Collector
}

// NewPostAction constructs the post-step gather/deliver action around c.
func NewPostAction(c *Collector) *PostAction {
	return &PostAction{
		Base: action.NewBase("collect-post-step", "gathers and delivers post-step rows for the step collector", action.PostPost),
		c:    c,
	}
}

// Step implements action.Interface.
func (a *PostAction) Step(_ *params.CoreParams, s *state.CoreState) error {
	a.c.gatherAndDeliver(s)
	return nil
}
