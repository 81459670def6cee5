package offload

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// Action wraps a Pipeline's CollectFromState as a registered, PostPost-
// order action, so the Offload Pipeline participates in the charged
// stream's Step Pipeline (C4) the same way any other action does. Callers
// must insert it after the charged stream's extend-from-secondaries action
// so a step's secondaries are fully accounted for before distributions
// (produced earlier, by the along-step action) are drained; ordering
// between Action and extend-from-secondaries/initialize-tracks within
// PostPost is otherwise immaterial, since they touch disjoint scratch.
type Action struct {
	action.Base
	pipeline *Pipeline
}

// NewAction constructs the offload-collection action around pl.
func NewAction(pl *Pipeline) *Action {
	return &Action{
		Base: action.NewBase(
			"offload-collect",
			"drains generator distributions into the optical offload pipeline and flushes when due",
			action.PostPost,
		),
		pipeline: pl,
	}
}

// Step implements action.Interface.
func (a *Action) Step(_ *params.CoreParams, s *state.CoreState) error {
	return a.pipeline.CollectFromState(s)
}
