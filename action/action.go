package action

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// HookPosActionStep is the hook position for an action's Step method,
// mirroring the teacher's core/port.go convention of exporting
// package-level *sim.HookPos markers (e.g. HookPosPortMsgSend) for
// observability hooks. No code in this module invokes hooks at it.
var HookPosActionStep = &sim.HookPos{Name: "Action Step"}

// Interface is the capability set every action (physics kernel, geometry
// navigator callback, or core pipeline action) must implement, per spec
// §4.3. Concrete actions embed sim.HookableBase so they can be observed the
// same way the teacher's ports are, without each action reimplementing
// hook bookkeeping.
type Interface interface {
	sim.Named
	sim.Hookable

	// ActionID returns this action's stable registry index.
	ActionID() ids.ActionId
	// Description is a short, human-readable summary.
	Description() string
	// Order reports which pipeline phase this action runs in.
	Order() Order
	// Step applies the action to every slot in state that it should act
	// on; for Order()==Post actions that means only the slots whose
	// PostStepAction equals ActionID() (the TrackExecutor filter of
	// spec §4.4 step 4).
	Step(p *params.CoreParams, s *state.CoreState) error
}

// Base provides the bookkeeping shared by every concrete action: its id,
// label, description, order, and hookable/named behavior. Concrete actions
// embed Base and implement only Step.
type Base struct {
	sim.HookableBase

	id          ids.ActionId
	label       string
	description string
	order       Order
}

// NewBase constructs the common action bookkeeping. The id is assigned by
// the Registry at insertion time, not chosen by the action itself.
func NewBase(label, description string, order Order) Base {
	return Base{id: ids.NullActionId, label: label, description: description, order: order}
}

// Name satisfies sim.Named.
func (b *Base) Name() string { return b.label }

// ActionID satisfies Interface.
func (b *Base) ActionID() ids.ActionId { return b.id }

// Description satisfies Interface.
func (b *Base) Description() string { return b.description }

// Order satisfies Interface.
func (b *Base) Order() Order { return b.order }

// setID is called exactly once, by Registry.Insert.
func (b *Base) setID(id ids.ActionId) { b.id = id }
