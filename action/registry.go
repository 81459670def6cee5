package action

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
)

// idSetter is implemented (via embedding Base) by every concrete action;
// it lets Registry.Insert assign the stable ActionId without exposing a
// public mutator on Interface.
type idSetter interface {
	setID(ids.ActionId)
}

// Registry is the ordered catalog of actions (C3). It stores actions by
// insertion order, assigns ids at insertion, and becomes immutable once the
// run begins (spec §4.3).
type Registry struct {
	actions []Interface
	byLabel map[string]ids.ActionId
	sealed  bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{byLabel: make(map[string]ids.ActionId)}
}

// Insert appends a to the registry in order, assigning it the next
// ActionId. It is a ConfigurationError to insert after Seal, or to insert
// two actions with the same label.
func (r *Registry) Insert(a Interface) ids.ActionId {
	if r.sealed {
		panic(errs.Configuration("action-registry", "cannot insert %q after the registry is sealed", a.Name()))
	}
	if _, dup := r.byLabel[a.Name()]; dup {
		panic(errs.Configuration("action-registry", "duplicate action label %q", a.Name()))
	}

	id := ids.ActionId(len(r.actions))
	setter, ok := a.(idSetter)
	if !ok {
		panic(errs.Configuration("action-registry", "action %q does not embed action.Base", a.Name()))
	}
	setter.setID(id)

	r.actions = append(r.actions, a)
	r.byLabel[a.Name()] = id
	return id
}

// Seal prevents any further insertion. The pipeline must seal the registry
// before the first step.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.sealed }

// NumActions reports how many actions are registered.
func (r *Registry) NumActions() int { return len(r.actions) }

// At returns the action with the given id, or an error if out of range.
func (r *Registry) At(id ids.ActionId) (Interface, error) {
	i := id.Get()
	if i < 0 || i >= len(r.actions) {
		return nil, errs.Invariant("action-registry", "action id %s out of range [0,%d)", id, len(r.actions))
	}
	return r.actions[i], nil
}

// ByLabel looks up an action's id by its label.
func (r *Registry) ByLabel(label string) (ids.ActionId, bool) {
	id, ok := r.byLabel[label]
	return id, ok
}

// InOrder returns every registered action whose Order() equals the given
// phase, in insertion order, for the Step Pipeline to invoke in sequence.
func (r *Registry) InOrder(o Order) []Interface {
	var out []Interface
	for _, a := range r.actions {
		if a.Order() == o {
			out = append(out, a)
		}
	}
	return out
}

// All returns every registered action, in insertion (id) order.
func (r *Registry) All() []Interface {
	out := make([]Interface, len(r.actions))
	copy(out, r.actions)
	return out
}

// Dump renders the registry as a table, for diagnostics, mirroring the
// teacher's use of go-pretty/table for PE state dumps in core/util.go.
func (r *Registry) Dump() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"id", "label", "order", "description"})
	for _, a := range r.actions {
		t.AppendRow(table.Row{a.ActionID().Get(), a.Name(), a.Order(), a.Description()})
	}
	return t.Render()
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry{actions=%d sealed=%v}", len(r.actions), r.sealed)
}
