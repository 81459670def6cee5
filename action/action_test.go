package action_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// noopAction is a minimal concrete action used only to exercise the
// registry; real actions live in the trackinit/alongstep/sort packages.
type noopAction struct {
	action.Base
	steps int
}

func newNoop(label string, order action.Order) *noopAction {
	return &noopAction{Base: action.NewBase(label, label+" (noop)", order)}
}

func (a *noopAction) Step(*params.CoreParams, *state.CoreState) error {
	a.steps++
	return nil
}

var _ = Describe("Registry", func() {
	It("assigns ids in insertion order", func() {
		r := action.NewRegistry()
		a0 := newNoop("pre-step", action.PreStep)
		a1 := newNoop("discrete-select", action.PrePost)

		id0 := r.Insert(a0)
		id1 := r.Insert(a1)

		Expect(id0.Get()).To(Equal(0))
		Expect(id1.Get()).To(Equal(1))
		Expect(a0.ActionID()).To(Equal(id0))
	})

	It("rejects duplicate labels", func() {
		r := action.NewRegistry()
		r.Insert(newNoop("dup", action.PreStep))
		Expect(func() { r.Insert(newNoop("dup", action.Post)) }).To(Panic())
	})

	It("rejects insertion after Seal", func() {
		r := action.NewRegistry()
		r.Seal()
		Expect(func() { r.Insert(newNoop("late", action.PreStep)) }).To(Panic())
	})

	It("groups actions by order, preserving insertion order within a group", func() {
		r := action.NewRegistry()
		first := newNoop("compton", action.Post)
		second := newNoop("photoelectric", action.Post)
		r.Insert(first)
		r.Insert(second)

		got := r.InOrder(action.Post)
		Expect(got).To(HaveLen(2))
		Expect(got[0].Name()).To(Equal("compton"))
		Expect(got[1].Name()).To(Equal("photoelectric"))
	})

	It("looks an action up by label", func() {
		r := action.NewRegistry()
		r.Insert(newNoop("boundary", action.PostPost))
		id, ok := r.ByLabel("boundary")
		Expect(ok).To(BeTrue())
		Expect(id.Get()).To(Equal(0))
	})
})
