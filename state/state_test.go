package state_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

func minimalParams() *params.CoreParams {
	return params.NewBuilder().
		WithMaxStreams(1).
		WithTracksPerStream(8).
		WithInitializerCapacity(8).
		WithRng(params.Rng{Seed: 42}).
		Build()
}

var _ = Describe("CoreState", func() {
	It("starts every slot inactive and fills the vacancy list ascending", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 4)
		Expect(cs.NumVacancies()).To(Equal(4))
		Expect(cs.Vacancies()).To(Equal([]ids.TrackSlotId{0, 1, 2, 3}))
		for i := 0; i < 4; i++ {
			Expect(cs.Slot(ids.TrackSlotId(i)).Sim().Status).To(Equal(state.Inactive))
		}
	})

	It("satisfies invariant 1: alive+inactive+errored == capacity", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 4)
		cs.Slot(ids.TrackSlotId(0)).Sim().Status = state.Alive
		cs.Slot(ids.TrackSlotId(1)).Sim().Status = state.Errored
		Expect(cs.CheckInvariants()).To(Succeed())
	})

	It("round-trips through Reset to the fresh-construction invariant", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 4)
		cs.Slot(ids.TrackSlotId(0)).Sim().Status = state.Alive
		cs.RecomputeVacancies()
		Expect(cs.NumVacancies()).To(Equal(3))

		cs.Reset()
		Expect(cs.NumVacancies()).To(Equal(4))
		Expect(cs.Slot(ids.TrackSlotId(0)).Sim().Status).To(Equal(state.Inactive))
	})

	It("rebuilds the vacancy list only from Inactive slots after ClearTerminal", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 4)
		cs.Slot(ids.TrackSlotId(0)).Sim().Status = state.Alive
		cs.Slot(ids.TrackSlotId(1)).Sim().Status = state.Killed
		cs.Slot(ids.TrackSlotId(2)).Sim().Status = state.Errored

		cs.ClearTerminal()
		cs.RecomputeVacancies()

		Expect(cs.NumVacancies()).To(Equal(3))
		Expect(cs.Vacancies()).To(ContainElements(ids.TrackSlotId(1), ids.TrackSlotId(2), ids.TrackSlotId(3)))
		Expect(cs.Slot(ids.TrackSlotId(1)).Sim().Status).To(Equal(state.Inactive))
	})

	It("computes an action range over the full slot set when unsorted", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 4)
		lo, hi := cs.ActionRange(ids.ActionId(0))
		Expect(lo).To(Equal(0))
		Expect(hi).To(Equal(4))
	})

	It("reports a sorted action range once offsets are installed", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 4)
		cs.SetActionThreadOffsets([]int{0, 2, 4})
		lo, hi := cs.ActionRange(ids.ActionId(1))
		Expect(lo).To(Equal(2))
		Expect(hi).To(Equal(4))
	})

	It("seeds each slot's rng deterministically given the same sequence", func() {
		p := minimalParams()
		cs1 := state.New(p, ids.StreamId(0), 2)
		cs2 := state.New(p, ids.StreamId(0), 2)
		cs1.SeedRng(ids.TrackSlotId(0))
		cs2.SeedRng(ids.TrackSlotId(0))
		v1 := cs1.Slot(ids.TrackSlotId(0)).Rng().NextUint32()
		v2 := cs2.Slot(ids.TrackSlotId(0)).Rng().NextUint32()
		Expect(v1).To(Equal(v2))
	})

	It("accumulates and clears per-slot generator distributions", func() {
		cs := state.New(minimalParams(), ids.StreamId(0), 2)
		cs.AppendDistribution(ids.TrackSlotId(0), state.Distribution{NumPhotons: 3})
		cs.AppendDistribution(ids.TrackSlotId(0), state.Distribution{NumPhotons: 4})
		Expect(cs.Distributions(ids.TrackSlotId(0))).To(HaveLen(2))
		Expect(cs.Distributions(ids.TrackSlotId(1))).To(BeEmpty())

		cs.ClearDistributions()
		Expect(cs.Distributions(ids.TrackSlotId(0))).To(BeEmpty())
	})
})
