package trackinit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/state"
	"github.com/sarchlab/celerigo/trackinit"
)

var _ = Describe("RecycleTerminal", func() {
	It("clears killed/errored slots to inactive and rebuilds the vacancy list", func() {
		p := minimalParams(4)
		cs := state.New(p, ids.StreamId(0), 4)

		cs.Slot(ids.TrackSlotId(0)).Sim().Status = state.Alive
		cs.Slot(ids.TrackSlotId(1)).Sim().Status = state.Killed
		cs.Slot(ids.TrackSlotId(2)).Sim().Status = state.Errored
		cs.Slot(ids.TrackSlotId(3)).Sim().Status = state.Inactive
		cs.RecomputeVacancies()
		Expect(cs.NumVacancies()).To(Equal(1)) // only slot 3, pre-recycle

		act := trackinit.NewRecycleTerminal()
		Expect(act.Step(p, cs)).To(Succeed())

		Expect(cs.Slot(ids.TrackSlotId(1)).Sim().Status).To(Equal(state.Inactive))
		Expect(cs.Slot(ids.TrackSlotId(2)).Sim().Status).To(Equal(state.Inactive))
		Expect(cs.Slot(ids.TrackSlotId(0)).Sim().Status).To(Equal(state.Alive))
		Expect(cs.NumVacancies()).To(Equal(3)) // slots 1, 2, 3
	})
})
