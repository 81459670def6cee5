package trackinit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/state"
	"github.com/sarchlab/celerigo/trackinit"
)

var _ = Describe("KillActive", func() {
	It("force-transitions every alive slot to errored, leaving other statuses untouched", func() {
		p := minimalParams(4)
		cs := state.New(p, ids.StreamId(0), 4)

		cs.Slot(ids.TrackSlotId(0)).Sim().Status = state.Alive
		cs.Slot(ids.TrackSlotId(1)).Sim().Status = state.Killed
		cs.Slot(ids.TrackSlotId(2)).Sim().Status = state.Inactive

		act := trackinit.NewKillActive()
		Expect(act.Step(p, cs)).To(Succeed())

		Expect(cs.Slot(ids.TrackSlotId(0)).Sim().Status).To(Equal(state.Errored))
		Expect(cs.Slot(ids.TrackSlotId(1)).Sim().Status).To(Equal(state.Killed))
		Expect(cs.Slot(ids.TrackSlotId(2)).Sim().Status).To(Equal(state.Inactive))
	})
})
