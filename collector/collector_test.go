package collector_test

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/collector"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

func minimalParams() *params.CoreParams {
	return params.NewBuilder().
		WithMaxStreams(1).
		WithTracksPerStream(4).
		WithInitializerCapacity(4).
		WithRng(params.Rng{Seed: 3}).
		Build()
}

// fakeCallback records every Deliver call it receives.
type fakeCallback struct {
	attrs     []collector.Attribute
	detectors map[ids.VolumeId]ids.DetectorId
	delivered [][]collector.Row
}

func (f *fakeCallback) Attributes() []collector.Attribute          { return f.attrs }
func (f *fakeCallback) Detectors() map[ids.VolumeId]ids.DetectorId { return f.detectors }
func (f *fakeCallback) Deliver(rows []collector.Row)               { f.delivered = append(f.delivered, rows) }

func aliveSlot(cs *state.CoreState, slot ids.TrackSlotId, volume ids.VolumeId, energy float64) {
	v := cs.Slot(slot)
	*v.Sim() = state.SimRecord{Status: state.Alive, TrackID: ids.TrackId(int64(slot))}
	*v.Particle() = state.ParticleRecord{ParticleID: ids.ParticleId(0), KineticEnergy: energy}
	*v.Geometry() = state.GeometryRecord{Volume: volume}
}

var _ = Describe("Collector", func() {
	It("collects every track when no detector map is configured", func() {
		cb := &fakeCallback{}
		c := collector.New(cb, false)
		pre := collector.NewPreAction(c)
		post := collector.NewPostAction(c)

		cs := state.New(minimalParams(), ids.StreamId(0), 2)
		aliveSlot(cs, ids.TrackSlotId(0), ids.VolumeId(0), 10)
		aliveSlot(cs, ids.TrackSlotId(1), ids.VolumeId(5), 20)

		Expect(pre.Step(nil, cs)).To(Succeed())
		cs.Slot(ids.TrackSlotId(0)).Particle().KineticEnergy = 8
		Expect(post.Step(nil, cs)).To(Succeed())

		Expect(cb.delivered).To(HaveLen(1))
		Expect(cb.delivered[0]).To(HaveLen(2))
	})

	It("only collects tracks in mapped detector volumes", func() {
		cb := &fakeCallback{detectors: map[ids.VolumeId]ids.DetectorId{ids.VolumeId(5): ids.DetectorId(0)}}
		c := collector.New(cb, false)
		pre := collector.NewPreAction(c)
		post := collector.NewPostAction(c)

		cs := state.New(minimalParams(), ids.StreamId(0), 2)
		aliveSlot(cs, ids.TrackSlotId(0), ids.VolumeId(0), 10)
		aliveSlot(cs, ids.TrackSlotId(1), ids.VolumeId(5), 20)

		Expect(pre.Step(nil, cs)).To(Succeed())
		Expect(post.Step(nil, cs)).To(Succeed())

		Expect(cb.delivered).To(HaveLen(1))
		Expect(cb.delivered[0]).To(HaveLen(1))
		Expect(cb.delivered[0][0].Slot).To(Equal(ids.TrackSlotId(1)))
		Expect(cb.delivered[0][0].Detector).To(Equal(ids.DetectorId(0)))
	})

	It("filters out zero-deposition steps when nonzeroOnly is set", func() {
		cb := &fakeCallback{}
		c := collector.New(cb, true)
		pre := collector.NewPreAction(c)
		post := collector.NewPostAction(c)

		cs := state.New(minimalParams(), ids.StreamId(0), 2)
		aliveSlot(cs, ids.TrackSlotId(0), ids.VolumeId(0), 10)
		aliveSlot(cs, ids.TrackSlotId(1), ids.VolumeId(0), 20)

		Expect(pre.Step(nil, cs)).To(Succeed())
		cs.Slot(ids.TrackSlotId(0)).Particle().KineticEnergy = 5 // deposited 5
		// slot 1 unchanged: zero deposition
		Expect(post.Step(nil, cs)).To(Succeed())

		Expect(cb.delivered).To(HaveLen(1))
		Expect(cb.delivered[0]).To(HaveLen(1))
		Expect(cb.delivered[0][0].Slot).To(Equal(ids.TrackSlotId(0)))
		Expect(cb.delivered[0][0].EnergyDeposit).To(BeNumerically("==", 5))
	})

	It("delivers to a gomock-backed callback exactly once per populated step", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		cb := NewMockInterface(mockCtrl)
		cb.EXPECT().Detectors().Return(nil)
		cb.EXPECT().Deliver(gomock.Any()).Times(1)

		c := collector.New(cb, false)
		pre := collector.NewPreAction(c)
		post := collector.NewPostAction(c)

		cs := state.New(minimalParams(), ids.StreamId(0), 1)
		aliveSlot(cs, ids.TrackSlotId(0), ids.VolumeId(0), 10)

		Expect(pre.Step(nil, cs)).To(Succeed())
		Expect(post.Step(nil, cs)).To(Succeed())
	})

	It("never delivers an empty slice", func() {
		cb := &fakeCallback{detectors: map[ids.VolumeId]ids.DetectorId{ids.VolumeId(9): ids.DetectorId(0)}}
		c := collector.New(cb, false)
		pre := collector.NewPreAction(c)
		post := collector.NewPostAction(c)

		cs := state.New(minimalParams(), ids.StreamId(0), 2)
		aliveSlot(cs, ids.TrackSlotId(0), ids.VolumeId(0), 10)

		Expect(pre.Step(nil, cs)).To(Succeed())
		Expect(post.Step(nil, cs)).To(Succeed())

		Expect(cb.delivered).To(BeEmpty())
	})
})
