package stepper_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
	"github.com/sarchlab/celerigo/stepper"
	"github.com/sarchlab/celerigo/trackinit"
)

func minimalParams(initializerCap, tracksPerStream int) *params.CoreParams {
	return params.NewBuilder().
		WithMaxStreams(1).
		WithTracksPerStream(tracksPerStream).
		WithInitializerCapacity(initializerCap).
		WithRng(params.Rng{Seed: 7}).
		Build()
}

type noopAlong struct{ action.Base }

func newNoopAlong() *noopAlong {
	return &noopAlong{Base: action.NewBase("along", "no-op along-step stand-in", action.Along)}
}

func (a *noopAlong) Step(*params.CoreParams, *state.CoreState) error { return nil }

// killAlong kills every alive slot, standing in for a cutoff/absorption
// along-step action so tests can exercise end-of-step slot recycling.
type killAlong struct{ action.Base }

func newKillAlong() *killAlong {
	return &killAlong{Base: action.NewBase("along", "kills every alive slot", action.Along)}
}

func (a *killAlong) Step(_ *params.CoreParams, s *state.CoreState) error {
	for i := 0; i < s.Size(); i++ {
		v := s.Slot(ids.TrackSlotId(i))
		if v.Sim().Status == state.Alive {
			v.Sim().Status = state.Killed
		}
	}
	return nil
}

func buildKillingStepper(p *params.CoreParams, numSlots int) (*stepper.Stepper, *trackinit.Extension) {
	buf := initializer.NewBuffer(p.InitializerCapacity())
	ext := trackinit.NewExtension(buf)
	loc := trackinit.ConstantLocator{Volume: ids.VolumeId(0)}

	reg := action.NewRegistry()
	along := newKillAlong()
	reg.Insert(along)
	reg.Insert(trackinit.NewRecycleTerminal())
	reg.Insert(trackinit.NewExtendSecondaries(ext, trackinit.Config{AlongStepAction: along.ActionID()}))
	reg.Insert(trackinit.NewInitializeTracks(ext, loc, trackinit.Config{AlongStepAction: along.ActionID()}))
	reg.Seal()

	return stepper.New(p, ids.StreamId(0), numSlots, reg, ext, stepper.Options{}), ext
}

func buildStepper(p *params.CoreParams, numSlots int, opts stepper.Options) *stepper.Stepper {
	buf := initializer.NewBuffer(p.InitializerCapacity())
	ext := trackinit.NewExtension(buf)
	loc := trackinit.ConstantLocator{Volume: ids.VolumeId(0)}

	reg := action.NewRegistry()
	along := newNoopAlong()
	reg.Insert(trackinit.NewKillActive())
	reg.Insert(along)
	reg.Insert(trackinit.NewRecycleTerminal())
	reg.Insert(trackinit.NewExtendSecondaries(ext, trackinit.Config{AlongStepAction: along.ActionID()}))
	reg.Insert(trackinit.NewInitializeTracks(ext, loc, trackinit.Config{AlongStepAction: along.ActionID()}))
	reg.Seal()

	return stepper.New(p, ids.StreamId(0), numSlots, reg, ext, opts)
}

func onePrimary() []initializer.Primary {
	return []initializer.Primary{{
		EventID:    ids.EventId(0),
		ParticleID: ids.ParticleId(0),
		EnergyMeV:  10,
		Position:   initializer.Real3{0, 0, 0},
		Direction:  initializer.Real3{0, 0, 1},
	}}
}

var _ = Describe("Stepper", func() {
	It("panics if constructed with an unsealed registry", func() {
		p := minimalParams(4, 4)
		reg := action.NewRegistry()
		reg.Insert(newNoopAlong())
		buf := initializer.NewBuffer(4)
		ext := trackinit.NewExtension(buf)
		Expect(func() { stepper.New(p, ids.StreamId(0), 4, reg, ext, stepper.Options{}) }).To(Panic())
	})

	It("panics if no along-step action is registered", func() {
		p := minimalParams(4, 4)
		reg := action.NewRegistry()
		reg.Seal()
		buf := initializer.NewBuffer(4)
		ext := trackinit.NewExtension(buf)
		Expect(func() { stepper.New(p, ids.StreamId(0), 4, reg, ext, stepper.Options{}) }).To(Panic())
	})

	It("activates a pushed primary into a track slot within one Step call", func() {
		p := minimalParams(4, 4)
		s := buildStepper(p, 4, stepper.Options{})

		counters, err := s.Step(onePrimary())
		Expect(err).NotTo(HaveOccurred())
		Expect(counters.NumAlive).To(Equal(1))
		Expect(counters.NumInitializers).To(Equal(0))
	})

	It("accepts an empty primaries slice to continue transport of alive tracks", func() {
		p := minimalParams(4, 4)
		s := buildStepper(p, 4, stepper.Options{})

		_, err := s.Step(onePrimary())
		Expect(err).NotTo(HaveOccurred())

		counters, err := s.Step(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(counters.NumAlive).To(Equal(1))
	})

	It("runs begin_run exactly once across multiple Step calls", func() {
		p := minimalParams(4, 4)
		s := buildStepper(p, 4, stepper.Options{})

		_, err := s.Step(onePrimary())
		Expect(err).NotTo(HaveOccurred())
		counters, err := s.Step(nil)
		Expect(err).NotTo(HaveOccurred())
		// kill-active is registered at begin_run: a second begin_run pass
		// would have turned the alive slot Errored and recycled it.
		Expect(counters.NumAlive).To(Equal(1))
	})

	It("resets state and drains the initializer buffer", func() {
		p := minimalParams(4, 4)
		s := buildStepper(p, 4, stepper.Options{})

		_, err := s.Step(onePrimary())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Counters().NumAlive).To(Equal(1))

		s.Reset()
		Expect(s.Counters().NumAlive).To(Equal(0))
		Expect(s.State().NumVacancies()).To(Equal(4))
	})

	It("surfaces an invariant failure when CheckInvariants is enabled", func() {
		p := minimalParams(4, 4)
		s := buildStepper(p, 4, stepper.Options{CheckInvariants: true})

		// No PostStepSelector is configured, so the activated slot keeps a
		// null post_step_action, which CheckInvariants rejects for an alive slot.
		_, err := s.Step(onePrimary())
		Expect(errors.Is(err, &errs.CoreError{Kind: errs.InvariantFailure})).To(BeTrue())
	})

	It("recycles killed slots to inactive and refills their vacancies at end of step", func() {
		p := minimalParams(4, 2)
		s, _ := buildKillingStepper(p, 2)

		counters, err := s.Step(onePrimary())
		Expect(err).NotTo(HaveOccurred())
		Expect(counters.NumAlive).To(Equal(1))
		Expect(s.State().NumVacancies()).To(Equal(1))

		// The along-step action run by this next Step call kills the slot
		// activated above. By the time Step returns, RecycleTerminal must
		// already have cleared it to inactive and rebuilt the vacancy list
		// (spec §3 Lifecycle, invariant 1) rather than leaving it a Killed
		// slot nobody ever recycles.
		counters, err = s.Step(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(counters.NumAlive).To(Equal(0))
		Expect(s.State().NumVacancies()).To(Equal(2))

		// And the freed slot is available to a fresh primary within the
		// very next Step call (spec §2/§4.7, the S2 vacancy-refill dataflow).
		counters, err = s.Step(onePrimary())
		Expect(err).NotTo(HaveOccurred())
		Expect(counters.NumAlive).To(Equal(1))
		Expect(s.State().NumVacancies()).To(Equal(1))
	})

	It("runs Finish's end_run actions without error when none are registered", func() {
		p := minimalParams(4, 4)
		s := buildStepper(p, 4, stepper.Options{})
		Expect(s.Finish()).To(Succeed())
	})
})
