package offload_test

import (
	"github.com/sarchlab/celerigo/action"
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
		WithRng(params.Rng{Seed: 11}).
		WithParticle(params.ParticleTable{Particles: []params.Particle{
			{Name: "opticalphoton", MassMeV: 0, ChargeEli: 0, IsOptical: true},
		}}).
		Build()
}

// noopAlong is the single along-step stand-in an optical test stream needs
// just to satisfy Stepper.New's "exactly one along-step action" invariant;
// the optical physics kernels themselves are out of scope here.
type noopAlong struct{ action.Base }

func newNoopAlong() *noopAlong {
	return &noopAlong{Base: action.NewBase("optical-along", "no-op along-step stand-in", action.Along)}
}

func (a *noopAlong) Step(*params.CoreParams, *state.CoreState) error { return nil }

// buildOpticalStepper assembles the minimal registry an optical Stepper
// needs to accept primaries and report them as alive: a no-op along-step
// action plus the real extend-from-secondaries/initialize-tracks actions.
func buildOpticalStepper(p *params.CoreParams, numSlots int) (*stepper.Stepper, *trackinit.Extension) {
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

	st := stepper.New(p, ids.StreamId(0), numSlots, reg, ext, stepper.Options{})
	return st, ext
}

// constGenerator turns every distribution into a fixed number of identical
// optical-photon primaries, standing in for Cherenkov/scintillation yield
// sampling (an out-of-scope physical formula).
type constGenerator struct{ photonsPerDistribution int }

func (g constGenerator) Generate(d state.Distribution) []initializer.Primary {
	out := make([]initializer.Primary, g.photonsPerDistribution)
	for i := range out {
		out[i] = initializer.Primary{
			EventID:    ids.EventId(0),
			ParticleID: ids.ParticleId(0),
			EnergyMeV:  0.000003, // ~3 eV, a typical optical photon energy
			Position:   initializer.Real3(d.PostPosition),
			Direction:  initializer.Real3{0, 0, 1},
		}
	}
	return out
}
