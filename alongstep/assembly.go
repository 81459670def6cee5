package alongstep

import (
	"math"

	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// speedOfLightCmPerSec is used only to convert a path length into an
// elapsed time for the sim.Time bookkeeping; the along-step assembly does
// not model mass-dependent velocity (a physical-formula concern spec §1
// places out of scope).
const speedOfLightCmPerSec = 2.99792458e10

// Assembly is the single along-step action installed per stream (spec
// §4.8), combining a Propagator (field or straight-line), an optional MSC
// model, and an optional energy-loss model. Exactly one Assembly is
// registered per stream; which Propagator it holds determines whether it
// behaves as general-linear, uniform-field, RZ-map, or neutral.
type Assembly struct {
	action.Base

	propagator       Propagator
	boundary         BoundaryFinder
	msc              MSC
	eloss            EnergyLoss
	loopingThreshold int
	// neutralOnly restricts this assembly to neutral particle types (the
	// "neutral" variant of spec §4.8); the field-carrying variants leave
	// this false and rely on HasField/volume masking instead.
	neutralOnly bool
}

// NewAssembly constructs the along-step action. msc and eloss may be nil
// (no scattering / no continuous loss modeled). loopingThreshold is the
// `looping_threshold` knob (spec §6): the number of consecutive
// zero-progress propagations after which a track is killed as a looping
// track (spec §4.8, S4).
func NewAssembly(label string, propagator Propagator, boundary BoundaryFinder, msc MSC, eloss EnergyLoss, loopingThreshold int, neutralOnly bool) *Assembly {
	return &Assembly{
		Base:             action.NewBase(label, "propagates field, MSC, and energy loss for one step", action.Along),
		propagator:       propagator,
		boundary:         boundary,
		msc:              msc,
		eloss:            eloss,
		loopingThreshold: loopingThreshold,
		neutralOnly:      neutralOnly,
	}
}

// Step implements action.Interface, applying to every alive slot. Slots are
// independent of one another (each reads only its own view plus the shared,
// read-only params), so the per-slot work is fanned out across a bounded
// goroutine pool via action.RunOverSlots — the bulk-parallel CPU scheduling
// model of spec §5 option (a).
func (a *Assembly) Step(p *params.CoreParams, s *state.CoreState) error {
	return action.RunOverSlots(s.Size(), func(i int) error {
		slot := ids.TrackSlotId(i)
		view := s.Slot(slot)
		if view.Sim().Status != state.Alive {
			return nil
		}
		if a.neutralOnly {
			particle := p.HostRef().Particle.Get(view.Particle().ParticleID)
			if !particle.Neutral() {
				return nil
			}
		}
		a.stepOne(p, s, view)
		return nil
	})
}

func (a *Assembly) stepOne(p *params.CoreParams, s *state.CoreState, view state.View) {
	g := view.Geometry()
	sim := view.Sim()

	physicsLimit := sim.StepLength
	if physicsLimit <= 0 {
		physicsLimit = math.MaxFloat64
	}
	boundaryLimit := a.boundary.Distance(g.Position, g.Direction, *g)

	distance := physicsLimit
	onBoundary := false
	if boundaryLimit < distance {
		distance = boundaryLimit
		onBoundary = true
	}
	if distance < 0 {
		distance = 0
	}

	newPos, newDir, moved, ok := a.propagator.Propagate(view, distance)
	if !ok || moved == 0 {
		sim.NumLoopingSteps++
		if sim.NumLoopingSteps >= a.loopingThreshold {
			s.RecordLooping(state.LoopingRecord{
				TrackID:         sim.TrackID,
				Volume:          g.Volume,
				NumLoopingSteps: sim.NumLoopingSteps,
				DepositedEnergy: view.Particle().KineticEnergy,
			})
			view.Particle().KineticEnergy = 0
			sim.Status = state.Killed
		}
		return
	}
	sim.NumLoopingSteps = 0

	if a.msc != nil {
		newDir = a.msc.Apply(view, moved)
	}
	g.Position = newPos
	g.Direction = newDir
	g.OnBoundary = onBoundary

	var lossMeV float64
	if a.eloss != nil {
		lossMeV = a.eloss.Deposit(view, moved)
	}
	particle := view.Particle()
	remaining := particle.KineticEnergy - lossMeV
	cutoff := p.HostRef().Cutoff.EnergyOf(view.Material().Get(), particle.ParticleID.Get())
	if remaining <= cutoff {
		particle.KineticEnergy = 0
		sim.Status = state.Killed
	} else {
		particle.KineticEnergy = remaining
	}

	sim.Time += moved / speedOfLightCmPerSec
	sim.StepLength = moved
	sim.StepCount++
}
