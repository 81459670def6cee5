package alongstep

import "github.com/sarchlab/celerigo/state"

// BoundaryFinder is the geometry navigator's contribution to along-step: the
// distance from position along direction, inside volume, to the next
// geometry boundary (spec §1: geometry navigators are an external
// collaborator; only this narrow capability is consumed here).
type BoundaryFinder interface {
	Distance(position, direction state.Real3, volume state.GeometryRecord) float64
}

// MSC is the multiple-scattering external collaborator: given a step
// length, it returns the post-step direction after lateral displacement and
// direction change have been sampled.
type MSC interface {
	Apply(view state.View, stepLength float64) state.Real3
}

// EnergyLoss is the continuous energy-loss external collaborator: given a
// step length, it returns the kinetic energy (MeV) to deduct, optionally
// including fluctuation sampling.
type EnergyLoss interface {
	Deposit(view state.View, stepLength float64) float64
}

// Propagator advances a position/direction pair by up to distance,
// returning the actual distance moved and whether any motion occurred at
// all (false signals a looping/stalled propagator, spec §4.8's
// "looping-in-field detection").
type Propagator interface {
	Propagate(view state.View, distance float64) (newPos, newDir state.Real3, moved float64, ok bool)
}
