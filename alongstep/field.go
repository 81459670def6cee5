// Package alongstep implements the Along-Step Assembly (C8): the single
// action installed per stream that combines a field propagator, multiple
// scattering (MSC), and continuous energy loss into one along-step pass
// (spec §4.8). The field map, MSC model, and energy-loss tables themselves
// are external collaborators (spec §1); this package owns only the
// dispatch that assembles them.
package alongstep

import (
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/state"
)

// FieldSource is the external field interface of spec §6: a mapping from
// position to field vector (tesla).
type FieldSource interface {
	At(position state.Real3) state.Real3
}

// DriverOptions mirrors the adaptive field-driver knobs spec §6 requires of
// the external field propagator: relative tolerances, a minimum step, a cap
// on sub-steps, and a chord-sagitta tolerance.
type DriverOptions struct {
	EpsilonRelMomentum float64
	EpsilonRelPosition float64
	MinimumStep        float64
	MaxNSteps          int
	DeltaChord         float64
}

// Validate checks the driver options are all strictly positive (MaxNSteps
// at least 1), returning a ConfigurationError otherwise.
func (o DriverOptions) Validate() error {
	switch {
	case o.EpsilonRelMomentum <= 0:
		return errs.Configuration("along-step", "epsilon_rel_momentum must be positive, got %g", o.EpsilonRelMomentum)
	case o.EpsilonRelPosition <= 0:
		return errs.Configuration("along-step", "epsilon_rel_position must be positive, got %g", o.EpsilonRelPosition)
	case o.MinimumStep <= 0:
		return errs.Configuration("along-step", "minimum_step must be positive, got %g", o.MinimumStep)
	case o.MaxNSteps < 1:
		return errs.Configuration("along-step", "max_nsteps must be at least 1, got %d", o.MaxNSteps)
	case o.DeltaChord <= 0:
		return errs.Configuration("along-step", "delta_chord must be positive, got %g", o.DeltaChord)
	}
	return nil
}
