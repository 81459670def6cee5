package alongstep

import (
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// MaskedPropagator dispatches between a field propagator and a straight-line
// fallback based on the configured has_field volume mask (spec §4.8:
// "supports a per-volume mask has_field[volume_id] enabling the field in a
// selected subset of volumes and linear motion in others"). An empty mask
// enables the field everywhere (params.Volume.FieldEnabled's convention,
// preserved per spec §9's Open Question).
type MaskedPropagator struct {
	Field  Propagator
	Linear Propagator
	Params *params.CoreParams
}

// Propagate implements Propagator.
func (m MaskedPropagator) Propagate(view state.View, distance float64) (state.Real3, state.Real3, float64, bool) {
	volume := view.Geometry().Volume
	if m.Params.HostRef().Volume.FieldEnabled(volume) {
		return m.Field.Propagate(view, distance)
	}
	return m.Linear.Propagate(view, distance)
}
