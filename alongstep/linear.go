package alongstep

import "github.com/sarchlab/celerigo/state"

// LinearPropagator moves in a straight line, unaffected by any field. It
// backs both the general-linear and neutral along-step variants (spec
// §4.8); it never loops, since straight-line motion always covers the
// requested distance exactly.
type LinearPropagator struct{}

// Propagate implements Propagator.
func (LinearPropagator) Propagate(view state.View, distance float64) (state.Real3, state.Real3, float64, bool) {
	g := view.Geometry()
	newPos := addScaled(g.Position, g.Direction, distance)
	return newPos, g.Direction, distance, true
}
