package alongstep

import (
	"math"

	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/state"
)

// CylindricalFieldSource implements FieldSource over a gridded (r, z) field
// map, the "RZ map field / cylindrical map field" along-step variant of
// spec §4.8 ("analogous with a gridded field" to uniform-field). Grid
// parsing itself is out of scope (spec §1 Non-goals: "any particular
// magnetic-field map format"); this just does nearest-bin lookup over an
// already-loaded grid of (Br, Bz) samples.
type CylindricalFieldSource struct {
	RMin, RStep float64
	ZMin, ZStep float64
	NR, NZ      int
	// Br, Bz are row-major [nz][nr] grids, tesla.
	Br, Bz [][]float64
}

// NewCylindricalFieldSource validates grid dimensions before returning a
// usable field source.
func NewCylindricalFieldSource(rMin, rStep, zMin, zStep float64, br, bz [][]float64) (*CylindricalFieldSource, error) {
	if rStep <= 0 || zStep <= 0 {
		return nil, errs.Configuration("rz-map-field", "grid steps must be positive")
	}
	if len(br) != len(bz) || len(br) == 0 {
		return nil, errs.Configuration("rz-map-field", "Br/Bz grids must be non-empty and equal in length")
	}
	nz := len(br)
	nr := len(br[0])
	return &CylindricalFieldSource{
		RMin: rMin, RStep: rStep, ZMin: zMin, ZStep: zStep, NR: nr, NZ: nz, Br: br, Bz: bz,
	}, nil
}

// At implements FieldSource, converting (x, y, z) to (r, z) and returning
// the nearest grid cell's field, clamped to the grid's extent.
func (f *CylindricalFieldSource) At(position state.Real3) state.Real3 {
	r := math.Hypot(position[0], position[1])
	z := position[2]

	ir := clampIndex(int((r-f.RMin)/f.RStep), f.NR)
	iz := clampIndex(int((z-f.ZMin)/f.ZStep), f.NZ)

	br := f.Br[iz][ir]
	bz := f.Bz[iz][ir]
	if r == 0 {
		return state.Real3{0, 0, bz}
	}
	// Project the radial field component back onto x/y.
	ux, uy := position[0]/r, position[1]/r
	return state.Real3{br * ux, br * uy, bz}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
