package alongstep

import (
	"math"

	"github.com/sarchlab/celerigo/state"
)

// Vector arithmetic for state.Real3 lives here rather than on state.Real3
// itself, per state's ownership convention (C2 owns only the data; vector
// math belongs with whichever action actually needs it).

func addScaled(p, d state.Real3, distance float64) state.Real3 {
	return state.Real3{p[0] + d[0]*distance, p[1] + d[1]*distance, p[2] + d[2]*distance}
}

func sub(a, b state.Real3) state.Real3 {
	return state.Real3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func norm(v state.Real3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func normalize(v state.Real3) state.Real3 {
	n := norm(v)
	if n == 0 {
		return v
	}
	return state.Real3{v[0] / n, v[1] / n, v[2] / n}
}

func cross(a, b state.Real3) state.Real3 {
	return state.Real3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b state.Real3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
