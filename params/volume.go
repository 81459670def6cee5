package params

import "github.com/sarchlab/celerigo/ids"

// Volume is the read-many sub-table of per-volume along-step configuration:
// principally the `has_field` mask described in spec §4.8 and §9, which
// enables the uniform-field propagator in a selected subset of volumes and
// falls back to straight-line motion elsewhere. Per §9's open question,
// an empty mask means "field everywhere" — this convention must be
// preserved by every along-step assembly that consults HasField.
type Volume struct {
	HasField []bool
}

// FieldEnabled reports whether the uniform/mapped-field propagator should
// run in the given volume. An empty mask means the field applies
// everywhere, matching the original implementation's convention.
func (v *Volume) FieldEnabled(volume ids.VolumeId) bool {
	if len(v.HasField) == 0 {
		return true
	}
	i := volume.Get()
	if i < 0 || i >= len(v.HasField) {
		return false
	}
	return v.HasField[i]
}

// Surface is the read-many sub-table mapping a placed surface to the
// optical surface-interaction model that governs it (spec §4.10's
// "surface interactions" action in the reduced optical action set).
type Surface struct {
	Model []ids.SurfaceModelId
}

// ModelOf returns the surface model governing the given surface index, or
// the null sentinel SurfaceModelId(-1) if out of range.
func (s *Surface) ModelOf(surface int) ids.SurfaceModelId {
	if surface < 0 || surface >= len(s.Model) {
		return ids.SurfaceModelId(-1)
	}
	return s.Model[surface]
}

// Wentzel is the read-many sub-table of Wentzel-model MSC parameters
// (spec §1's "multiple scattering" physics), consulted by the along-step
// MSC helper.
type Wentzel struct {
	IncludeNuclearFormFactor bool
	ScreeningFactor          float64
}

// Init is the read-many sub-table of track-initialization defaults: the
// capacity the Initializer Buffer (C5) and the Primary/Secondary Extension
// (C6) were configured with when params were built, reported here purely
// for introspection (the live capacity is owned by the initializer buffer
// itself at run time).
type Init struct {
	InitializerCapacity int
}
