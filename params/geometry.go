package params

import "github.com/sarchlab/celerigo/ids"

// Geometry is the read-many geometry sub-table (spec §4.1). It does not
// parse or own any GDML/solid-geometry file format (Non-goal); it only
// records the small amount of volume bookkeeping the core needs: the
// mapping from a user-facing VolumeId to the material filling it, and the
// bound on how deep a volume-instance stack the core will record per step.
type Geometry struct {
	// VolumeMaterial maps VolumeId -> PhysMatId.
	VolumeMaterial []ids.PhysMatId
	// VolumeInstanceDepth holds the `volume_instance_depth` knob (spec §6
	// configuration knobs). It is stored only: no code in this module
	// reads it, and per-slot volume stacks are not truncated to it.
	VolumeInstanceDepth int
}

// NumVolumes reports how many volumes this geometry table describes.
func (g *Geometry) NumVolumes() int { return len(g.VolumeMaterial) }

// MaterialOf returns the material filling the given volume, or
// ids.NullPhysMatId if the volume id is out of range.
func (g *Geometry) MaterialOf(v ids.VolumeId) ids.PhysMatId {
	i := v.Get()
	if i < 0 || i >= len(g.VolumeMaterial) {
		return ids.NullPhysMatId
	}
	return g.VolumeMaterial[i]
}
