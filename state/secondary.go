package state

import "github.com/sarchlab/celerigo/ids"

// Secondary is a track-creation record a discrete interaction kernel (an
// external collaborator, spec §1) produces this step. It is written into
// the producing slot's secondary scratch and later consumed by
// extend-from-secondaries (C6); ordering within one slot is by the local
// index the kernel appended at, matching spec §4.6's determinism
// requirement ("deterministic by (producing slot id, local index)").
type Secondary struct {
	ParticleID ids.ParticleId
	EnergyMeV  float64
	Position   Real3
	Direction  Real3
	TimeSec    float64
}

// Secondaries returns the secondaries produced by the given slot so far
// this step, in production order.
func (cs *CoreState) Secondaries(slot ids.TrackSlotId) []Secondary {
	return cs.secondaries[slot.Get()]
}

// AppendSecondary records one secondary produced by slot, to be picked up
// by extend-from-secondaries at the end of the step.
func (cs *CoreState) AppendSecondary(slot ids.TrackSlotId, sec Secondary) {
	i := slot.Get()
	cs.secondaries[i] = append(cs.secondaries[i], sec)
}

// ClearSecondaries empties every slot's secondary scratch; the step
// pipeline calls this once per step, after extend-from-secondaries has
// consumed the prior step's production (spec §3 invariant 6: secondaries
// are placed or enqueued "never both and never lost", which requires the
// scratch to be drained exactly once per step).
func (cs *CoreState) ClearSecondaries() {
	for i := range cs.secondaries {
		if len(cs.secondaries[i]) > 0 {
			cs.secondaries[i] = cs.secondaries[i][:0]
		}
	}
}
