package state

import "github.com/sarchlab/celerigo/ids"

// Distribution is a compact per-step generator-distribution record, one of
// which an along-step action may append to a slot's scratch whenever a
// charged particle's continuous energy loss implies Cherenkov or
// scintillation photon production (spec §4.10). Actual yield sampling is a
// physical-formula concern and belongs to the along-step energy-loss
// collaborator; this record only carries what the Offload Pipeline (C10)
// needs to later generate primary optical photons from it.
type Distribution struct {
	PrePosition  Real3
	PostPosition Real3
	StepLength   float64 // cm
	ChargeEli    float64
	Material     ids.PhysMatId
	NumPhotons   int
}

// Distributions returns the generator distributions produced by the given
// slot so far this step, in production order.
func (cs *CoreState) Distributions(slot ids.TrackSlotId) []Distribution {
	return cs.distributions[slot.Get()]
}

// AppendDistribution records one generator distribution produced by slot,
// to be drained by the Offload Pipeline's collection action at end of step.
func (cs *CoreState) AppendDistribution(slot ids.TrackSlotId, d Distribution) {
	i := slot.Get()
	cs.distributions[i] = append(cs.distributions[i], d)
}

// ClearDistributions empties every slot's distribution scratch; the
// offload collection action calls this once per step, after draining the
// prior step's production into the Offload Pipeline's buffer.
func (cs *CoreState) ClearDistributions() {
	for i := range cs.distributions {
		if len(cs.distributions[i]) > 0 {
			cs.distributions[i] = cs.distributions[i][:0]
		}
	}
}
