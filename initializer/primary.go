// Package initializer implements the Initializer Buffer (C5): the bounded
// FIFO-ish pool of pending primaries and secondaries awaiting track-slot
// assignment.
package initializer

import "github.com/sarchlab/celerigo/ids"

// Real3 mirrors state.Real3; duplicated here (rather than imported) so this
// package has no dependency on the state package, matching the one-way
// "params/initializer -> state" convention of spec §9 (state depends on
// nothing else mutable).
type Real3 [3]float64

// Primary is the wire-compatible external input record (spec §6): the only
// caller-supplied path into the core.
type Primary struct {
	EventID   ids.EventId
	ParticleID ids.ParticleId
	EnergyMeV float64
	Position  Real3
	Direction Real3 // must be a unit vector
	TimeSec   float64
}

// Record is one pending Initializer Buffer element (spec §3): a
// deferred track-creation record pending slot assignment. ParentSlot and
// HasParentSlot let initialize-tracks copy the parent slot's geometry
// instead of re-navigating when the parent slot is still resolvable (spec §4.7);
// the back-reference is valid only for the step in which it was created
// (spec §9).
type Record struct {
	ParticleID ids.ParticleId
	EnergyMeV  float64
	Position   Real3
	Direction  Real3
	TimeSec    float64
	EventID    ids.EventId
	TrackID    ids.TrackId
	ParentID   ids.TrackId

	ParentSlot    ids.TrackSlotId
	HasParentSlot bool
}

// FromPrimary builds an initializer Record from a caller-supplied Primary.
// The track id must already have been issued by the caller (trackinit.Extension)
// since Record itself has no access to the per-stream track-id counter.
func FromPrimary(p Primary, trackID ids.TrackId) Record {
	return Record{
		ParticleID: p.ParticleID,
		EnergyMeV:  p.EnergyMeV,
		Position:   p.Position,
		Direction:  p.Direction,
		TimeSec:    p.TimeSec,
		EventID:    p.EventID,
		TrackID:    trackID,
		ParentID:   ids.NullTrackId,
	}
}
