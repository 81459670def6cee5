package state

import "github.com/sarchlab/celerigo/ids"

// Real3 is a plain 3-vector, used for position, direction, and polarization.
// It carries no methods beyond what the along-step assembly needs locally;
// vector math lives with the along-step package, not here (C2 only owns
// the data, per spec §3's ownership convention).
type Real3 [3]float64

// SimRecord is the "sim" field group of the per-slot state record (spec §3).
type SimRecord struct {
	Status           Status
	TrackID          ids.TrackId
	ParentID         ids.TrackId
	EventID          ids.EventId
	PrimaryID        ids.PrimaryId
	StepCount        int
	Time             float64 // seconds
	StepLength       float64 // cm
	Weight           float64
	AlongStepAction  ids.ActionId
	PostStepAction   ids.ActionId
	NumLoopingSteps  int
}

// ParticleRecord is the "particle" field group.
type ParticleRecord struct {
	ParticleID     ids.ParticleId
	KineticEnergy  float64 // MeV
	Polarization   Real3
	HasPolarization bool
}

// GeometryRecord is the "geometry" field group. VolumeStack is a plain
// slice (spec §9 "Cyclic graphs": no parent pointers, no cycles) recording
// the volume-instance placement chain from world down to the track's
// current volume. Its length is not checked against the configured
// volume_instance_depth.
type GeometryRecord struct {
	Position      Real3
	Direction     Real3 // unit vector
	Volume        ids.VolumeId
	VolumeStack   []ids.VolumeInstanceId
	OnBoundary    bool
}

// PhysicsRecord is the "physics" field group: the dimensionless MFP
// (mean-free-path) counter per registered discrete process, plus small MSC
// and energy-loss scratch values. Actual cross-section sampling is an
// external collaborator's responsibility; this is just the shared scratch.
type PhysicsRecord struct {
	MFP           []float64
	MSCRange      float64
	ELossScratch  float64
}

// RngRecord is the "rng" field group: a Xorwow-style engine state, mirroring
// the CPU/CUDA engine named in spec's glossary. It is deliberately small
// and reseedable so that spec §8 property 4 (bitwise-reproducible reruns)
// holds given the same seed and step sequence.
type RngRecord struct {
	s0, s1, s2, s3, s4 uint32
	counter            uint32
}

// SeedXorwow initializes the engine deterministically from a 64-bit seed
// and a stream-unique sequence number, following the standard Xorwow
// seeding approach of mixing the seed with splitmix-style increments.
func SeedXorwow(seed uint64, sequence uint64) RngRecord {
	mix := func(z uint64) uint32 {
		z += 0x9E3779B97F4A7C15
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		z = z ^ (z >> 31)
		return uint32(z)
	}
	return RngRecord{
		s0:      mix(seed ^ sequence),
		s1:      mix(seed + sequence + 1),
		s2:      mix(seed - sequence + 2),
		s3:      mix(seed ^ (sequence << 1) + 3),
		s4:      mix(seed + (sequence << 2) + 4),
		counter: 0,
	}
}

// NextUint32 advances the Xorwow engine and returns the next 32-bit word,
// the same recurrence used by the reference Xorwow generator.
func (r *RngRecord) NextUint32() uint32 {
	t := r.s4
	s := r.s0
	r.s4 = r.s3
	r.s3 = r.s2
	r.s2 = r.s1
	r.s1 = s
	t ^= t >> 2
	t ^= t << 1
	t ^= s ^ (s << 4)
	r.s0 = t
	r.counter += 362437
	return t + r.counter
}

// NextFloat64 returns a uniform value in [0, 1).
func (r *RngRecord) NextFloat64() float64 {
	return float64(r.NextUint32()) / float64(1<<32)
}

// InitRecord is the "init" field group: the auxiliary bookkeeping a slot
// needs only while it is being populated from an Initializer (spec §3).
// ParentSlot is valid only for the step in which a secondary is placed
// directly into a vacancy; it is discarded once InitializeTracks (C7)
// consumes it, per spec §9's back-reference note.
type InitRecord struct {
	ParentSlot      ids.TrackSlotId
	HasParentSlot   bool
}

// Slot is one logical row of the track-slot state record (spec §3),
// physically stored as separate parallel slices inside CoreState (true SoA)
// but exposed as this single value through View for ergonomic per-slot
// access from actions.
type Slot struct {
	Sim      SimRecord
	Particle ParticleRecord
	Geometry GeometryRecord
	Material ids.PhysMatId
	Physics  PhysicsRecord
	Rng      RngRecord
	Init     InitRecord
}
