package params

// Rng is the read-many sub-table describing the random-number engine each
// track slot's rng sub-record (spec §3) is seeded from. The engine itself
// (Xorwow on host, CUDA/HIPRand-equivalent on device) is an external
// collaborator; this table only holds the seed material needed to make a
// run reproducible (spec §8 property 4).
type Rng struct {
	Seed uint64
}

// Sim is the read-many sub-table of run-level scheduling parameters that
// are not specific to any one physics process.
type Sim struct {
	// LoopingThreshold is the max number of consecutive zero-progress
	// along-step iterations before a track is killed (the
	// `looping_threshold` knob of spec §6).
	LoopingThreshold int
	// MaxFieldSubsteps bounds a single along-step field-propagator call
	// (mirrors the external field driver's max_nsteps, spec §6).
	MaxFieldSubsteps int
}
