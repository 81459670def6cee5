package state

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/internal/logx"
	"github.com/sarchlab/celerigo/params"
)

var log = logx.For("state")

// Counters mirrors the original CoreStateCounters (supplemented feature,
// SPEC_FULL.md item 1): the set of run-time counters the stepper reports
// back to the caller after every step() call.
type Counters struct {
	NumActive       int
	NumAlive        int
	NumVacancies    int
	NumInitializers int
	NumErrored      int
	NumStepIters    int
}

// LoopingRecord is the supplemented diagnostic (SPEC_FULL.md item 4)
// appended whenever the looping watchdog kills a track.
type LoopingRecord struct {
	TrackID          ids.TrackId
	Volume           ids.VolumeId
	NumLoopingSteps  int
	DepositedEnergy  float64
}

const loopingRingCapacity = 64

// CoreState is the per-stream track-slot state bank (C2). Exactly one
// instance exists per StreamId; it is exclusively owned by that stream
// (spec §5's per-stream isolation) and is never shared, mutably, with any
// other stream.
type CoreState struct {
	params   *params.CoreParams
	streamID ids.StreamId
	space    params.MemSpace

	// True slot-of-arrays storage: one slice per field group, indexed by
	// TrackSlotId, matching spec §3's grouping of the per-slot record.
	sim      []SimRecord
	particle []ParticleRecord
	geometry []GeometryRecord
	material []ids.PhysMatId
	physics  []PhysicsRecord
	rng      []RngRecord
	init     []InitRecord

	secondaries   [][]Secondary
	distributions [][]Distribution

	vacancies []ids.TrackSlotId

	// trackSlots is the indirection array C9 permutes: trackSlots[i] names
	// the slot that logically occupies position i. Unsorted order is the
	// identity permutation.
	trackSlots []ids.TrackSlotId
	// actionThreadOffsets[a] is the first position in trackSlots whose
	// slot's post_step_action is a; length numActions+1. Empty when
	// track-sorting is disabled.
	actionThreadOffsets []int

	counters  Counters
	warmingUp bool

	looping []LoopingRecord

	mu sync.Mutex

	// nextInitializerSeq issues the per-state sequence number SeedRng mixes
	// with the params' seed, so each slot's Xorwow engine is seeded
	// deterministically by initializer consumption order.
	nextInitializerSeq atomic.Uint64
}

// New constructs a CoreState from params, a stream id, and a slot count
// (spec §4.2). All slots start Inactive, the vacancy list is filled with
// every slot index in ascending order, and the indirection array starts as
// the identity permutation.
func New(p *params.CoreParams, streamID ids.StreamId, numTrackSlots int) *CoreState {
	if numTrackSlots <= 0 {
		panic(errs.Configuration("core-state", "num_track_slots must be positive, got %d", numTrackSlots))
	}

	cs := &CoreState{
		params:   p,
		streamID: streamID,
		space:    params.Host,
	}
	cs.allocate(numTrackSlots)
	cs.resetLocked()

	log.Debug("core state constructed", "stream", streamID, "slots", numTrackSlots)
	return cs
}

func (cs *CoreState) allocate(n int) {
	cs.sim = make([]SimRecord, n)
	cs.particle = make([]ParticleRecord, n)
	cs.geometry = make([]GeometryRecord, n)
	cs.material = make([]ids.PhysMatId, n)
	cs.physics = make([]PhysicsRecord, n)
	cs.rng = make([]RngRecord, n)
	cs.init = make([]InitRecord, n)
	cs.secondaries = make([][]Secondary, n)
	cs.distributions = make([][]Distribution, n)
	cs.vacancies = make([]ids.TrackSlotId, n)
	cs.trackSlots = make([]ids.TrackSlotId, n)
}

// Reset returns the state to the freshly constructed invariant (spec §4.2,
// §8 round-trip property).
func (cs *CoreState) Reset() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.resetLocked()
}

func (cs *CoreState) resetLocked() {
	n := len(cs.sim)
	for i := 0; i < n; i++ {
		cs.sim[i] = SimRecord{
			Status:          Inactive,
			TrackID:         ids.NullTrackId,
			AlongStepAction: ids.NullActionId,
			PostStepAction:  ids.NullActionId,
		}
		cs.particle[i] = ParticleRecord{ParticleID: ids.NullParticleId}
		cs.geometry[i] = GeometryRecord{Volume: ids.NullVolumeId}
		cs.material[i] = ids.NullPhysMatId
		cs.physics[i] = PhysicsRecord{}
		cs.rng[i] = RngRecord{}
		cs.init[i] = InitRecord{}
		cs.secondaries[i] = nil
		cs.distributions[i] = nil
		cs.vacancies[i] = ids.TrackSlotId(i)
		cs.trackSlots[i] = ids.TrackSlotId(i)
	}
	cs.actionThreadOffsets = nil
	cs.counters = Counters{NumVacancies: n}
	cs.warmingUp = false
	cs.looping = cs.looping[:0]
	cs.nextInitializerSeq.Store(0)
}

// StreamID reports the stream this state belongs to.
func (cs *CoreState) StreamID() ids.StreamId { return cs.streamID }

// Size is the configured slot capacity.
func (cs *CoreState) Size() int { return len(cs.sim) }

// Params returns the params this state was built from.
func (cs *CoreState) Params() *params.CoreParams { return cs.params }

// WarmingUp reports whether this state is presently being stepped with no
// active tracks, purely for JIT/cache warmup (spec §4.2).
func (cs *CoreState) WarmingUp() bool { return cs.warmingUp }

// SetWarmingUp sets the warmup flag.
func (cs *CoreState) SetWarmingUp(v bool) { cs.warmingUp = v }

// Counters returns a snapshot of the run-time counters.
func (cs *CoreState) Counters() Counters { return cs.counters }

// LoopingRecords returns the ring buffer of looping-track diagnostics
// (SPEC_FULL.md item 4), most recent last.
func (cs *CoreState) LoopingRecords() []LoopingRecord { return cs.looping }

// RecordLooping appends a looping diagnostic, evicting the oldest entry
// once the ring buffer reaches its fixed capacity. Safe to call
// concurrently: along-step may run each slot's body on its own goroutine
// (action.RunOverSlots), and the looping ring buffer is the one piece of
// state such a body writes outside its own slot.
func (cs *CoreState) RecordLooping(r LoopingRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.looping = append(cs.looping, r)
	if len(cs.looping) > loopingRingCapacity {
		cs.looping = cs.looping[len(cs.looping)-loopingRingCapacity:]
	}
}

// Vacancies returns the current vacancy list (slot indices with
// Status==Inactive), in ascending-fill order.
func (cs *CoreState) Vacancies() []ids.TrackSlotId { return cs.vacancies }

// NumVacancies reports len(Vacancies()).
func (cs *CoreState) NumVacancies() int { return len(cs.vacancies) }

// PopVacancy removes and returns the first vacant slot, if any, in
// ascending index order. Used by extend-from-secondaries and
// initialize-tracks when materializing a track directly into a vacancy.
func (cs *CoreState) PopVacancy() (ids.TrackSlotId, bool) {
	if len(cs.vacancies) == 0 {
		return ids.NullTrackSlotId, false
	}
	id := cs.vacancies[0]
	cs.vacancies = cs.vacancies[1:]
	cs.counters.NumVacancies = len(cs.vacancies)
	return id, true
}

// TrackSlots returns the (possibly action-sorted) indirection array.
func (cs *CoreState) TrackSlots() []ids.TrackSlotId { return cs.trackSlots }

// SetTrackSlots replaces the indirection array; used by the action-sort
// step (C9) after it partitions slots by next action.
func (cs *CoreState) SetTrackSlots(order []ids.TrackSlotId) {
	if len(order) != len(cs.trackSlots) {
		panic(errs.Invariant("core-state", "SetTrackSlots length %d != capacity %d", len(order), len(cs.trackSlots)))
	}
	cs.trackSlots = order
}

// HasActionRange reports whether action-sorted offsets are available.
func (cs *CoreState) HasActionRange() bool { return len(cs.actionThreadOffsets) > 0 }

// ActionThreadOffsets returns the prefix-sum table written by C9, or nil
// when track-sorting is disabled.
func (cs *CoreState) ActionThreadOffsets() []int { return cs.actionThreadOffsets }

// SetActionThreadOffsets installs a new prefix-sum table (length
// numActions+1), computed by the action-sort step.
func (cs *CoreState) SetActionThreadOffsets(offsets []int) { cs.actionThreadOffsets = offsets }

// ActionRange returns [offsets[a], offsets[a+1]) into TrackSlots() for the
// given action, per spec §4.9's get_action_range contract.
func (cs *CoreState) ActionRange(a ids.ActionId) (int, int) {
	if !cs.HasActionRange() {
		return 0, len(cs.trackSlots)
	}
	i := a.Get()
	if i < 0 || i+1 >= len(cs.actionThreadOffsets) {
		return 0, 0
	}
	return cs.actionThreadOffsets[i], cs.actionThreadOffsets[i+1]
}

// View is a handle onto one slot's fields, used by actions to read and
// mutate a single row of the SoA state without copying it.
type View struct {
	cs  *CoreState
	idx ids.TrackSlotId
}

// Slot returns a view over the given track slot.
func (cs *CoreState) Slot(id ids.TrackSlotId) View {
	i := id.Get()
	if i < 0 || i >= len(cs.sim) {
		panic(errs.Invariant("core-state", "slot id %s out of range [0,%d)", id, len(cs.sim)))
	}
	return View{cs: cs, idx: id}
}

// ID returns this view's slot id.
func (v View) ID() ids.TrackSlotId { return v.idx }

// Sim returns a pointer to the slot's sim field group.
func (v View) Sim() *SimRecord { return &v.cs.sim[v.idx] }

// Particle returns a pointer to the slot's particle field group.
func (v View) Particle() *ParticleRecord { return &v.cs.particle[v.idx] }

// Geometry returns a pointer to the slot's geometry field group.
func (v View) Geometry() *GeometryRecord { return &v.cs.geometry[v.idx] }

// Material returns the slot's current material id.
func (v View) Material() ids.PhysMatId { return v.cs.material[v.idx] }

// SetMaterial derives and stores the slot's current material id. Per spec
// §8's boundary-behavior property, callers must update Volume and Material
// together, before any post-step action reads either.
func (v View) SetMaterial(m ids.PhysMatId) { v.cs.material[v.idx] = m }

// Physics returns a pointer to the slot's physics field group.
func (v View) Physics() *PhysicsRecord { return &v.cs.physics[v.idx] }

// Rng returns a pointer to the slot's rng field group.
func (v View) Rng() *RngRecord { return &v.cs.rng[v.idx] }

// Init returns a pointer to the slot's init field group.
func (v View) Init() *InitRecord { return &v.cs.init[v.idx] }

// SeedRng reseeds the slot's RNG engine deterministically from the params'
// configured seed and a monotonically-issued per-state sequence number,
// which is what makes spec §8 property 4 (bitwise reproducibility) hold:
// the same initializer consumption order always yields the same sequence
// numbers.
func (cs *CoreState) SeedRng(slot ids.TrackSlotId) {
	seq := cs.nextInitializerSeq.Add(1)
	cs.rng[slot.Get()] = SeedXorwow(cs.params.HostRef().Rng.Seed, seq)
}

// CheckInvariants re-validates the spec §3/§8 whole-state invariants and
// returns an *errs.CoreError of kind InvariantFailure on the first
// violation found. This backs the Stepper's optional CheckInvariants
// setting, the StatusChecker-style check of SPEC_FULL.md item 2.
func (cs *CoreState) CheckInvariants() error {
	capacity := len(cs.sim)
	alive, inactive, errored := 0, 0, 0
	for i := 0; i < capacity; i++ {
		switch cs.sim[i].Status {
		case Alive:
			alive++
			if !cs.sim[i].AlongStepAction.Valid() || !cs.sim[i].PostStepAction.Valid() {
				return errs.InvariantAt(ids.NullActionId, ids.TrackSlotId(i), "status-checker",
					"alive slot has an invalid along/post-step action")
			}
			if !cs.particle[i].ParticleID.Valid() || !cs.geometry[i].Volume.Valid() || !cs.material[i].Valid() {
				return errs.InvariantAt(ids.NullActionId, ids.TrackSlotId(i), "status-checker",
					"alive slot missing particle/volume/material assignment")
			}
		case Inactive:
			inactive++
		case Errored:
			errored++
		}
	}
	if alive+inactive+errored != capacity {
		return errs.Invariant("status-checker", "alive(%d)+inactive(%d)+errored(%d) != capacity(%d)",
			alive, inactive, errored, capacity)
	}

	seen := make(map[ids.TrackSlotId]int, len(cs.vacancies))
	for _, v := range cs.vacancies {
		seen[v]++
	}
	for i := 0; i < capacity; i++ {
		want := cs.sim[i].Status == Inactive
		got := seen[ids.TrackSlotId(i)] == 1
		if want != got {
			return errs.Invariant("status-checker",
				"slot %d inactive=%v but vacancy-list membership=%v", i, want, got)
		}
	}
	return nil
}

// RecomputeVacancies rebuilds the vacancy list from slot status, in
// ascending index order (spec §5: "the vacancy list is rebuilt once per
// step rather than being mutated concurrently").
func (cs *CoreState) RecomputeVacancies() {
	cs.vacancies = cs.vacancies[:0]
	for i, s := range cs.sim {
		if s.Status == Inactive {
			cs.vacancies = append(cs.vacancies, ids.TrackSlotId(i))
		}
	}
	cs.counters.NumVacancies = len(cs.vacancies)
}

// KillAllActive force-transitions every Alive slot to Errored, mirroring
// the original `global/detail/KillActive.cc`'s "mark all active tracks as
// errored". Used by a run-level KillActive action (SPEC_FULL.md item 3) to
// make shutdown deterministic: any track still alive when a stream is torn
// down or reset gets an explicit terminal transition instead of being
// silently discarded by Reset's blanket reinitialization.
func (cs *CoreState) KillAllActive() {
	for i := range cs.sim {
		if cs.sim[i].Status == Alive {
			cs.sim[i].Status = Errored
		}
	}
}

// ClearTerminal transitions every Killed/Errored slot to Inactive, per
// spec §3's Lifecycle, and must run before RecomputeVacancies each step.
func (cs *CoreState) ClearTerminal() {
	for i := range cs.sim {
		if cs.sim[i].Status.Terminal() {
			cs.sim[i] = SimRecord{
				Status:          Inactive,
				TrackID:         ids.NullTrackId,
				AlongStepAction: ids.NullActionId,
				PostStepAction:  ids.NullActionId,
			}
			cs.particle[i] = ParticleRecord{ParticleID: ids.NullParticleId}
			cs.geometry[i] = GeometryRecord{Volume: ids.NullVolumeId}
			cs.material[i] = ids.NullPhysMatId
			cs.init[i] = InitRecord{}
		}
	}
}

// RefreshCounters recomputes NumActive/NumAlive/NumErrored from slot status.
func (cs *CoreState) RefreshCounters() {
	var alive, errored int
	for _, s := range cs.sim {
		switch s.Status {
		case Alive:
			alive++
		case Errored:
			errored++
		}
	}
	cs.counters.NumAlive = alive
	cs.counters.NumActive = alive
	cs.counters.NumErrored = errored
}

// SetInitializerCount records how many initializers remained pending after
// the most recent InitializeTracks pass, for the Counters snapshot.
func (cs *CoreState) SetInitializerCount(n int) { cs.counters.NumInitializers = n }

// IncStepIters bumps the step-iteration counter (how many substeps the
// Stepper has run for this state across its lifetime).
func (cs *CoreState) IncStepIters() { cs.counters.NumStepIters++ }

func (cs *CoreState) String() string {
	return fmt.Sprintf("CoreState{stream=%s size=%d alive=%d vacancies=%d}",
		cs.streamID, cs.Size(), cs.counters.NumAlive, cs.NumVacancies())
}
