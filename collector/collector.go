// Package collector implements the Step Collector (C11): gathering
// per-step attributes at the pre/post step points for tracks in
// user-selected detector volumes and delivering them to an external
// callback (spec §4.11).
package collector

import (
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/state"
)

// Attribute identifies one recordable per-slot quantity. Interface
// implementations advertise which attributes they need; Collector always
// populates every field of Row regardless, since the struct is cheap to
// build and gating individual field assignments behind the selection
// would add bookkeeping for no real benefit at this size.
type Attribute int

const (
	AttrPosition Attribute = iota
	AttrDirection
	AttrEnergy
	AttrTime
	AttrStepLength
	AttrWeight
	AttrVolume
	AttrEnergyDeposit
)

// Row is one collected record: one track slot, the post-step point, and
// every attribute Collector knows how to report.
type Row struct {
	Slot       ids.TrackSlotId
	TrackID    ids.TrackId
	EventID    ids.EventId
	ParticleID ids.ParticleId
	Volume     ids.VolumeId
	Detector   ids.DetectorId

	Position   state.Real3
	Direction  state.Real3
	Energy     float64
	Time       float64
	StepLength float64
	Weight     float64

	// EnergyDeposit is kinetic energy at the pre-step point minus kinetic
	// energy at the post-step point, used by the `nonzero_energy_deposition`
	// filter (spec §6).
	EnergyDeposit float64
}

// Interface is the external callback collaborator (spec §4.11's
// StepInterface): it declares the attribute selection and, optionally, the
// detector map, and receives delivered rows.
type Interface interface {
	// Attributes reports which Row fields this callback reads, purely
	// advisory (see the Attribute doc comment).
	Attributes() []Attribute
	// Detectors maps a VolumeId to a DetectorId. An empty or nil map means
	// "collect every track, in every volume" (spec §4.11).
	Detectors() map[ids.VolumeId]ids.DetectorId
	// Deliver receives the rows gathered at the end of one step. Called at
	// most once per step, and never with an empty slice.
	Deliver(rows []Row)
}

// Collector is the Step Collector (C11). Construct one per stream and wire
// its PreAction/PostAction into the stream's registry: PreAction at
// order=pre_step, PostAction at order=post_post, inserted before any action
// that clears terminal slots or recycles vacancies (ClearTerminal/
// RecomputeVacancies/initialize-tracks), so a step's final geometry and
// energy are still attributed to the track that produced them.
type Collector struct {
	cb          Interface
	nonzeroOnly bool
	detectors   map[ids.VolumeId]ids.DetectorId

	preEnergy []float64
}

// New constructs a Collector around cb. nonzeroOnly mirrors the
// `nonzero_energy_deposition` knob (spec §6): when true, steps with zero
// energy deposit are filtered out of delivery.
func New(cb Interface, nonzeroOnly bool) *Collector {
	return &Collector{cb: cb, nonzeroOnly: nonzeroOnly, detectors: cb.Detectors()}
}

func (c *Collector) ensureSized(n int) {
	if len(c.preEnergy) != n {
		c.preEnergy = make([]float64, n)
	}
}

// detectorOf reports the detector governing volume v, and whether v should
// be collected at all. An empty/nil detector map means every volume is
// collected, reporting the null DetectorId (spec §4.11: "When no detector
// map is configured, every track is recorded").
func (c *Collector) detectorOf(v ids.VolumeId) (ids.DetectorId, bool) {
	if len(c.detectors) == 0 {
		return ids.NullDetectorId, true
	}
	d, ok := c.detectors[v]
	return d, ok
}

func (c *Collector) snapshotPre(s *state.CoreState) {
	n := s.Size()
	c.ensureSized(n)
	for i := 0; i < n; i++ {
		slot := ids.TrackSlotId(i)
		if s.Slot(slot).Sim().Status != state.Alive {
			continue
		}
		c.preEnergy[i] = s.Slot(slot).Particle().KineticEnergy
	}
}

func (c *Collector) gatherAndDeliver(s *state.CoreState) {
	n := s.Size()
	c.ensureSized(n)

	var rows []Row
	for i := 0; i < n; i++ {
		slot := ids.TrackSlotId(i)
		view := s.Slot(slot)
		if view.Sim().Status == state.Inactive {
			continue
		}

		g := view.Geometry()
		det, ok := c.detectorOf(g.Volume)
		if !ok {
			continue
		}

		edep := c.preEnergy[i] - view.Particle().KineticEnergy
		if c.nonzeroOnly && edep == 0 {
			continue
		}

		sim := view.Sim()
		rows = append(rows, Row{
			Slot:          slot,
			TrackID:       sim.TrackID,
			EventID:       sim.EventID,
			ParticleID:    view.Particle().ParticleID,
			Volume:        g.Volume,
			Detector:      det,
			Position:      g.Position,
			Direction:     g.Direction,
			Energy:        view.Particle().KineticEnergy,
			Time:          sim.Time,
			StepLength:    sim.StepLength,
			Weight:        sim.Weight,
			EnergyDeposit: edep,
		})
	}

	if len(rows) > 0 {
		c.cb.Deliver(rows)
	}
}
