package trackinit

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// ExtendSecondaries implements the extend-from-secondaries action of spec
// §4.6: for every secondary produced this step, place it directly into a
// vacancy when one is available (preserving the parent's geometry by
// back-reference, per spec §4.7's "this avoids re-navigating"), otherwise
// enqueue it to the Initializer Buffer. Secondaries are processed in
// (producing slot id, local index) order, the determinism spec §4.6
// requires.
type ExtendSecondaries struct {
	action.Base
	ext *Extension
	cfg Config
}

// NewExtendSecondaries constructs the extend-from-secondaries action.
func NewExtendSecondaries(ext *Extension, cfg Config) *ExtendSecondaries {
	return &ExtendSecondaries{
		Base: action.NewBase(
			"extend-from-secondaries",
			"places secondaries directly into vacancies or enqueues them to the initializer buffer",
			action.PostPost,
		),
		ext: ext,
		cfg: cfg,
	}
}

// Step implements action.Interface.
func (a *ExtendSecondaries) Step(p *params.CoreParams, s *state.CoreState) error {
	capacity := s.Size()
	for i := 0; i < capacity; i++ {
		producingSlot := ids.TrackSlotId(i)
		secs := s.Secondaries(producingSlot)
		for localIdx := range secs {
			sec := secs[localIdx]
			if err := validateSecondary(sec.ParticleID, sec.EnergyMeV); err != nil {
				return errs.InvariantAt(a.ActionID(), producingSlot, "extend-from-secondaries", "%v", err)
			}

			trackID := a.ext.NextTrackID()
			if vacancy, ok := s.PopVacancy(); ok {
				if err := a.placeDirect(p, s, vacancy, producingSlot, trackID, sec); err != nil {
					return err
				}
				continue
			}

			parent := s.Slot(producingSlot)
			rec := initializer.Record{
				ParticleID: sec.ParticleID,
				EnergyMeV:  sec.EnergyMeV,
				Position:   initializer.Real3(sec.Position),
				Direction:  initializer.Real3(sec.Direction),
				TimeSec:    sec.TimeSec,
				EventID:    parent.Sim().EventID,
				TrackID:    trackID,
				ParentID:   parent.Sim().TrackID,
			}
			if err := a.ext.Buffer().Push(rec); err != nil {
				return err
			}
		}
	}
	s.ClearSecondaries()
	s.SetInitializerCount(a.ext.Buffer().Len())
	return nil
}

// placeDirect materializes a secondary straight into a vacant slot, copying
// the producing slot's geometry stack by back-reference instead of
// re-navigating.
func (a *ExtendSecondaries) placeDirect(
	p *params.CoreParams, s *state.CoreState,
	slot, parent ids.TrackSlotId, trackID ids.TrackId, sec state.Secondary,
) error {
	parentView := s.Slot(parent)
	view := s.Slot(slot)

	*view.Sim() = state.SimRecord{
		Status:          state.Alive,
		TrackID:         trackID,
		ParentID:        parentView.Sim().TrackID,
		EventID:         parentView.Sim().EventID,
		AlongStepAction: a.cfg.AlongStepAction,
		PostStepAction:  ids.NullActionId,
		Time:            sec.TimeSec,
	}
	*view.Particle() = state.ParticleRecord{ParticleID: sec.ParticleID, KineticEnergy: sec.EnergyMeV}

	pg := parentView.Geometry()
	stack := make([]ids.VolumeInstanceId, len(pg.VolumeStack))
	copy(stack, pg.VolumeStack)
	*view.Geometry() = state.GeometryRecord{
		Position:    sec.Position,
		Direction:   sec.Direction,
		Volume:      pg.Volume,
		VolumeStack: stack,
	}
	view.SetMaterial(parentView.Material())
	*view.Physics() = state.PhysicsRecord{MFP: make([]float64, len(parentView.Physics().MFP))}
	*view.Init() = state.InitRecord{ParentSlot: parent, HasParentSlot: true}
	s.SeedRng(slot)

	if a.cfg.Selector != nil {
		if err := a.cfg.Selector.SelectOne(p, s, slot); err != nil {
			return err
		}
	}
	return nil
}
