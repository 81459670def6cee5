package trackinit

import (
	"github.com/sarchlab/celerigo/action"
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
	"github.com/sarchlab/celerigo/params"
	"github.com/sarchlab/celerigo/state"
)

// InitializeTracks implements the track initialization action of spec §4.7:
// pop k = min(num_vacancies, num_initializers) records from the Initializer
// Buffer and materialize each into a vacant slot. When a record carries a
// parent-slot back-reference, its geometry stack is copied directly rather
// than re-navigated; otherwise a Locator resolves the starting volume from
// the record's bare position.
type InitializeTracks struct {
	action.Base
	ext     *Extension
	locator Locator
	cfg     Config
}

// NewInitializeTracks constructs the initialize-tracks action. locator may
// be nil only if every record this stream will ever pop carries a
// parent-slot back-reference (never true for primaries).
func NewInitializeTracks(ext *Extension, locator Locator, cfg Config) *InitializeTracks {
	return &InitializeTracks{
		Base: action.NewBase(
			"initialize-tracks",
			"materializes pending initializer records into vacant track slots",
			action.PostPost,
		),
		ext:     ext,
		locator: locator,
		cfg:     cfg,
	}
}

// Step implements action.Interface.
func (a *InitializeTracks) Step(p *params.CoreParams, s *state.CoreState) error {
	k := s.NumVacancies()
	if n := a.ext.Buffer().Len(); n < k {
		k = n
	}
	if k <= 0 {
		s.SetInitializerCount(a.ext.Buffer().Len())
		return nil
	}

	recs := a.ext.Buffer().Pop(k)
	for _, rec := range recs {
		slot, ok := s.PopVacancy()
		if !ok {
			return errs.InvariantAt(a.ActionID(), ids.NullTrackSlotId, "initialize-tracks",
				"popped %d initializers but fewer vacancies remained", len(recs))
		}
		if err := a.materialize(p, s, slot, rec); err != nil {
			return err
		}
	}
	s.SetInitializerCount(a.ext.Buffer().Len())
	return nil
}

func (a *InitializeTracks) materialize(p *params.CoreParams, s *state.CoreState, slot ids.TrackSlotId, rec initializer.Record) error {
	view := s.Slot(slot)

	*view.Sim() = state.SimRecord{
		Status:          state.Alive,
		TrackID:         rec.TrackID,
		ParentID:        rec.ParentID,
		EventID:         rec.EventID,
		AlongStepAction: a.cfg.AlongStepAction,
		PostStepAction:  ids.NullActionId,
		Time:            rec.TimeSec,
	}
	*view.Particle() = state.ParticleRecord{ParticleID: rec.ParticleID, KineticEnergy: rec.EnergyMeV}

	var volume ids.VolumeId
	var stack []ids.VolumeInstanceId
	if rec.HasParentSlot {
		parentView := s.Slot(rec.ParentSlot)
		pg := parentView.Geometry()
		volume = pg.Volume
		stack = make([]ids.VolumeInstanceId, len(pg.VolumeStack))
		copy(stack, pg.VolumeStack)
		view.SetMaterial(parentView.Material())
	} else {
		if a.locator == nil {
			return errs.Configuration("initialize-tracks",
				"no Locator configured to resolve starting volume for track %s", rec.TrackID)
		}
		volume = a.locator.Locate(initializer.Real3(rec.Position))
		view.SetMaterial(ids.NullPhysMatId)
	}
	*view.Geometry() = state.GeometryRecord{
		Position:    state.Real3(rec.Position),
		Direction:   state.Real3(rec.Direction),
		Volume:      volume,
		VolumeStack: stack,
	}
	*view.Physics() = state.PhysicsRecord{}
	*view.Init() = state.InitRecord{ParentSlot: rec.ParentSlot, HasParentSlot: rec.HasParentSlot}
	s.SeedRng(slot)

	if a.cfg.PreStep != nil {
		if err := a.cfg.PreStep.ZeroOne(p, s, slot); err != nil {
			return err
		}
	}
	if a.cfg.Selector != nil {
		if err := a.cfg.Selector.SelectOne(p, s, slot); err != nil {
			return err
		}
	}
	return nil
}
