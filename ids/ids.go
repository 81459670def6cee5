// Package ids defines the small opaque identifier types shared by every
// core component. Each kind is a distinct type so that, say, a TrackSlotId
// can never be passed where an ActionId is expected even though both are
// backed by the same integer representation.
package ids

import "fmt"

// size is the backing representation for every id kind in this package.
type size = int32

// invalid is the sentinel value carried by a "null" id of any kind.
const invalid size = -1

// ActionId indexes into the Action Registry (C3).
type ActionId size

// StreamId indexes a per-thread/stream scheduling context, <= max_streams.
type StreamId size

// TrackSlotId indexes a track slot within one stream's track-slot bank.
type TrackSlotId size

// TrackId is a per-(stream,event) identity, monotonically issued and never
// reused within an event.
type TrackId int64

// EventId identifies one simulated event.
type EventId size

// PrimaryId identifies one primary particle within an event.
type PrimaryId size

// ParticleId indexes a particle-type definition in the particle table.
type ParticleId size

// PhysMatId indexes a physics material (the material as seen by physics,
// not necessarily 1:1 with a geometry material).
type PhysMatId size

// VolumeId indexes a user-facing geometry volume.
type VolumeId size

// ImplVolumeId indexes an implementation-level (navigator-native) volume,
// which may differ from VolumeId when the geometry backend deduplicates or
// reorders volumes internally.
type ImplVolumeId size

// VolumeInstanceId indexes one placement (instance) of a volume in the
// physical hierarchy, distinct from the VolumeId of the logical volume
// being placed.
type VolumeInstanceId size

// DetectorId indexes a user-defined sensitive detector.
type DetectorId size

// SubModelId indexes a sub-model within a composite physics model.
type SubModelId size

// SurfaceModelId indexes a registered optical surface interaction model.
type SurfaceModelId size

// NullActionId is the sentinel "no action" value.
const NullActionId ActionId = ActionId(invalid)

// NullStreamId is the sentinel "no stream" value.
const NullStreamId StreamId = StreamId(invalid)

// NullTrackSlotId is the sentinel "no slot" value.
const NullTrackSlotId TrackSlotId = TrackSlotId(invalid)

// NullTrackId is the sentinel "no track" value.
const NullTrackId TrackId = TrackId(invalid)

// NullEventId is the sentinel "no event" value.
const NullEventId EventId = EventId(invalid)

// NullParticleId is the sentinel "no particle type" value.
const NullParticleId ParticleId = ParticleId(invalid)

// NullPhysMatId is the sentinel "no material" value.
const NullPhysMatId PhysMatId = PhysMatId(invalid)

// NullVolumeId is the sentinel "no volume" value.
const NullVolumeId VolumeId = VolumeId(invalid)

// NullDetectorId is the sentinel "no detector" value.
const NullDetectorId DetectorId = DetectorId(invalid)

// Valid reports whether the id is not the "null" sentinel.
func (a ActionId) Valid() bool           { return a != NullActionId }
func (s StreamId) Valid() bool           { return s != NullStreamId }
func (t TrackSlotId) Valid() bool        { return t != NullTrackSlotId }
func (t TrackId) Valid() bool            { return t != NullTrackId }
func (e EventId) Valid() bool            { return e != NullEventId }
func (p ParticleId) Valid() bool         { return p != NullParticleId }
func (m PhysMatId) Valid() bool          { return m != NullPhysMatId }
func (v VolumeId) Valid() bool           { return v != NullVolumeId }
func (d DetectorId) Valid() bool         { return d != NullDetectorId }

// Get returns the underlying index. Callers must check Valid() first if the
// id might be null; Get on a null id returns a negative number.
func (a ActionId) Get() int    { return int(a) }
func (s StreamId) Get() int    { return int(s) }
func (t TrackSlotId) Get() int { return int(t) }
func (v VolumeId) Get() int    { return int(v) }
func (d DetectorId) Get() int  { return int(d) }
func (m PhysMatId) Get() int   { return int(m) }
func (p ParticleId) Get() int  { return int(p) }
func (e EventId) Get() int     { return int(e) }

func (a ActionId) String() string {
	if !a.Valid() {
		return "ActionId{null}"
	}
	return fmt.Sprintf("ActionId{%d}", int(a))
}

func (t TrackSlotId) String() string {
	if !t.Valid() {
		return "TrackSlotId{null}"
	}
	return fmt.Sprintf("TrackSlotId{%d}", int(t))
}

func (t TrackId) String() string {
	if !t.Valid() {
		return "TrackId{null}"
	}
	return fmt.Sprintf("TrackId{%d}", int64(t))
}
