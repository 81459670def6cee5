// Package trackinit implements the Primary/Secondary Extension (C6) and
// Track Initialization (C7): turning caller primaries and produced
// secondaries into Initializer Buffer records, and materializing those
// records into vacant track slots.
package trackinit

import (
	"sync/atomic"

	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
	"github.com/sarchlab/celerigo/internal/logx"
)

var log = logx.For("trackinit")

// Extension owns the per-stream Initializer Buffer and the monotonic
// track-id counter used to stamp every primary and secondary created on
// this stream (spec §3: "TrackId within one event is unique"; issuing a
// single stream-wide monotonic counter, never reset between events, is
// sufficient to guarantee per-event uniqueness and additionally makes ids
// unique across the whole stream).
type Extension struct {
	buf      *initializer.Buffer
	nextTrack atomic.Int64
}

// NewExtension constructs an Extension around the given Initializer Buffer.
func NewExtension(buf *initializer.Buffer) *Extension {
	return &Extension{buf: buf}
}

// Buffer exposes the underlying Initializer Buffer, primarily for Stepper
// and tests to inspect pending counts.
func (e *Extension) Buffer() *initializer.Buffer { return e.buf }

// ExtendFromPrimaries is the extend-from-primaries action of spec §4.6: it
// consumes a caller-supplied array of Primary records, the only input path
// into the core, and appends them to the Initializer Buffer. It is only
// valid to call this between steps (the Stepper enforces this by calling
// it itself, before the first pipeline phase of a step() call).
func (e *Extension) ExtendFromPrimaries(primaries []initializer.Primary) error {
	if len(primaries) == 0 {
		return nil
	}
	records := make([]initializer.Record, len(primaries))
	for i, p := range primaries {
		trackID := ids.TrackId(e.nextTrack.Add(1) - 1)
		records[i] = initializer.FromPrimary(p, trackID)
	}
	if err := e.buf.Push(records...); err != nil {
		return err
	}
	log.Debug("extended from primaries", "count", len(primaries))
	return nil
}

// NextTrackID issues the next monotonic track id on this stream, used by
// ExtendFromSecondaries to stamp newly produced secondaries.
func (e *Extension) NextTrackID() ids.TrackId {
	return ids.TrackId(e.nextTrack.Add(1) - 1)
}

// validateSecondary checks the minimal per-secondary invariants spec §4.6
// requires before a secondary may be placed or enqueued: a valid particle
// id and a non-negative energy.
func validateSecondary(particle ids.ParticleId, energyMeV float64) error {
	if !particle.Valid() {
		return errs.Invariant("extend-from-secondaries", "secondary has no particle id")
	}
	if energyMeV < 0 {
		return errs.Invariant("extend-from-secondaries", "secondary has negative energy %g MeV", energyMeV)
	}
	return nil
}
