// Package state implements the track-slot state bank (C2): one CoreState
// per stream, owning a fixed-capacity slot-of-arrays record for every track
// slot plus the vacancy list and action-sort offsets that the rest of the
// pipeline consults.
package state

// Status is a track slot's lifecycle state (spec §3 "Lifecycle").
type Status int

const (
	// Inactive slots hold no track; they are present in the vacancy list.
	Inactive Status = iota
	// Alive slots are being stepped normally.
	Alive
	// Killed slots finished this step (absorption, cutoff, escape, user
	// cut) and will be cleared to Inactive at end of step.
	Killed
	// Errored slots hit an invariant violation (e.g. failed field
	// propagation) and will be cleared to Inactive at end of step.
	Errored
)

func (s Status) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Alive:
		return "alive"
	case Killed:
		return "killed"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Terminal reports whether a status ends the track's participation in this
// step's alive population (Killed and Errored both clear to Inactive at the
// end of the step, per spec §3's Lifecycle).
func (s Status) Terminal() bool { return s == Killed || s == Errored }
