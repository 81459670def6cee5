// Package sort implements the Action Sort (C9): the optional step that
// reorders a stream's track-slot indirection array so slots sharing the
// same post_step_action become contiguous, letting later actions launch
// only over the contiguous range relevant to them.
package sort

import (
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/internal/logx"
	"github.com/sarchlab/celerigo/state"
)

var log = logx.For("sort")

// Sorter partitions track slots by next discrete action, for a fixed
// registry size (numActions). It is only invoked by the Stepper when
// params.TrackOrder() == params.PartitionByAction (spec §4.4 step 8).
type Sorter struct {
	numActions int
}

// NewSorter constructs a Sorter for a registry of the given size.
func NewSorter(numActions int) *Sorter {
	return &Sorter{numActions: numActions}
}

// Partition reorders state's track-slot indirection array so slots sharing
// the same post_step_action are contiguous, and writes the
// action_thread_offsets prefix-sum table (spec §4.9). Slots with no valid
// post_step_action — inactive, killed, or errored slots not yet cleared —
// are moved past offsets[numActions], outside any action's addressable
// range. Bucket order preserves each slot's relative position in the
// existing indirection array, so the partition is deterministic given a
// deterministic input order.
func (so *Sorter) Partition(s *state.CoreState) {
	slots := s.TrackSlots()
	buckets := make([][]ids.TrackSlotId, so.numActions)
	var tail []ids.TrackSlotId

	for _, slotID := range slots {
		a := s.Slot(slotID).Sim().PostStepAction
		if a.Valid() && a.Get() >= 0 && a.Get() < so.numActions {
			buckets[a.Get()] = append(buckets[a.Get()], slotID)
		} else {
			tail = append(tail, slotID)
		}
	}

	ordered := make([]ids.TrackSlotId, 0, len(slots))
	offsets := make([]int, so.numActions+1)
	for a, bucket := range buckets {
		offsets[a] = len(ordered)
		ordered = append(ordered, bucket...)
	}
	offsets[so.numActions] = len(ordered)
	ordered = append(ordered, tail...)

	s.SetTrackSlots(ordered)
	s.SetActionThreadOffsets(offsets)

	log.Debug("partitioned track slots by action", "num_actions", so.numActions, "tail", len(tail))
}
