package initializer

import (
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/internal/logx"
)

var log = logx.For("initializer")

// Buffer is the bounded pool of pending initializer records (C5), sized at
// construction by `initializer_capacity` (spec §6). Producers (C6's
// extend-from-primaries and extend-from-secondaries) push records;
// consumers (C7's initialize-tracks) pop exactly
// min(num_initializers, num_vacancies) entries, in insertion order (spec
// §4.6: "deterministic by (producing slot id, local index)").
type Buffer struct {
	capacity int
	records  []Record
}

// NewBuffer constructs an empty buffer with the given capacity. A
// non-positive capacity is a ConfigurationError.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic(errs.Configuration("initializer-buffer", "capacity must be positive, got %d", capacity))
	}
	return &Buffer{capacity: capacity, records: make([]Record, 0, capacity)}
}

// Capacity is the configured `initializer_capacity`.
func (b *Buffer) Capacity() int { return b.capacity }

// Len reports how many records are currently pending.
func (b *Buffer) Len() int { return len(b.records) }

// Push appends records to the buffer in order, returning an
// InitializerOverflow error (spec §4.5, §7) instead of mutating the buffer
// if doing so would exceed the configured capacity.
func (b *Buffer) Push(records ...Record) error {
	if len(b.records)+len(records) > b.capacity {
		return errs.Overflow("initializer-buffer", b.capacity, len(b.records)+len(records))
	}
	b.records = append(b.records, records...)
	return nil
}

// Remaining reports how many more records can be pushed before Push would
// return InitializerOverflow.
func (b *Buffer) Remaining() int { return b.capacity - len(b.records) }

// Pop removes and returns up to n records from the front of the buffer, in
// insertion order, leaving any remainder in place (spec §8's boundary
// behavior: "the buffer retains the remainder in insertion order"). It
// never pops more than Len() records.
func (b *Buffer) Pop(n int) []Record {
	if n > len(b.records) {
		n = len(b.records)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Record, n)
	copy(out, b.records[:n])
	remaining := len(b.records) - n
	copy(b.records, b.records[n:])
	b.records = b.records[:remaining]

	log.Debug("popped initializers", "count", n, "remaining", remaining)
	return out
}

// Clear empties the buffer without returning its contents, used by
// Stepper.Reset.
func (b *Buffer) Clear() { b.records = b.records[:0] }
