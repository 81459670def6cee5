// Package offload implements the Offload Pipeline (C10): buffering the
// generator distributions charged-particle along-step actions produce,
// and, once enough photons have accumulated, running an independent,
// nested optical stepper instance over primaries synthesized from them
// (spec §4.10).
package offload

import (
	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/internal/logx"
	"github.com/sarchlab/celerigo/state"
)

var log = logx.For("offload")

// Buffer is the per-stream collection of pending generator distributions
// (spec §4.10), bounded by the `buffer_capacity` knob (spec §6). It is
// distinct from the photon-count `auto_flush` threshold that triggers
// draining it: Buffer only refuses to grow past buffer_capacity
// distributions, regardless of how many photons each one carries.
type Buffer struct {
	capacity int
	items    []state.Distribution
}

// NewBuffer constructs an empty distribution buffer with the given
// capacity. A non-positive capacity is a ConfigurationError.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic(errs.Configuration("offload-buffer", "buffer_capacity must be positive, got %d", capacity))
	}
	return &Buffer{capacity: capacity, items: make([]state.Distribution, 0, capacity)}
}

// Capacity is the configured `buffer_capacity`.
func (b *Buffer) Capacity() int { return b.capacity }

// Len reports how many distributions are currently pending.
func (b *Buffer) Len() int { return len(b.items) }

// NumPhotons sums NumPhotons across every pending distribution; this is
// the quantity `auto_flush` is compared against.
func (b *Buffer) NumPhotons() int {
	n := 0
	for _, d := range b.items {
		n += d.NumPhotons
	}
	return n
}

// Push appends distributions in order, returning an InitializerOverflow-
// style error instead of mutating the buffer if doing so would exceed
// buffer_capacity.
func (b *Buffer) Push(ds ...state.Distribution) error {
	if len(b.items)+len(ds) > b.capacity {
		return errs.Overflow("offload-buffer", b.capacity, len(b.items)+len(ds))
	}
	b.items = append(b.items, ds...)
	return nil
}

// Drain removes and returns every pending distribution, in insertion
// order, leaving the buffer empty.
func (b *Buffer) Drain() []state.Distribution {
	out := b.items
	b.items = make([]state.Distribution, 0, b.capacity)
	return out
}
