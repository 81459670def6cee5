package offload

import (
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
	"github.com/sarchlab/celerigo/state"
	"github.com/sarchlab/celerigo/stepper"
)

// Generator is the external collaborator that turns one generator
// distribution into zero or more primary optical photons (spec §4.10).
// Cherenkov/scintillation yield sampling is a physical-formula concern
// (spec §1 Non-goal); only this narrow capability is consumed here.
type Generator interface {
	Generate(d state.Distribution) []initializer.Primary
}

// Accum holds the completion counters spec §4.10 calls for diagnostics:
// how many times the nested optical pipeline has been driven, how many
// distributions it has consumed, and how many flushes have occurred.
type Accum struct {
	Steps      int // cumulative optical Stepper.Step calls
	StepIters  int // optical pipeline's own cumulative substep count
	Flushes    int
	Generators int // cumulative distributions consumed
}

// Pipeline is the Offload Pipeline (C10): a per-stream Buffer paired with
// a nested optical Stepper, built from a reduced optical CoreParams/action
// set (reflectivity, surface roughness, absorption, Rayleigh, surface
// interactions, per spec §4.10) that the caller assembles exactly like any
// other Stepper and hands to NewPipeline.
type Pipeline struct {
	buf       *Buffer
	autoFlush int
	optical   *stepper.Stepper
	gen       Generator
	accum     Accum
}

// NewPipeline constructs an Offload Pipeline. autoFlush is the `auto_flush`
// knob (spec §6): the number of queued photons that triggers a flush.
func NewPipeline(buf *Buffer, autoFlush int, optical *stepper.Stepper, gen Generator) *Pipeline {
	return &Pipeline{buf: buf, autoFlush: autoFlush, optical: optical, gen: gen}
}

// Accum returns a snapshot of the completion counters.
func (pl *Pipeline) Accum() Accum { return pl.accum }

// Buffer exposes the underlying distribution buffer, primarily for tests
// and introspection.
func (pl *Pipeline) Buffer() *Buffer { return pl.buf }

// CollectFromState drains every slot's generator-distribution scratch
// produced this step into the Buffer, then flushes if the cumulative
// queued photon count has reached auto_flush (spec §4.10). This is the
// entry point a PostPost-order action calls once per charged-pipeline
// step; see Action in this package for the ready-made wrapper.
func (pl *Pipeline) CollectFromState(s *state.CoreState) error {
	for i := 0; i < s.Size(); i++ {
		slot := ids.TrackSlotId(i)
		ds := s.Distributions(slot)
		if len(ds) == 0 {
			continue
		}
		if err := pl.buf.Push(ds...); err != nil {
			return err
		}
	}
	s.ClearDistributions()

	if pl.buf.NumPhotons() >= pl.autoFlush {
		return pl.Flush()
	}
	return nil
}

// Flush generates primary photons from every buffered distribution and
// drives one nested optical step-iteration over them, blocking the
// charged pipeline until the optical stepper returns (spec §4.10, §5's
// "suspension point"; per spec §9 this must stay a direct call, never a
// coroutine). A flush with an empty buffer is a no-op and does not
// increment the completion counters.
func (pl *Pipeline) Flush() error {
	ds := pl.buf.Drain()
	if len(ds) == 0 {
		return nil
	}

	var primaries []initializer.Primary
	for _, d := range ds {
		primaries = append(primaries, pl.gen.Generate(d)...)
	}
	pl.accum.Generators += len(ds)

	counters, err := pl.optical.Step(primaries)
	pl.accum.Steps++
	pl.accum.StepIters = counters.NumStepIters
	pl.accum.Flushes++

	log.Debug("flushed offload pipeline",
		"distributions", len(ds), "primaries", len(primaries), "flushes", pl.accum.Flushes)

	if err != nil {
		return err
	}
	return nil
}

// Shutdown flushes any buffered distributions and then resets the nested
// optical stepper, giving the offload pipeline the same deterministic
// teardown its Flush path already gives the charged pipeline (spec §9:
// "nested optical stepping is a blocking call from the charged pipeline").
// If the optical stepper's registry has a kill-active action registered,
// Stepper.Reset runs it first so any optical track still in flight gets an
// explicit terminal transition instead of being silently discarded.
func (pl *Pipeline) Shutdown() error {
	if err := pl.Flush(); err != nil {
		return err
	}
	pl.optical.Reset()
	return nil
}
