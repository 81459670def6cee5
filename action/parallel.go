package action

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxParallelism caps how many goroutines RunOverSlots fans out to. It
// defaults to GOMAXPROCS, standing in for "one thread per slot" on a CPU
// executor (spec §5, scheduling model (a)); a device executor would instead
// launch one kernel thread per slot, which this package does not model.
var MaxParallelism = runtime.GOMAXPROCS(0)

// RunOverSlots applies fn to every index in [0, n) using a bounded pool of
// goroutines, stopping at the first error and propagating it after every
// in-flight goroutine returns — the CPU-side stand-in for spec §7's
// stream-local multi-exception handler, using errgroup's first-error
// semantics instead of collecting every concurrent failure. Per spec §5,
// slots within one action must not depend on each other's mutations, so
// callers may only use RunOverSlots for actions whose per-slot body reads
// only its own slot plus shared, read-only params.
func RunOverSlots(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	workers := MaxParallelism
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(context.Background())
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
