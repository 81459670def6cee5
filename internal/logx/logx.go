// Package logx centralizes the custom slog levels used across the core
// packages, following the LevelTrace convention in the teacher repo's
// core/util.go.
package logx

import (
	"log/slog"
	"os"
)

// LevelTrace is slog.LevelInfo + 1, one step above Info in severity, so any
// handler that emits Info records (including the default base logger below)
// also emits LevelTrace records. It is reserved for per-slot, per-step
// diagnostics when chasing a reproducibility mismatch (spec §8, property 4).
const LevelTrace slog.Level = slog.LevelInfo + 1

var base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// For returns a logger scoped to the given component name, e.g.
// logx.For("stepper") or logx.For("state").
func For(component string) *slog.Logger {
	return base.With("component", component)
}

// SetBase replaces the base logger used by For. Intended for tests and for
// hosts that want to redirect core diagnostics into their own handler.
func SetBase(l *slog.Logger) {
	if l != nil {
		base = l
	}
}
