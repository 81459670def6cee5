// Package errs defines the typed error kinds the core stepping engine can
// raise, per spec §7. Per-track "soft" failures (tracking cuts) are never
// represented here: they are state transitions on the slot, not Go errors.
package errs

import (
	"fmt"

	"github.com/sarchlab/celerigo/ids"
)

// Kind distinguishes the fatal error categories the core can surface.
type Kind int

const (
	// InvariantFailure is a contract violation detected by an assertion;
	// always fatal.
	InvariantFailure Kind = iota
	// InitializerOverflow means the initializer buffer's capacity (C5) was
	// exceeded by a producer; always fatal.
	InitializerOverflow
	// ConfigurationError means invalid field options, an unknown volume id,
	// or a bad action registration; fatal at build time.
	ConfigurationError
	// NotConfigured means a device-only path was invoked without device
	// support.
	NotConfigured
)

func (k Kind) String() string {
	switch k {
	case InvariantFailure:
		return "InvariantFailure"
	case InitializerOverflow:
		return "InitializerOverflow"
	case ConfigurationError:
		return "ConfigurationError"
	case NotConfigured:
		return "NotConfigured"
	default:
		return "UnknownErrorKind"
	}
}

// CoreError is the structured error type raised for every fatal condition
// in the core, attributed to the offending (slot, action, label) per §7.
type CoreError struct {
	Kind   Kind
	Action ids.ActionId
	Slot   ids.TrackSlotId
	Label  string
	Msg    string
}

func (e *CoreError) Error() string {
	if e.Slot.Valid() {
		return fmt.Sprintf("%s: %s (action=%s slot=%s): %s",
			e.Kind, e.Label, e.Action, e.Slot, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Label, e.Msg)
}

// Invariant builds an InvariantFailure error unattached to a particular
// slot, used for whole-state assertions (e.g. §8 property 1).
func Invariant(label, format string, args ...any) *CoreError {
	return &CoreError{
		Kind:  InvariantFailure,
		Label: label,
		Slot:  ids.NullTrackSlotId,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// InvariantAt builds an InvariantFailure error attributed to a slot and the
// action that was executing when the violation was detected.
func InvariantAt(action ids.ActionId, slot ids.TrackSlotId, label, format string, args ...any) *CoreError {
	return &CoreError{
		Kind:   InvariantFailure,
		Action: action,
		Slot:   slot,
		Label:  label,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// Overflow builds an InitializerOverflow error.
func Overflow(label string, capacity, attempted int) *CoreError {
	return &CoreError{
		Kind:  InitializerOverflow,
		Label: label,
		Slot:  ids.NullTrackSlotId,
		Msg:   fmt.Sprintf("capacity %d exceeded: %d pending records attempted", capacity, attempted),
	}
}

// Configuration builds a ConfigurationError.
func Configuration(label, format string, args ...any) *CoreError {
	return &CoreError{
		Kind:  ConfigurationError,
		Label: label,
		Slot:  ids.NullTrackSlotId,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// NotConfiguredErr builds a NotConfigured error.
func NotConfiguredErr(label, what string) *CoreError {
	return &CoreError{
		Kind:  NotConfigured,
		Label: label,
		Slot:  ids.NullTrackSlotId,
		Msg:   what + " is not configured in this build",
	}
}

// Is allows errors.Is(err, target) to match by Kind when target is itself a
// *CoreError; its other fields are ignored, e.g.
// errors.Is(err, &errs.CoreError{Kind: errs.InvariantFailure}).
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
