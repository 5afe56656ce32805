// Package gperr defines the sentinel error taxonomy shared by every gogp
// package. Callers use errors.Is/errors.As against the sentinels below;
// call sites wrap them with errors.Wrap/Wrapf to attach context.
package gperr

import "github.com/pkg/errors"

// Sentinel errors. See spec §7 for the taxonomy these implement.
var (
	// ErrInvalidLanguage is returned when a Language is constructed from a
	// malformed operator vocabulary. Fatal for the run.
	ErrInvalidLanguage = errors.New("gogp: invalid language")

	// ErrNoTypedNode is returned when variation cannot find a type-compatible
	// node after a bounded number of retries. Recovered locally: the
	// mutation that raised it is a no-op.
	ErrNoTypedNode = errors.New("gogp: no type-compatible node found")

	// ErrNoCompatibleOutput is returned when output initialisation or a
	// remap cannot find a node compatible with a declared output type. Fatal
	// during construction; aborts (but does not corrupt) the enclosing
	// mutation otherwise.
	ErrNoCompatibleOutput = errors.New("gogp: no compatible output node found")

	// ErrCompileError indicates a broken graph invariant was observed during
	// compilation. Defensive: should never happen if variation operators are
	// used correctly.
	ErrCompileError = errors.New("gogp: compile error")

	// ErrFitnessError wraps an error returned by a user fitness callback.
	// Surfaced to the caller; the driver never masks it. Panics are not
	// recovered.
	ErrFitnessError = errors.New("gogp: fitness callback error")
)

// Wrap annotates err with msg if err is non-nil, preserving Is/As against the
// wrapped sentinel.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
