package pyre

import (
	"errors"
	"fmt"
)

// Every failure the engine can produce wraps one of these sentinels, so
// callers can classify with errors.Is. No error is retried or swallowed
// internally; all propagate synchronously to the caller.
var (
	// ErrInvalidConfiguration covers zero or illegal scale, illegal
	// rotation, a down-scale factor that does not divide the buffer, an
	// out-of-range camera or sprite dimension, and malformed enum values.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotFound covers lookups of unknown sprite or level names.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange covers level indices outside the configured bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrReasoningPayload covers a reasoning blob that is not
	// JSON-serializable or exceeds MaxReasoningBytes.
	ErrReasoningPayload = errors.New("invalid reasoning payload")

	// ErrActionBudgetExceeded is fatal: the per-action step loop ran past
	// MaxActionSteps. It indicates a bug in game-specific step logic and is
	// not recoverable within the current action.
	ErrActionBudgetExceeded = errors.New("action step budget exceeded")
)

func errInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func errNotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
