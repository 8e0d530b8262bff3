package govern

import "errors"

var (
	// ErrSupervisorRunning is returned by AddChild when called on a running
	// supervisor, and by Start/StartAsync when the supervisor is already
	// running. Per the state machine, children may only be registered
	// while the supervisor is stopped.
	ErrSupervisorRunning = errors.New("govern: supervisor is running")

	// ErrIntensityExceeded is the reason recorded when the restart ledger
	// reports its sliding window exhausted. It is the return value of the
	// blocking Start after the supervisor has stopped itself; StartAsync
	// callers only observe Running() turning false.
	ErrIntensityExceeded = errors.New("govern: restart intensity exceeded")

	// ErrInvalidArgument is wrapped (via github.com/pkg/errors) with
	// field-specific context and returned synchronously from New or
	// AddChild when a supplied value is out of range or not one of the
	// permitted enum values.
	ErrInvalidArgument = errors.New("govern: invalid argument")

	// ErrChildNotFound is returned by lookups keyed on a child id that is
	// not currently registered.
	ErrChildNotFound = errors.New("govern: child not found")
)
