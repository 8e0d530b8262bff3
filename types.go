package govern

import "context"

// Runnable is the capability a value must expose to be supervised: a
// start/stop/alive trio expressed as a Go interface, so acceptance is
// enforced by the compiler rather than by a runtime capability probe.
//
// Start begins the worker's long-running activity and must not return
// until that activity has completed or has been asked to stop. Returning
// nil is a normal exit; returning a non-nil error is an abnormal exit. A
// panic inside Start is recovered by the supervisor and treated the same
// as an abnormal exit.
//
// Stop requests cooperative termination. It must eventually cause an
// in-flight Start to return, but it does not have to do so immediately,
// and the supervisor never time-bounds it.
//
// Alive reports whether the receiver currently considers itself active.
// The supervisor does not consult it to decide liveness for restart
// purposes (that decision is driven by its own execution handle, see
// execution.go); Alive exists so external callers and hierarchical
// parents can introspect a worker without holding a reference to the
// supervisor that owns it.
//
// Concurrent calls to Start/Stop on one Runnable must be serialized by
// the Runnable itself; the supervisor does not add its own lock around
// calls to a single worker.
type Runnable interface {
	Start(ctx context.Context) error
	Stop()
	Alive() bool
}

// RestartType governs whether a terminated child is eligible for restart,
// given how it exited.
type RestartType int

const (
	// Permanent children are restarted on both normal and abnormal exit.
	Permanent RestartType = iota
	// Temporary children are never restarted.
	Temporary
	// Transient children are restarted only on abnormal exit.
	Transient
)

func (rt RestartType) valid() bool {
	switch rt {
	case Permanent, Temporary, Transient:
		return true
	default:
		return false
	}
}

// String returns the name of the restart type.
func (rt RestartType) String() string {
	switch rt {
	case Permanent:
		return "permanent"
	case Temporary:
		return "temporary"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// Kind classifies a registered child as an ordinary worker or as a nested
// supervisor. It is auto-detected at AddChild time unless overridden.
type Kind int

const (
	KindWorker Kind = iota
	KindSupervisor
)

func (k Kind) valid() bool {
	switch k {
	case KindWorker, KindSupervisor:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindWorker:
		return "worker"
	case KindSupervisor:
		return "supervisor"
	default:
		return "unknown"
	}
}

// ExitReason distinguishes a voluntary termination from a fault. Only the
// execution wrapper assigns this value; it is never set directly by user
// code.
type ExitReason int

const (
	// ExitNone means the child has not yet terminated (or has not yet
	// run for the first time).
	ExitNone ExitReason = iota
	// ExitNormal means Start returned nil, or the worker was stopped
	// cooperatively and returned without error.
	ExitNormal
	// ExitAbnormal means Start returned a non-nil error or panicked.
	ExitAbnormal
)

func (r ExitReason) String() string {
	switch r {
	case ExitNone:
		return "none"
	case ExitNormal:
		return "normal"
	case ExitAbnormal:
		return "abnormal"
	default:
		return "unknown"
	}
}

// EntryStatus is a coarse, read-only classification of one registered
// child, for introspection via WorkerStatus. It does not drive restart
// decisions — that is ExitReason's job — it only names the result for
// human and metrics consumers.
type EntryStatus int

const (
	// EntryIdle means the child has never been started.
	EntryIdle EntryStatus = iota
	// EntryRunning means the child's current execution has not returned.
	EntryRunning
	// EntryStopped means the child's last execution returned nil.
	EntryStopped
	// EntryErrored means the child's last execution returned a non-nil
	// error without panicking.
	EntryErrored
	// EntryPanicked means the child's last execution panicked.
	EntryPanicked
)

func (s EntryStatus) String() string {
	switch s {
	case EntryIdle:
		return "idle"
	case EntryRunning:
		return "running"
	case EntryStopped:
		return "stopped"
	case EntryErrored:
		return "errored"
	case EntryPanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

// State is the supervisor's own lifecycle state.
type State int

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}
