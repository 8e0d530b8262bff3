package govern

import "github.com/rs/xid"

// workerEntry is the per-child record a Supervisor keeps for each
// registered worker. It is exclusively owned by the Supervisor that
// created it; callers only ever see the opaque id handed back from
// AddChild.
type workerEntry struct {
	id          string
	name        string
	worker      Runnable
	restartType RestartType
	kind        Kind
	execution   *execution
	exitReason  ExitReason
	panicked    bool
	startCount  int
}

func newWorkerEntryID() string {
	return xid.New().String()
}

// childConfig accumulates ChildOption values before AddChild validates
// and applies them. kindSet distinguishes "caller explicitly picked a
// kind" from "let the supervisor auto-classify it".
type childConfig struct {
	restartType RestartType
	kind        Kind
	kindSet     bool
	name        string
}

func newChildConfig() *childConfig {
	return &childConfig{restartType: Permanent}
}

// ChildOption configures a single child at AddChild time.
type ChildOption func(*childConfig)

// WithRestartType overrides the default Permanent restart type.
func WithRestartType(rt RestartType) ChildOption {
	return func(c *childConfig) { c.restartType = rt }
}

// WithKind overrides the auto-detected kind. Most callers never need
// this: AddChild already classifies a *Supervisor child as KindSupervisor
// without help.
func WithKind(k Kind) ChildOption {
	return func(c *childConfig) { c.kind = k; c.kindSet = true }
}

// WithChildName attaches a human-readable label used only for logging,
// metrics, and the Workers() introspection snapshot. It has no bearing
// on restart semantics; the opaque id from AddChild remains the only
// thing ordering and lookups key off of.
func WithChildName(name string) ChildOption {
	return func(c *childConfig) { c.name = name }
}

// status derives the entry's EntryStatus from the outcome recorded on its
// current execution handle, for read-only introspection.
func (e *workerEntry) status() EntryStatus {
	if e.execution == nil {
		return EntryIdle
	}
	e.execution.mu.Lock()
	alive, reason, panicked := e.execution.alive, e.execution.reason, e.execution.panicked
	e.execution.mu.Unlock()
	switch {
	case alive:
		return EntryRunning
	case panicked:
		return EntryPanicked
	case reason == ExitAbnormal:
		return EntryErrored
	default:
		return EntryStopped
	}
}

// classify determines the Kind to store for worker, honoring an explicit
// WithKind override and otherwise detecting a nested supervisor.
func classify(worker Runnable, cfg *childConfig) Kind {
	if cfg.kindSet {
		return cfg.kind
	}
	if _, ok := worker.(*Supervisor); ok {
		return KindSupervisor
	}
	return KindWorker
}
