package govern

import "time"

// EventType identifies the kind of lifecycle event a supervisor emits.
type EventType int

const (
	WorkerStarted EventType = iota
	WorkerExited
	WorkerRestarted
	WorkerPanicked
	SupervisorStopping
	SupervisorBudgetExceeded
)

func (t EventType) String() string {
	switch t {
	case WorkerStarted:
		return "worker_started"
	case WorkerExited:
		return "worker_exited"
	case WorkerRestarted:
		return "worker_restarted"
	case WorkerPanicked:
		return "worker_panicked"
	case SupervisorStopping:
		return "supervisor_stopping"
	case SupervisorBudgetExceeded:
		return "supervisor_budget_exceeded"
	default:
		return "unknown"
	}
}

// Event is a single supervisor lifecycle notification, kept alongside the
// zap-based logger rather than replacing it: the logger is for text,
// Event is for callers that want to react programmatically (metrics,
// alerting, tests).
type Event struct {
	Time      time.Time
	WorkerID  string
	Kind      EventType
	Err       error
	StackInfo string
}

// EventHandler receives supervisor events. Handlers are invoked inline on
// whichever goroutine raised the event and must return quickly.
type EventHandler func(Event)

func (s *Supervisor) emitEvent(kind EventType, workerID string, err error) {
	if len(s.eventHandlers) == 0 {
		return
	}
	e := Event{Time: time.Now(), WorkerID: workerID, Kind: kind, Err: err}
	for _, h := range s.eventHandlers {
		h(e)
	}
}
