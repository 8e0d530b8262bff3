// Package govern implements the supervision core of an Erlang/OTP-style
// concurrency toolkit: a mechanism that owns a set of long-running worker
// goroutines and restarts them according to declared policies when they
// terminate.
//
// Basic usage:
//
//	sup, err := govern.New(
//	    govern.OneForOne,
//	    govern.WithName("my-supervisor"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := sup.AddChild(myWorker, govern.WithRestartType(govern.Permanent)); err != nil {
//	    log.Fatal(err)
//	}
//	go func() {
//	    if err := sup.Start(context.Background()); err != nil {
//	        log.Print(err)
//	    }
//	}()
//	// ... later
//	sup.Stop()
package govern

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Strategy governs which siblings are affected when one child terminates.
type Strategy int

const (
	// OneForOne restarts only the terminated child.
	OneForOne Strategy = iota
	// OneForAll stops and restarts every child whenever one terminates.
	OneForAll
	// RestForOne restarts the terminated child and every child added
	// after it, in insertion order.
	RestForOne
)

func (s Strategy) valid() bool {
	switch s {
	case OneForOne, OneForAll, RestForOne:
		return true
	default:
		return false
	}
}

func (s Strategy) String() string {
	switch s {
	case OneForOne:
		return "one_for_one"
	case OneForAll:
		return "one_for_all"
	case RestForOne:
		return "rest_for_one"
	default:
		return "unknown"
	}
}

const (
	defaultMonitorInterval = time.Second
	defaultMaxRestarts     = 5
	defaultWindow          = 60 * time.Second
)

// Supervisor owns a set of Runnable children and enforces a restart
// policy over them. A Supervisor is itself a Runnable, so one supervisor
// may be registered as a child of another.
//
// All exported methods are safe for concurrent use.
type Supervisor struct {
	name            string
	strategy        Strategy
	monitorInterval time.Duration
	maxRestarts     int
	window          time.Duration
	backoff         BackoffPolicy
	logger          *zap.Logger
	metricsReg      prometheus.Registerer
	eventHandlers   []EventHandler

	mu       sync.Mutex
	workers  []*workerEntry
	state    State
	ledger   *restartLedger
	stopCh   chan struct{}
	finalErr error

	metrics *supervisorMetrics
}

// New creates a Supervisor configured with strategy and opts. Construction
// fails with a wrapped ErrInvalidArgument if any option rejects its value.
func New(strategy Strategy, opts ...Option) (*Supervisor, error) {
	if !strategy.valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown strategy %d", strategy)
	}

	s := &Supervisor{
		name:            "supervisor",
		strategy:        strategy,
		monitorInterval: defaultMonitorInterval,
		maxRestarts:     defaultMaxRestarts,
		window:          defaultWindow,
		backoff:         NoBackoff(),
		logger:          zap.NewNop(),
		state:           StateStopped,
		stopCh:          make(chan struct{}),
	}
	s.ledger = newRestartLedger(s.maxRestarts, s.window)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	// Options may have changed intensity after the ledger was built with
	// the defaults; rebuild it once option application has settled.
	s.ledger = newRestartLedger(s.maxRestarts, s.window)

	if s.metricsReg != nil {
		s.metrics = newSupervisorMetrics(s.metricsReg, s.name)
		s.metrics.setWorkers(len(s.workers))
	}

	return s, nil
}

// AddChild registers worker under the given options and returns its
// opaque id. It fails if the supervisor is running: registration is a
// Stopped-only operation, since insertion order is semantically
// significant for RestForOne and must not shift under a live monitor
// loop.
func (s *Supervisor) AddChild(worker Runnable, opts ...ChildOption) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addChildLocked(worker, opts...)
}

func (s *Supervisor) addChildLocked(worker Runnable, opts ...ChildOption) (string, error) {
	if s.state == StateRunning {
		return "", ErrSupervisorRunning
	}

	cfg := newChildConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.restartType.valid() {
		return "", errors.Wrapf(ErrInvalidArgument, "unknown restart type %d", cfg.restartType)
	}
	if cfg.kindSet && !cfg.kind.valid() {
		return "", errors.Wrapf(ErrInvalidArgument, "unknown kind %d", cfg.kind)
	}

	entry := &workerEntry{
		id:          newWorkerEntryID(),
		name:        cfg.name,
		worker:      worker,
		restartType: cfg.restartType,
		kind:        classify(worker, cfg),
	}
	s.workers = append(s.workers, entry)
	s.metrics.setWorkers(len(s.workers))
	return entry.id, nil
}

// Start transitions the supervisor from Stopped to Running, launches
// every registered child, starts the monitor loop, and blocks until Stop
// is called (by any goroutine) or ctx is canceled. It returns the error
// that caused the supervisor to stop itself (ErrIntensityExceeded) or nil
// if it was stopped cleanly.
func (s *Supervisor) Start(ctx context.Context) error {
	if err := s.startAsyncLocked(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	ch := s.stopCh
	s.mu.Unlock()

	var ctxErr error
	select {
	case <-ctx.Done():
		ctxErr = ctx.Err()
		s.Stop()
	case <-ch:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalErr != nil {
		return s.finalErr
	}
	return ctxErr
}

// StartAsync is the non-blocking variant of Start: it launches every
// child and the monitor loop, then returns immediately.
func (s *Supervisor) StartAsync(ctx context.Context) error {
	return s.startAsyncLocked(ctx)
}

func (s *Supervisor) startAsyncLocked(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return ErrSupervisorRunning
	}
	s.state = StateRunning
	s.stopCh = make(chan struct{})
	s.finalErr = nil
	snapshot := append([]*workerEntry(nil), s.workers...)
	s.mu.Unlock()

	for _, entry := range snapshot {
		s.launch(ctx, entry)
	}

	s.metrics.setRunning(true)
	go s.monitorLoop(ctx, s.stopCh)
	return nil
}

func (s *Supervisor) launch(ctx context.Context, entry *workerEntry) {
	ex := startExecution(ctx, entry.worker)
	s.mu.Lock()
	entry.execution = ex
	entry.startCount++
	entry.exitReason = ExitNone
	entry.panicked = false
	s.mu.Unlock()
	s.emitEvent(WorkerStarted, entry.id, nil)
}

// Stop transitions the supervisor to Stopped. It is idempotent: calling
// Stop on an already-Stopped supervisor returns immediately without side
// effects. Every still-running child is stopped, and the restart ledger
// is reset.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.state = StateStopped
	snapshot := append([]*workerEntry(nil), s.workers...)
	ch := s.stopCh
	s.mu.Unlock()

	close(ch)

	for _, entry := range snapshot {
		s.mu.Lock()
		ex := entry.execution
		s.mu.Unlock()
		if ex != nil && ex.Alive() {
			entry.worker.Stop()
			ex.Cancel()
		}
	}

	s.ledger.Reset()
	s.metrics.setRunning(false)
	s.emitEvent(SupervisorStopping, "", nil)
}

// Alive satisfies Runnable: a supervisor is alive exactly while Running.
func (s *Supervisor) Alive() bool { return s.Running() }

// Len returns the number of registered children.
func (s *Supervisor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workers)
}

// RestartCount returns the ledger's current non-purged size since the
// supervisor last started; it is zero after Stop.
func (s *Supervisor) RestartCount() int {
	return s.ledger.Len()
}

// Running reports whether the supervisor is in the Running state.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateRunning
}

// WorkerStatus is a read-only snapshot of one registered child, for
// introspection.
type WorkerStatus struct {
	ID          string
	Name        string
	Kind        Kind
	RestartType RestartType
	StartCount  int
	Alive       bool
	Status      EntryStatus
}

func entryStatus(e *workerEntry) WorkerStatus {
	return WorkerStatus{
		ID:          e.id,
		Name:        e.name,
		Kind:        e.kind,
		RestartType: e.restartType,
		StartCount:  e.startCount,
		Alive:       e.execution != nil && e.execution.Alive(),
		Status:      e.status(),
	}
}

// Child returns a point-in-time snapshot of the single registered child
// matching id, or ErrChildNotFound if no such child is registered.
func (s *Supervisor) Child(id string) (WorkerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.workers {
		if e.id == id {
			return entryStatus(e), nil
		}
	}
	return WorkerStatus{}, errors.Wrapf(ErrChildNotFound, "id %q", id)
}

// Workers returns a point-in-time snapshot of every registered child.
func (s *Supervisor) Workers() []WorkerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]WorkerStatus, len(s.workers))
	for i, e := range s.workers {
		out[i] = entryStatus(e)
	}
	return out
}
