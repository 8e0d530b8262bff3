package govern

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// eligibleForRestart decides whether a terminated child should be
// restarted: Permanent restarts on both normal and abnormal exit,
// Temporary never restarts, Transient restarts only on abnormal exit.
func eligibleForRestart(rt RestartType, reason ExitReason) bool {
	switch rt {
	case Permanent:
		return true
	case Transient:
		return reason == ExitAbnormal
	case Temporary:
		return false
	default:
		return false
	}
}

// dispatchRestart is invoked once per dead entry discovered by the
// monitor loop. It returns true if the restart ledger reported its
// budget exhausted, signaling the caller to stop the whole supervisor.
//
// A no-op decision (eligibleForRestart == false) returns before the
// ledger is ever consulted; an eligible decision always consults (and
// appends to) the ledger exactly once, whether or not anything is
// ultimately restarted.
func (s *Supervisor) dispatchRestart(ctx context.Context, entry *workerEntry, reason ExitReason, err error, panicked bool) bool {
	s.mu.Lock()
	rt := entry.restartType
	s.mu.Unlock()

	eventType := WorkerExited
	if panicked {
		eventType = WorkerPanicked
	}
	s.emitEvent(eventType, entry.id, err)

	if !eligibleForRestart(rt, reason) {
		return false
	}

	if s.ledger.Exceeded(time.Now()) {
		s.logger.Warn("restart budget exceeded, stopping supervisor",
			zap.String("supervisor", s.name), zap.String("worker", entry.id))
		s.emitEvent(SupervisorBudgetExceeded, entry.id, ErrIntensityExceeded)
		s.mu.Lock()
		s.finalErr = ErrIntensityExceeded
		s.mu.Unlock()
		return true
	}

	s.mu.Lock()
	restarts := entry.startCount - 1
	s.mu.Unlock()
	if delay := s.backoff.ComputeDelay(restarts); delay > 0 {
		time.Sleep(delay)
	}

	s.logger.Info("restarting worker",
		zap.String("supervisor", s.name), zap.String("worker", entry.id),
		zap.Stringer("strategy", s.strategy), zap.Stringer("reason", reason))

	switch s.strategy {
	case OneForOne:
		s.restartOne(ctx, entry)
	case OneForAll:
		s.restartAll(ctx, entry)
	case RestForOne:
		s.restartRestForOne(ctx, entry)
	}
	return false
}

// restartOne restarts only entry (OneForOne). worker.Stop is called
// defensively first, in case the worker technically finished but still
// holds resources it only releases on Stop.
func (s *Supervisor) restartOne(ctx context.Context, entry *workerEntry) {
	entry.worker.Stop()
	s.respawn(ctx, entry)
	s.emitEvent(WorkerRestarted, entry.id, nil)
}

// restartAll stops every other currently-running entry, waits for each to
// finish, then restarts every entry (including failed) in insertion
// order (OneForAll).
func (s *Supervisor) restartAll(ctx context.Context, failed *workerEntry) {
	s.mu.Lock()
	snapshot := append([]*workerEntry(nil), s.workers...)
	s.mu.Unlock()

	for _, e := range snapshot {
		if e == failed {
			continue
		}
		s.mu.Lock()
		ex := e.execution
		s.mu.Unlock()
		if ex != nil && ex.Alive() {
			e.worker.Stop()
			ex.Cancel()
			<-ex.Done()
		}
	}

	for _, e := range snapshot {
		s.respawn(ctx, e)
		s.emitEvent(WorkerRestarted, e.id, nil)
	}
}

// restartRestForOne restarts failed and every entry added after it, in
// insertion order, leaving entries added before it untouched
// (RestForOne).
func (s *Supervisor) restartRestForOne(ctx context.Context, failed *workerEntry) {
	s.mu.Lock()
	snapshot := append([]*workerEntry(nil), s.workers...)
	s.mu.Unlock()

	idx := -1
	for i, e := range snapshot {
		if e == failed {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	trailing := snapshot[idx:]

	for _, e := range trailing {
		s.mu.Lock()
		ex := e.execution
		s.mu.Unlock()
		if ex != nil && ex.Alive() {
			e.worker.Stop()
			ex.Cancel()
			<-ex.Done()
		}
	}

	for _, e := range trailing {
		s.respawn(ctx, e)
		s.emitEvent(WorkerRestarted, e.id, nil)
	}
}

// respawn spawns a fresh execution for entry, updates its bookkeeping
// under the supervisor lock, and records the restart in the ledger's
// sibling metric.
func (s *Supervisor) respawn(ctx context.Context, entry *workerEntry) {
	ex := startExecution(ctx, entry.worker)
	s.mu.Lock()
	entry.execution = ex
	entry.startCount++
	entry.exitReason = ExitNone
	entry.panicked = false
	s.mu.Unlock()
	s.metrics.incRestarts()
}
