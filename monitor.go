package govern

import (
	"context"
	"time"
)

// monitorLoop is the periodic liveness scanner: on each tick it observes
// every child's execution handle and dispatches dead ones to the restart
// policy. It performs no user-visible work itself. A crash inside this
// loop is a programming error and is intentionally not recovered.
func (s *Supervisor) monitorLoop(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.state != StateRunning {
			s.mu.Unlock()
			return
		}
		snapshot := append([]*workerEntry(nil), s.workers...)
		executions := make([]*execution, len(snapshot))
		for i, e := range snapshot {
			executions[i] = e.execution
		}
		s.mu.Unlock()

		var dead []*workerEntry
		var deadEx []*execution
		for i, e := range snapshot {
			if executions[i] != nil && !executions[i].Alive() {
				dead = append(dead, e)
				deadEx = append(deadEx, executions[i])
			}
		}

		for i, entry := range dead {
			s.mu.Lock()
			if s.state != StateRunning {
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
			reason, err, panicked := deadEx[i].Result()

			s.mu.Lock()
			entry.exitReason = reason
			entry.panicked = panicked
			s.mu.Unlock()

			if s.dispatchRestart(ctx, entry, reason, err, panicked) {
				s.Stop()
				return
			}
		}
	}
}
