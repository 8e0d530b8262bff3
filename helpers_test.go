package govern

import (
	"context"
	"sync"
)

// testWorker is a Runnable whose behavior is supplied by run. It derives
// its own cancelable context from whatever Start receives, so Stop works
// correctly even when a test doesn't rely on the supervisor's extra
// ctx-cancellation nudge.
type testWorker struct {
	run func(ctx context.Context) error

	mu     sync.Mutex
	cancel context.CancelFunc
	alive  bool
}

func newTestWorker(run func(ctx context.Context) error) *testWorker {
	return &testWorker{run: run}
}

func (w *testWorker) Start(ctx context.Context) error {
	cctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.alive = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.alive = false
		w.cancel = nil
		w.mu.Unlock()
	}()

	return w.run(cctx)
}

func (w *testWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (w *testWorker) Alive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alive
}

// blockUntilDone runs until its context is canceled, then returns nil.
func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
