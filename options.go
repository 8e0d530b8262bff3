package govern

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Supervisor at construction time. Each Option
// returns an error so New can fail synchronously on an out-of-range
// value instead of silently clamping it.
type Option func(*Supervisor) error

// WithName sets the supervisor's name, used for logging and metrics
// labels.
func WithName(name string) Option {
	return func(s *Supervisor) error {
		if name == "" {
			return errors.Wrap(ErrInvalidArgument, "name must not be empty")
		}
		s.name = name
		return nil
	}
}

// WithIntensity sets the restart ledger's sliding-window budget: more
// than maxRestarts restarts within window causes the supervisor to stop
// itself.
func WithIntensity(maxRestarts int, window time.Duration) Option {
	return func(s *Supervisor) error {
		if maxRestarts < 0 {
			return errors.Wrap(ErrInvalidArgument, "max_restarts must be >= 0")
		}
		if window < 0 {
			return errors.Wrap(ErrInvalidArgument, "window_seconds must be >= 0")
		}
		s.maxRestarts = maxRestarts
		s.window = window
		return nil
	}
}

// WithMonitorInterval sets how often the monitor loop scans for dead
// children. Must be positive.
func WithMonitorInterval(d time.Duration) Option {
	return func(s *Supervisor) error {
		if d <= 0 {
			return errors.Wrap(ErrInvalidArgument, "monitor_interval must be > 0")
		}
		s.monitorInterval = d
		return nil
	}
}

// WithBackoff sets the delay policy applied before each restart. The
// default is NoBackoff, restarting immediately.
func WithBackoff(policy BackoffPolicy) Option {
	return func(s *Supervisor) error {
		if policy == nil {
			return errors.Wrap(ErrInvalidArgument, "backoff policy must not be nil")
		}
		s.backoff = policy
		return nil
	}
}

// WithLogger attaches a *zap.Logger the supervisor uses for informational
// and warning messages on restart and budget-exhaustion events. The
// default is a no-op logger, so the library stays silent unless a caller
// opts in.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Supervisor) error {
		if logger == nil {
			return errors.Wrap(ErrInvalidArgument, "logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics registers Prometheus collectors for this supervisor's
// observable counters against reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Supervisor) error {
		if reg == nil {
			return errors.Wrap(ErrInvalidArgument, "registerer must not be nil")
		}
		s.metricsReg = reg
		return nil
	}
}

// WithEventHandler registers a handler invoked on every supervisor
// lifecycle event. May be supplied multiple times.
func WithEventHandler(handler EventHandler) Option {
	return func(s *Supervisor) error {
		if handler == nil {
			return errors.Wrap(ErrInvalidArgument, "event handler must not be nil")
		}
		s.eventHandlers = append(s.eventHandlers, handler)
		return nil
	}
}

// WithInitialChild preloads a single worker, equivalent to calling
// AddChild immediately after New while still Stopped.
func WithInitialChild(worker Runnable, opts ...ChildOption) Option {
	return func(s *Supervisor) error {
		_, err := s.addChildLocked(worker, opts...)
		return err
	}
}
