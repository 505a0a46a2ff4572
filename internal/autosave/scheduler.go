package autosave

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

var (
	ErrSaveFuncRequired  = errors.New("autosave: save function is required")
	ErrDirtyFuncRequired = errors.New("autosave: dirty check is required")
	ErrAlreadyStarted    = errors.New("autosave: scheduler already started")
)

// SaveFunc persists the current editing state.
type SaveFunc func(ctx context.Context) error

// DirtyFunc reports whether there are unsaved changes.
type DirtyFunc func() bool

// Scheduler periodically persists dirty editing state. At most one save is in
// flight at a time; ticks that arrive while a save is still running are
// dropped rather than queued, so a slow backend never builds a backlog.
type Scheduler struct {
	interval time.Duration
	dirty    DirtyFunc
	save     SaveFunc
	logger   interfaces.Logger
	tickers  TickerFactory
	onResult func(error)

	inFlight atomic.Bool

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
}

// SchedulerOption customises a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTickerFactory injects the tick source, used by tests to drive the
// loop deterministically.
func WithTickerFactory(factory TickerFactory) SchedulerOption {
	return func(s *Scheduler) {
		if factory != nil {
			s.tickers = factory
		}
	}
}

// WithResultHook registers a callback invoked with the outcome of every
// attempted save. The save modal subscribes through it.
func WithResultHook(hook func(error)) SchedulerOption {
	return func(s *Scheduler) {
		if hook != nil {
			s.onResult = hook
		}
	}
}

// NewScheduler constructs a scheduler. interval falls back to 10 seconds
// when non-positive.
func NewScheduler(interval time.Duration, dirty DirtyFunc, save SaveFunc, opts ...SchedulerOption) (*Scheduler, error) {
	if save == nil {
		return nil, ErrSaveFuncRequired
	}
	if dirty == nil {
		return nil, ErrDirtyFuncRequired
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s := &Scheduler{
		interval: interval,
		dirty:    dirty,
		save:     save,
		logger:   logging.NoOp(),
		tickers:  newRealTicker,
		onResult: func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start launches the tick loop. The loop exits when Stop is called or the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	ticker := s.tickers(s.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C():
				go s.Tick(ctx)
			}
		}
	}()
	return nil
}

// Stop halts the loop and waits for it to exit. A save already in flight is
// allowed to finish. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}

// Tick performs one autosave cycle synchronously: skip when clean, drop when
// a save is already in flight, otherwise save and report the outcome.
// Returns true when a save was attempted.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.dirty() {
		return false
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("autosave.tick.dropped", "reason", "save in flight")
		return false
	}
	defer s.inFlight.Store(false)

	err := s.save(ctx)
	if err != nil {
		s.logger.Warn("autosave.failed", "error", err)
	} else {
		s.logger.Debug("autosave.completed")
	}
	s.onResult(err)
	return true
}

// Saving reports whether a save is currently in flight.
func (s *Scheduler) Saving() bool {
	return s.inFlight.Load()
}
