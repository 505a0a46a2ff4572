package guard

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

var (
	ErrDirtyFuncRequired = errors.New("guard: dirty check is required")
	ErrNotRegistered     = errors.New("guard: not registered")
)

// Decision is the author's answer to the unsaved-changes prompt.
type Decision string

const (
	// DecisionCancel keeps the author on the editor with state intact.
	DecisionCancel Decision = "cancel"
	// DecisionDiscard abandons unsaved changes and proceeds.
	DecisionDiscard Decision = "discard"
)

// Confirmer presents the unsaved-changes prompt. Hosts implement it over
// whatever dialog surface they have.
type Confirmer interface {
	Confirm(ctx context.Context) (Decision, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context) (Decision, error)

func (f ConfirmerFunc) Confirm(ctx context.Context) (Decision, error) { return f(ctx) }

// Guard protects in-progress edits from accidental navigation. While
// registered it answers two questions: whether an unconditional exit (window
// close, hard navigation) should warn, and whether an in-app navigation may
// proceed, prompting when the state is dirty.
type Guard struct {
	mu         sync.Mutex
	dirty      func() bool
	confirmer  Confirmer
	registered bool
	logger     interfaces.Logger
}

// Option customises a Guard.
type Option func(*Guard)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New constructs a guard over the given dirty check. The confirmer may be
// nil, in which case in-app navigations away from dirty state are refused.
func New(dirty func() bool, confirmer Confirmer, opts ...Option) (*Guard, error) {
	if dirty == nil {
		return nil, ErrDirtyFuncRequired
	}
	g := &Guard{
		dirty:     dirty,
		confirmer: confirmer,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Register arms the guard. Idempotent.
func (g *Guard) Register() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registered = true
}

// Deregister disarms the guard so teardown never leaves a stale hook
// blocking navigation elsewhere. Idempotent.
func (g *Guard) Deregister() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registered = false
}

// Registered reports whether the guard is armed.
func (g *Guard) Registered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registered
}

// ShouldWarnOnExit reports whether an unconditional exit should surface the
// host's native warning. Only dirty state while registered warns.
func (g *Guard) ShouldWarnOnExit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registered && g.dirty()
}

// ConfirmLeave decides an in-app navigation. Clean or disarmed state
// proceeds immediately; dirty state asks the confirmer. Cancel keeps the
// author in place with editing state untouched, discard proceeds.
func (g *Guard) ConfirmLeave(ctx context.Context) (bool, error) {
	g.mu.Lock()
	registered := g.registered
	confirmer := g.confirmer
	g.mu.Unlock()

	if !registered || !g.dirty() {
		return true, nil
	}
	if confirmer == nil {
		return false, nil
	}
	decision, err := confirmer.Confirm(ctx)
	if err != nil {
		return false, err
	}
	if decision == DecisionDiscard {
		g.logger.Debug("guard.leave.discarded")
		return true, nil
	}
	return false, nil
}
