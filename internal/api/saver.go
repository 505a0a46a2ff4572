package api

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/internal/values"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

// SaveState tracks the persistence state machine. Saving resolves only on a
// server response; there is no automatic retry.
type SaveState string

const (
	SaveIdle    SaveState = "idle"
	SaveSaving  SaveState = "saving"
	SaveSuccess SaveState = "success"
	SaveError   SaveState = "error"
)

// ErrSaveInFlight reports that a save was requested while one is running.
var ErrSaveInFlight = errors.New("api: save already in flight")

// Source is the slice of editing state the saver persists. The editor
// session satisfies it.
type Source interface {
	Layout() *domain.Layout
	Instance() *domain.Instance
	Tree() values.Tree
	ClearDirty()
}

// Persister is the backend surface the saver needs; *Client implements it.
type Persister interface {
	UpdateLayout(ctx context.Context, layout *domain.Layout) (*domain.Layout, error)
	UpdateInstance(ctx context.Context, instance *domain.Instance) (*domain.Instance, error)
}

// Saver drives one save cycle: it picks the instance endpoint when an
// instance is bound and the layout endpoint otherwise, then walks the state
// machine idle, saving, success or error, back to idle.
type Saver struct {
	persister Persister
	logger    interfaces.Logger
	onState   func(SaveState, error)

	mu    sync.Mutex
	state SaveState
}

// SaverOption customises a Saver.
type SaverOption func(*Saver)

// WithSaverLogger attaches a module logger.
func WithSaverLogger(logger interfaces.Logger) SaverOption {
	return func(s *Saver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStateHook registers a transition callback; the save modal subscribes
// through it. The error argument is non-nil only for SaveError.
func WithStateHook(hook func(SaveState, error)) SaverOption {
	return func(s *Saver) {
		if hook != nil {
			s.onState = hook
		}
	}
}

// NewSaver constructs a saver over the given persister.
func NewSaver(persister Persister, opts ...SaverOption) *Saver {
	s := &Saver{
		persister: persister,
		logger:    logging.NoOp(),
		onState:   func(SaveState, error) {},
		state:     SaveIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current machine state.
func (s *Saver) State() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Save persists the source's tree. On success the source's dirty flag is
// cleared; on failure it stays set so the next tick retries.
func (s *Saver) Save(ctx context.Context, source Source) error {
	s.mu.Lock()
	if s.state == SaveSaving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.state = SaveSaving
	s.mu.Unlock()
	s.onState(SaveSaving, nil)

	err := s.persist(ctx, source)

	s.mu.Lock()
	if err != nil {
		s.state = SaveError
	} else {
		s.state = SaveSuccess
	}
	s.mu.Unlock()
	s.onState(s.State(), err)

	s.mu.Lock()
	s.state = SaveIdle
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("api.save.failed", "error", err)
		return err
	}
	source.ClearDirty()
	return nil
}

func (s *Saver) persist(ctx context.Context, source Source) error {
	layout := source.Layout()
	if layout == nil {
		return errors.New("api: no layout to save")
	}
	tree := source.Tree()

	if instance := source.Instance(); instance != nil && instance.ID != "" {
		payload := *instance
		payload.Content = InstanceContent(layout, tree)
		_, err := s.persister.UpdateInstance(ctx, &payload)
		return err
	}
	_, err := s.persister.UpdateLayout(ctx, LayoutPayload(layout, tree))
	return err
}
