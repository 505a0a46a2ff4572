package autosave

import (
	"sync"
	"time"
)

// ModalState tracks the save feedback dialog.
type ModalState string

const (
	ModalIdle    ModalState = "idle"
	ModalSaving  ModalState = "saving"
	ModalSuccess ModalState = "success"
	ModalError   ModalState = "error"
)

// ScheduleFunc runs fn after d and returns a cancel function. The default is
// backed by time.AfterFunc; tests substitute an immediate or manual variant.
type ScheduleFunc func(d time.Duration, fn func()) (cancel func())

// Modal models the blocking save dialog: it enters saving when a save
// starts, then success or error. Success dismisses itself after a delay;
// errors stay until acknowledged.
type Modal struct {
	mu       sync.Mutex
	state    ModalState
	message  string
	dismiss  time.Duration
	schedule ScheduleFunc
	cancel   func()
}

// ModalOption customises a Modal.
type ModalOption func(*Modal)

// WithScheduler injects the dismiss timer implementation.
func WithScheduler(schedule ScheduleFunc) ModalOption {
	return func(m *Modal) {
		if schedule != nil {
			m.schedule = schedule
		}
	}
}

// NewModal constructs a modal that auto-dismisses success after dismissAfter.
// Non-positive values fall back to 4 seconds.
func NewModal(dismissAfter time.Duration, opts ...ModalOption) *Modal {
	if dismissAfter <= 0 {
		dismissAfter = 4 * time.Second
	}
	m := &Modal{
		state:   ModalIdle,
		dismiss: dismissAfter,
		schedule: func(d time.Duration, fn func()) func() {
			timer := time.AfterFunc(d, fn)
			return func() { timer.Stop() }
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin moves the modal into the saving state.
func (m *Modal) Begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPendingLocked()
	m.state = ModalSaving
	m.message = ""
}

// Resolve applies a save outcome: nil enters success and schedules the
// auto-dismiss, an error enters the error state and waits for Dismiss.
func (m *Modal) Resolve(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPendingLocked()
	if err != nil {
		m.state = ModalError
		m.message = err.Error()
		return
	}
	m.state = ModalSuccess
	m.message = ""
	m.cancel = m.schedule(m.dismiss, m.Dismiss)
}

// Dismiss returns the modal to idle, used by the auto-dismiss timer and by
// the user acknowledging an error.
func (m *Modal) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPendingLocked()
	m.state = ModalIdle
	m.message = ""
}

// State returns the current modal state.
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Message returns the error text shown in the error state.
func (m *Modal) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

func (m *Modal) cancelPendingLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
