package layouteditor

import (
	"context"

	"github.com/goliatone/go-layout-editor/internal/api"
	"github.com/goliatone/go-layout-editor/internal/autosave"
	"github.com/goliatone/go-layout-editor/internal/builder"
	"github.com/goliatone/go-layout-editor/internal/di"
	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/drafts"
	"github.com/goliatone/go-layout-editor/internal/editor"
	"github.com/goliatone/go-layout-editor/internal/form"
	"github.com/goliatone/go-layout-editor/internal/guard"
	"github.com/goliatone/go-layout-editor/internal/media"
	"github.com/goliatone/go-layout-editor/internal/richtext"
)

// Session exports the editing session for consumers of the layouteditor package.
type Session = editor.Session

// Builder exports the component builder.
type Builder = builder.Builder

// Client exports the backend persistence adapter.
type Client = api.Client

// SaveModal exports the save feedback dialog.
type SaveModal = autosave.Modal

// Autosave exports the autosave scheduler.
type Autosave = autosave.Scheduler

// Guard exports the navigation guard.
type Guard = guard.Guard

// Confirmer exports the unsaved-changes prompt contract.
type Confirmer = guard.Confirmer

// Picker exports the media picker.
type Picker = media.Picker

// Form exports the rendered form model.
type Form = form.Form

// DraftService exports the advisory draft cache.
type DraftService = drafts.Service

// RichTextRenderer exports the rich text preview renderer.
type RichTextRenderer = richtext.Renderer

// Layout, Component and Instance export the wire entities.
type (
	Layout    = domain.Layout
	Component = domain.Component
	Instance  = domain.Instance
)

// Module is the top level layout editor runtime facade.
type Module struct {
	container *di.Container
}

// New constructs an editor module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Client returns the backend persistence adapter.
func (m *Module) Client() *Client {
	return m.container.APIClient()
}

// SaveModal returns the shared save feedback dialog.
func (m *Module) SaveModal() *SaveModal {
	return m.container.SaveModal()
}

// Drafts returns the draft cache service, nil when the feature is disabled.
func (m *Module) Drafts() *DraftService {
	return m.container.Drafts()
}

// RichText returns the rich text renderer, nil when the feature is disabled.
func (m *Module) RichText() *RichTextRenderer {
	return m.container.RichText()
}

// NewBuilder starts a component authoring draft.
func (m *Module) NewBuilder(opts ...builder.Option) *Builder {
	return m.container.NewBuilder(opts...)
}

// NewPicker opens a media picker over the backend browse endpoints.
func (m *Module) NewPicker() *Picker {
	return m.container.NewPicker()
}

// SaveComponent persists an authored component through the component save
// command, creating it when it has no id yet.
func (m *Module) SaveComponent(ctx context.Context, component Component) error {
	return m.container.SaveComponent(ctx, component)
}

// Editor bundles everything one editing surface needs: the session, its
// renderer, the autosave loop and the navigation guard. Teardown stops the
// loop and disarms the guard.
type Editor struct {
	session  *editor.Session
	renderer *form.Renderer
	autosave *autosave.Scheduler
	guard    *guard.Guard
	saver    *api.Saver
}

// Open loads the layout (falling back to seed data when configured), binds
// the optional instance, and arms autosave plus the navigation guard.
func (m *Module) Open(ctx context.Context, layoutID string, instance *Instance, confirmer Confirmer) (*Editor, error) {
	layout, err := m.container.LoadLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	return m.OpenLayout(ctx, layout, instance, confirmer)
}

// OpenLayout is Open for hosts that already hold the layout. Components
// missing their schema fields are refetched before the session renders.
func (m *Module) OpenLayout(ctx context.Context, layout *Layout, instance *Instance, confirmer Confirmer) (*Editor, error) {
	layout, err := m.container.HydrateLayout(ctx, layout)
	if err != nil {
		return nil, err
	}
	session, err := m.container.NewSession(layout, instance)
	if err != nil {
		return nil, err
	}
	scheduler, err := m.container.NewAutosave(session)
	if err != nil {
		return nil, err
	}
	exitGuard, err := m.container.NewGuard(session, confirmer)
	if err != nil {
		return nil, err
	}
	if err := scheduler.Start(ctx); err != nil {
		return nil, err
	}
	exitGuard.Register()

	return &Editor{
		session:  session,
		renderer: m.container.NewRenderer(session),
		autosave: scheduler,
		guard:    exitGuard,
		saver:    m.container.Saver(),
	}, nil
}

// Session returns the editing session.
func (e *Editor) Session() *Session { return e.session }

// Guard returns the navigation guard.
func (e *Editor) Guard() *Guard { return e.guard }

// Autosave returns the autosave scheduler.
func (e *Editor) Autosave() *Autosave { return e.autosave }

// Form renders the selected component.
func (e *Editor) Form() Form {
	return e.session.Form(e.renderer)
}

// Save persists the current tree through the manual save path.
func (e *Editor) Save(ctx context.Context) error {
	return e.saver.Save(ctx, e.session)
}

// Teardown stops autosave and disarms the guard. An in-flight save finishes
// but its outcome no longer affects the torn-down view.
func (e *Editor) Teardown() {
	e.autosave.Stop()
	e.guard.Deregister()
}
