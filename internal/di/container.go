package di

import (
	"context"
	"time"

	"github.com/goliatone/go-layout-editor/internal/api"
	"github.com/goliatone/go-layout-editor/internal/autosave"
	"github.com/goliatone/go-layout-editor/internal/builder"
	"github.com/goliatone/go-layout-editor/internal/commands"
	"github.com/goliatone/go-layout-editor/internal/commands/editorcmd"
	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/drafts"
	"github.com/goliatone/go-layout-editor/internal/editor"
	"github.com/goliatone/go-layout-editor/internal/form"
	"github.com/goliatone/go-layout-editor/internal/guard"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/internal/logging/gologger"
	"github.com/goliatone/go-layout-editor/internal/media"
	"github.com/goliatone/go-layout-editor/internal/richtext"
	"github.com/goliatone/go-layout-editor/internal/runtimeconfig"
	"github.com/goliatone/go-layout-editor/internal/samples"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

// Container wires the editor runtime from configuration. Hosts normally go
// through the root package facade rather than using it directly.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	client         *api.Client
	modal          *autosave.Modal
	saver          *api.Saver
	componentSave  *commands.Handler[editorcmd.SaveComponentCommand]
	draftService   *drafts.Service
	richText       *richtext.Renderer
	clock          func() time.Time
}

// commandBackend routes saver persistence through the editor save commands so
// every write picks up message validation and error categorisation.
type commandBackend struct {
	layouts   *commands.Handler[editorcmd.SaveLayoutCommand]
	instances *commands.Handler[editorcmd.SaveInstanceCommand]
}

func (b *commandBackend) UpdateLayout(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	if err := b.layouts.Execute(ctx, editorcmd.SaveLayoutCommand{Layout: layout}); err != nil {
		return nil, err
	}
	return layout, nil
}

func (b *commandBackend) UpdateInstance(ctx context.Context, instance *domain.Instance) (*domain.Instance, error) {
	if err := b.instances.Execute(ctx, editorcmd.SaveInstanceCommand{Instance: instance}); err != nil {
		return nil, err
	}
	return instance, nil
}

// Option overrides a container dependency, mainly for tests and embedders.
type Option func(*Container)

// WithLoggerProvider replaces the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithAPIClient replaces the backend client.
func WithAPIClient(client *api.Client) Option {
	return func(c *Container) {
		if client != nil {
			c.client = client
		}
	}
}

// WithDraftService replaces the draft cache service.
func WithDraftService(service *drafts.Service) Option {
	return func(c *Container) {
		if service != nil {
			c.draftService = service
		}
	}
}

// WithClock injects the time source shared by sessions and drafts.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates the configuration and builds the runtime graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		cfg:   cfg,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil && cfg.Features.Logger {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.client == nil {
		c.client = api.NewClient(cfg.API.BaseURL,
			api.WithTimeout(cfg.API.Timeout),
			api.WithLogger(logging.APILogger(c.loggerProvider)),
		)
	}

	commandLogger := logging.ModuleLogger(c.loggerProvider, "commands")
	backend := &commandBackend{
		layouts: editorcmd.NewSaveLayoutHandler(c.client,
			commands.WithLogger[editorcmd.SaveLayoutCommand](commandLogger),
		),
		instances: editorcmd.NewSaveInstanceHandler(c.client,
			commands.WithLogger[editorcmd.SaveInstanceCommand](commandLogger),
		),
	}
	c.componentSave = editorcmd.NewSaveComponentHandler(c.client,
		commands.WithLogger[editorcmd.SaveComponentCommand](commandLogger),
	)

	c.modal = autosave.NewModal(cfg.Editor.SuccessDismissAfter)
	c.saver = api.NewSaver(backend,
		api.WithSaverLogger(logging.APILogger(c.loggerProvider)),
		api.WithStateHook(func(state api.SaveState, err error) {
			switch state {
			case api.SaveSaving:
				c.modal.Begin()
			case api.SaveSuccess:
				c.modal.Resolve(nil)
			case api.SaveError:
				c.modal.Resolve(err)
			}
		}),
	)

	if cfg.Features.Drafts && c.draftService == nil {
		db, err := drafts.OpenSQLite(cfg.Drafts.Path)
		if err != nil {
			return nil, err
		}
		if err := drafts.EnsureSchema(context.Background(), db); err != nil {
			return nil, err
		}
		service, err := drafts.NewService(drafts.NewBunDraftRepository(db),
			drafts.WithTTL(cfg.Drafts.CacheTTL),
			drafts.WithClock(c.clock),
			drafts.WithLogger(logging.DraftsLogger(c.loggerProvider)),
		)
		if err != nil {
			return nil, err
		}
		c.draftService = service
	}

	if cfg.Features.RichText {
		c.richText = richtext.NewRenderer(richtext.Options{})
	}

	return c, nil
}

// Config returns the validated runtime configuration.
func (c *Container) Config() runtimeconfig.Config { return c.cfg }

// LoggerProvider returns the configured logger provider, nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// APIClient returns the backend persistence adapter.
func (c *Container) APIClient() *api.Client { return c.client }

// Saver returns the shared save coordinator.
func (c *Container) Saver() *api.Saver { return c.saver }

// SaveModal returns the save feedback modal bound to the saver.
func (c *Container) SaveModal() *autosave.Modal { return c.modal }

// Drafts returns the draft cache service, nil when the feature is off.
func (c *Container) Drafts() *drafts.Service { return c.draftService }

// RichText returns the rich text renderer, nil when the feature is off.
func (c *Container) RichText() *richtext.Renderer { return c.richText }

// LoadLayout fetches a layout, substituting seed data when the backend is
// unreachable and fallback samples are enabled.
func (c *Container) LoadLayout(ctx context.Context, layoutID string) (*domain.Layout, error) {
	layout, err := c.client.GetLayout(ctx, layoutID)
	if err != nil {
		if c.cfg.Editor.EnableFallbackSamples {
			logging.ModuleLogger(c.loggerProvider, "editor").Warn("editor.layout.fallback", "error", err)
			return samples.Layout(), nil
		}
		return nil, err
	}
	return c.HydrateLayout(ctx, layout)
}

// HydrateLayout fills in component schemas missing from legacy layout
// payloads by refetching the component catalogue before the session renders.
func (c *Container) HydrateLayout(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	if layout == nil {
		return nil, nil
	}
	missing := false
	for _, component := range layout.Components {
		if !component.HasSchema() {
			missing = true
			break
		}
	}
	if !missing {
		return layout, nil
	}

	catalogue, err := c.client.ListComponents(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Component, len(catalogue))
	for _, component := range catalogue {
		byID[component.ID] = component
	}
	for i := range layout.Components {
		if layout.Components[i].HasSchema() {
			continue
		}
		full, ok := byID[layout.Components[i].ID]
		if !ok || !full.HasSchema() {
			logging.ModuleLogger(c.loggerProvider, "editor").Warn("editor.layout.schema_missing",
				"component", layout.Components[i].ID)
			continue
		}
		layout.Components[i].Fields = schema.CloneFields(full.Fields)
	}
	return layout, nil
}

// SaveComponent persists an authored component through the component save
// command, creating it when it has no id yet.
func (c *Container) SaveComponent(ctx context.Context, component domain.Component) error {
	return c.componentSave.Execute(ctx, editorcmd.SaveComponentCommand{Component: component})
}

// NewSession opens an editing session over a layout and optional instance.
func (c *Container) NewSession(layout *domain.Layout, instance *domain.Instance) (*editor.Session, error) {
	return editor.NewSession(layout, instance,
		editor.WithClock(c.clock),
		editor.WithLogger(logging.SessionLogger(c.loggerProvider)),
	)
}

// NewRenderer builds the form renderer bound to a session's accordion and
// broken-asset state.
func (c *Container) NewRenderer(session *editor.Session) *form.Renderer {
	return form.NewRenderer(
		form.WithBaseURL(c.cfg.API.BaseURL),
		form.WithActivePanels(session.ActivePanel),
		form.WithBrokenAssets(session.AssetBroken),
	)
}

// NewAutosave builds the autosave scheduler for a session, feeding outcomes
// into the shared save modal through the saver's state hook.
func (c *Container) NewAutosave(session *editor.Session) (*autosave.Scheduler, error) {
	return autosave.NewScheduler(
		c.cfg.Editor.AutosaveInterval,
		session.Dirty,
		func(ctx context.Context) error {
			return c.saver.Save(ctx, session)
		},
		autosave.WithLogger(logging.AutosaveLogger(c.loggerProvider)),
	)
}

// NewGuard builds the navigation guard for a session.
func (c *Container) NewGuard(session *editor.Session, confirmer guard.Confirmer) (*guard.Guard, error) {
	return guard.New(session.Dirty, confirmer,
		guard.WithLogger(logging.SessionLogger(c.loggerProvider)),
	)
}

// NewPicker builds a media picker over the backend browse endpoints.
func (c *Container) NewPicker() *media.Picker {
	return media.NewPicker(c.client,
		media.WithLogger(logging.MediaLogger(c.loggerProvider)),
	)
}

// NewBuilder starts a component builder draft.
func (c *Container) NewBuilder(opts ...builder.Option) *builder.Builder {
	opts = append([]builder.Option{
		builder.WithLogger(logging.BuilderLogger(c.loggerProvider)),
	}, opts...)
	return builder.New(opts...)
}
