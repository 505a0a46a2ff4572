package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/form"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

var (
	ErrLayoutRequired      = errors.New("editor: layout is required")
	ErrComponentNotFound   = errors.New("editor: component not found in layout")
	ErrNoPendingImageField = errors.New("editor: no image field awaiting selection")
)

// Session owns the editing state for one layout and optional instance: the
// value tree, the selected component, accordion state, media binding, and
// the dirty flag. The tree is a single mutable object owned by the session;
// all writes go through the exposed operations.
type Session struct {
	mu sync.Mutex

	layout   *domain.Layout
	instance *domain.Instance

	tree     values.Tree
	mutator  *values.Mutator
	warnings *values.Recorder

	selected string
	active   map[string]string
	broken   map[string]bool

	pendingImage    values.Path
	hasPendingImage bool

	dirty       bool
	lastSavedAt time.Time

	now    func() time.Time
	logger interfaces.Logger
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithClock injects the time source.
func WithClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession materialises the editing state. The value tree merges, per
// component and in order of preference: instance overrides, the layout's
// default data, schema defaults.
func NewSession(layout *domain.Layout, instance *domain.Instance, opts ...SessionOption) (*Session, error) {
	if layout == nil {
		return nil, ErrLayoutRequired
	}
	s := &Session{
		layout:   layout,
		instance: instance,
		warnings: values.NewRecorder(),
		active:   make(map[string]string),
		broken:   make(map[string]bool),
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}

	schemas := layout.Schemas()
	s.mutator = values.NewMutator(schemas, values.WithWarningSink(s.warnings))

	var overrides values.Tree
	if instance != nil && instance.Content != nil {
		overrides = values.Tree(instance.Content)
	}
	s.tree = values.InitializeTree(schemas, layout.Data(), overrides)

	if len(layout.Components) > 0 {
		s.selected = layout.Components[0].ID
	}
	return s, nil
}

// Layout returns the layout under edit.
func (s *Session) Layout() *domain.Layout { return s.layout }

// Instance returns the bound instance, nil when editing layout defaults.
func (s *Session) Instance() *domain.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instance
}

// BindInstance switches the session to an instance, re-materialising the
// tree with its overrides. A nil instance returns to layout-default editing.
func (s *Session) BindInstance(instance *domain.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instance = instance
	var overrides values.Tree
	if instance != nil && instance.Content != nil {
		overrides = values.Tree(instance.Content)
	}
	s.tree = values.InitializeTree(s.layout.Schemas(), s.layout.Data(), overrides)
	s.active = make(map[string]string)
	s.dirty = false
}

// SelectComponent changes the component whose form is rendered.
func (s *Session) SelectComponent(componentID string) error {
	if _, ok := s.layout.Component(componentID); !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, componentID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = componentID
	return nil
}

// SelectedComponent returns the component currently under edit.
func (s *Session) SelectedComponent() (domain.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Component(s.selected)
}

// Form renders the selected component through the supplied renderer.
func (s *Session) Form(renderer *form.Renderer) form.Form {
	s.mu.Lock()
	component, ok := s.layout.Component(s.selected)
	vals := s.tree[s.selected]
	s.mu.Unlock()
	if !ok {
		return form.Form{}
	}
	return renderer.Render(component, vals)
}

// Tree returns the session-owned value tree. Callers must treat it as
// read-only; mutations go through the session operations.
func (s *Session) Tree() values.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Warnings exposes recorded soft failures for diagnostics and tests.
func (s *Session) Warnings() []values.Warning {
	return s.warnings.All()
}

// SetValue writes a scalar at path and marks the tree dirty.
func (s *Session) SetValue(path values.Path, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutator.SetAt(s.tree, path, value)
	s.markDirtyLocked()
}

// GetArray returns the array elements at path, empty when absent.
func (s *Session) GetArray(path values.Path) []schema.FieldValues {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutator.GetArray(s.tree, path)
}

// AddArrayItem appends an element built from the array's item structure and
// opens only the new panel. Returns the new element's index.
func (s *Session) AddArrayItem(arrayPath values.Path) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := len(s.mutator.GetArray(s.tree, arrayPath))
	s.mutator.InsertArrayItem(s.tree, arrayPath, index, nil)
	after := s.mutator.GetArray(s.tree, arrayPath)
	if len(after) == index {
		// insertion was refused; leave accordion state untouched
		return -1
	}
	s.active[arrayPath.String()] = fmt.Sprintf("%s.%d", arrayPath.String(), index)
	s.markDirtyLocked()
	return index
}

// RemoveArrayItem removes the element and collapses the panel set.
func (s *Session) RemoveArrayItem(arrayPath values.Path, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.mutator.GetArray(s.tree, arrayPath))
	s.mutator.RemoveArrayItem(s.tree, arrayPath, index)
	if len(s.mutator.GetArray(s.tree, arrayPath)) == before {
		return
	}
	delete(s.active, arrayPath.String())
	s.markDirtyLocked()
}

// TogglePanel opens the given panel, collapsing any sibling; toggling the
// open panel collapses it. One active key per array field.
func (s *Session) TogglePanel(arrayPath values.Path, panelKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := arrayPath.String()
	if s.active[key] == panelKey {
		delete(s.active, key)
		return
	}
	s.active[key] = panelKey
}

// ActivePanel reports the open panel key for an array path.
func (s *Session) ActivePanel(arrayPath string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[arrayPath]
}

// BeginImageSelection records the image field the picker was opened for.
func (s *Session) BeginImageSelection(path values.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingImage = path
	s.hasPendingImage = true
}

// PendingImagePath returns the recorded image field path, if any.
func (s *Session) PendingImagePath() (values.Path, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingImage, s.hasPendingImage
}

// BindMedia writes the selected asset's URL as an image envelope at the
// recorded field path, which may be nested arbitrarily deep. A single
// idempotent write path covers direct fields and array sub-fields alike.
func (s *Session) BindMedia(asset domain.MediaAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPendingImage {
		return ErrNoPendingImageField
	}
	s.mutator.SetAt(s.tree, s.pendingImage, asset.URL)
	s.hasPendingImage = false
	s.markDirtyLocked()
	s.logger.Debug("editor.media.bound", "path", s.pendingImage.String(), "url", asset.URL)
	return nil
}

// RemoveImage clears an image field, writing the empty image envelope.
func (s *Session) RemoveImage(path values.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutator.SetAt(s.tree, path, "")
	s.markDirtyLocked()
}

// MarkAssetBroken records that an image URL failed to load; the renderer
// substitutes a placeholder while the stored value stays unchanged.
func (s *Session) MarkAssetBroken(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broken[url] = true
}

// AssetBroken reports a previously recorded load failure.
func (s *Session) AssetBroken(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broken[url]
}

// Dirty reports whether the tree diverges from the last successful save.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ClearDirty records a successful save.
func (s *Session) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
	s.lastSavedAt = s.now()
}

// LastSavedAt returns the time of the last successful save.
func (s *Session) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt
}

func (s *Session) markDirtyLocked() {
	s.dirty = true
}
