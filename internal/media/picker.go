package media

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

var (
	// ErrBrowserUnavailable reports that no media browse backend was configured.
	ErrBrowserUnavailable = errors.New("media: browser unavailable")
	// ErrNothingSelected indicates Confirm was called without a selection.
	ErrNothingSelected = errors.New("media: no asset selected")
)

// Browser lists the media library contents. The persistence adapter
// implements it against the backend browse endpoints.
type Browser interface {
	ListFolders(ctx context.Context) ([]domain.MediaFolder, error)
	ListFiles(ctx context.Context, folderID string) ([]domain.MediaAsset, error)
}

// View selects how the picker lists files.
type View string

const (
	ViewFlat     View = "flat"
	ViewByFolder View = "byFolder"
)

// Picker drives the media selection modal: folder and flat views,
// client-side name search, and single selection.
type Picker struct {
	browser Browser
	logger  interfaces.Logger

	view     View
	folderID string
	search   string

	folders  []domain.MediaFolder
	files    []domain.MediaAsset
	selected *domain.MediaAsset
}

// PickerOption customises a Picker.
type PickerOption func(*Picker)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) PickerOption {
	return func(p *Picker) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPicker constructs a picker over the supplied browser.
func NewPicker(browser Browser, opts ...PickerOption) *Picker {
	p := &Picker{
		browser: browser,
		logger:  logging.NoOp(),
		view:    ViewFlat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open loads the library listing and resets selection state.
func (p *Picker) Open(ctx context.Context) error {
	if p.browser == nil {
		return ErrBrowserUnavailable
	}
	folders, err := p.browser.ListFolders(ctx)
	if err != nil {
		return err
	}
	files, err := p.browser.ListFiles(ctx, "")
	if err != nil {
		return err
	}
	p.folders = folders
	p.files = files
	p.view = ViewFlat
	p.folderID = ""
	p.search = ""
	p.selected = nil
	return nil
}

// Folders returns the loaded folder list.
func (p *Picker) Folders() []domain.MediaFolder {
	return append([]domain.MediaFolder(nil), p.folders...)
}

// EnterFolder switches to the by-folder view and loads that folder's files.
func (p *Picker) EnterFolder(ctx context.Context, folderID string) error {
	if p.browser == nil {
		return ErrBrowserUnavailable
	}
	files, err := p.browser.ListFiles(ctx, folderID)
	if err != nil {
		return err
	}
	p.view = ViewByFolder
	p.folderID = folderID
	p.files = files
	p.selected = nil
	return nil
}

// ShowAll returns to the flat view across every folder.
func (p *Picker) ShowAll(ctx context.Context) error {
	if p.browser == nil {
		return ErrBrowserUnavailable
	}
	files, err := p.browser.ListFiles(ctx, "")
	if err != nil {
		return err
	}
	p.view = ViewFlat
	p.folderID = ""
	p.files = files
	return nil
}

// Search filters the visible files by name, client-side.
func (p *Picker) Search(query string) {
	p.search = strings.ToLower(strings.TrimSpace(query))
}

// Files returns the currently visible files after search filtering, sorted
// by name for a stable listing.
func (p *Picker) Files() []domain.MediaAsset {
	visible := make([]domain.MediaAsset, 0, len(p.files))
	for _, file := range p.files {
		if p.search != "" && !strings.Contains(strings.ToLower(file.Name), p.search) {
			continue
		}
		visible = append(visible, file)
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name < visible[j].Name })
	return visible
}

// Select marks a single asset as chosen, replacing any prior choice.
func (p *Picker) Select(asset domain.MediaAsset) {
	chosen := asset
	p.selected = &chosen
}

// Selected returns the current choice, if any.
func (p *Picker) Selected() (domain.MediaAsset, bool) {
	if p.selected == nil {
		return domain.MediaAsset{}, false
	}
	return *p.selected, true
}

// Confirm finalises the selection and resets the picker.
func (p *Picker) Confirm() (domain.MediaAsset, error) {
	if p.selected == nil {
		return domain.MediaAsset{}, ErrNothingSelected
	}
	chosen := *p.selected
	p.selected = nil
	p.logger.Debug("media.picker.confirmed", "asset", chosen.Name)
	return chosen, nil
}
