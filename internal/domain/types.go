package domain

import (
	"time"

	"github.com/goliatone/go-layout-editor/internal/schema"
)

// Component is a reusable, named schema of fields plus the default values
// (`data`) it carries inside a layout placement.
type Component struct {
	ID        string             `json:"_id,omitempty"`
	Name      string             `json:"name"`
	FieldType string             `json:"fieldType"`
	Fields    []schema.Field     `json:"fields"`
	Data      schema.FieldValues `json:"data,omitempty"`
	IsActive  bool               `json:"isActive"`
}

// HasSchema reports whether the component carries its field definitions.
// Layout payloads from older backends embed components without them.
func (c Component) HasSchema() bool {
	return len(c.Fields) > 0
}

// Layout is an ordered composition of components bound to a page. It
// exclusively owns its embedded placements and their default data.
type Layout struct {
	ID         string      `json:"_id"`
	Name       string      `json:"name"`
	Page       string      `json:"page"`
	Components []Component `json:"components"`
	CreatedAt  time.Time   `json:"createdAt"`
	IsActive   bool        `json:"isActive"`
}

// Component returns the placement with the given id.
func (l *Layout) Component(id string) (Component, bool) {
	for _, component := range l.Components {
		if component.ID == id {
			return component, true
		}
	}
	return Component{}, false
}

// Schemas returns the componentID → field-list index used by tree mutators.
func (l *Layout) Schemas() map[string][]schema.Field {
	out := make(map[string][]schema.Field, len(l.Components))
	for _, component := range l.Components {
		out[component.ID] = component.Fields
	}
	return out
}

// Data returns the componentID → default-values index.
func (l *Layout) Data() map[string]schema.FieldValues {
	out := make(map[string]schema.FieldValues, len(l.Components))
	for _, component := range l.Components {
		out[component.ID] = component.Data
	}
	return out
}

// Instance is a named override of a layout's content. It weakly references
// its layout and page: lookup-only, never lifetime-controlling.
type Instance struct {
	ID        string                        `json:"_id"`
	LayoutID  string                        `json:"layoutId"`
	PageID    string                        `json:"pageId"`
	Title     string                        `json:"title"`
	Slug      string                        `json:"slug,omitempty"`
	Status    Status                        `json:"status"`
	Content   map[string]schema.FieldValues `json:"content"`
	CreatedAt time.Time                     `json:"createdAt"`
	UpdatedAt time.Time                     `json:"updatedAt"`
}

// MediaFolder is one folder of the media library browse tree.
type MediaFolder struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// MediaType classifies a media asset for picker filtering.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
	MediaOther    MediaType = "other"
)

// MediaAsset is one selectable file in the media library.
type MediaAsset struct {
	ID       string    `json:"_id"`
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Type     MediaType `json:"type"`
	Size     int64     `json:"size"`
	FolderID string    `json:"folder,omitempty"`
}
