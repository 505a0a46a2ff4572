package form

import (
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
)

// Input models an individual control inside a rendered component form.
// Hosts bind the control to Path and route changes back through the editor
// session. Struct fields are annotated so renderers can serialise the model
// directly when needed.
type Input struct {
	Path        values.Path     `json:"-"`
	PathKey     string          `json:"path"`
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Kind        schema.Kind     `json:"kind"`
	Value       any             `json:"value"`
	Required    bool            `json:"required"`
	Placeholder string          `json:"placeholder,omitempty"`
	MaxLength   int             `json:"maxLength,omitempty"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
	Step        *float64        `json:"step,omitempty"`
	Options     []schema.Option `json:"options,omitempty"`
	Toolbar     []string        `json:"toolbarGroups,omitempty"`

	// Image controls.
	Thumbnail string `json:"thumbnail,omitempty"`
	Broken    bool   `json:"broken,omitempty"`

	// Array controls: one panel per element, single-open accordion.
	Panels []Panel `json:"panels,omitempty"`
}

// Panel is one accordion entry of an array input.
type Panel struct {
	Key    string  `json:"key"`
	Index  int     `json:"index"`
	Title  string  `json:"title"`
	Open   bool    `json:"open"`
	Inputs []Input `json:"inputs"`
}

// Form is the rendered model for one selected component.
type Form struct {
	ComponentID   string  `json:"componentId"`
	ComponentName string  `json:"componentName"`
	Inputs        []Input `json:"inputs"`
}
