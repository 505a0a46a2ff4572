package form

import (
	"fmt"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/labels"
	"github.com/goliatone/go-layout-editor/internal/media"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
)

// ActiveLookup reports the open panel key for an array path, "" when all
// panels are collapsed. The editor session supplies it so the accordion
// single-open policy lives in one place.
type ActiveLookup func(arrayPath string) string

// BrokenLookup reports whether an image URL previously failed to load so the
// renderer can substitute the inline placeholder graphic.
type BrokenLookup func(url string) bool

// Renderer traverses a component schema and its value map, producing the
// declarative form model hosts render. Dispatch is keyed by field kind
// through the schema registry rather than ad-hoc branching.
type Renderer struct {
	baseURL string
	active  ActiveLookup
	broken  BrokenLookup
}

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithBaseURL configures image URL resolution.
func WithBaseURL(baseURL string) RendererOption {
	return func(r *Renderer) {
		r.baseURL = baseURL
	}
}

// WithActivePanels wires the accordion state lookup.
func WithActivePanels(lookup ActiveLookup) RendererOption {
	return func(r *Renderer) {
		if lookup != nil {
			r.active = lookup
		}
	}
}

// WithBrokenAssets wires the failed-asset lookup.
func WithBrokenAssets(lookup BrokenLookup) RendererOption {
	return func(r *Renderer) {
		if lookup != nil {
			r.broken = lookup
		}
	}
}

// NewRenderer constructs a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		active: func(string) string { return "" },
		broken: func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the form for one component, iterating fields in schema
// order.
func (r *Renderer) Render(component domain.Component, vals schema.FieldValues) Form {
	out := Form{
		ComponentID:   component.ID,
		ComponentName: component.Name,
		Inputs:        make([]Input, 0, len(component.Fields)),
	}
	base := values.P(values.Name(component.ID))
	for _, field := range component.Fields {
		out.Inputs = append(out.Inputs, r.renderField(field, vals[field.Name], base.Child(values.Name(field.Name))))
	}
	return out
}

func (r *Renderer) renderField(field schema.Field, envelope *schema.Envelope, path values.Path) Input {
	input := Input{
		Path:        path,
		PathKey:     path.String(),
		Name:        field.Name,
		Label:       fieldLabel(field, path),
		Description: field.Description,
		Kind:        field.EffectiveFieldType(),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		MaxLength:   field.MaxLength,
		Min:         field.Min,
		Max:         field.Max,
		Step:        field.Step,
		Toolbar:     field.ToolbarGroups,
	}
	if envelope == nil {
		envelope = schema.NewEnvelope(field)
	}

	switch field.Type {
	case schema.KindSelect:
		input.Options = field.Options
		input.Value = envelope.Value
	case schema.KindImage:
		url, _ := envelope.Value.(string)
		input.Value = url
		if url != "" {
			resolved := media.ResolveURL(r.baseURL, url)
			if r.broken(resolved) {
				input.Broken = true
			} else {
				input.Thumbnail = resolved
			}
		}
	case schema.KindArray, schema.KindObject:
		input.Value = nil
		input.Panels = r.renderPanels(field, envelope, path)
	default:
		input.Value = envelope.Value
	}
	return input
}

func (r *Renderer) renderPanels(field schema.Field, envelope *schema.Envelope, path values.Path) []Panel {
	items := envelope.List()
	open := r.active(path.String())
	panels := make([]Panel, 0, len(items))
	for i, item := range items {
		key := fmt.Sprintf("%s.%d", path.String(), i)
		panel := Panel{
			Key:   key,
			Index: i,
			Title: panelTitle(field, item, i),
			Open:  key == open,
		}
		itemPath := path.Child(values.Index(i))
		for _, sub := range field.Items {
			panel.Inputs = append(panel.Inputs, r.renderField(sub, item[sub.Name], itemPath.Child(values.Name(sub.Name))))
		}
		panels = append(panels, panel)
	}
	return panels
}

func fieldLabel(field schema.Field, path values.Path) string {
	if field.Label != "" {
		return field.Label
	}
	return labels.Resolve(path.String())
}

// panelTitle prefers the first non-empty text value of the item so authors
// can tell entries apart, falling back to the field label with an ordinal.
func panelTitle(field schema.Field, item schema.FieldValues, index int) string {
	for _, sub := range field.Items {
		if sub.Type != schema.KindText {
			continue
		}
		if envelope, ok := item[sub.Name]; ok && envelope != nil {
			if text, ok := envelope.Value.(string); ok && text != "" {
				return text
			}
		}
	}
	return fmt.Sprintf("%s %d", labels.Resolve(field.Name), index+1)
}
