package builder

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

// DefaultComponentFieldType is the fieldType recorded on authored components.
const DefaultComponentFieldType = "text"

// Draft is the mutable authoring state of one component.
type Draft struct {
	Name   string
	Fields []schema.Field
}

// Validate applies the structural submit rules. Field-level invariants are
// checked separately so each failure can name its path.
func (d Draft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required.Error("component name is required")),
		validation.Field(&d.Fields, validation.Required.Error("at least one field is required")),
	)
}

// Builder authors a component schema: add/edit/remove fields, seed from an
// existing component, fold repeatable groups, preview the canonical wire
// shape, and validate on submit.
type Builder struct {
	draft  Draft
	logger interfaces.Logger
}

// Option customises a Builder.
type Option func(*Builder)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithName seeds the draft component name.
func WithName(name string) Option {
	return func(b *Builder) {
		b.draft.Name = name
	}
}

// New constructs an empty builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetName updates the draft component name.
func (b *Builder) SetName(name string) {
	b.draft.Name = name
}

// Draft returns a deep copy of the authoring state.
func (b *Builder) Draft() Draft {
	return Draft{
		Name:   b.draft.Name,
		Fields: schema.CloneFields(b.draft.Fields),
	}
}

// AddField appends a field to the draft. Select options are normalized
// (values auto-derived from labels via slugification when not overridden)
// and composite fields are rejected beyond the nesting limit.
func (b *Builder) AddField(field schema.Field) error {
	field.Name = strings.TrimSpace(field.Name)
	if field.Name == "" {
		return schema.ErrFieldNameRequired
	}
	if _, exists := schema.FindField(b.draft.Fields, field.Name); exists {
		return fmt.Errorf("%w: %s", ErrFieldExists, field.Name)
	}
	if err := b.prepare(&field); err != nil {
		return err
	}
	b.draft.Fields = append(b.draft.Fields, field)
	b.logger.Debug("builder.field.added", "field", field.Name, "kind", field.Type)
	return nil
}

// EditField replaces the named field, preserving its position.
func (b *Builder) EditField(name string, field schema.Field) error {
	field.Name = strings.TrimSpace(field.Name)
	if field.Name == "" {
		return schema.ErrFieldNameRequired
	}
	index := -1
	for i, existing := range b.draft.Fields {
		if existing.Name == name {
			index = i
			continue
		}
		if existing.Name == field.Name {
			return fmt.Errorf("%w: %s", ErrFieldExists, field.Name)
		}
	}
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if err := b.prepare(&field); err != nil {
		return err
	}
	b.draft.Fields[index] = field
	return nil
}

// RemoveField deletes the named field and returns it. Values bound to the
// removed field are not cascaded; the tree initializer recomputes them when
// the schema changes.
func (b *Builder) RemoveField(name string) (schema.Field, error) {
	for i, existing := range b.draft.Fields {
		if existing.Name != name {
			continue
		}
		removed := existing
		b.draft.Fields = append(b.draft.Fields[:i], b.draft.Fields[i+1:]...)
		b.logger.Debug("builder.field.removed", "field", name)
		return removed, nil
	}
	return schema.Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
}

// SeedFrom copies another component's fields into the draft. Name collisions
// gain a distinguishing suffix; every copied field is annotated with its
// source component for the authoring UI.
func (b *Builder) SeedFrom(component domain.Component) {
	for _, field := range schema.CloneFields(component.Fields) {
		name := field.Name
		for i := 2; ; i++ {
			if _, exists := schema.FindField(b.draft.Fields, name); !exists {
				break
			}
			name = fmt.Sprintf("%s%s%d", field.Name, "Copy", i-1)
		}
		field.Name = name
		field.SourceComponent = component.Name
		b.draft.Fields = append(b.draft.Fields, field)
	}
	b.logger.Debug("builder.seeded", "source", component.Name, "fields", len(component.Fields))
}

// Preview produces the canonical persisted representation of the draft so
// the author can confirm before submission.
func (b *Builder) Preview() domain.Component {
	return domain.Component{
		Name:      strings.TrimSpace(b.draft.Name),
		FieldType: DefaultComponentFieldType,
		Fields:    schema.CloneFields(b.draft.Fields),
		IsActive:  true,
	}
}

// Submit validates the draft and returns the component payload ready for the
// backend. Rejections carry the failing field paths.
func (b *Builder) Submit() (domain.Component, error) {
	b.draft.Name = strings.TrimSpace(b.draft.Name)
	if err := b.draft.Validate(); err != nil {
		if b.draft.Name == "" {
			return domain.Component{}, ErrNameRequired
		}
		return domain.Component{}, ErrNoFields
	}
	if issues := schema.ValidateFields(b.draft.Fields); len(issues) > 0 {
		b.logger.Warn("builder.submit.rejected", "issues", len(issues))
		return domain.Component{}, &ValidationError{Issues: issues}
	}
	return b.Preview(), nil
}

// prepare normalizes one field before it enters the draft: select option
// values are slug-derived from labels when absent, and composite fields are
// depth-checked against the authoring limit.
func (b *Builder) prepare(field *schema.Field) error {
	if field.FieldType == "" {
		field.FieldType = field.Type
	}
	if field.Type == schema.KindSelect {
		for i, option := range field.Options {
			if strings.TrimSpace(option.Value) != "" {
				continue
			}
			derived, err := slug.Normalize(option.Label)
			if err != nil || derived == "" {
				derived = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(option.Label), " ", "-"))
			}
			field.Options[i].Value = derived
		}
	}
	if schema.IsComposite(field.Type) {
		if depth := 1 + schema.Depth(field.Items); depth > schema.MaxNestingDepth {
			return fmt.Errorf("%w: %s", ErrDepthExceeded, field.Name)
		}
	}
	return nil
}
