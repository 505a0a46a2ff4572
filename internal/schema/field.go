package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Option is one entry of a select field. Values must be unique within the
// field; labels are presentational.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field is one node of a component schema. Array fields recurse through
// Items, which the wire formats call itemStructure (persisted values) or
// subFields (authoring payloads).
type Field struct {
	Name        string
	Label       string
	Description string
	Type        Kind
	FieldType   Kind
	Required    bool
	Default     any
	Placeholder string
	MaxLength   int
	Min         *float64
	Max         *float64
	Step        *float64
	MinItems    int
	MaxItems    int

	ToolbarGroups []string
	AllowedTags   []string
	AllowedTypes  []string

	Options []Option
	Items   []Field

	// SourceComponent records where a seeded field was copied from.
	// Author-visible only; never persisted.
	SourceComponent string `json:"-"`
}

// EffectiveFieldType returns the fieldType refinement, falling back to the
// schema type when no refinement was authored.
func (f Field) EffectiveFieldType() Kind {
	if f.FieldType != "" {
		return f.FieldType
	}
	return f.Type
}

// DefaultValue returns the authored default, or the kind-appropriate empty
// value when none was set.
func (f Field) DefaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Type {
	case KindNumber:
		return float64(0)
	case KindBoolean:
		return false
	case KindArray, KindObject:
		return []FieldValues{}
	default:
		return ""
	}
}

type fieldJSON struct {
	Name          string          `json:"name"`
	Label         string          `json:"label,omitempty"`
	Type          Kind            `json:"type"`
	FieldType     Kind            `json:"fieldType,omitempty"`
	Required      bool            `json:"required"`
	Description   string          `json:"description"`
	Default       any             `json:"default,omitempty"`
	Placeholder   string          `json:"placeholder,omitempty"`
	MaxLength     int             `json:"maxLength,omitempty"`
	Min           *float64        `json:"min,omitempty"`
	Max           *float64        `json:"max,omitempty"`
	Step          *float64        `json:"step,omitempty"`
	MinItems      int             `json:"minItems,omitempty"`
	MaxItems      int             `json:"maxItems,omitempty"`
	ToolbarGroups []string        `json:"toolbarGroups,omitempty"`
	AllowedTags   []string        `json:"allowedTags"`
	AllowedTypes  []string        `json:"allowedTypes"`
	Options       any             `json:"options"`
	SubFields     []Field         `json:"subFields"`
	ItemStructure json.RawMessage `json:"itemStructure,omitempty"`
}

// MarshalJSON emits the authoring wire shape: always-present description,
// allowedTags, allowedTypes, options, and subFields keys, with fieldType only
// when it refines the schema type.
func (f Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{
		Name:          f.Name,
		Label:         f.Label,
		Type:          f.Type,
		Required:      f.Required,
		Description:   f.Description,
		Default:       f.Default,
		Placeholder:   f.Placeholder,
		MaxLength:     f.MaxLength,
		Min:           f.Min,
		Max:           f.Max,
		Step:          f.Step,
		MinItems:      f.MinItems,
		MaxItems:      f.MaxItems,
		ToolbarGroups: f.ToolbarGroups,
		AllowedTags:   emptyWhenNil(f.AllowedTags),
		AllowedTypes:  emptyWhenNil(f.AllowedTypes),
	}
	if f.FieldType != "" && f.FieldType != f.Type {
		out.FieldType = f.FieldType
	}
	if f.Options != nil {
		out.Options = f.Options
	} else {
		out.Options = []Option{}
	}
	out.SubFields = f.Items
	if out.SubFields == nil {
		out.SubFields = []Field{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both the authoring alias subFields and the persisted
// itemStructure key, normalizing to Items. Stored select options may be bare
// strings or value-only objects; they are coerced to {label,value} pairs.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw fieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Name = raw.Name
	f.Label = raw.Label
	f.Description = raw.Description
	f.Type = raw.Type
	f.FieldType = raw.FieldType
	f.Required = raw.Required
	f.Default = raw.Default
	f.Placeholder = raw.Placeholder
	f.MaxLength = raw.MaxLength
	f.Min = raw.Min
	f.Max = raw.Max
	f.Step = raw.Step
	f.MinItems = raw.MinItems
	f.MaxItems = raw.MaxItems
	f.ToolbarGroups = raw.ToolbarGroups
	f.AllowedTags = raw.AllowedTags
	f.AllowedTypes = raw.AllowedTypes
	f.Options = NormalizeOptions(raw.Options)
	f.Items = raw.SubFields
	if len(raw.ItemStructure) > 0 {
		var items []Field
		if err := json.Unmarshal(raw.ItemStructure, &items); err != nil {
			return err
		}
		if len(items) > 0 || f.Items == nil {
			f.Items = items
		}
	}
	return nil
}

func emptyWhenNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// FindField locates a direct child by name in a field list.
func FindField(fields []Field, name string) (Field, bool) {
	for _, field := range fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Depth returns the deepest nesting level of the supplied fields, counting
// the fields themselves as level 1.
func Depth(fields []Field) int {
	max := 0
	for _, field := range fields {
		depth := 1
		if len(field.Items) > 0 {
			depth += Depth(field.Items)
		}
		if depth > max {
			max = depth
		}
	}
	return max
}

// ValidateSiblingNames reports the first duplicate or empty field name at any
// nesting depth. The returned path uses dot-joined field names.
func ValidateSiblingNames(fields []Field) error {
	return validateSiblings(fields, "")
}

func validateSiblings(fields []Field, prefix string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: %s", ErrFieldNameRequired, joinPath(prefix, "(unnamed)"))
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrFieldNameDuplicate, joinPath(prefix, name))
		}
		seen[name] = struct{}{}
		if len(field.Items) > 0 {
			if err := validateSiblings(field.Items, joinPath(prefix, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// CloneFields deep-copies a field list so callers can mutate drafts without
// aliasing authored schemas.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field
		out[i].Options = append([]Option(nil), field.Options...)
		out[i].ToolbarGroups = append([]string(nil), field.ToolbarGroups...)
		out[i].AllowedTags = append([]string(nil), field.AllowedTags...)
		out[i].AllowedTypes = append([]string(nil), field.AllowedTypes...)
		out[i].Items = CloneFields(field.Items)
	}
	return out
}
