package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldValues maps field names to their envelopes. It is the shape of one
// component's values and of one element inside an array field.
type FieldValues map[string]*Envelope

// Envelope is the persisted shape of a leaf value. Every leaf in a value
// tree carries one, at any depth, and it round-trips unchanged through the
// persistence API.
type Envelope struct {
	Value     any     `json:"value"`
	Type      Kind    `json:"type"`
	FieldType Kind    `json:"fieldType"`
	Items     []Field `json:"itemStructure,omitempty"`
}

// UnmarshalJSON decodes the wire envelope, rebuilding array values as
// []FieldValues so nested envelopes stay addressable.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	type wire struct {
		Value     json.RawMessage `json:"value"`
		Type      Kind            `json:"type"`
		FieldType Kind            `json:"fieldType"`
		Items     []Field         `json:"itemStructure,omitempty"`
	}
	var raw wire
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Type
	e.FieldType = raw.FieldType
	e.Items = raw.Items
	if len(raw.Value) == 0 {
		e.Value = nil
		return nil
	}
	if raw.Type == KindArray || raw.Type == KindObject {
		var items []FieldValues
		if err := json.Unmarshal(raw.Value, &items); err != nil {
			return err
		}
		e.Value = items
		return nil
	}
	var value any
	if err := json.Unmarshal(raw.Value, &value); err != nil {
		return err
	}
	e.Value = value
	return nil
}

// List returns the array elements of an array envelope, or nil for scalars.
func (e *Envelope) List() []FieldValues {
	if e == nil {
		return nil
	}
	switch items := e.Value.(type) {
	case []FieldValues:
		return items
	case []any:
		// Tolerate generically decoded trees.
		out := make([]FieldValues, 0, len(items))
		for _, entry := range items {
			if values, ok := entry.(FieldValues); ok {
				out = append(out, values)
				continue
			}
			if values, ok := entry.(map[string]*Envelope); ok {
				out = append(out, FieldValues(values))
			}
		}
		return out
	default:
		return nil
	}
}

// Clone deep-copies the envelope, including nested array items.
func (e *Envelope) Clone() *Envelope {
	if e == nil {
		return nil
	}
	out := &Envelope{
		Type:      e.Type,
		FieldType: e.FieldType,
		Items:     CloneFields(e.Items),
	}
	if items := e.List(); items != nil {
		out.Value = CloneItems(items)
		return out
	}
	out.Value = e.Value
	return out
}

// CloneValues deep-copies a field-values map.
func CloneValues(values FieldValues) FieldValues {
	if values == nil {
		return nil
	}
	out := make(FieldValues, len(values))
	for name, envelope := range values {
		out[name] = envelope.Clone()
	}
	return out
}

// CloneItems deep-copies array elements.
func CloneItems(items []FieldValues) []FieldValues {
	out := make([]FieldValues, len(items))
	for i, item := range items {
		out[i] = CloneValues(item)
	}
	return out
}

// NewEnvelope builds the default envelope for a schema node, consulting the
// kind registry. Unknown kinds fall back to an empty text envelope so the
// operation stays total.
func NewEnvelope(f Field) *Envelope {
	def, ok := Lookup(f.Type)
	if !ok {
		return &Envelope{Value: "", Type: f.Type, FieldType: f.EffectiveFieldType()}
	}
	return def.NewEnvelope(f)
}

// ImageEnvelope builds an image envelope from a bare URL. Callers at every
// nesting level converge on this shape: type and fieldType are always
// "image" even when the incoming value is a plain string.
func ImageEnvelope(url string) *Envelope {
	return &Envelope{Value: url, Type: KindImage, FieldType: KindImage}
}

func scalarEnvelope(kind Kind, empty any) func(Field) *Envelope {
	return func(f Field) *Envelope {
		value := f.Default
		if value == nil {
			value = empty
		}
		return &Envelope{
			Value:     value,
			Type:      f.Type,
			FieldType: f.EffectiveFieldType(),
		}
	}
}

func imageEnvelope(f Field) *Envelope {
	url, _ := f.Default.(string)
	return ImageEnvelope(url)
}

func arrayEnvelope(f Field) *Envelope {
	return &Envelope{
		Value:     []FieldValues{},
		Type:      f.Type,
		FieldType: f.EffectiveFieldType(),
		Items:     CloneFields(f.Items),
	}
}

// NewItem materialises one array element from the field's item structure,
// applying sub-field defaults.
func NewItem(f Field) FieldValues {
	item := make(FieldValues, len(f.Items))
	for _, sub := range f.Items {
		item[sub.Name] = NewEnvelope(sub)
	}
	return item
}

func validateString(f Field, e *Envelope) error {
	value, ok := e.Value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string", ErrValueType, f.Name)
	}
	if f.MaxLength > 0 && len(value) > f.MaxLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrValueRange, f.Name, f.MaxLength)
	}
	return nil
}

func validateNumber(f Field, e *Envelope) error {
	var value float64
	switch typed := e.Value.(type) {
	case float64:
		value = typed
	case int:
		value = float64(typed)
	default:
		return fmt.Errorf("%w: %s expects a number", ErrValueType, f.Name)
	}
	if f.Min != nil && value < *f.Min {
		return fmt.Errorf("%w: %s below minimum", ErrValueRange, f.Name)
	}
	if f.Max != nil && value > *f.Max {
		return fmt.Errorf("%w: %s above maximum", ErrValueRange, f.Name)
	}
	return nil
}

func validateBoolean(f Field, e *Envelope) error {
	if _, ok := e.Value.(bool); !ok {
		return fmt.Errorf("%w: %s expects a boolean", ErrValueType, f.Name)
	}
	return nil
}

func validateDate(f Field, e *Envelope) error {
	value, ok := e.Value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a date string", ErrValueType, f.Name)
	}
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a recognized date", ErrValueType, f.Name)
}

func validateSelect(f Field, e *Envelope) error {
	value, ok := e.Value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string", ErrValueType, f.Name)
	}
	if value == "" {
		return nil
	}
	for _, opt := range f.Options {
		if opt.Value == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no option %q", ErrOptionUnknown, f.Name, value)
}

func validateArray(f Field, e *Envelope) error {
	items := e.List()
	if items == nil {
		if _, isSlice := e.Value.([]FieldValues); !isSlice {
			return fmt.Errorf("%w: %s expects a list", ErrValueType, f.Name)
		}
	}
	if f.MinItems > 0 && len(items) < f.MinItems {
		return fmt.Errorf("%w: %s requires at least %d items", ErrValueRange, f.Name, f.MinItems)
	}
	if f.MaxItems > 0 && len(items) > f.MaxItems {
		return fmt.Errorf("%w: %s allows at most %d items", ErrValueRange, f.Name, f.MaxItems)
	}
	for i, item := range items {
		for _, sub := range f.Items {
			envelope, ok := item[sub.Name]
			if !ok || envelope == nil {
				continue
			}
			if def, found := Lookup(sub.Type); found {
				if err := def.Validate(sub, envelope); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
			}
		}
	}
	return nil
}

// ValidateValue checks one envelope against its schema node via the registry.
func ValidateValue(f Field, e *Envelope) error {
	if e == nil {
		return fmt.Errorf("%w: %s", ErrEnvelopeMissing, f.Name)
	}
	def, ok := Lookup(f.Type)
	if !ok {
		return fmt.Errorf("%w: %s", ErrKindUnknown, f.Type)
	}
	return def.Validate(f, e)
}
