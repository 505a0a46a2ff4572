package values

import (
	"github.com/goliatone/go-layout-editor/internal/schema"
)

// Initialize materialises a complete value map for a field list. For every
// field, sources are consulted in order (instance override first, then
// component data); the first envelope of matching kind wins, otherwise the
// schema default applies, otherwise the kind-appropriate empty value.
// Envelopes present in a source but absent from the schema are preserved
// passthrough so drifted content survives a round-trip.
func Initialize(fields []schema.Field, sources ...schema.FieldValues) schema.FieldValues {
	out := make(schema.FieldValues, len(fields))
	for _, field := range fields {
		out[field.Name] = initializeField(field, sources)
	}
	for _, source := range sources {
		for name, envelope := range source {
			if envelope == nil {
				continue
			}
			if _, known := schema.FindField(fields, name); known {
				continue
			}
			if _, exists := out[name]; !exists {
				out[name] = envelope.Clone()
			}
		}
	}
	return out
}

func initializeField(field schema.Field, sources []schema.FieldValues) *schema.Envelope {
	var chosen *schema.Envelope
	for _, source := range sources {
		if source == nil {
			continue
		}
		envelope, ok := source[field.Name]
		if !ok || envelope == nil {
			continue
		}
		if !kindMatches(field, envelope) {
			continue
		}
		chosen = envelope.Clone()
		break
	}
	if chosen == nil {
		chosen = schema.NewEnvelope(field)
	}

	normalize(field, chosen)
	return chosen
}

// normalize repairs partially-shaped envelopes: missing type markers, image
// drift, missing item structures, and recursively initialized array items.
func normalize(field schema.Field, envelope *schema.Envelope) {
	if envelope.Type == "" {
		envelope.Type = field.Type
	}
	if envelope.FieldType == "" {
		envelope.FieldType = field.EffectiveFieldType()
	}
	switch field.Type {
	case schema.KindImage:
		envelope.Type = schema.KindImage
		envelope.FieldType = schema.KindImage
		if _, ok := envelope.Value.(string); !ok {
			envelope.Value = ""
		}
	case schema.KindArray, schema.KindObject:
		if len(envelope.Items) == 0 {
			envelope.Items = schema.CloneFields(field.Items)
		}
		items := envelope.List()
		if items == nil {
			items = []schema.FieldValues{}
		}
		normalized := make([]schema.FieldValues, len(items))
		for i, item := range items {
			normalized[i] = Initialize(field.Items, item)
		}
		envelope.Value = normalized
	}
}

// InitializeTree builds the full value tree for a set of components. The
// overrides tree (instance content) takes precedence over each component's
// default data.
func InitializeTree(schemas map[string][]schema.Field, data map[string]schema.FieldValues, overrides Tree) Tree {
	tree := make(Tree, len(schemas))
	for componentID, fields := range schemas {
		var override schema.FieldValues
		if overrides != nil {
			override = overrides[componentID]
		}
		tree[componentID] = Initialize(fields, override, data[componentID])
	}
	return tree
}

func kindMatches(field schema.Field, envelope *schema.Envelope) bool {
	if envelope.Type == field.Type {
		return true
	}
	if envelope.Type != "" {
		return false
	}
	// Untyped legacy envelopes: accept when the raw value fits the kind.
	switch field.Type {
	case schema.KindNumber:
		switch envelope.Value.(type) {
		case float64, int:
			return true
		}
		return false
	case schema.KindBoolean:
		_, ok := envelope.Value.(bool)
		return ok
	case schema.KindArray, schema.KindObject:
		return envelope.List() != nil
	default:
		_, ok := envelope.Value.(string)
		return ok
	}
}
