package api

import (
	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
)

// WireValues produces the canonical per-component value map sent to the
// backend. Every schema field is present, absent entries filled from the
// schema default. Image envelopes always carry the image type markers even
// when upstream state drifted. Tree entries with no matching schema field
// pass through untouched so a newer backend schema never loses data.
func WireValues(fields []schema.Field, vals schema.FieldValues) schema.FieldValues {
	out := make(schema.FieldValues, len(fields))
	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field.Name] = struct{}{}
		out[field.Name] = wireEnvelope(field, vals[field.Name])
	}
	for name, envelope := range vals {
		if _, ok := known[name]; ok || envelope == nil {
			continue
		}
		out[name] = envelope.Clone()
	}
	return out
}

func wireEnvelope(field schema.Field, envelope *schema.Envelope) *schema.Envelope {
	if envelope == nil {
		envelope = schema.NewEnvelope(field)
	} else {
		envelope = envelope.Clone()
	}

	switch field.Type {
	case schema.KindImage:
		url, _ := envelope.Value.(string)
		return schema.ImageEnvelope(url)
	case schema.KindArray:
		items := envelope.List()
		wired := make([]schema.FieldValues, 0, len(items))
		for _, item := range items {
			wired = append(wired, WireValues(field.Items, item))
		}
		envelope.Value = wired
		envelope.Type = schema.KindArray
		envelope.FieldType = schema.KindArray
		if len(envelope.Items) == 0 {
			envelope.Items = schema.CloneFields(field.Items)
		}
		return envelope
	default:
		envelope.Type = field.Type
		envelope.FieldType = field.EffectiveFieldType()
		return envelope
	}
}

// LayoutPayload clones the layout with each component's data replaced by the
// wire shape of the session tree. Used when no instance is bound.
func LayoutPayload(layout *domain.Layout, tree values.Tree) *domain.Layout {
	out := *layout
	out.Components = make([]domain.Component, len(layout.Components))
	for i, component := range layout.Components {
		clone := component
		clone.Fields = schema.CloneFields(component.Fields)
		clone.Data = WireValues(component.Fields, tree[component.ID])
		out.Components[i] = clone
	}
	return &out
}

// InstanceContent produces the per-component content mapping persisted on an
// instance update.
func InstanceContent(layout *domain.Layout, tree values.Tree) map[string]schema.FieldValues {
	content := make(map[string]schema.FieldValues, len(layout.Components))
	for _, component := range layout.Components {
		content[component.ID] = WireValues(component.Fields, tree[component.ID])
	}
	return content
}
