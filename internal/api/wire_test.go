package api_test

import (
	"testing"

	"github.com/goliatone/go-layout-editor/internal/api"
	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
)

func wireTestFields() []schema.Field {
	return []schema.Field{
		{Name: "title", Type: schema.KindText, Default: "untitled"},
		{Name: "banner", Type: schema.KindImage},
		{Name: "links", Type: schema.KindArray, Items: []schema.Field{
			{Name: "label", Type: schema.KindText},
			{Name: "icon", Type: schema.KindImage},
		}},
	}
}

func TestWireValuesFillsAbsentFields(t *testing.T) {
	out := api.WireValues(wireTestFields(), schema.FieldValues{})

	if out["title"] == nil || out["title"].Value != "untitled" {
		t.Fatalf("absent field should take schema default: %+v", out["title"])
	}
	banner := out["banner"]
	if banner.Type != schema.KindImage || banner.FieldType != schema.KindImage || banner.Value != "" {
		t.Fatalf("absent image should wire as empty image envelope: %+v", banner)
	}
	links := out["links"]
	if links.Type != schema.KindArray || len(links.List()) != 0 {
		t.Fatalf("absent array should wire empty: %+v", links)
	}
	if len(links.Items) != 2 {
		t.Fatalf("array envelope should carry the item structure: %+v", links.Items)
	}
}

func TestWireValuesRepairsImageDrift(t *testing.T) {
	vals := schema.FieldValues{
		"banner": {Value: "/media/banner.png", Type: schema.KindText, FieldType: schema.KindText},
	}
	out := api.WireValues(wireTestFields(), vals)
	banner := out["banner"]
	if banner.Type != schema.KindImage || banner.FieldType != schema.KindImage {
		t.Fatalf("drifted image markers not repaired: %+v", banner)
	}
	if banner.Value != "/media/banner.png" {
		t.Fatalf("image value lost: %v", banner.Value)
	}
}

func TestWireValuesRecursesArrays(t *testing.T) {
	vals := schema.FieldValues{
		"links": {
			Type:      schema.KindArray,
			FieldType: schema.KindArray,
			Value: []schema.FieldValues{
				{"label": {Value: "Docs", Type: schema.KindText, FieldType: schema.KindText}},
			},
		},
	}
	out := api.WireValues(wireTestFields(), vals)
	items := out["links"].List()
	if len(items) != 1 {
		t.Fatalf("expected one element, got %d", len(items))
	}
	icon := items[0]["icon"]
	if icon == nil || icon.Type != schema.KindImage || icon.FieldType != schema.KindImage {
		t.Fatalf("missing element sub-field should wire as image envelope: %+v", icon)
	}
}

func TestWireValuesPreservesUnknownEntries(t *testing.T) {
	legacy := &schema.Envelope{Value: "keep", Type: schema.KindText, FieldType: schema.KindText}
	out := api.WireValues(wireTestFields(), schema.FieldValues{"legacy": legacy})
	if out["legacy"] == nil || out["legacy"].Value != "keep" {
		t.Fatalf("unknown entry dropped: %+v", out["legacy"])
	}
	if out["legacy"] == legacy {
		t.Fatalf("pass-through must clone, not alias")
	}
}

func wireTestLayout() *domain.Layout {
	return &domain.Layout{
		ID: "layout-1",
		Components: []domain.Component{
			{ID: "hero", Name: "Hero", Fields: wireTestFields()},
		},
	}
}

func TestLayoutPayload(t *testing.T) {
	layout := wireTestLayout()
	tree := values.Tree{
		"hero": {"title": {Value: "Edited", Type: schema.KindText, FieldType: schema.KindText}},
	}
	payload := api.LayoutPayload(layout, tree)

	if payload == layout {
		t.Fatalf("payload must be a clone")
	}
	if payload.Components[0].Data["title"].Value != "Edited" {
		t.Fatalf("component data should reflect the tree: %+v", payload.Components[0].Data)
	}
	if layout.Components[0].Data != nil {
		t.Fatalf("source layout must stay untouched")
	}
}

func TestInstanceContent(t *testing.T) {
	layout := wireTestLayout()
	tree := values.Tree{
		"hero": {"title": {Value: "Override", Type: schema.KindText, FieldType: schema.KindText}},
	}
	content := api.InstanceContent(layout, tree)
	if content["hero"]["title"].Value != "Override" {
		t.Fatalf("unexpected content %+v", content)
	}
	if content["hero"]["banner"] == nil {
		t.Fatalf("content should be the complete wire shape")
	}
}
