package schema_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-layout-editor/internal/schema"
)

func TestFieldMarshalAlwaysEmitsAuthoringKeys(t *testing.T) {
	field := schema.Field{
		Name: "title",
		Type: schema.KindText,
	}
	encoded, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal field: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatalf("decode field payload: %v", err)
	}
	for _, key := range []string{"name", "type", "required", "description", "allowedTags", "allowedTypes", "options", "subFields"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected key %q in payload, got %s", key, encoded)
		}
	}
	if _, ok := raw["fieldType"]; ok {
		t.Fatalf("fieldType should be omitted when it mirrors type, got %s", encoded)
	}
}

func TestFieldMarshalEmitsFieldTypeRefinement(t *testing.T) {
	field := schema.Field{
		Name:      "summary",
		Type:      schema.KindText,
		FieldType: schema.KindTextarea,
	}
	encoded, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal field: %v", err)
	}
	if !strings.Contains(string(encoded), `"fieldType":"textarea"`) {
		t.Fatalf("expected textarea refinement in %s", encoded)
	}
}

func TestFieldUnmarshalAcceptsSubFieldsAndItemStructure(t *testing.T) {
	subFields := `{"name":"links","type":"array","subFields":[{"name":"url","type":"text"}]}`
	itemStructure := `{"name":"links","type":"array","itemStructure":[{"name":"url","type":"text"}]}`

	for _, payload := range []string{subFields, itemStructure} {
		var field schema.Field
		if err := json.Unmarshal([]byte(payload), &field); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if len(field.Items) != 1 || field.Items[0].Name != "url" {
			t.Fatalf("expected one url item from %s, got %+v", payload, field.Items)
		}
	}
}

func TestFieldUnmarshalNormalizesLegacyOptions(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    []schema.Option
	}{
		{
			name:    "bare strings",
			payload: `{"name":"tone","type":"select","options":["left","right"]}`,
			want:    []schema.Option{{Label: "left", Value: "left"}, {Label: "right", Value: "right"}},
		},
		{
			name:    "value-only objects",
			payload: `{"name":"tone","type":"select","options":[{"value":"loud"}]}`,
			want:    []schema.Option{{Label: "loud", Value: "loud"}},
		},
		{
			name:    "canonical pairs",
			payload: `{"name":"tone","type":"select","options":[{"label":"Loud","value":"loud"}]}`,
			want:    []schema.Option{{Label: "Loud", Value: "loud"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var field schema.Field
			if err := json.Unmarshal([]byte(tc.payload), &field); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.payload, err)
			}
			if len(field.Options) != len(tc.want) {
				t.Fatalf("expected %d options, got %+v", len(tc.want), field.Options)
			}
			for i, want := range tc.want {
				if field.Options[i] != want {
					t.Fatalf("option %d: expected %+v, got %+v", i, want, field.Options[i])
				}
			}
		})
	}
}

func TestValidateSiblingNames(t *testing.T) {
	fields := []schema.Field{
		{Name: "title", Type: schema.KindText},
		{Name: "title", Type: schema.KindText},
	}
	if err := schema.ValidateSiblingNames(fields); !errors.Is(err, schema.ErrFieldNameDuplicate) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}

	nested := []schema.Field{
		{Name: "list", Type: schema.KindArray, Items: []schema.Field{
			{Name: "", Type: schema.KindText},
		}},
	}
	if err := schema.ValidateSiblingNames(nested); !errors.Is(err, schema.ErrFieldNameRequired) {
		t.Fatalf("expected missing name error, got %v", err)
	}
}

func TestDepthCountsNestedItems(t *testing.T) {
	fields := []schema.Field{
		{Name: "a", Type: schema.KindArray, Items: []schema.Field{
			{Name: "b", Type: schema.KindArray, Items: []schema.Field{
				{Name: "c", Type: schema.KindText},
			}},
		}},
	}
	if got := schema.Depth(fields); got != 3 {
		t.Fatalf("expected depth 3, got %d", got)
	}
}

func TestCloneFieldsDoesNotAliasItems(t *testing.T) {
	fields := []schema.Field{
		{Name: "list", Type: schema.KindArray, Items: []schema.Field{
			{Name: "url", Type: schema.KindText},
		}},
	}
	cloned := schema.CloneFields(fields)
	cloned[0].Items[0].Name = "href"
	if fields[0].Items[0].Name != "url" {
		t.Fatalf("clone aliased nested items: %+v", fields[0].Items)
	}
}
