package schema_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-layout-editor/internal/schema"
)

func TestValidateFieldsCollectsAllIssues(t *testing.T) {
	fields := []schema.Field{
		{Name: "", Type: schema.KindText},
		{Name: "choice", Type: schema.KindSelect},
		{Name: "choice", Type: schema.KindText},
		{Name: "bag", Type: schema.KindArray},
	}
	issues := schema.ValidateFields(fields)
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", len(issues), issues)
	}

	byPath := make(map[string]string, len(issues))
	for _, issue := range issues {
		byPath[issue.Path] = issue.Message
	}
	if _, ok := byPath["(unnamed)"]; !ok {
		t.Fatalf("missing unnamed-field issue: %v", issues)
	}
	if _, ok := byPath["bag"]; !ok {
		t.Fatalf("missing empty item structure issue: %v", issues)
	}
}

func TestValidateFieldsNestedPaths(t *testing.T) {
	fields := []schema.Field{
		{Name: "sections", Type: schema.KindArray, Items: []schema.Field{
			{Name: "tone", Type: schema.KindSelect},
		}},
	}
	issues := schema.ValidateFields(fields)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if issues[0].Path != "sections.tone" {
		t.Fatalf("expected dotted path sections.tone, got %q", issues[0].Path)
	}
}

func TestValidateFieldsDepthLimit(t *testing.T) {
	leaf := []schema.Field{{Name: "x", Type: schema.KindText}}
	level4 := []schema.Field{{Name: "d", Type: schema.KindArray, Items: leaf}}
	level3 := []schema.Field{{Name: "c", Type: schema.KindArray, Items: level4}}
	level2 := []schema.Field{{Name: "b", Type: schema.KindArray, Items: level3}}
	fields := []schema.Field{{Name: "a", Type: schema.KindArray, Items: level2}}

	issues := schema.ValidateFields(fields)
	if len(issues) != 1 {
		t.Fatalf("expected a depth issue, got %v", issues)
	}
	if issues[0].Path != "a.b.c.d" {
		t.Fatalf("expected issue at a.b.c.d, got %q", issues[0].Path)
	}

	// One level shallower is within the limit.
	if issues := schema.ValidateFields(level2); len(issues) != 0 {
		t.Fatalf("expected no issues at depth 3, got %v", issues)
	}
}

func TestNormalizeOptions(t *testing.T) {
	bare := schema.NormalizeOptions([]any{"left", "right"})
	if len(bare) != 2 || bare[0].Value != "left" || bare[0].Label != "left" {
		t.Fatalf("bare strings not normalized: %+v", bare)
	}

	maps := schema.NormalizeOptions([]any{
		map[string]any{"value": "center"},
		map[string]any{"label": "Right Side", "value": "right"},
	})
	if len(maps) != 2 {
		t.Fatalf("expected two options, got %+v", maps)
	}
	if maps[0].Label != "center" {
		t.Fatalf("value-only option should reuse value as label, got %q", maps[0].Label)
	}
}

func TestValidateOptions(t *testing.T) {
	if err := schema.ValidateOptions(nil); !errors.Is(err, schema.ErrOptionsRequired) {
		t.Fatalf("expected options-required error, got %v", err)
	}
	dup := []schema.Option{
		{Label: "A", Value: "a"},
		{Label: "Also A", Value: "a"},
	}
	if err := schema.ValidateOptions(dup); !errors.Is(err, schema.ErrOptionValueDup) {
		t.Fatalf("expected duplicate value error, got %v", err)
	}
	ok := []schema.Option{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}
	if err := schema.ValidateOptions(ok); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}
}

func TestValidateValue(t *testing.T) {
	number := schema.Field{Name: "count", Type: schema.KindNumber}
	if err := schema.ValidateValue(number, &schema.Envelope{Value: "nan", Type: schema.KindNumber}); !errors.Is(err, schema.ErrValueType) {
		t.Fatalf("expected type mismatch, got %v", err)
	}

	sel := schema.Field{Name: "tone", Type: schema.KindSelect, Options: []schema.Option{{Label: "Calm", Value: "calm"}}}
	if err := schema.ValidateValue(sel, &schema.Envelope{Value: "loud", Type: schema.KindSelect}); !errors.Is(err, schema.ErrOptionUnknown) {
		t.Fatalf("expected unknown option error, got %v", err)
	}
	if err := schema.ValidateValue(sel, &schema.Envelope{Value: "", Type: schema.KindSelect}); err != nil {
		t.Fatalf("empty select value should pass, got %v", err)
	}

	if err := schema.ValidateValue(number, nil); !errors.Is(err, schema.ErrEnvelopeMissing) {
		t.Fatalf("expected missing envelope error, got %v", err)
	}
}
