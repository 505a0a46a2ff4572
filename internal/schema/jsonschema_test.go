package schema_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-layout-editor/internal/schema"
)

func wireFields() []schema.Field {
	return []schema.Field{
		{Name: "title", Type: schema.KindText, Required: true},
		{Name: "count", Type: schema.KindNumber},
	}
}

func TestValidateWirePayloadAccepts(t *testing.T) {
	payload := map[string]any{
		"title": map[string]any{"value": "hello", "type": "text", "fieldType": "text"},
		"count": map[string]any{"value": float64(3), "type": "number", "fieldType": "number"},
	}
	if err := schema.ValidateWirePayload(wireFields(), payload); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateWirePayloadRejectsBareValue(t *testing.T) {
	payload := map[string]any{
		"title": map[string]any{"value": "hello", "type": "text", "fieldType": "text"},
		"count": map[string]any{"value": "three", "type": "number", "fieldType": "number"},
	}
	err := schema.ValidateWirePayload(wireFields(), payload)
	if !errors.Is(err, schema.ErrSchemaValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if issues := schema.Issues(err); len(issues) == 0 {
		t.Fatalf("expected issue locations, got none")
	}
}

func TestValidateWirePayloadToleratesUnknownFields(t *testing.T) {
	payload := map[string]any{
		"title":    map[string]any{"value": "hello", "type": "text", "fieldType": "text"},
		"obsolete": map[string]any{"value": "kept", "type": "text", "fieldType": "text"},
	}
	if err := schema.ValidateWirePayload(wireFields(), payload); err != nil {
		t.Fatalf("drifted field should pass through, got %v", err)
	}
}
