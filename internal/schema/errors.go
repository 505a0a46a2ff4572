package schema

import "errors"

var (
	ErrFieldNameRequired  = errors.New("schema: field name is required")
	ErrFieldNameDuplicate = errors.New("schema: duplicate sibling field name")
	ErrKindUnknown        = errors.New("schema: unknown field kind")
	ErrOptionsRequired    = errors.New("schema: select field requires options")
	ErrOptionValueDup     = errors.New("schema: duplicate select option value")
	ErrOptionUnknown      = errors.New("schema: value is not one of the select options")
	ErrItemsRequired      = errors.New("schema: array field requires item structure")
	ErrDepthExceeded      = errors.New("schema: nesting depth exceeds limit")
	ErrEnvelopeMissing    = errors.New("schema: value envelope missing")
	ErrValueType          = errors.New("schema: value type mismatch")
	ErrValueRange         = errors.New("schema: value out of range")
)
