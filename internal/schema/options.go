package schema

import (
	"fmt"
	"strings"
)

// NormalizeOptions coerces the select-option shapes seen in stored schemas
// into {label,value} pairs. Legacy components carry bare strings or
// value-only objects; both are accepted.
func NormalizeOptions(raw any) []Option {
	switch typed := raw.(type) {
	case []Option:
		return append([]Option(nil), typed...)
	case []string:
		out := make([]Option, 0, len(typed))
		for _, value := range typed {
			out = append(out, Option{Label: value, Value: value})
		}
		return out
	case []any:
		out := make([]Option, 0, len(typed))
		for _, entry := range typed {
			switch opt := entry.(type) {
			case string:
				out = append(out, Option{Label: opt, Value: opt})
			case map[string]any:
				label, _ := opt["label"].(string)
				value, _ := opt["value"].(string)
				if value == "" && label != "" {
					value = label
				}
				if label == "" {
					label = value
				}
				if value != "" {
					out = append(out, Option{Label: label, Value: value})
				}
			default:
				text := strings.TrimSpace(fmt.Sprint(opt))
				if text != "" {
					out = append(out, Option{Label: text, Value: text})
				}
			}
		}
		return out
	default:
		return nil
	}
}

// ValidateOptions enforces the select invariants: at least one option, every
// value non-empty and unique within the field.
func ValidateOptions(options []Option) error {
	if len(options) == 0 {
		return ErrOptionsRequired
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		value := strings.TrimSpace(opt.Value)
		if value == "" {
			return ErrOptionsRequired
		}
		if _, dup := seen[value]; dup {
			return fmt.Errorf("%w: %s", ErrOptionValueDup, value)
		}
		seen[value] = struct{}{}
	}
	return nil
}
