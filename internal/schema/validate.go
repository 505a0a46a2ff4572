package schema

import (
	"fmt"
	"strings"
)

// Issue captures a single schema validation failure with the offending
// field path.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidateFields checks a full field list against the schema invariants:
// non-empty unique sibling names at every depth, select fields with
// non-empty unique options, array fields with a non-empty item structure,
// and nesting within MaxNestingDepth. All failures are collected so the
// authoring UI can annotate each offending path.
func ValidateFields(fields []Field) []Issue {
	var issues []Issue
	collectFieldIssues(fields, "", 1, &issues)
	return issues
}

func collectFieldIssues(fields []Field, prefix string, depth int, issues *[]Issue) {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		path := joinPath(prefix, name)
		if name == "" {
			*issues = append(*issues, Issue{Path: joinPath(prefix, "(unnamed)"), Message: "field name is required"})
			continue
		}
		if _, dup := seen[name]; dup {
			*issues = append(*issues, Issue{Path: path, Message: "duplicate sibling field name"})
		}
		seen[name] = struct{}{}

		if _, known := Lookup(field.Type); !known {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("unknown field kind %q", field.Type)})
			continue
		}

		switch field.Type {
		case KindSelect:
			if err := ValidateOptions(field.Options); err != nil {
				*issues = append(*issues, Issue{Path: path, Message: err.Error()})
			}
		case KindArray, KindObject:
			if len(field.Items) == 0 {
				*issues = append(*issues, Issue{Path: path, Message: "array field requires at least one sub-field"})
				continue
			}
			if depth >= MaxNestingDepth {
				*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("nesting exceeds depth %d", MaxNestingDepth)})
				continue
			}
			collectFieldIssues(field.Items, path, depth+1, issues)
		}
	}
}
