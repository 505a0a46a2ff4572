package builder

import (
	"errors"
	"strings"

	"github.com/goliatone/go-layout-editor/internal/schema"
)

var (
	ErrNameRequired      = errors.New("builder: component name is required")
	ErrNoFields          = errors.New("builder: at least one field is required")
	ErrFieldNotFound     = errors.New("builder: field not found")
	ErrFieldExists       = errors.New("builder: field name already in use")
	ErrDepthExceeded     = errors.New("builder: nesting depth exceeds limit")
	ErrGroupTooSmall     = errors.New("builder: repeatable group requires at least two fields")
	ErrGroupNotScalar    = errors.New("builder: repeatable group accepts scalar fields only")
	ErrGroupNameConflict = errors.New("builder: group name already in use")
)

// ValidationError aggregates submit rejections, each annotated with the
// offending field path.
type ValidationError struct {
	Issues []schema.Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "builder: validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "builder: " + strings.Join(parts, "; ")
}

// Paths lists the offending field paths.
func (e *ValidationError) Paths() []string {
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			out = append(out, issue.Path)
		}
	}
	return out
}
