package values

import (
	"strconv"
	"strings"
)

// Segment is one step of a value-tree path: either a field name or an array
// index. Structured segments avoid the dot/bracket string ambiguity that
// plagued earlier editors.
type Segment struct {
	name    string
	index   int
	indexed bool
}

// Name builds a field-name segment.
func Name(name string) Segment {
	return Segment{name: name}
}

// Index builds an array-index segment.
func Index(i int) Segment {
	return Segment{index: i, indexed: true}
}

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.indexed }

// FieldName returns the field name for name segments, "" otherwise.
func (s Segment) FieldName() string { return s.name }

// Position returns the array index for index segments.
func (s Segment) Position() int { return s.index }

func (s Segment) String() string {
	if s.indexed {
		return strconv.Itoa(s.index)
	}
	return s.name
}

// Path addresses a location in a value tree:
// component . field ( . index . subField )*.
type Path []Segment

// P assembles a path from segments.
func P(segments ...Segment) Path {
	return Path(segments)
}

// Field builds the common two-segment path for a component's top-level field.
func Field(componentID, fieldName string) Path {
	return Path{Name(componentID), Name(fieldName)}
}

// Child extends the path without mutating the receiver.
func (p Path) Child(segment Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}

// Component returns the leading component identifier, or "".
func (p Path) Component() string {
	if len(p) == 0 || p[0].IsIndex() {
		return ""
	}
	return p[0].FieldName()
}

// String renders the path dot-joined for logs and labels.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, segment := range p {
		parts[i] = segment.String()
	}
	return strings.Join(parts, ".")
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
