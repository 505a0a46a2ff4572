package builder

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-layout-editor/internal/schema"
)

// DefaultGroupName is used when the author does not pick a group name.
const DefaultGroupName = "list"

// FoldGroup turns two or more previously-declared scalar fields into one
// array field. The selected fields leave the top level and become the new
// field's item structure, preserving their original declaration order;
// untouched siblings keep their relative order. There is no inverse
// operation: authors delete the array to revert.
func (b *Builder) FoldGroup(selected []string, groupName string) error {
	groupName = strings.TrimSpace(groupName)
	if groupName == "" {
		groupName = DefaultGroupName
	}
	if len(selected) < 2 {
		return ErrGroupTooSmall
	}

	want := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		want[name] = struct{}{}
	}

	var items []schema.Field
	var remaining []schema.Field
	for _, field := range b.draft.Fields {
		if _, picked := want[field.Name]; !picked {
			if field.Name == groupName {
				return fmt.Errorf("%w: %s", ErrGroupNameConflict, groupName)
			}
			remaining = append(remaining, field)
			continue
		}
		if schema.IsComposite(field.Type) {
			return fmt.Errorf("%w: %s", ErrGroupNotScalar, field.Name)
		}
		delete(want, field.Name)
		items = append(items, field)
	}
	if len(want) > 0 {
		for name := range want {
			return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
		}
	}
	if len(items) < 2 {
		return ErrGroupTooSmall
	}

	group := schema.Field{
		Name:      groupName,
		Type:      schema.KindArray,
		FieldType: schema.KindArray,
		Items:     items,
	}
	b.draft.Fields = append(remaining, group)
	b.logger.Debug("builder.group.folded", "group", groupName, "fields", len(items))
	return nil
}
