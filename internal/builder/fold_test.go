package builder_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-layout-editor/internal/builder"
	"github.com/goliatone/go-layout-editor/internal/schema"
)

func seededBuilder(t *testing.T, names ...string) *builder.Builder {
	t.Helper()
	b := builder.New(builder.WithName("Card"))
	for _, name := range names {
		if err := b.AddField(schema.Field{Name: name, Type: schema.KindText}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	return b
}

func TestFoldGroupMovesFieldsIntoArray(t *testing.T) {
	b := seededBuilder(t, "heading", "linkLabel", "linkUrl", "footer")

	if err := b.FoldGroup([]string{"linkUrl", "linkLabel"}, "links"); err != nil {
		t.Fatalf("fold: %v", err)
	}

	fields := b.Draft().Fields
	if len(fields) != 3 {
		t.Fatalf("expected 3 top-level fields, got %d", len(fields))
	}
	if fields[0].Name != "heading" || fields[1].Name != "footer" {
		t.Fatalf("untouched siblings lost their order: %+v", fields)
	}

	group := fields[2]
	if group.Name != "links" || group.Type != schema.KindArray {
		t.Fatalf("group must be appended as an array, got %+v", group)
	}
	// Item order follows the original declaration order, not the selection.
	if group.Items[0].Name != "linkLabel" || group.Items[1].Name != "linkUrl" {
		t.Fatalf("item order should follow declaration order: %+v", group.Items)
	}
}

func TestFoldGroupDefaultName(t *testing.T) {
	b := seededBuilder(t, "one", "two")
	if err := b.FoldGroup([]string{"one", "two"}, "  "); err != nil {
		t.Fatalf("fold: %v", err)
	}
	fields := b.Draft().Fields
	if len(fields) != 1 || fields[0].Name != builder.DefaultGroupName {
		t.Fatalf("expected default group name, got %+v", fields)
	}
}

func TestFoldGroupRejections(t *testing.T) {
	t.Run("too few selected", func(t *testing.T) {
		b := seededBuilder(t, "one", "two")
		if err := b.FoldGroup([]string{"one"}, "group"); !errors.Is(err, builder.ErrGroupTooSmall) {
			t.Fatalf("expected too-small, got %v", err)
		}
	})

	t.Run("composite member", func(t *testing.T) {
		b := seededBuilder(t, "one")
		err := b.AddField(schema.Field{Name: "rows", Type: schema.KindArray, Items: []schema.Field{
			{Name: "cell", Type: schema.KindText},
		}})
		if err != nil {
			t.Fatalf("add array: %v", err)
		}
		if err := b.FoldGroup([]string{"one", "rows"}, "group"); !errors.Is(err, builder.ErrGroupNotScalar) {
			t.Fatalf("expected not-scalar, got %v", err)
		}
	})

	t.Run("name taken by remaining sibling", func(t *testing.T) {
		b := seededBuilder(t, "one", "two", "links")
		if err := b.FoldGroup([]string{"one", "two"}, "links"); !errors.Is(err, builder.ErrGroupNameConflict) {
			t.Fatalf("expected name conflict, got %v", err)
		}
	})

	t.Run("name freed by the fold itself", func(t *testing.T) {
		b := seededBuilder(t, "links", "label")
		if err := b.FoldGroup([]string{"links", "label"}, "links"); err != nil {
			t.Fatalf("folding a member named after the group is fine: %v", err)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		b := seededBuilder(t, "one", "two")
		if err := b.FoldGroup([]string{"one", "ghost"}, "group"); !errors.Is(err, builder.ErrFieldNotFound) {
			t.Fatalf("expected not-found, got %v", err)
		}
	})
}
