package editorcmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-layout-editor/internal/commands/editorcmd"
	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/schema"
)

type fakeBackend struct {
	layouts    int
	instances  int
	created    int
	updated    int
	err        error
	lastLayout *domain.Layout
}

func (f *fakeBackend) UpdateLayout(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	f.layouts++
	f.lastLayout = layout
	return layout, f.err
}

func (f *fakeBackend) UpdateInstance(ctx context.Context, instance *domain.Instance) (*domain.Instance, error) {
	f.instances++
	return instance, f.err
}

func (f *fakeBackend) CreateComponent(ctx context.Context, component domain.Component) (*domain.Component, error) {
	f.created++
	return &component, f.err
}

func (f *fakeBackend) UpdateComponent(ctx context.Context, component domain.Component) (*domain.Component, error) {
	f.updated++
	return &component, f.err
}

func validComponent() domain.Component {
	return domain.Component{
		Name:      "Hero",
		FieldType: "text",
		Fields:    []schema.Field{{Name: "title", Type: schema.KindText}},
	}
}

func TestSaveLayoutCommandValidate(t *testing.T) {
	if err := (editorcmd.SaveLayoutCommand{}).Validate(); err == nil {
		t.Fatalf("nil layout should fail validation")
	}
	if err := (editorcmd.SaveLayoutCommand{Layout: &domain.Layout{}}).Validate(); err == nil {
		t.Fatalf("missing id should fail validation")
	}
	if err := (editorcmd.SaveLayoutCommand{Layout: &domain.Layout{ID: "l1"}}).Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
}

func TestSaveInstanceCommandValidate(t *testing.T) {
	if err := (editorcmd.SaveInstanceCommand{}).Validate(); err == nil {
		t.Fatalf("nil instance should fail validation")
	}
	bad := editorcmd.SaveInstanceCommand{Instance: &domain.Instance{ID: "i1", PageID: "p1", Status: "live"}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("invalid status should fail validation")
	}
	good := editorcmd.SaveInstanceCommand{Instance: &domain.Instance{ID: "i1", PageID: "p1", Status: domain.StatusDraft}}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
}

func TestSaveComponentCommandValidate(t *testing.T) {
	if err := (editorcmd.SaveComponentCommand{}).Validate(); err == nil {
		t.Fatalf("empty component should fail validation")
	}
	broken := validComponent()
	broken.Fields = []schema.Field{{Name: "tone", Type: schema.KindSelect}}
	if err := (editorcmd.SaveComponentCommand{Component: broken}).Validate(); err == nil {
		t.Fatalf("schema issues should fail validation")
	}
	if err := (editorcmd.SaveComponentCommand{Component: validComponent()}).Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
}

func TestSaveLayoutHandler(t *testing.T) {
	backend := &fakeBackend{}
	handler := editorcmd.NewSaveLayoutHandler(backend)

	err := handler.Execute(context.Background(), editorcmd.SaveLayoutCommand{})
	if err == nil {
		t.Fatalf("invalid message must be rejected before execution")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if backend.layouts != 0 {
		t.Fatalf("backend must not be called on validation failure")
	}

	layout := &domain.Layout{ID: "l1", Name: "Landing"}
	if err := handler.Execute(context.Background(), editorcmd.SaveLayoutCommand{Layout: layout}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if backend.layouts != 1 || backend.lastLayout.ID != "l1" {
		t.Fatalf("layout not forwarded: %+v", backend.lastLayout)
	}
}

func TestSaveLayoutHandlerWrapsBackendFailure(t *testing.T) {
	backend := &fakeBackend{err: errors.New("backend down")}
	handler := editorcmd.NewSaveLayoutHandler(backend)

	err := handler.Execute(context.Background(), editorcmd.SaveLayoutCommand{Layout: &domain.Layout{ID: "l1"}})
	if err == nil {
		t.Fatalf("backend failure must surface")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestSaveComponentHandlerCreateVsUpdate(t *testing.T) {
	backend := &fakeBackend{}
	handler := editorcmd.NewSaveComponentHandler(backend)

	if err := handler.Execute(context.Background(), editorcmd.SaveComponentCommand{Component: validComponent()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if backend.created != 1 || backend.updated != 0 {
		t.Fatalf("id-less component should create, got created=%d updated=%d", backend.created, backend.updated)
	}

	existing := validComponent()
	existing.ID = "c1"
	if err := handler.Execute(context.Background(), editorcmd.SaveComponentCommand{Component: existing}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if backend.updated != 1 {
		t.Fatalf("component with id should update, got updated=%d", backend.updated)
	}
}

func TestSaveInstanceHandler(t *testing.T) {
	backend := &fakeBackend{}
	handler := editorcmd.NewSaveInstanceHandler(backend)

	instance := &domain.Instance{ID: "i1", PageID: "p1", Status: domain.StatusPublished}
	if err := handler.Execute(context.Background(), editorcmd.SaveInstanceCommand{Instance: instance}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if backend.instances != 1 {
		t.Fatalf("instance endpoint not called")
	}
}
