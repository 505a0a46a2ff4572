package editorcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-layout-editor/internal/api"
	"github.com/goliatone/go-layout-editor/internal/commands"
	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/schema"
	command "github.com/goliatone/go-command"
)

const (
	saveLayoutMessageType    = "layout_editor.layout.save"
	saveInstanceMessageType  = "layout_editor.instance.save"
	saveComponentMessageType = "layout_editor.component.save"
)

// SaveLayoutCommand persists a layout with its components' data.
type SaveLayoutCommand struct {
	Layout *domain.Layout `json:"layout"`
}

// Type implements command.Message.
func (SaveLayoutCommand) Type() string { return saveLayoutMessageType }

// Validate ensures a layout with an id is present.
func (m SaveLayoutCommand) Validate() error {
	errs := validation.Errors{}
	if m.Layout == nil {
		errs["layout"] = validation.NewError("layout_editor.layout.save.layout_required", "layout is required")
	} else if m.Layout.ID == "" {
		errs["layout"] = validation.NewError("layout_editor.layout.save.id_required", "layout id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveInstanceCommand persists instance content overrides.
type SaveInstanceCommand struct {
	Instance *domain.Instance `json:"instance"`
}

// Type implements command.Message.
func (SaveInstanceCommand) Type() string { return saveInstanceMessageType }

// Validate ensures the instance carries its ids and a valid status.
func (m SaveInstanceCommand) Validate() error {
	errs := validation.Errors{}
	if m.Instance == nil {
		errs["instance"] = validation.NewError("layout_editor.instance.save.instance_required", "instance is required")
	} else {
		if m.Instance.ID == "" {
			errs["instance"] = validation.NewError("layout_editor.instance.save.id_required", "instance id is required")
		}
		if m.Instance.PageID == "" {
			errs["page_id"] = validation.NewError("layout_editor.instance.save.page_required", "page id is required")
		}
		if m.Instance.Status != "" && !m.Instance.Status.Valid() {
			errs["status"] = validation.NewError("layout_editor.instance.save.status_invalid", "status must be draft, published or archived")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveComponentCommand persists an authored component definition.
type SaveComponentCommand struct {
	Component domain.Component `json:"component"`
}

// Type implements command.Message.
func (SaveComponentCommand) Type() string { return saveComponentMessageType }

// Validate ensures the component carries a name and a well-formed schema.
func (m SaveComponentCommand) Validate() error {
	errs := validation.Errors{}
	if m.Component.Name == "" {
		errs["name"] = validation.NewError("layout_editor.component.save.name_required", "component name is required")
	}
	if len(m.Component.Fields) == 0 {
		errs["fields"] = validation.NewError("layout_editor.component.save.fields_required", "component must define at least one field")
	} else if issues := schema.ValidateFields(m.Component.Fields); len(issues) > 0 {
		errs["fields"] = validation.NewError("layout_editor.component.save.fields_invalid", issues[0].Message)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Backend is the persistence surface the save handlers use; *api.Client
// implements it.
type Backend interface {
	UpdateLayout(ctx context.Context, layout *domain.Layout) (*domain.Layout, error)
	UpdateInstance(ctx context.Context, instance *domain.Instance) (*domain.Instance, error)
	CreateComponent(ctx context.Context, component domain.Component) (*domain.Component, error)
	UpdateComponent(ctx context.Context, component domain.Component) (*domain.Component, error)
}

var _ Backend = (*api.Client)(nil)

// NewSaveLayoutHandler builds the layout save handler.
func NewSaveLayoutHandler(backend Backend, opts ...commands.HandlerOption[SaveLayoutCommand]) *commands.Handler[SaveLayoutCommand] {
	fn := command.CommandFunc[SaveLayoutCommand](func(ctx context.Context, msg SaveLayoutCommand) error {
		_, err := backend.UpdateLayout(ctx, msg.Layout)
		return err
	})
	return commands.NewHandler(fn, opts...)
}

// NewSaveInstanceHandler builds the instance save handler.
func NewSaveInstanceHandler(backend Backend, opts ...commands.HandlerOption[SaveInstanceCommand]) *commands.Handler[SaveInstanceCommand] {
	fn := command.CommandFunc[SaveInstanceCommand](func(ctx context.Context, msg SaveInstanceCommand) error {
		_, err := backend.UpdateInstance(ctx, msg.Instance)
		return err
	})
	return commands.NewHandler(fn, opts...)
}

// NewSaveComponentHandler builds the component save handler, creating the
// component when it has no id yet.
func NewSaveComponentHandler(backend Backend, opts ...commands.HandlerOption[SaveComponentCommand]) *commands.Handler[SaveComponentCommand] {
	fn := command.CommandFunc[SaveComponentCommand](func(ctx context.Context, msg SaveComponentCommand) error {
		if msg.Component.ID == "" {
			_, err := backend.CreateComponent(ctx, msg.Component)
			return err
		}
		_, err := backend.UpdateComponent(ctx, msg.Component)
		return err
	})
	return commands.NewHandler(fn, opts...)
}
