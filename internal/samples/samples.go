package samples

import (
	"time"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/schema"
)

// Layout returns the seed layout rendered when the backend is unreachable
// and fallback samples are enabled. It exercises every field kind including
// a nested array so the editor surface stays usable offline.
func Layout() *domain.Layout {
	return &domain.Layout{
		ID:        "sample-layout",
		Name:      "Landing Page",
		Page:      "home",
		CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		IsActive:  true,
		Components: []domain.Component{
			heroComponent(),
			featureListComponent(),
		},
	}
}

// Components returns the seed component catalogue.
func Components() []domain.Component {
	return []domain.Component{heroComponent(), featureListComponent()}
}

// Folders returns the seed media folders.
func Folders() []domain.MediaFolder {
	return []domain.MediaFolder{
		{ID: "folder-brand", Name: "Brand"},
		{ID: "folder-products", Name: "Products"},
	}
}

// Files returns the seed media assets, optionally scoped to a folder.
func Files(folderID string) []domain.MediaAsset {
	assets := []domain.MediaAsset{
		{ID: "asset-logo", URL: "/media/brand/logo.png", Name: "logo.png", Type: domain.MediaImage, FolderID: "folder-brand"},
		{ID: "asset-hero", URL: "/media/brand/hero.jpg", Name: "hero.jpg", Type: domain.MediaImage, FolderID: "folder-brand"},
		{ID: "asset-widget", URL: "/media/products/widget.png", Name: "widget.png", Type: domain.MediaImage, FolderID: "folder-products"},
	}
	if folderID == "" {
		return assets
	}
	scoped := make([]domain.MediaAsset, 0, len(assets))
	for _, asset := range assets {
		if asset.FolderID == folderID {
			scoped = append(scoped, asset)
		}
	}
	return scoped
}

func heroComponent() domain.Component {
	fields := []schema.Field{
		{Name: "title", Label: "Title", Type: schema.KindText, FieldType: schema.KindText, Required: true},
		{Name: "subtitle", Label: "Subtitle", Type: schema.KindText, FieldType: schema.KindTextarea},
		{Name: "body", Label: "Body", Type: schema.KindRichText, FieldType: schema.KindRichText, ToolbarGroups: []string{"links", "formatting"}},
		{Name: "backgroundImage", Label: "Background Image", Type: schema.KindImage, FieldType: schema.KindImage},
		{Name: "showCta", Label: "Show CTA", Type: schema.KindBoolean, FieldType: schema.KindBoolean},
		{
			Name: "alignment", Label: "Alignment", Type: schema.KindSelect, FieldType: schema.KindSelect,
			Options: []schema.Option{
				{Label: "Left", Value: "left"},
				{Label: "Center", Value: "center"},
				{Label: "Right", Value: "right"},
			},
		},
	}

	data := schema.FieldValues{}
	for _, field := range fields {
		data[field.Name] = schema.NewEnvelope(field)
	}
	data["title"].Value = "Build pages without a deploy"
	data["alignment"].Value = "center"
	data["backgroundImage"] = schema.ImageEnvelope("/media/brand/hero.jpg")

	return domain.Component{
		ID:        "sample-hero",
		Name:      "Hero",
		FieldType: "text",
		Fields:    fields,
		Data:      data,
		IsActive:  true,
	}
}

func featureListComponent() domain.Component {
	itemFields := []schema.Field{
		{Name: "name", Label: "Name", Type: schema.KindText, FieldType: schema.KindText, Required: true},
		{Name: "description", Label: "Description", Type: schema.KindText, FieldType: schema.KindTextarea},
		{Name: "icon", Label: "Icon", Type: schema.KindImage, FieldType: schema.KindImage},
	}
	fields := []schema.Field{
		{Name: "heading", Label: "Heading", Type: schema.KindText, FieldType: schema.KindText},
		{Name: "maxVisible", Label: "Max Visible", Type: schema.KindNumber, FieldType: schema.KindNumber},
		{Name: "features", Label: "Features", Type: schema.KindArray, FieldType: schema.KindArray, Items: itemFields},
	}

	data := schema.FieldValues{}
	for _, field := range fields {
		data[field.Name] = schema.NewEnvelope(field)
	}
	data["heading"].Value = "Why teams pick us"

	first := schema.FieldValues{}
	for _, field := range itemFields {
		first[field.Name] = schema.NewEnvelope(field)
	}
	first["name"].Value = "Visual editing"
	data["features"].Value = []schema.FieldValues{first}

	return domain.Component{
		ID:        "sample-features",
		Name:      "Feature List",
		FieldType: "text",
		Fields:    fields,
		Data:      data,
		IsActive:  true,
	}
}
