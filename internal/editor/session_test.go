package editor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/editor"
	"github.com/goliatone/go-layout-editor/internal/form"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
)

func testLayout() *domain.Layout {
	return &domain.Layout{
		ID:   "layout-1",
		Name: "Landing",
		Components: []domain.Component{
			{
				ID:   "hero",
				Name: "Hero",
				Fields: []schema.Field{
					{Name: "title", Type: schema.KindText, Default: "Layout Title"},
					{Name: "banner", Type: schema.KindImage},
				},
			},
			{
				ID:   "features",
				Name: "Feature List",
				Fields: []schema.Field{
					{Name: "items", Type: schema.KindArray, Items: []schema.Field{
						{Name: "name", Type: schema.KindText},
						{Name: "icon", Type: schema.KindImage},
					}},
				},
			},
		},
	}
}

func TestNewSessionRequiresLayout(t *testing.T) {
	if _, err := editor.NewSession(nil, nil); !errors.Is(err, editor.ErrLayoutRequired) {
		t.Fatalf("expected layout-required, got %v", err)
	}
}

func TestNewSessionSelectsFirstComponent(t *testing.T) {
	session, err := editor.NewSession(testLayout(), nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	component, ok := session.SelectedComponent()
	if !ok || component.ID != "hero" {
		t.Fatalf("expected hero selected, got %+v", component)
	}
	if session.Tree()["hero"]["title"].Value != "Layout Title" {
		t.Fatalf("tree should seed from schema defaults")
	}
}

func TestSelectComponent(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	if err := session.SelectComponent("features"); err != nil {
		t.Fatalf("select: %v", err)
	}
	component, _ := session.SelectedComponent()
	if component.ID != "features" {
		t.Fatalf("selection did not switch: %+v", component)
	}
	if err := session.SelectComponent("ghost"); !errors.Is(err, editor.ErrComponentNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSetValueMarksDirty(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	if session.Dirty() {
		t.Fatalf("fresh session must be clean")
	}
	session.SetValue(values.Field("hero", "title"), "Edited")
	if !session.Dirty() {
		t.Fatalf("write should mark dirty")
	}
	if session.Tree()["hero"]["title"].Value != "Edited" {
		t.Fatalf("value not written")
	}
}

func TestAddArrayItemOpensOnlyNewPanel(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	path := values.Field("features", "items")

	if index := session.AddArrayItem(path); index != 0 {
		t.Fatalf("expected index 0, got %d", index)
	}
	if got := session.ActivePanel(path.String()); got != "features.items.0" {
		t.Fatalf("new panel should open, got %q", got)
	}

	if index := session.AddArrayItem(path); index != 1 {
		t.Fatalf("expected index 1, got %d", index)
	}
	if got := session.ActivePanel(path.String()); got != "features.items.1" {
		t.Fatalf("only the latest panel stays open, got %q", got)
	}
}

func TestAddArrayItemRefusedOnBadPath(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	if index := session.AddArrayItem(values.Field("hero", "title")); index != -1 {
		t.Fatalf("scalar path should refuse insertion, got %d", index)
	}
	if session.Dirty() {
		t.Fatalf("refused insert must not dirty the session")
	}
}

func TestRemoveArrayItemCollapsesPanels(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	path := values.Field("features", "items")
	session.AddArrayItem(path)
	session.AddArrayItem(path)

	session.RemoveArrayItem(path, 0)
	if got := session.ActivePanel(path.String()); got != "" {
		t.Fatalf("removal should collapse the accordion, got %q", got)
	}
	if got := len(session.GetArray(path)); got != 1 {
		t.Fatalf("expected one remaining item, got %d", got)
	}

	before := session.ActivePanel(path.String())
	session.RemoveArrayItem(path, 9)
	if session.ActivePanel(path.String()) != before {
		t.Fatalf("out-of-range removal must not touch accordion state")
	}
}

func TestTogglePanelSingleOpen(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	path := values.Field("features", "items")

	session.TogglePanel(path, "features.items.0")
	if got := session.ActivePanel(path.String()); got != "features.items.0" {
		t.Fatalf("panel should open, got %q", got)
	}

	session.TogglePanel(path, "features.items.1")
	if got := session.ActivePanel(path.String()); got != "features.items.1" {
		t.Fatalf("opening a sibling should replace, got %q", got)
	}

	session.TogglePanel(path, "features.items.1")
	if got := session.ActivePanel(path.String()); got != "" {
		t.Fatalf("re-toggle should collapse, got %q", got)
	}
}

func TestBindMediaWritesPendingImageField(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)

	if err := session.BindMedia(domain.MediaAsset{URL: "/media/x.png"}); !errors.Is(err, editor.ErrNoPendingImageField) {
		t.Fatalf("expected no-pending error, got %v", err)
	}

	session.AddArrayItem(values.Field("features", "items"))
	nested := values.Field("features", "items").Child(values.Index(0)).Child(values.Name("icon"))
	session.BeginImageSelection(nested)
	if _, ok := session.PendingImagePath(); !ok {
		t.Fatalf("pending path should be recorded")
	}

	if err := session.BindMedia(domain.MediaAsset{URL: "/media/icon.png"}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, ok := session.PendingImagePath(); ok {
		t.Fatalf("binding should clear the pending path")
	}

	item := session.GetArray(values.Field("features", "items"))[0]
	icon := item["icon"]
	if icon.Value != "/media/icon.png" || icon.Type != schema.KindImage || icon.FieldType != schema.KindImage {
		t.Fatalf("bound envelope drifted: %+v", icon)
	}
}

func TestRemoveImageClearsValue(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	path := values.Field("hero", "banner")
	session.BeginImageSelection(path)
	if err := session.BindMedia(domain.MediaAsset{URL: "/media/banner.png"}); err != nil {
		t.Fatalf("bind: %v", err)
	}

	session.RemoveImage(path)
	banner := session.Tree()["hero"]["banner"]
	if banner.Value != "" || banner.Type != schema.KindImage || banner.FieldType != schema.KindImage {
		t.Fatalf("cleared image should keep its markers: %+v", banner)
	}
}

func TestMarkAssetBroken(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	if session.AssetBroken("/media/x.png") {
		t.Fatalf("fresh session has no broken assets")
	}
	session.MarkAssetBroken("/media/x.png")
	if !session.AssetBroken("/media/x.png") {
		t.Fatalf("mark should persist")
	}
}

func TestClearDirtyRecordsSaveTime(t *testing.T) {
	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	session, _ := editor.NewSession(testLayout(), nil, editor.WithClock(func() time.Time { return at }))

	session.SetValue(values.Field("hero", "title"), "Edited")
	session.ClearDirty()
	if session.Dirty() {
		t.Fatalf("clear should reset dirty")
	}
	if !session.LastSavedAt().Equal(at) {
		t.Fatalf("expected save time %v, got %v", at, session.LastSavedAt())
	}
}

func TestBindInstanceReinitialisesTree(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	session.SetValue(values.Field("hero", "title"), "Local Edit")
	session.TogglePanel(values.Field("features", "items"), "features.items.0")

	instance := &domain.Instance{
		ID:       "inst-1",
		LayoutID: "layout-1",
		Content: map[string]schema.FieldValues{
			"hero": {"title": {Value: "Instance Title", Type: schema.KindText, FieldType: schema.KindText}},
		},
	}
	session.BindInstance(instance)

	if session.Instance() == nil || session.Instance().ID != "inst-1" {
		t.Fatalf("instance not bound")
	}
	if session.Tree()["hero"]["title"].Value != "Instance Title" {
		t.Fatalf("tree should adopt instance overrides, got %v", session.Tree()["hero"]["title"].Value)
	}
	if session.Dirty() {
		t.Fatalf("binding resets the dirty flag")
	}
	if got := session.ActivePanel("features.items"); got != "" {
		t.Fatalf("binding resets accordion state, got %q", got)
	}

	session.BindInstance(nil)
	if session.Instance() != nil {
		t.Fatalf("nil bind returns to layout-default editing")
	}
	if session.Tree()["hero"]["title"].Value != "Layout Title" {
		t.Fatalf("layout defaults should return, got %v", session.Tree()["hero"]["title"].Value)
	}
}

func TestFormRendersSelectedComponent(t *testing.T) {
	session, _ := editor.NewSession(testLayout(), nil)
	out := session.Form(form.NewRenderer())
	if out.ComponentID != "hero" || len(out.Inputs) != 2 {
		t.Fatalf("unexpected form %+v", out)
	}
}
