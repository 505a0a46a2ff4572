package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/media"
)

type stubBrowser struct {
	folders []domain.MediaFolder
	files   map[string][]domain.MediaAsset
	err     error
}

func (s *stubBrowser) ListFolders(ctx context.Context) ([]domain.MediaFolder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.folders, nil
}

func (s *stubBrowser) ListFiles(ctx context.Context, folderID string) ([]domain.MediaAsset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.files[folderID], nil
}

func newStubBrowser() *stubBrowser {
	return &stubBrowser{
		folders: []domain.MediaFolder{
			{ID: "f1", Name: "Banners"},
			{ID: "f2", Name: "Icons"},
		},
		files: map[string][]domain.MediaAsset{
			"": {
				{ID: "a1", Name: "zebra.png", URL: "/media/zebra.png"},
				{ID: "a2", Name: "apple.png", URL: "/media/apple.png"},
				{ID: "a3", Name: "Mango.jpg", URL: "/media/mango.jpg"},
			},
			"f2": {
				{ID: "a4", Name: "arrow.svg", URL: "/media/arrow.svg"},
			},
		},
	}
}

func TestPickerOpenLoadsFlatView(t *testing.T) {
	picker := media.NewPicker(newStubBrowser())
	if err := picker.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := len(picker.Folders()); got != 2 {
		t.Fatalf("expected 2 folders, got %d", got)
	}
	files := picker.Files()
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	if files[0].Name != "Mango.jpg" || files[1].Name != "apple.png" || files[2].Name != "zebra.png" {
		t.Fatalf("files should be name-sorted: %+v", files)
	}
}

func TestPickerWithoutBrowser(t *testing.T) {
	picker := media.NewPicker(nil)
	if err := picker.Open(context.Background()); !errors.Is(err, media.ErrBrowserUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if err := picker.EnterFolder(context.Background(), "f1"); !errors.Is(err, media.ErrBrowserUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestPickerFolderNavigation(t *testing.T) {
	picker := media.NewPicker(newStubBrowser())
	if err := picker.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := picker.EnterFolder(context.Background(), "f2"); err != nil {
		t.Fatalf("enter folder: %v", err)
	}
	files := picker.Files()
	if len(files) != 1 || files[0].Name != "arrow.svg" {
		t.Fatalf("expected folder contents, got %+v", files)
	}

	if err := picker.ShowAll(context.Background()); err != nil {
		t.Fatalf("show all: %v", err)
	}
	if got := len(picker.Files()); got != 3 {
		t.Fatalf("expected flat view restored, got %d files", got)
	}
}

func TestPickerSearchIsCaseInsensitive(t *testing.T) {
	picker := media.NewPicker(newStubBrowser())
	if err := picker.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	picker.Search("MANGO")
	files := picker.Files()
	if len(files) != 1 || files[0].Name != "Mango.jpg" {
		t.Fatalf("expected case-insensitive match, got %+v", files)
	}
	picker.Search("")
	if got := len(picker.Files()); got != 3 {
		t.Fatalf("clearing search should restore listing, got %d", got)
	}
}

func TestPickerSelectionLifecycle(t *testing.T) {
	picker := media.NewPicker(newStubBrowser())
	if err := picker.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := picker.Confirm(); !errors.Is(err, media.ErrNothingSelected) {
		t.Fatalf("expected nothing-selected, got %v", err)
	}

	picker.Select(domain.MediaAsset{ID: "a1", Name: "zebra.png"})
	picker.Select(domain.MediaAsset{ID: "a2", Name: "apple.png"})
	selected, ok := picker.Selected()
	if !ok || selected.ID != "a2" {
		t.Fatalf("later selection should replace earlier, got %+v", selected)
	}

	chosen, err := picker.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if chosen.ID != "a2" {
		t.Fatalf("unexpected confirmed asset %+v", chosen)
	}
	if _, ok := picker.Selected(); ok {
		t.Fatalf("confirm should clear the selection")
	}
}

func TestPickerOpenResetsState(t *testing.T) {
	picker := media.NewPicker(newStubBrowser())
	if err := picker.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	picker.Search("apple")
	picker.Select(domain.MediaAsset{ID: "a2"})
	if err := picker.Open(context.Background()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, ok := picker.Selected(); ok {
		t.Fatalf("reopen should clear selection")
	}
	if got := len(picker.Files()); got != 3 {
		t.Fatalf("reopen should clear search, got %d files", got)
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		base, value, want string
	}{
		{"https://cms.example.com", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"https://cms.example.com/", "/media/a.png", "https://cms.example.com/media/a.png"},
		{"https://cms.example.com", "media/a.png", "https://cms.example.com/media/a.png"},
		{"https://cms.example.com", "   ", ""},
	}
	for _, tc := range cases {
		if got := media.ResolveURL(tc.base, tc.value); got != tc.want {
			t.Fatalf("ResolveURL(%q, %q) = %q, want %q", tc.base, tc.value, got, tc.want)
		}
	}
}
