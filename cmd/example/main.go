package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-layout-editor"
	"github.com/goliatone/go-layout-editor/internal/guard"
	"github.com/goliatone/go-layout-editor/internal/samples"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/internal/values"
)

// Demonstrates the editor runtime end to end against the seed layout: open a
// session, edit values, bind media, render the form model, fold fields into a
// repeatable group, and preview rich text. No backend is contacted.
func main() {
	ctx := context.Background()

	cfg := layouteditor.DefaultConfig()
	cfg.API.BaseURL = "https://cms.example.com"
	cfg.Features.RichText = true

	module, err := layouteditor.New(cfg)
	if err != nil {
		log.Fatalf("module: %v", err)
	}

	discard := guard.ConfirmerFunc(func(ctx context.Context) (guard.Decision, error) {
		return guard.DecisionDiscard, nil
	})

	editor, err := module.OpenLayout(ctx, samples.Layout(), nil, discard)
	if err != nil {
		log.Fatalf("open layout: %v", err)
	}
	defer editor.Teardown()

	session := editor.Session()

	// Edit the hero and bind a library asset to its background image.
	session.SetValue(values.Field("sample-hero", "title"), "Launch week")
	session.SetValue(values.Field("sample-hero", "subtitle"), "Everything ships on Friday.")
	session.BeginImageSelection(values.Field("sample-hero", "backgroundImage"))
	if err := session.BindMedia(samples.Files("folder-brand")[0]); err != nil {
		log.Fatalf("bind media: %v", err)
	}

	printJSON("hero form", editor.Form())

	// Grow the feature list; the new panel opens in the accordion.
	features := values.Field("sample-features", "features")
	index := session.AddArrayItem(features)
	item := features.Child(values.Index(index))
	session.SetValue(item.Child(values.Name("name")), "Autosave")
	session.SetValue(item.Child(values.Name("description")), "Saves every ten seconds while you type.")

	if err := session.SelectComponent("sample-features"); err != nil {
		log.Fatalf("select component: %v", err)
	}
	printJSON("feature list form", editor.Form())

	// A dirty session warns before navigation; the confirmer above discards.
	fmt.Printf("warn on exit: %v\n", editor.Guard().ShouldWarnOnExit())
	ok, err := editor.Guard().ConfirmLeave(ctx)
	if err != nil {
		log.Fatalf("confirm leave: %v", err)
	}
	fmt.Printf("navigation allowed: %v\n\n", ok)

	// Author a component: scalar fields folded into a repeatable link group.
	b := module.NewBuilder()
	b.SetName("Link List")
	for _, field := range []schema.Field{
		{Name: "heading", Type: schema.KindText, Required: true},
		{Name: "linkLabel", Type: schema.KindText},
		{Name: "linkUrl", Type: schema.KindText},
	} {
		if err := b.AddField(field); err != nil {
			log.Fatalf("add field: %v", err)
		}
	}
	if err := b.FoldGroup([]string{"linkLabel", "linkUrl"}, "links"); err != nil {
		log.Fatalf("fold group: %v", err)
	}
	component, err := b.Submit()
	if err != nil {
		log.Fatalf("submit component: %v", err)
	}
	printJSON("authored component", component)

	// Rich text preview with the formatting toolbar group enabled.
	html, err := module.RichText().Render("**Launch week** is ~~postponed~~ on.", []string{"formatting"})
	if err != nil {
		log.Fatalf("render rich text: %v", err)
	}
	fmt.Printf("rich text preview:\n%s\n", html)
}

func printJSON(label string, v any) {
	fmt.Printf("%s:\n", label)
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("encode %s: %v", label, err)
	}
	fmt.Println()
}
