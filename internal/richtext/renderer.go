package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns rich text field values into preview HTML using the goldmark
// engine. The renderer is stateless so a single instance can serve every
// field without locking.
type Renderer struct {
	hardWraps bool
	unsafe    bool
}

// Options configures rendering behaviour.
type Options struct {
	// HardWraps renders single newlines as <br>.
	HardWraps bool
	// AllowRawHTML passes authored HTML through instead of escaping it.
	AllowRawHTML bool
}

// NewRenderer constructs a renderer.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		hardWraps: opts.HardWraps,
		unsafe:    opts.AllowRawHTML,
	}
}

// Render converts a rich text value into HTML, enabling only the extensions
// implied by the field's toolbar groups so the preview matches what the
// editing surface offers.
func (r *Renderer) Render(value string, toolbarGroups []string) (string, error) {
	engine := r.engine(toolbarGroups)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(value), &buf); err != nil {
		return "", fmt.Errorf("richtext render: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) engine(toolbarGroups []string) goldmark.Markdown {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}
	if r.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if r.unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(toolbarGroups); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

// toolbarRegistry maps toolbar group names to the goldmark extensions that
// back them. Unknown groups are ignored.
var toolbarRegistry = map[string][]goldmark.Extender{
	"links":      {extension.Linkify},
	"tables":     {extension.Table},
	"lists":      {extension.TaskList},
	"formatting": {extension.Strikethrough},
	"footnotes":  {extension.Footnote},
}

func collectExtensions(toolbarGroups []string) []goldmark.Extender {
	if len(toolbarGroups) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, group := range toolbarGroups {
		key := strings.ToLower(strings.TrimSpace(group))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, toolbarRegistry[key]...)
	}
	return extenders
}
