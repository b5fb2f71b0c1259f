package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// newMarkdownEngine builds the goldmark engine used for long-form block text.
// Raw HTML in the source is escaped, never emitted.
func newMarkdownEngine(hardWraps bool) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if hardWraps {
		opts = append(opts, goldmark.WithRendererOptions(html.WithHardWraps()))
	}
	return goldmark.New(opts...)
}

func (r *Renderer) markdown(source string) (template.HTML, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
