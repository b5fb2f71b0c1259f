// Package render exports a website as a standalone HTML document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"

	"github.com/yuin/goldmark"

	"github.com/goliatone/go-sitebuilder/internal/themes"
	"github.com/goliatone/go-sitebuilder/website"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Option configures the renderer.
type Option func(*config)

type config struct {
	hardWraps bool
}

// WithHardWraps renders single newlines in markdown as line breaks.
func WithHardWraps(enabled bool) Option {
	return func(c *config) { c.hardWraps = enabled }
}

// Renderer turns websites into HTML pages.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the embedded templates.
func New(opts ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tmpl, err := template.New("website.html.tmpl").Funcs(template.FuncMap{
		"style": inlineStyle,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, md: newMarkdownEngine(cfg.hardWraps)}, nil
}

type pageView struct {
	Site   website.Website
	Theme  website.Theme
	Blocks []blockView
}

type blockView struct {
	website.ContentBlock
	Description template.HTML
	HTMLContent template.HTML
}

// Render produces the HTML document of site. Blocks render only the fields
// their variant supports.
func (r *Renderer) Render(site website.Website) ([]byte, error) {
	view := pageView{Site: site, Theme: site.Theme}
	if view.Theme.IsZero() {
		view.Theme = themes.ForBusinessType(site.BusinessType)
	}
	for _, block := range site.Blocks {
		if !block.Type.IsValid() {
			continue
		}
		block.Content = variantContent(block)
		entry := blockView{ContentBlock: block}
		var err error
		if website.RendersField(block.Type, "description") {
			if entry.Description, err = r.markdown(block.Content.Description); err != nil {
				return nil, err
			}
		}
		if website.RendersField(block.Type, "htmlContent") {
			if entry.HTMLContent, err = r.markdown(block.Content.HTMLContent); err != nil {
				return nil, err
			}
		}
		view.Blocks = append(view.Blocks, entry)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "website.html.tmpl", view); err != nil {
		return nil, fmt.Errorf("render: execute: %w", err)
	}
	return buf.Bytes(), nil
}

func variantContent(block website.ContentBlock) website.Content {
	content := block.Content.Clone()
	for _, field := range website.ContentFields() {
		if website.RendersField(block.Type, field) {
			continue
		}
		if cleared, err := content.With(field, nil); err == nil {
			content = cleared
		}
	}
	return content
}

// inlineStyle turns block styles into a CSS declaration list. Keys are
// expected in camelCase and values are escaped by html/template.
func inlineStyle(styles website.Styles) template.CSS {
	if len(styles) == 0 {
		return ""
	}
	keys := make([]string, 0, len(styles))
	for key := range styles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	for _, key := range keys {
		value := styles[key]
		if !safeCSSValue(value) {
			continue
		}
		buf.WriteString(kebab(key))
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("; ")
	}
	return template.CSS(bytes.TrimSpace(buf.Bytes()))
}
