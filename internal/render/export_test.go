package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/themes"
	"github.com/goliatone/go-sitebuilder/website"
)

func sampleSite() website.Website {
	return website.Website{
		ID:           "site-1",
		Title:        "Pinewood Dental",
		BusinessName: "Pinewood Dental",
		BusinessType: "dental",
		Location:     "Austin, TX",
		Theme:        themes.ForBusinessType("dental"),
		Blocks: []website.ContentBlock{
			{
				ID:   "hero",
				Type: website.BlockHero,
				Content: website.Content{
					Title:      "Welcome to <Pinewood>",
					ButtonText: "Book now",
				},
				Styles: website.Styles{"textAlign": "center", "backgroundColor": "red;} body{display:none"},
			},
			{
				ID:   "about",
				Type: website.BlockAbout,
				Content: website.Content{
					Title:       "About us",
					Description: "We are **gentle**.\n\n<script>alert(1)</script>",
				},
			},
			{
				ID:   "banner",
				Type: website.BlockBannerGrid,
				Content: website.Content{
					Headline: "Discover Pinewood",
					Title:    "Hidden title",
					Images:   []string{"https://img.test/1", "https://img.test/2"},
				},
			},
		},
	}
}

func renderHTML(t *testing.T, site website.Website) string {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(site)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderIncludesThemeAndBlocks(t *testing.T) {
	html := renderHTML(t, sampleSite())
	theme := themes.ForBusinessType("dental")

	for _, want := range []string{
		"<title>Pinewood Dental</title>",
		theme.Colors.Primary,
		theme.Fonts.Heading,
		`id="hero"`,
		"Welcome to &lt;Pinewood&gt;",
		"<strong>gentle</strong>",
		"Discover Pinewood",
		`src="https://img.test/2"`,
		"text-align: center",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRenderEscapesUnsafeInput(t *testing.T) {
	html := renderHTML(t, sampleSite())
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("raw html from markdown was emitted")
	}
	if strings.Contains(html, "display:none") {
		t.Fatalf("unsafe style value was emitted")
	}
}

func TestRenderSkipsFieldsOutsideVariant(t *testing.T) {
	html := renderHTML(t, sampleSite())
	if strings.Contains(html, "Hidden title") {
		t.Fatalf("banner-grid rendered a title it does not support")
	}
}

func TestRenderFallsBackToDerivedTheme(t *testing.T) {
	site := sampleSite()
	site.Theme = website.Theme{}
	html := renderHTML(t, site)
	if !strings.Contains(html, themes.ForBusinessType("dental").Colors.Primary) {
		t.Fatalf("expected derived theme colors")
	}
}
