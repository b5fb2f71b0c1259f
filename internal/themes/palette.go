// Package themes derives a website theme from a free-form business type.
package themes

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/website"
)

type entry struct {
	keywords []string
	theme    website.Theme
}

// table is scanned in order; the first entry with a keyword contained in the
// lowercased business type wins.
var table = []entry{
	{
		keywords: []string{"dental", "dentist", "orthodont"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#0ea5e9", Secondary: "#0369a1", Accent: "#22d3ee", Background: "#f8fafc", Text: "#0f172a"},
			Fonts:  website.ThemeFonts{Heading: "Poppins", Body: "Inter"},
		},
	},
	{
		keywords: []string{"medical", "clinic", "health", "doctor", "physio", "therap"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#0d9488", Secondary: "#115e59", Accent: "#5eead4", Background: "#ffffff", Text: "#134e4a"},
			Fonts:  website.ThemeFonts{Heading: "Nunito", Body: "Open Sans"},
		},
	},
	{
		keywords: []string{"restaurant", "cafe", "coffee", "bakery", "bistro", "food", "catering"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#b45309", Secondary: "#7c2d12", Accent: "#f59e0b", Background: "#fffbeb", Text: "#292524"},
			Fonts:  website.ThemeFonts{Heading: "Playfair Display", Body: "Lato"},
		},
	},
	{
		keywords: []string{"law", "legal", "attorney", "lawyer", "account", "consult", "finance"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#1e3a8a", Secondary: "#1e293b", Accent: "#c8a24a", Background: "#ffffff", Text: "#111827"},
			Fonts:  website.ThemeFonts{Heading: "Merriweather", Body: "Source Sans Pro"},
		},
	},
	{
		keywords: []string{"fitness", "gym", "yoga", "sport", "trainer", "crossfit"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#dc2626", Secondary: "#111827", Accent: "#facc15", Background: "#ffffff", Text: "#111827"},
			Fonts:  website.ThemeFonts{Heading: "Oswald", Body: "Roboto"},
		},
	},
	{
		keywords: []string{"salon", "beauty", "spa", "hair", "nail", "barber"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#db2777", Secondary: "#831843", Accent: "#f9a8d4", Background: "#fdf2f8", Text: "#1f2937"},
			Fonts:  website.ThemeFonts{Heading: "Cormorant Garamond", Body: "Montserrat"},
		},
	},
	{
		keywords: []string{"tech", "software", "saas", "startup", "agency", "digital", "it "},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#6366f1", Secondary: "#312e81", Accent: "#22d3ee", Background: "#ffffff", Text: "#0f172a"},
			Fonts:  website.ThemeFonts{Heading: "Space Grotesk", Body: "Inter"},
		},
	},
	{
		keywords: []string{"real estate", "realty", "property", "construction", "builder", "architect"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#15803d", Secondary: "#14532d", Accent: "#eab308", Background: "#ffffff", Text: "#1c1917"},
			Fonts:  website.ThemeFonts{Heading: "Raleway", Body: "Source Sans Pro"},
		},
	},
	{
		keywords: []string{"photo", "studio", "gallery", "design", "wedding"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#18181b", Secondary: "#3f3f46", Accent: "#f97316", Background: "#fafafa", Text: "#18181b"},
			Fonts:  website.ThemeFonts{Heading: "DM Serif Display", Body: "DM Sans"},
		},
	},
	{
		keywords: []string{"school", "education", "tutor", "academy", "daycare"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#2563eb", Secondary: "#1e40af", Accent: "#f59e0b", Background: "#ffffff", Text: "#1e293b"},
			Fonts:  website.ThemeFonts{Heading: "Quicksand", Body: "Nunito"},
		},
	},
	{
		keywords: []string{"pet", "vet", "groom", "animal"},
		theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#ea580c", Secondary: "#9a3412", Accent: "#84cc16", Background: "#fff7ed", Text: "#292524"},
			Fonts:  website.ThemeFonts{Heading: "Fredoka", Body: "Nunito"},
		},
	},
}

var defaultTheme = website.Theme{
	Colors: website.ThemeColors{Primary: "#2563eb", Secondary: "#1e293b", Accent: "#f59e0b", Background: "#ffffff", Text: "#111827"},
	Fonts:  website.ThemeFonts{Heading: "Inter", Body: "Inter"},
}

// Default returns the theme used when no business category matches.
func Default() website.Theme {
	return defaultTheme
}

// ForBusinessType returns the theme for the first category whose keyword is a
// substring of businessType, or the default theme.
func ForBusinessType(businessType string) website.Theme {
	normalized := " " + strings.ToLower(strings.TrimSpace(businessType)) + " "
	if strings.TrimSpace(normalized) == "" {
		return defaultTheme
	}
	for _, candidate := range table {
		for _, keyword := range candidate.keywords {
			if strings.Contains(normalized, keyword) {
				return candidate.theme
			}
		}
	}
	return defaultTheme
}

// Categories lists the first keyword of every known category, in lookup order.
func Categories() []string {
	out := make([]string, 0, len(table))
	for _, candidate := range table {
		out = append(out, candidate.keywords[0])
	}
	return out
}
