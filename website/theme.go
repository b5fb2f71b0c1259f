package website

// Theme captures the palette and typography derived from a business type.
type Theme struct {
	Colors ThemeColors `json:"colors"`
	Fonts  ThemeFonts  `json:"fonts"`
}

// ThemeColors lists the palette slots used by every block renderer.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// ThemeFonts lists heading and body font families.
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// IsZero reports whether no palette or font has been assigned.
func (t Theme) IsZero() bool {
	return t == Theme{}
}
