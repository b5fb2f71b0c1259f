package website

import "strings"

// BusinessProfile is the onboarding-captured description of the user's business.
type BusinessProfile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

// Normalized trims surrounding whitespace from every field.
func (p BusinessProfile) Normalized() BusinessProfile {
	return BusinessProfile{
		Name:        strings.TrimSpace(p.Name),
		Type:        strings.TrimSpace(p.Type),
		Location:    strings.TrimSpace(p.Location),
		Description: strings.TrimSpace(p.Description),
	}
}
