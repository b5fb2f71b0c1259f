package website

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

var (
	ErrUnknownContentField = errors.New("website: unknown content field")
	ErrInvalidContentValue = errors.New("website: content value does not match field type")
)

// Content is the variant-dependent payload of a block. Every field is optional;
// renderers ignore fields that do not belong to a block's variant.
type Content struct {
	Title           string          `json:"title,omitempty"`
	Subtitle        string          `json:"subtitle,omitempty"`
	Description     string          `json:"description,omitempty"`
	ButtonText      string          `json:"buttonText,omitempty"`
	ButtonLink      string          `json:"buttonLink,omitempty"`
	BackgroundImage string          `json:"backgroundImage,omitempty"`
	Image           string          `json:"image,omitempty"`
	Images          []string        `json:"images,omitempty"`
	Services        []ServiceItem   `json:"services,omitempty"`
	Features        []FeatureItem   `json:"features,omitempty"`
	Testimonials    []Testimonial   `json:"testimonials,omitempty"`
	Slides          []Slide         `json:"slides,omitempty"`
	Address         string          `json:"address,omitempty"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	FormFields      []FormField     `json:"formFields,omitempty"`
	Hours           []BusinessHours `json:"hours,omitempty"`
	SocialLinks     []SocialLink    `json:"socialLinks,omitempty"`
	HTMLContent     string          `json:"htmlContent,omitempty"`
	Tagline         string          `json:"tagline,omitempty"`
	Headline        string          `json:"headline,omitempty"`
	Subtext         string          `json:"subtext,omitempty"`
}

// ServiceItem is a single offering listed by a services block.
type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// FeatureItem is a single selling point listed by a features block.
type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Slide is one frame of a gallery carousel.
type Slide struct {
	Image    string `json:"image"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

// FormField describes an input rendered by a contact form.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

// BusinessHours is an opening-hours row.
type BusinessHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// SocialLink points at a social profile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

var contentFields = collectContentFields()

func collectContentFields() map[string]struct{} {
	fields := map[string]struct{}{}
	typ := reflect.TypeOf(Content{})
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			fields[name] = struct{}{}
		}
	}
	return fields
}

// ContentFields lists the JSON names of every content field, sorted.
func ContentFields() []string {
	out := make([]string, 0, len(contentFields))
	for name := range contentFields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsContentField reports whether name is a known content field.
func IsContentField(name string) bool {
	_, ok := contentFields[name]
	return ok
}

// With returns a copy of the content with field replaced by value. The value
// must be JSON-compatible with the field (a string for text fields, a list of
// objects for list fields). A nil value clears the field.
func (c Content) With(field string, value any) (Content, error) {
	field = strings.TrimSpace(field)
	if !IsContentField(field) {
		return c, fmt.Errorf("%w: %q", ErrUnknownContentField, field)
	}

	current, err := json.Marshal(c)
	if err != nil {
		return c, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return c, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrInvalidContentValue, field, err)
	}
	fields[field] = encoded

	merged, err := json.Marshal(fields)
	if err != nil {
		return c, err
	}
	var out Content
	if err := json.Unmarshal(merged, &out); err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrInvalidContentValue, field, err)
	}
	return out, nil
}

// Clone copies every list so the result shares no backing arrays with c.
func (c Content) Clone() Content {
	out := c
	out.Images = cloneSlice(c.Images)
	out.Services = cloneSlice(c.Services)
	out.Features = cloneSlice(c.Features)
	out.Testimonials = cloneSlice(c.Testimonials)
	out.Slides = cloneSlice(c.Slides)
	out.FormFields = cloneSlice(c.FormFields)
	out.Hours = cloneSlice(c.Hours)
	out.SocialLinks = cloneSlice(c.SocialLinks)
	return out
}

func cloneSlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// variantFields lists the content fields each block variant renders.
var variantFields = map[BlockType][]string{
	BlockHero:         {"title", "subtitle", "description", "buttonText", "buttonLink", "backgroundImage", "image"},
	BlockAbout:        {"title", "description", "image", "htmlContent"},
	BlockServices:     {"title", "subtitle", "services"},
	BlockFeatures:     {"title", "subtitle", "features"},
	BlockTestimonials: {"title", "testimonials"},
	BlockContact:      {"title", "description", "address", "email", "phone", "formFields", "hours", "socialLinks"},
	BlockCTA:          {"title", "description", "buttonText", "buttonLink", "backgroundImage"},
	BlockGallery:      {"title", "subtitle", "images", "slides"},
	BlockBannerGrid:   {"tagline", "headline", "subtext", "buttonText", "images"},
}

// VariantFields returns the content fields rendered for a block type.
func VariantFields(t BlockType) []string {
	return append([]string(nil), variantFields[t]...)
}

// RendersField reports whether the block type renders the named field.
func RendersField(t BlockType, field string) bool {
	for _, name := range variantFields[t] {
		if name == field {
			return true
		}
	}
	return false
}
