package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// WebsiteCopy is the fixed-shape text produced for a new website.
type WebsiteCopy struct {
	Hero         HeroCopy         `json:"hero"`
	About        AboutCopy        `json:"about"`
	Services     ListCopy         `json:"services"`
	Features     ListCopy         `json:"features"`
	Testimonials TestimonialsCopy `json:"testimonials"`
	Contact      ContactCopy      `json:"contact"`
	CTA          CTACopy          `json:"cta"`
}

type HeroCopy struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
}

type AboutCopy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListCopy struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Items    []ItemCopy `json:"items"`
}

type ItemCopy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TestimonialsCopy struct {
	Title string            `json:"title"`
	Items []TestimonialCopy `json:"items"`
}

type TestimonialCopy struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Quote string `json:"quote"`
}

type ContactCopy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CTACopy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
}

func textObject(required ...string) map[string]any {
	props := map[string]any{}
	for _, name := range required {
		props[name] = map[string]any{"type": "string", "minLength": 1}
	}
	return map[string]any{"type": "object", "properties": props, "required": required}
}

func listObject(item map[string]any, required ...string) map[string]any {
	obj := textObject(required...)
	obj["properties"].(map[string]any)["items"] = map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    item,
	}
	obj["required"] = append(append([]string{}, required...), "items")
	return obj
}

var websiteCopySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"hero":         textObject("title", "subtitle", "buttonText"),
		"about":        textObject("title", "description"),
		"services":     listObject(textObject("title", "description"), "title"),
		"features":     listObject(textObject("title", "description"), "title"),
		"testimonials": listObject(textObject("name", "quote"), "title"),
		"contact":      textObject("title", "description"),
		"cta":          textObject("title", "description", "buttonText"),
	},
	"required": []string{"hero", "about", "services", "features", "contact", "cta"},
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

func websiteCopyValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		encoded, err := json.Marshal(websiteCopySchema)
		if err != nil {
			compileErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("website-copy.json", bytes.NewReader(encoded)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile("website-copy.json")
	})
	return compiled, compileErr
}

// ParseWebsiteCopy validates raw provider output against the copy schema and
// decodes it. Any deviation is reported as ErrMalformedJSON.
func ParseWebsiteCopy(raw string) (WebsiteCopy, error) {
	var generic any
	if err := json.Unmarshal([]byte(stripFences(raw)), &generic); err != nil {
		return WebsiteCopy{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	schema, err := websiteCopyValidator()
	if err != nil {
		return WebsiteCopy{}, err
	}
	if err := schema.Validate(generic); err != nil {
		return WebsiteCopy{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	var out WebsiteCopy
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return WebsiteCopy{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return out, nil
}
