package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitebuilder/website"
)

const systemInstruction = "You are a professional website copywriter. Respond with a single valid JSON object only. Do not include markdown, code fences or commentary."

func websitePrompt(profile website.BusinessProfile) string {
	p := profile.Normalized()
	var b strings.Builder
	fmt.Fprintf(&b, "Write website copy for %q, a %s business located in %s.\n", p.Name, p.Type, p.Location)
	if p.Description != "" {
		fmt.Fprintf(&b, "Business description: %s\n", p.Description)
	}
	b.WriteString(`Return JSON with this exact shape:
{
  "hero": {"title": "", "subtitle": "", "buttonText": ""},
  "about": {"title": "", "description": ""},
  "services": {"title": "", "subtitle": "", "items": [{"title": "", "description": ""}]},
  "features": {"title": "", "subtitle": "", "items": [{"title": "", "description": ""}]},
  "testimonials": {"title": "", "items": [{"name": "", "role": "", "quote": ""}]},
  "contact": {"title": "", "description": ""},
  "cta": {"title": "", "description": "", "buttonText": ""}
}
Provide exactly three services, three features and three testimonials.`)
	return b.String()
}

func fieldPrompt(field string, profile website.BusinessProfile) string {
	p := profile.Normalized()
	guidance := map[string]string{
		FieldTagline:  "a short tagline of at most six words",
		FieldHeadline: "a bold headline of at most ten words",
		FieldSubtext:  "one supporting sentence of at most twenty words",
	}[field]
	return fmt.Sprintf("Write %s for the banner of %q, a %s business in %s. Return JSON: {\"text\": \"...\"}",
		guidance, p.Name, p.Type, p.Location)
}

func blockPrompt(block website.ContentBlock, profile website.BusinessProfile) string {
	p := profile.Normalized()
	current, _ := json.Marshal(block.Content)
	return fmt.Sprintf("Rewrite the %s section of the website for %q, a %s business in %s. Current content: %s\n"+
		"Return JSON using only these keys: %s. Keep image URLs unchanged.",
		block.Type, p.Name, p.Type, p.Location, current, strings.Join(website.VariantFields(block.Type), ", "))
}

func customPrompt(prompt string, businessInfo map[string]any) string {
	if len(businessInfo) == 0 {
		return prompt
	}
	info, err := json.Marshal(businessInfo)
	if err != nil {
		return prompt
	}
	return fmt.Sprintf("%s\n\nBusiness information: %s", prompt, info)
}

// stripFences removes a surrounding markdown code fence some models emit
// despite instructions.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		trimmed = trimmed[nl+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
