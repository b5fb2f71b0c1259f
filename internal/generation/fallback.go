package generation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitebuilder/website"
)

// Regenerable banner fields.
const (
	FieldTagline  = "tagline"
	FieldHeadline = "headline"
	FieldSubtext  = "subtext"
)

// IsRegenerableField reports whether RegenerateField supports name.
func IsRegenerableField(name string) bool {
	switch name {
	case FieldTagline, FieldHeadline, FieldSubtext:
		return true
	}
	return false
}

type profileText struct {
	name     string
	kind     string
	location string
}

func describe(profile website.BusinessProfile) profileText {
	p := profile.Normalized()
	out := profileText{name: p.Name, kind: strings.ToLower(p.Type), location: p.Location}
	if out.name == "" {
		out.name = "Our Business"
	}
	if out.kind == "" {
		out.kind = "local"
	}
	if out.location == "" {
		out.location = "your area"
	}
	return out
}

// FallbackCopy builds the deterministic website copy used whenever the
// provider fails or returns unusable output.
func FallbackCopy(profile website.BusinessProfile) WebsiteCopy {
	p := describe(profile)
	return WebsiteCopy{
		Hero: HeroCopy{
			Title:      fmt.Sprintf("Welcome to %s", p.name),
			Subtitle:   fmt.Sprintf("Trusted %s services in %s", p.kind, p.location),
			ButtonText: "Get Started",
		},
		About: AboutCopy{
			Title: fmt.Sprintf("About %s", p.name),
			Description: fmt.Sprintf("%s is a %s business based in %s. We are dedicated to providing exceptional service and building lasting relationships with every client we serve.",
				p.name, p.kind, p.location),
		},
		Services: ListCopy{
			Title:    "Our Services",
			Subtitle: fmt.Sprintf("What %s can do for you", p.name),
			Items: []ItemCopy{
				{Title: "Consultation", Description: fmt.Sprintf("Talk to our %s team about your needs and goals.", p.kind)},
				{Title: "Professional Service", Description: fmt.Sprintf("Quality %s work delivered with care and attention to detail.", p.kind)},
				{Title: "Ongoing Support", Description: "We stay with you after the job is done to make sure you are satisfied."},
			},
		},
		Features: ListCopy{
			Title:    fmt.Sprintf("Why Choose %s", p.name),
			Subtitle: "What sets us apart",
			Items: []ItemCopy{
				{Title: "Experienced Team", Description: "Skilled professionals with years of hands-on experience."},
				{Title: "Customer Focused", Description: "Every decision starts with what is best for you."},
				{Title: fmt.Sprintf("Local to %s", p.location), Description: fmt.Sprintf("Proudly serving the %s community.", p.location)},
			},
		},
		Testimonials: TestimonialsCopy{
			Title: "What Our Clients Say",
			Items: []TestimonialCopy{
				{Name: "Sarah M.", Role: "Customer", Quote: fmt.Sprintf("%s exceeded my expectations. Highly recommended!", p.name)},
				{Name: "James R.", Role: "Customer", Quote: "Professional, friendly and reliable from start to finish."},
				{Name: "Emily K.", Role: "Customer", Quote: fmt.Sprintf("The best %s experience I have had in %s.", p.kind, p.location)},
			},
		},
		Contact: ContactCopy{
			Title:       fmt.Sprintf("Contact %s", p.name),
			Description: fmt.Sprintf("Visit us in %s or send us a message and we will get back to you shortly.", p.location),
		},
		CTA: CTACopy{
			Title:       "Ready to Get Started?",
			Description: fmt.Sprintf("Reach out to %s today and see the difference.", p.name),
			ButtonText:  "Contact Us",
		},
	}
}

// FallbackField returns the canned sentence for a regenerable banner field.
func FallbackField(field string, profile website.BusinessProfile) string {
	p := describe(profile)
	switch field {
	case FieldTagline:
		return fmt.Sprintf("Quality %s in %s", p.kind, p.location)
	case FieldHeadline:
		return fmt.Sprintf("Discover %s", p.name)
	case FieldSubtext:
		return fmt.Sprintf("Serving %s with dedication and care.", p.location)
	default:
		return ""
	}
}
