// Package catalog is the static registry of sections a user can add to a website.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/website"
)

var (
	ErrUnknownSection      = errors.New("catalog: unknown section")
	ErrImageSourceRequired = errors.New("catalog: image source required")
)

// Category groups related sections in the add-section panel.
type Category struct {
	Key         string    `json:"key"`
	DisplayName string    `json:"displayName"`
	Icon        string    `json:"icon"`
	Sections    []Section `json:"sections"`
}

// Section is a selectable archetype.
type Section struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	BlockType   website.BlockType `json:"blockType"`
}

// ImageSource resolves an image URL for a business and page role.
type ImageSource interface {
	ImageFor(ctx context.Context, businessType string, role imagery.Role, location string) (string, error)
}

type definition struct {
	Section
	category string
	roles    []imagery.Role
	styles   website.Styles
	content  func(p website.BusinessProfile, images []string) website.Content
}

var categoryOrder = []Category{
	{Key: "hero", DisplayName: "Hero", Icon: "layout"},
	{Key: "content", DisplayName: "Content", Icon: "file-text"},
	{Key: "services", DisplayName: "Services & Features", Icon: "briefcase"},
	{Key: "social-proof", DisplayName: "Social Proof", Icon: "message-circle"},
	{Key: "media", DisplayName: "Media", Icon: "image"},
	{Key: "contact", DisplayName: "Contact & Conversion", Icon: "mail"},
}

func imageAt(images []string, idx int) string {
	if idx < len(images) {
		return images[idx]
	}
	return ""
}

var definitions = []definition{
	{
		Section:  Section{ID: "hero-centered", Name: "Centered Hero", Description: "Full width background image with centered headline", Icon: "align-center", BlockType: website.BlockHero},
		category: "hero",
		roles:    []imagery.Role{imagery.RoleHero},
		styles:   website.Styles{"textAlign": "center", "padding": "6rem 1.5rem", "minHeight": "70vh"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			return website.Content{
				Title:           fmt.Sprintf("Welcome to %s", p.Name),
				Subtitle:        fmt.Sprintf("Trusted %s in %s", strings.ToLower(p.Type), p.Location),
				ButtonText:      "Get Started",
				ButtonLink:      "#contact",
				BackgroundImage: imageAt(images, 0),
			}
		},
	},
	{
		Section:  Section{ID: "hero-split", Name: "Split Hero", Description: "Headline on the left with an image on the right", Icon: "columns", BlockType: website.BlockHero},
		category: "hero",
		roles:    []imagery.Role{imagery.RoleHero},
		styles:   website.Styles{"textAlign": "left", "padding": "5rem 1.5rem", "layout": "split"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			return website.Content{
				Title:       p.Name,
				Subtitle:    fmt.Sprintf("Your local %s in %s", strings.ToLower(p.Type), p.Location),
				Description: p.Description,
				ButtonText:  "Learn More",
				ButtonLink:  "#about",
				Image:       imageAt(images, 0),
			}
		},
	},
	{
		Section:  Section{ID: "banner-grid", Name: "Banner Grid", Description: "Tagline and headline beside a three image mosaic", Icon: "grid", BlockType: website.BlockBannerGrid},
		category: "hero",
		roles:    []imagery.Role{imagery.RoleBanner, imagery.RoleBanner, imagery.RoleBanner},
		styles:   website.Styles{"padding": "4rem 1.5rem", "gridColumns": "3"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			return website.Content{
				Tagline:    fmt.Sprintf("Quality %s in %s", strings.ToLower(p.Type), p.Location),
				Headline:   fmt.Sprintf("Discover %s", p.Name),
				Subtext:    fmt.Sprintf("Serving %s with dedication and care.", p.Location),
				ButtonText: "Explore",
				Images:     append([]string(nil), images...),
			}
		},
	},
	{
		Section:  Section{ID: "about-story", Name: "Our Story", Description: "Text section telling the story of the business", Icon: "book-open", BlockType: website.BlockAbout},
		category: "content",
		styles:   website.Styles{"padding": "4rem 1.5rem", "textAlign": "left"},
		content: func(p website.BusinessProfile, _ []string) website.Content {
			description := p.Description
			if description == "" {
				description = fmt.Sprintf("%s has proudly served %s as a trusted %s business.", p.Name, p.Location, strings.ToLower(p.Type))
			}
			return website.Content{Title: fmt.Sprintf("About %s", p.Name), Description: description}
		},
	},
	{
		Section:  Section{ID: "about-image", Name: "Text with Image", Description: "About section with a supporting photo", Icon: "image", BlockType: website.BlockAbout},
		category: "content",
		roles:    []imagery.Role{imagery.RoleAbout},
		styles:   website.Styles{"padding": "4rem 1.5rem", "layout": "image-right"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			return website.Content{
				Title:       fmt.Sprintf("About %s", p.Name),
				Description: fmt.Sprintf("At %s we bring care and expertise to every %s project in %s.", p.Name, strings.ToLower(p.Type), p.Location),
				Image:       imageAt(images, 0),
			}
		},
	},
	{
		Section:  Section{ID: "services-grid", Name: "Services Grid", Description: "Three service cards with photos", Icon: "grid", BlockType: website.BlockServices},
		category: "services",
		roles:    []imagery.Role{imagery.RoleService1, imagery.RoleService2, imagery.RoleService3},
		styles:   website.Styles{"padding": "4rem 1.5rem", "gridColumns": "3"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			kind := strings.ToLower(p.Type)
			return website.Content{
				Title:    "Our Services",
				Subtitle: fmt.Sprintf("What %s offers", p.Name),
				Services: []website.ServiceItem{
					{Title: "Consultation", Description: fmt.Sprintf("Talk to our %s team about your needs.", kind), Image: imageAt(images, 0)},
					{Title: "Professional Service", Description: fmt.Sprintf("Quality %s work delivered with care.", kind), Image: imageAt(images, 1)},
					{Title: "Ongoing Support", Description: "We are here for you long after the job is done.", Image: imageAt(images, 2)},
				},
			}
		},
	},
	{
		Section:  Section{ID: "features-list", Name: "Features", Description: "Icon list of reasons to choose the business", Icon: "check-circle", BlockType: website.BlockFeatures},
		category: "services",
		styles:   website.Styles{"padding": "4rem 1.5rem", "gridColumns": "3"},
		content: func(p website.BusinessProfile, _ []string) website.Content {
			return website.Content{
				Title:    fmt.Sprintf("Why Choose %s", p.Name),
				Subtitle: "What sets us apart",
				Features: []website.FeatureItem{
					{Title: "Experienced Team", Description: "Skilled professionals you can rely on.", Icon: "award"},
					{Title: "Customer Focused", Description: "Your satisfaction comes first.", Icon: "heart"},
					{Title: fmt.Sprintf("Local to %s", p.Location), Description: "Proudly part of the community.", Icon: "map-pin"},
				},
			}
		},
	},
	{
		Section:  Section{ID: "testimonials-cards", Name: "Testimonials", Description: "Customer quotes in cards", Icon: "message-square", BlockType: website.BlockTestimonials},
		category: "social-proof",
		styles:   website.Styles{"padding": "4rem 1.5rem", "backgroundColor": "#f8fafc"},
		content: func(p website.BusinessProfile, _ []string) website.Content {
			return website.Content{
				Title: "What Our Clients Say",
				Testimonials: []website.Testimonial{
					{Name: "Sarah M.", Role: "Customer", Quote: fmt.Sprintf("%s exceeded my expectations.", p.Name), Rating: 5},
					{Name: "James R.", Role: "Customer", Quote: "Professional, friendly and reliable.", Rating: 5},
				},
			}
		},
	},
	{
		Section:  Section{ID: "gallery-grid", Name: "Photo Gallery", Description: "Grid of showcase photos", Icon: "image", BlockType: website.BlockGallery},
		category: "media",
		roles:    []imagery.Role{imagery.RoleGallery, imagery.RoleGallery, imagery.RoleGallery},
		styles:   website.Styles{"padding": "4rem 1.5rem", "gridColumns": "3"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			return website.Content{
				Title:    "Gallery",
				Subtitle: fmt.Sprintf("A look inside %s", p.Name),
				Images:   append([]string(nil), images...),
			}
		},
	},
	{
		Section:  Section{ID: "gallery-carousel", Name: "Carousel", Description: "Sliding showcase with captions", Icon: "film", BlockType: website.BlockGallery},
		category: "media",
		roles:    []imagery.Role{imagery.RoleGallery, imagery.RoleGallery},
		styles:   website.Styles{"padding": "0", "layout": "carousel"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			slides := make([]website.Slide, 0, len(images))
			for i, image := range images {
				slides = append(slides, website.Slide{Image: image, Title: fmt.Sprintf("%s %d", p.Name, i+1)})
			}
			return website.Content{Title: "Highlights", Slides: slides}
		},
	},
	{
		Section:  Section{ID: "contact-form", Name: "Contact Form", Description: "Contact details with an enquiry form", Icon: "mail", BlockType: website.BlockContact},
		category: "contact",
		styles:   website.Styles{"padding": "4rem 1.5rem"},
		content: func(p website.BusinessProfile, _ []string) website.Content {
			return website.Content{
				Title:       fmt.Sprintf("Contact %s", p.Name),
				Description: fmt.Sprintf("Visit us in %s or send us a message.", p.Location),
				Address:     p.Location,
				FormFields: []website.FormField{
					{Name: "name", Label: "Name", Type: "text", Required: true},
					{Name: "email", Label: "Email", Type: "email", Required: true},
					{Name: "message", Label: "Message", Type: "textarea", Required: true},
				},
				Hours: []website.BusinessHours{
					{Day: "Monday - Friday", Hours: "9:00 - 17:00"},
					{Day: "Saturday", Hours: "10:00 - 14:00"},
				},
			}
		},
	},
	{
		Section:  Section{ID: "cta-banner", Name: "Call to Action", Description: "Bold banner with a single action", Icon: "zap", BlockType: website.BlockCTA},
		category: "contact",
		roles:    []imagery.Role{imagery.RoleCTA},
		styles:   website.Styles{"padding": "5rem 1.5rem", "textAlign": "center"},
		content: func(p website.BusinessProfile, images []string) website.Content {
			return website.Content{
				Title:           "Ready to Get Started?",
				Description:     fmt.Sprintf("Reach out to %s today.", p.Name),
				ButtonText:      "Contact Us",
				ButtonLink:      "#contact",
				BackgroundImage: imageAt(images, 0),
			}
		},
	},
}

func lookup(sectionID string) (definition, bool) {
	for _, def := range definitions {
		if def.ID == sectionID {
			return def, true
		}
	}
	return definition{}, false
}

// Catalog serves categories and builds default block payloads.
type Catalog struct {
	images ImageSource
}

// New constructs a catalog. images may be nil when no section needing photos
// will be instantiated.
func New(images ImageSource) *Catalog {
	return &Catalog{images: images}
}

// ListCategories returns every category with its sections, in display order.
func (c *Catalog) ListCategories() []Category {
	return FilterByQuery("")
}

// FilterByQuery keeps sections whose name or description contains query,
// ignoring case, and drops categories left empty.
func FilterByQuery(query string) []Category {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Category, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		entry := category
		entry.Sections = []Section{}
		for _, def := range definitions {
			if def.category != category.Key {
				continue
			}
			if needle != "" &&
				!strings.Contains(strings.ToLower(def.Name), needle) &&
				!strings.Contains(strings.ToLower(def.Description), needle) {
				continue
			}
			entry.Sections = append(entry.Sections, def.Section)
		}
		if len(entry.Sections) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

// MapSectionToBlockType returns the block type a section produces.
func MapSectionToBlockType(sectionID string) (website.BlockType, error) {
	def, ok := lookup(sectionID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	return def.BlockType, nil
}

// CreateDefaultStyles returns a fresh copy of the section's default styles.
func CreateDefaultStyles(sectionID string) (website.Styles, error) {
	def, ok := lookup(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	return def.styles.Clone(), nil
}

// CreateDefaultContent builds the section's default content for profile,
// fetching every image it needs concurrently. Any image failure aborts.
func (c *Catalog) CreateDefaultContent(ctx context.Context, sectionID string, profile website.BusinessProfile) (website.Content, error) {
	def, ok := lookup(sectionID)
	if !ok {
		return website.Content{}, fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	profile = profile.Normalized()

	images := make([]string, len(def.roles))
	if len(def.roles) > 0 {
		if c.images == nil {
			return website.Content{}, ErrImageSourceRequired
		}
		group, groupCtx := errgroup.WithContext(ctx)
		for i, role := range def.roles {
			group.Go(func() error {
				url, err := c.images.ImageFor(groupCtx, profile.Type, role, profile.Location)
				if err != nil {
					return err
				}
				images[i] = url
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return website.Content{}, err
		}
	}
	return def.content(profile, images), nil
}
