// Package sites assembles new websites from a business profile and records
// published websites.
package sites

import (
	"context"
	"errors"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/themes"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/website"
)

const TextCodeImageFetchFailed = "IMAGE_FETCH_FAILED"

// ImageFetchMessage is shown to the user when generation aborts on images.
const ImageFetchMessage = "Failed to fetch images for your website. Please check that PEXELS_API_KEY is configured and try again."

var (
	ErrContentSourceRequired = errors.New("sites: content source required")
	ErrImageSourceRequired   = errors.New("sites: image source required")
)

// ContentSource produces the copy of a new website.
type ContentSource interface {
	GenerateWebsiteContent(ctx context.Context, profile website.BusinessProfile) (generation.WebsiteCopy, bool)
}

// IDGenerator returns unique identifiers.
type IDGenerator func() string

// BuilderOption configures the builder.
type BuilderOption func(*Builder)

// WithIDGenerator overrides the id source (primarily for tests).
func WithIDGenerator(gen IDGenerator) BuilderOption {
	return func(b *Builder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder turns a business profile into a complete website.
type Builder struct {
	content ContentSource
	images  catalog.ImageSource
	newID   IDGenerator
	logger  interfaces.Logger
}

// NewBuilder wires the content and image sources.
func NewBuilder(content ContentSource, images catalog.ImageSource, opts ...BuilderOption) *Builder {
	if content == nil {
		panic(ErrContentSourceRequired)
	}
	if images == nil {
		panic(ErrImageSourceRequired)
	}
	b := &Builder{
		content: content,
		images:  images,
		newID:   func() string { return uuid.NewString() },
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var generationRoles = []imagery.Role{
	imagery.RoleHero,
	imagery.RoleAbout,
	imagery.RoleService1,
	imagery.RoleService2,
	imagery.RoleService3,
	imagery.RoleCTA,
}

// Generate performs one content call and the image fetches concurrently. The
// website is returned only once all of them resolve. Content failures fall
// back silently; any image failure aborts generation.
func (b *Builder) Generate(ctx context.Context, profile website.BusinessProfile) (website.Website, error) {
	profile = profile.Normalized()

	var generated generation.WebsiteCopy
	images := make(map[imagery.Role]string, len(generationRoles))
	var imagesMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		text, usedFallback := b.content.GenerateWebsiteContent(groupCtx, profile)
		if usedFallback {
			b.logger.Info("sites.generate.content_fallback", "business", profile.Name)
		}
		generated = text
		return nil
	})
	for _, role := range generationRoles {
		group.Go(func() error {
			url, err := b.images.ImageFor(groupCtx, profile.Type, role, profile.Location)
			if err != nil {
				return err
			}
			imagesMu.Lock()
			images[role] = url
			imagesMu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		b.logger.Error("sites.generate.images_failed", "business", profile.Name, "error", err)
		return website.Website{}, goerrors.Wrap(err, goerrors.CategoryExternal, ImageFetchMessage).
			WithTextCode(TextCodeImageFetchFailed)
	}

	site := website.Website{
		ID:           b.newID(),
		Title:        profile.Name,
		BusinessName: profile.Name,
		BusinessType: profile.Type,
		Location:     profile.Location,
		Theme:        themes.ForBusinessType(profile.Type),
	}
	site.Blocks = b.blocks(ctx, generated, images, profile)
	b.logger.Info("sites.generate.completed", "website_id", site.ID, "blocks", len(site.Blocks))
	return site, nil
}

func (b *Builder) block(sectionID string, blockType website.BlockType, content website.Content) website.ContentBlock {
	styles, err := catalog.CreateDefaultStyles(sectionID)
	if err != nil {
		styles = website.Styles{}
	}
	return website.ContentBlock{ID: b.newID(), Type: blockType, Content: content, Styles: styles}
}

func (b *Builder) blocks(ctx context.Context, c generation.WebsiteCopy, images map[imagery.Role]string, profile website.BusinessProfile) []website.ContentBlock {
	services := make([]website.ServiceItem, 0, len(c.Services.Items))
	serviceRoles := []imagery.Role{imagery.RoleService1, imagery.RoleService2, imagery.RoleService3}
	for i, item := range c.Services.Items {
		service := website.ServiceItem{Title: item.Title, Description: item.Description}
		if i < len(serviceRoles) {
			service.Image = images[serviceRoles[i]]
		}
		services = append(services, service)
	}

	featureIcons := []string{"award", "heart", "map-pin", "star", "shield", "clock"}
	features := make([]website.FeatureItem, 0, len(c.Features.Items))
	for i, item := range c.Features.Items {
		features = append(features, website.FeatureItem{
			Title:       item.Title,
			Description: item.Description,
			Icon:        featureIcons[i%len(featureIcons)],
		})
	}

	testimonials := make([]website.Testimonial, 0, len(c.Testimonials.Items))
	for _, item := range c.Testimonials.Items {
		testimonials = append(testimonials, website.Testimonial{Name: item.Name, Role: item.Role, Quote: item.Quote, Rating: 5})
	}

	contact, err := catalog.New(nil).CreateDefaultContent(ctx, "contact-form", profile)
	if err != nil {
		contact = website.Content{Address: profile.Location}
	}
	contact.Title = c.Contact.Title
	contact.Description = c.Contact.Description

	heroButton := strings.TrimSpace(c.Hero.ButtonText)
	if heroButton == "" {
		heroButton = "Get Started"
	}

	return []website.ContentBlock{
		b.block("hero-centered", website.BlockHero, website.Content{
			Title:           c.Hero.Title,
			Subtitle:        c.Hero.Subtitle,
			ButtonText:      heroButton,
			ButtonLink:      "#contact",
			BackgroundImage: images[imagery.RoleHero],
		}),
		b.block("about-image", website.BlockAbout, website.Content{
			Title:       c.About.Title,
			Description: c.About.Description,
			Image:       images[imagery.RoleAbout],
		}),
		b.block("services-grid", website.BlockServices, website.Content{
			Title:    c.Services.Title,
			Subtitle: c.Services.Subtitle,
			Services: services,
		}),
		b.block("features-list", website.BlockFeatures, website.Content{
			Title:    c.Features.Title,
			Subtitle: c.Features.Subtitle,
			Features: features,
		}),
		b.block("testimonials-cards", website.BlockTestimonials, website.Content{
			Title:        c.Testimonials.Title,
			Testimonials: testimonials,
		}),
		b.block("contact-form", website.BlockContact, contact),
		b.block("cta-banner", website.BlockCTA, website.Content{
			Title:           c.CTA.Title,
			Description:     c.CTA.Description,
			ButtonText:      c.CTA.ButtonText,
			ButtonLink:      "#contact",
			BackgroundImage: images[imagery.RoleCTA],
		}),
	}
}
