package editor

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sitebuilder/internal/document"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/website"
)

// Target selects what a regeneration rewrites.
type Target string

const (
	TargetImage        Target = "image"
	TargetContent      Target = "content"
	TargetBannerImages Target = "banner-images"
	TargetTagline      Target = Target(generation.FieldTagline)
	TargetHeadline     Target = Target(generation.FieldHeadline)
	TargetSubtext      Target = Target(generation.FieldSubtext)
)

const bannerImageCount = 3

// ParseTarget validates a user supplied target.
func ParseTarget(value string) (Target, error) {
	target := Target(strings.TrimSpace(value))
	switch target {
	case TargetImage, TargetContent, TargetBannerImages, TargetTagline, TargetHeadline, TargetSubtext:
		return target, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, value)
}

// RegenerationKey identifies an in-flight regeneration in State.Regenerating.
func RegenerationKey(blockID string, target Target) string {
	return blockID + "-" + string(target)
}

// applyFunc derives the next website from the current one once a
// regeneration result is available.
type applyFunc func(current website.Website) (website.Website, error)

// Regenerate rewrites part of a block through the content or image source.
// The upstream call runs without holding the session lock; its result is
// applied to the website current at completion, and dropped when the block
// has been deleted or preview mode turned on meanwhile. Failures are returned
// as *AlertError.
func (s *Session) Regenerate(ctx context.Context, blockID string, target Target, field string) (website.Website, error) {
	r := s.registry

	s.mu.Lock()
	current, err := s.editableLocked()
	if err != nil {
		s.mu.Unlock()
		return website.Website{}, err
	}
	block, ok := current.Block(blockID)
	if !ok {
		s.mu.Unlock()
		return current.Clone(), ErrBlockNotFound
	}
	key := RegenerationKey(blockID, target)
	if s.ui.regenerating[key] {
		s.mu.Unlock()
		return current.Clone(), ErrRegenerationInProgress
	}
	s.ui.regenerating[key] = true
	block = block.Clone()
	s.mu.Unlock()

	logger := logging.WithEditorContext(r.logger, s.userID, blockID, "regenerate:"+string(target))
	apply, err := s.runRegeneration(ctx, block, target, field, s.profile(ctx, current))

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ui.regenerating, key)

	if err != nil {
		logger.Error("editor.regenerate.failed", "error", err)
		return s.site.Clone(), err
	}
	if !s.hasSite || !s.site.HasBlock(blockID) {
		logger.Info("editor.regenerate.discarded")
		return s.site.Clone(), nil
	}
	if s.ui.previewMode {
		logger.Info("editor.regenerate.discarded", "reason", "preview")
		return s.site.Clone(), ErrPreviewMode
	}
	next, err := apply(s.site)
	if err != nil {
		return s.site.Clone(), err
	}
	if err := s.commitLocked(ctx, next, "regenerate"); err != nil {
		return s.site.Clone(), err
	}
	logger.Info("editor.regenerate.applied")
	return next.Clone(), nil
}

func (s *Session) runRegeneration(ctx context.Context, block website.ContentBlock, target Target, field string, profile website.BusinessProfile) (applyFunc, error) {
	r := s.registry
	switch target {
	case TargetImage:
		return s.regenerateImages(ctx, block, imageField(block, field), profile)
	case TargetBannerImages:
		return s.regenerateImages(ctx, block, "images", profile)
	case TargetTagline, TargetHeadline, TargetSubtext:
		if r.content == nil {
			return nil, &AlertError{Message: alertContent, Err: ErrGeneratorRequired}
		}
		text, err := r.content.RegenerateField(ctx, string(target), profile)
		if err != nil {
			return nil, &AlertError{Message: alertContent, Err: err}
		}
		return func(current website.Website) (website.Website, error) {
			return document.UpdateBlockContent(current, block.ID, string(target), text)
		}, nil
	case TargetContent:
		if r.content == nil {
			return nil, &AlertError{Message: alertContent, Err: ErrGeneratorRequired}
		}
		content, err := r.content.RegenerateBlockContent(ctx, block, profile)
		if err != nil {
			return nil, &AlertError{Message: alertContent, Err: err}
		}
		return func(current website.Website) (website.Website, error) {
			latest, ok := current.Block(block.ID)
			if !ok {
				return current, nil
			}
			return document.ReplaceBlockContent(current, block.ID, keepImages(content, latest.Content)), nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
}

// keepImages carries the images of latest over to generated text.
func keepImages(generated, latest website.Content) website.Content {
	out := generated.Clone()
	out.Image = latest.Image
	out.BackgroundImage = latest.BackgroundImage
	out.Images = append([]string(nil), latest.Images...)
	out.Slides = append([]website.Slide(nil), latest.Slides...)
	for i := range out.Services {
		if i < len(latest.Services) {
			out.Services[i].Image = latest.Services[i].Image
		}
	}
	return out
}

func imageField(block website.ContentBlock, field string) string {
	if field = strings.TrimSpace(field); field != "" {
		return field
	}
	switch block.Type {
	case website.BlockHero:
		if block.Content.BackgroundImage == "" && block.Content.Image != "" {
			return "image"
		}
		return "backgroundImage"
	case website.BlockCTA:
		return "backgroundImage"
	case website.BlockServices:
		return "services"
	case website.BlockGallery, website.BlockBannerGrid:
		return "images"
	default:
		return "image"
	}
}

func imageRole(blockType website.BlockType) imagery.Role {
	switch blockType {
	case website.BlockAbout:
		return imagery.RoleAbout
	case website.BlockCTA:
		return imagery.RoleCTA
	case website.BlockGallery:
		return imagery.RoleGallery
	case website.BlockBannerGrid:
		return imagery.RoleBanner
	case website.BlockServices:
		return imagery.RoleService1
	default:
		return imagery.RoleHero
	}
}

func (s *Session) fetchImages(ctx context.Context, profile website.BusinessProfile, roles []imagery.Role) ([]string, error) {
	images := s.registry.images
	if images == nil {
		return nil, &AlertError{Message: alertImages, Err: imagery.ErrAPIKeyRequired}
	}
	urls := make([]string, len(roles))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, role := range roles {
		group.Go(func() error {
			url, err := images.ImageFor(groupCtx, profile.Type, role, profile.Location)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, &AlertError{Message: alertImages, Err: err}
	}
	return urls, nil
}

func (s *Session) regenerateImages(ctx context.Context, block website.ContentBlock, field string, profile website.BusinessProfile) (applyFunc, error) {
	switch field {
	case "images":
		count := len(block.Content.Images)
		if block.Type == website.BlockBannerGrid || count == 0 {
			count = bannerImageCount
		}
		roles := make([]imagery.Role, count)
		for i := range roles {
			roles[i] = imageRole(block.Type)
		}
		urls, err := s.fetchImages(ctx, profile, roles)
		if err != nil {
			return nil, err
		}
		return func(current website.Website) (website.Website, error) {
			return document.UpdateBlockContent(current, block.ID, "images", urls)
		}, nil
	case "services":
		roles := []imagery.Role{imagery.RoleService1, imagery.RoleService2, imagery.RoleService3}
		urls, err := s.fetchImages(ctx, profile, roles)
		if err != nil {
			return nil, err
		}
		return func(current website.Website) (website.Website, error) {
			latest, ok := current.Block(block.ID)
			if !ok {
				return current, nil
			}
			services := append([]website.ServiceItem(nil), latest.Content.Services...)
			for i := range services {
				services[i].Image = urls[i%len(urls)]
			}
			return document.UpdateBlockContent(current, block.ID, "services", services)
		}, nil
	default:
		if !website.IsContentField(field) {
			return nil, fmt.Errorf("%w: %q", website.ErrUnknownContentField, field)
		}
		urls, err := s.fetchImages(ctx, profile, []imagery.Role{imageRole(block.Type)})
		if err != nil {
			return nil, err
		}
		return func(current website.Website) (website.Website, error) {
			return document.UpdateBlockContent(current, block.ID, field, urls[0])
		}, nil
	}
}
