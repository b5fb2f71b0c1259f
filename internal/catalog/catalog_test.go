package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/website"
)

type stubImages struct {
	mu    sync.Mutex
	roles []imagery.Role
	err   error
}

func (s *stubImages) ImageFor(_ context.Context, businessType string, role imagery.Role, location string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.roles = append(s.roles, role)
	return fmt.Sprintf("https://img.test/%s/%s", role, businessType), nil
}

var profile = website.BusinessProfile{Name: "Pinewood Dental", Type: "Dental Practice", Location: "Austin, TX"}

func TestListCategoriesCoversEverySection(t *testing.T) {
	categories := catalog.New(nil).ListCategories()
	if len(categories) == 0 {
		t.Fatalf("expected categories")
	}
	seen := map[string]bool{}
	for _, category := range categories {
		if len(category.Sections) == 0 {
			t.Fatalf("category %s has no sections", category.Key)
		}
		for _, section := range category.Sections {
			if seen[section.ID] {
				t.Fatalf("duplicate section id %s", section.ID)
			}
			seen[section.ID] = true
			if !section.BlockType.IsValid() {
				t.Fatalf("section %s has invalid block type %q", section.ID, section.BlockType)
			}
			mapped, err := catalog.MapSectionToBlockType(section.ID)
			if err != nil || mapped != section.BlockType {
				t.Fatalf("MapSectionToBlockType(%s) = %q, %v", section.ID, mapped, err)
			}
		}
	}
}

func TestFilterByQueryIsCaseInsensitiveAndDropsEmptyCategories(t *testing.T) {
	categories := catalog.FilterByQuery("GALLERY")
	if len(categories) != 1 {
		t.Fatalf("expected a single category, got %d", len(categories))
	}
	if categories[0].Key != "media" {
		t.Fatalf("expected media category, got %s", categories[0].Key)
	}

	byDescription := catalog.FilterByQuery("enquiry form")
	if len(byDescription) != 1 || byDescription[0].Sections[0].ID != "contact-form" {
		t.Fatalf("expected contact-form match by description, got %+v", byDescription)
	}

	if got := catalog.FilterByQuery("no such section"); len(got) != 0 {
		t.Fatalf("expected no categories, got %+v", got)
	}
}

func TestUnknownSection(t *testing.T) {
	if _, err := catalog.MapSectionToBlockType("nope"); !errors.Is(err, catalog.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
	if _, err := catalog.CreateDefaultStyles("nope"); !errors.Is(err, catalog.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
	if _, err := catalog.New(nil).CreateDefaultContent(context.Background(), "nope", profile); !errors.Is(err, catalog.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestCreateDefaultStylesReturnsCopies(t *testing.T) {
	first, err := catalog.CreateDefaultStyles("hero-centered")
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	first["textAlign"] = "right"
	second, _ := catalog.CreateDefaultStyles("hero-centered")
	if second["textAlign"] != "center" {
		t.Fatalf("expected defaults to be isolated, got %q", second["textAlign"])
	}
}

func TestCreateDefaultContentFetchesImagesPerRole(t *testing.T) {
	images := &stubImages{}
	content, err := catalog.New(images).CreateDefaultContent(context.Background(), "services-grid", profile)
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if len(content.Services) != 3 {
		t.Fatalf("expected three services, got %d", len(content.Services))
	}
	for i, item := range content.Services {
		want := fmt.Sprintf("https://img.test/service%d/Dental Practice", i+1)
		if item.Image != want {
			t.Fatalf("service %d image = %q, want %q", i, item.Image, want)
		}
	}
	if len(images.roles) != 3 {
		t.Fatalf("expected three image lookups, got %d", len(images.roles))
	}
}

func TestCreateDefaultContentWithoutImages(t *testing.T) {
	content, err := catalog.New(nil).CreateDefaultContent(context.Background(), "about-story", profile)
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if content.Title != "About Pinewood Dental" {
		t.Fatalf("unexpected title %q", content.Title)
	}
	if content.Description == "" {
		t.Fatalf("expected a default description")
	}
}

func TestCreateDefaultContentImageFailureAborts(t *testing.T) {
	upstream := errors.New("pexels down")
	_, err := catalog.New(&stubImages{err: upstream}).CreateDefaultContent(context.Background(), "gallery-grid", profile)
	if !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	_, err = catalog.New(nil).CreateDefaultContent(context.Background(), "hero-centered", profile)
	if !errors.Is(err, catalog.ErrImageSourceRequired) {
		t.Fatalf("expected ErrImageSourceRequired, got %v", err)
	}
}

func TestDefaultContentOnlyUsesRenderedFields(t *testing.T) {
	images := &stubImages{}
	c := catalog.New(images)
	for _, category := range c.ListCategories() {
		for _, section := range category.Sections {
			content, err := c.CreateDefaultContent(context.Background(), section.ID, profile)
			if err != nil {
				t.Fatalf("%s: %v", section.ID, err)
			}
			for _, field := range website.ContentFields() {
				cleared, _ := content.With(field, nil)
				if fmt.Sprint(cleared) == fmt.Sprint(content) {
					continue
				}
				if !website.RendersField(section.BlockType, field) {
					t.Fatalf("%s sets %s which %s does not render", section.ID, field, section.BlockType)
				}
			}
		}
	}
}
