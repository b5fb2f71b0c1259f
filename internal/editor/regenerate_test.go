package editor_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/website"
)

type blockingContent struct {
	started chan struct{}
	release chan struct{}
	content website.Content
	err     error
}

func newBlockingContent() *blockingContent {
	return &blockingContent{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingContent) RegenerateField(_ context.Context, field string, p website.BusinessProfile) (string, error) {
	return "Fresh " + field + " for " + p.Name, nil
}

func (b *blockingContent) RegenerateBlockContent(_ context.Context, block website.ContentBlock, _ website.BusinessProfile) (website.Content, error) {
	b.started <- struct{}{}
	<-b.release
	if b.err != nil {
		return block.Content, b.err
	}
	return b.content, nil
}

func TestParseTarget(t *testing.T) {
	for _, value := range []string{"image", "content", "banner-images", "tagline", "headline", "subtext"} {
		if _, err := editor.ParseTarget(value); err != nil {
			t.Fatalf("ParseTarget(%q): %v", value, err)
		}
	}
	if _, err := editor.ParseTarget("video"); !errors.Is(err, editor.ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestRegenerateImageUsesBlockDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	session := f.generated(t)

	site, err := session.Regenerate(ctx, "hero", editor.TargetImage, "")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	hero, _ := site.Block("hero")
	if hero.Content.BackgroundImage != "https://img.test/hero-1" {
		t.Fatalf("unexpected hero background %q", hero.Content.BackgroundImage)
	}

	site, err = session.Regenerate(ctx, "banner", editor.TargetBannerImages, "")
	if err != nil {
		t.Fatalf("regenerate banner: %v", err)
	}
	banner, _ := site.Block("banner")
	if len(banner.Content.Images) != 3 {
		t.Fatalf("expected three banner images, got %v", banner.Content.Images)
	}
	for _, url := range banner.Content.Images {
		if url == "a" || url == "b" || url == "c" {
			t.Fatalf("expected new banner images, got %v", banner.Content.Images)
		}
	}
	if len(session.State().Regenerating) != 0 {
		t.Fatalf("expected regeneration flags cleared")
	}
}

func TestRegenerateBannerField(t *testing.T) {
	f := newFixture(t, editor.WithContent(newBlockingContent()))
	session := f.generated(t)

	site, err := session.Regenerate(context.Background(), "banner", editor.TargetTagline, "")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	banner, _ := site.Block("banner")
	if banner.Content.Tagline != "Fresh tagline for Pinewood Dental" {
		t.Fatalf("unexpected tagline %q", banner.Content.Tagline)
	}
}

func TestRegenerateImageFailureRaisesAlert(t *testing.T) {
	f := newFixture(t)
	session := f.generated(t)
	before, _ := session.Website()
	f.images.err = imagery.ErrAPIKeyRequired

	_, err := session.Regenerate(context.Background(), "about", editor.TargetImage, "")
	var alert *editor.AlertError
	if !errors.As(err, &alert) {
		t.Fatalf("expected alert error, got %v", err)
	}
	if alert.Message == "" {
		t.Fatalf("expected user-facing message")
	}
	after, _ := session.Website()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("website changed after failed regeneration")
	}
	if len(session.State().Regenerating) != 0 {
		t.Fatalf("expected regeneration flag cleared after failure")
	}
}

func TestRegenerationCompletingAfterDeleteIsDiscarded(t *testing.T) {
	ctx := context.Background()
	content := newBlockingContent()
	content.content = website.Content{Title: "Regenerated", Description: "New copy"}
	f := newFixture(t, editor.WithContent(content))
	session := f.generated(t)

	type result struct {
		site website.Website
		err  error
	}
	done := make(chan result, 1)
	go func() {
		site, err := session.Regenerate(ctx, "about", editor.TargetContent, "")
		done <- result{site: site, err: err}
	}()
	<-content.started

	state := session.State()
	if !reflect.DeepEqual(state.Regenerating, []string{editor.RegenerationKey("about", editor.TargetContent)}) {
		t.Fatalf("expected in-flight flag, got %v", state.Regenerating)
	}
	if _, err := session.Regenerate(ctx, "about", editor.TargetContent, ""); !errors.Is(err, editor.ErrRegenerationInProgress) {
		t.Fatalf("expected ErrRegenerationInProgress, got %v", err)
	}
	if _, err := session.Delete(ctx, "about"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(content.release)

	res := <-done
	if res.err != nil {
		t.Fatalf("regenerate: %v", res.err)
	}
	if res.site.HasBlock("about") {
		t.Fatalf("late regeneration resurrected a deleted block")
	}
	stored, _ := f.store.LoadWebsite(ctx, userID)
	if stored.HasBlock("about") {
		t.Fatalf("deleted block was persisted again")
	}
}

func TestRegenerationCompletingDuringPreviewIsDiscarded(t *testing.T) {
	ctx := context.Background()
	content := newBlockingContent()
	content.content = website.Content{Title: "Regenerated", Description: "New copy"}
	f := newFixture(t, editor.WithContent(content))
	session := f.generated(t)

	done := make(chan error, 1)
	go func() {
		_, err := session.Regenerate(ctx, "about", editor.TargetContent, "")
		done <- err
	}()
	<-content.started

	if state := mustEvent(t, session, editor.Event{Type: editor.EventTogglePreview}); !state.PreviewMode {
		t.Fatalf("expected preview mode on")
	}
	close(content.release)

	if err := <-done; !errors.Is(err, editor.ErrPreviewMode) {
		t.Fatalf("expected ErrPreviewMode, got %v", err)
	}
	if state := session.State(); len(state.Regenerating) != 0 {
		t.Fatalf("in-flight flag not cleared: %v", state.Regenerating)
	}
	site, _ := session.Website()
	about, _ := site.Block("about")
	if about.Content.Title != "About Pinewood Dental" {
		t.Fatalf("regeneration applied during preview: %q", about.Content.Title)
	}
	stored, _ := f.store.LoadWebsite(ctx, userID)
	if stored.Blocks[1].Content.Title != "About Pinewood Dental" {
		t.Fatalf("regeneration persisted during preview: %q", stored.Blocks[1].Content.Title)
	}
}

func TestRegenerateContentKeepsCurrentImages(t *testing.T) {
	ctx := context.Background()
	content := newBlockingContent()
	content.content = website.Content{Title: "Regenerated", Description: "New copy", Image: "https://stale.test/image"}
	close(content.release)
	f := newFixture(t, editor.WithContent(content))
	session := f.generated(t)

	site, err := session.Regenerate(ctx, "about", editor.TargetContent, "")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	about, _ := site.Block("about")
	if about.Content.Title != "Regenerated" || about.Content.Image != "https://img.test/about-0" {
		t.Fatalf("unexpected about content %+v", about.Content)
	}
}

func TestRegenerateMissingBlock(t *testing.T) {
	f := newFixture(t)
	session := f.generated(t)
	if _, err := session.Regenerate(context.Background(), "missing", editor.TargetImage, ""); !errors.Is(err, editor.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}
