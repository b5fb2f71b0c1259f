package persistence_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/website"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newMemoryStore() (persistence.Store, *persistence.MemoryStateRepository) {
	repo := persistence.NewMemoryStateRepository()
	return persistence.NewStore(repo, persistence.WithNow(fixedNow)), repo
}

func sampleWebsite() website.Website {
	return website.Website{
		ID:           "site-1",
		Title:        "Pinewood Dental",
		BusinessName: "Pinewood Dental",
		BusinessType: "dental",
		Location:     "Austin, TX",
		Theme: website.Theme{
			Colors: website.ThemeColors{Primary: "#0ea5e9", Secondary: "#0369a1", Accent: "#22d3ee", Background: "#f8fafc", Text: "#0f172a"},
			Fonts:  website.ThemeFonts{Heading: "Poppins", Body: "Inter"},
		},
		Blocks: []website.ContentBlock{
			{ID: "hero-1", Type: website.BlockHero, Content: website.Content{Title: "Welcome to Pinewood Dental", BackgroundImage: "https://img/hero.jpg"}, Styles: website.Styles{"textAlign": "center"}},
			{ID: "services-1", Type: website.BlockServices, Content: website.Content{Services: []website.ServiceItem{{Title: "Cleaning", Description: "Gentle", Image: "https://img/s1.jpg"}}}},
		},
	}
}

func TestStoreWebsiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newMemoryStore()
	site := sampleWebsite()

	if err := store.SaveWebsite(ctx, "user-1", site); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.LoadWebsite(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(site, loaded) {
		t.Fatalf("round trip mismatch\nwant %#v\ngot  %#v", site, loaded)
	}

	if _, err := store.LoadWebsite(ctx, "user-2"); !persistence.IsNotFound(err) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
}

func TestStoreDetectsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	store, repo := newMemoryStore()

	_, err := repo.Put(ctx, &persistence.StateRecord{UserID: "user-1", Key: persistence.KeyWebsite, Value: "{not json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.LoadWebsite(ctx, "user-1"); !errors.Is(err, persistence.ErrSnapshotCorrupt) {
		t.Fatalf("expected ErrSnapshotCorrupt, got %v", err)
	}
}

func TestStoreProfileAndOnboarding(t *testing.T) {
	ctx := context.Background()
	store, _ := newMemoryStore()

	if _, err := store.LoadProfile(ctx, "user-1"); !persistence.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	profile := website.BusinessProfile{Name: " Pinewood Dental ", Type: "dental", Location: "Austin, TX"}
	if err := store.SaveProfile(ctx, "user-1", profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	loaded, err := store.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if loaded.Name != "Pinewood Dental" {
		t.Fatalf("expected trimmed name, got %q", loaded.Name)
	}

	done, err := store.OnboardingCompleted(ctx, "user-1")
	if err != nil || done {
		t.Fatalf("expected onboarding incomplete, got %v %v", done, err)
	}
	if err := store.SetOnboardingCompleted(ctx, "user-1", true); err != nil {
		t.Fatalf("set onboarding: %v", err)
	}
	if done, _ := store.OnboardingCompleted(ctx, "user-1"); !done {
		t.Fatalf("expected onboarding completed")
	}
}

func TestStoreRequiresUser(t *testing.T) {
	store, _ := newMemoryStore()
	if err := store.SaveWebsite(context.Background(), "  ", sampleWebsite()); !errors.Is(err, persistence.ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}
}

func TestRecentProjectsUpsertSameWebsiteThreeTimes(t *testing.T) {
	ctx := context.Background()
	store, _ := newMemoryStore()

	if _, err := store.UpsertRecentProject(ctx, "user-1", website.ProjectSummary{ID: "site-0", Status: website.ProjectDraft}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	statuses := []website.ProjectStatus{website.ProjectDraft, website.ProjectPublished, website.ProjectArchived}
	for _, status := range statuses {
		summary := website.Summarize(sampleWebsite(), status, fixedNow())
		if _, err := store.UpsertRecentProject(ctx, "user-1", summary); err != nil {
			t.Fatalf("upsert %s: %v", status, err)
		}
	}

	list, err := store.RecentProjects(ctx, "user-1")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	count := 0
	for _, summary := range list {
		if summary.ID == "site-1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one entry for site-1, got %d", count)
	}
	if list[0].ID != "site-1" || list[0].Status != website.ProjectArchived {
		t.Fatalf("expected latest write at index 0, got %#v", list[0])
	}
	if list[0].PreviewImage != "https://img/hero.jpg" {
		t.Fatalf("expected hero preview image, got %q", list[0].PreviewImage)
	}

	status, err := store.ProjectStatus(ctx, "user-1", "site-1")
	if err != nil || status != website.ProjectArchived {
		t.Fatalf("expected archived status, got %q %v", status, err)
	}
	if status, _ := store.ProjectStatus(ctx, "user-1", "unknown"); status != website.ProjectDraft {
		t.Fatalf("expected draft default, got %q", status)
	}
}

func TestRecentProjectsBounded(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryStateRepository()
	store := persistence.NewStore(repo, persistence.WithNow(fixedNow), persistence.WithRecentLimit(3))

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if _, err := store.UpsertRecentProject(ctx, "user-1", website.ProjectSummary{ID: id}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	list, _ := store.RecentProjects(ctx, "user-1")
	got := []string{}
	for _, summary := range list {
		got = append(got, summary.ID)
	}
	if !reflect.DeepEqual(got, []string{"e", "d", "c"}) {
		t.Fatalf("unexpected list %v", got)
	}
	if !list[0].LastModified.Equal(fixedNow()) {
		t.Fatalf("expected last modified defaulted to now, got %v", list[0].LastModified)
	}
}
