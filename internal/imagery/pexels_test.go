package imagery_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/imagery"
)

func TestPexelsClientFetchesFirstPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "dental clinic" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photos":[{"alt":"Bright clinic","photographer":"Ada","src":{"large2x":"https://img/large2x.jpg","original":"https://img/o.jpg"}}]}`))
	}))
	defer server.Close()

	client := imagery.NewPexelsClient("secret", imagery.WithBaseURL(server.URL))
	photo, err := client.Fetch(context.Background(), "dental clinic")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := imagery.Photo{ImageURL: "https://img/large2x.jpg", Photographer: "Ada", Alt: "Bright clinic"}
	if photo != want {
		t.Fatalf("expected %#v, got %#v", want, photo)
	}
}

func TestPexelsClientErrors(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"photos":[]}`))
	}))
	defer empty.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer failing.Close()

	ctx := context.Background()

	if _, err := imagery.NewPexelsClient("key").Fetch(ctx, "  "); !errors.Is(err, imagery.ErrQueryRequired) {
		t.Fatalf("expected ErrQueryRequired, got %v", err)
	}
	if _, err := imagery.NewPexelsClient("").Fetch(ctx, "cafe"); !errors.Is(err, imagery.ErrAPIKeyRequired) {
		t.Fatalf("expected ErrAPIKeyRequired, got %v", err)
	}
	if _, err := imagery.NewPexelsClient("key", imagery.WithBaseURL(empty.URL)).Fetch(ctx, "cafe"); !errors.Is(err, imagery.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	_, err := imagery.NewPexelsClient("key", imagery.WithBaseURL(failing.URL)).Fetch(ctx, "cafe")
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category error, got %v", err)
	}
}

type stubFetcher struct {
	queries []string
}

func (s *stubFetcher) Fetch(_ context.Context, query string) (imagery.Photo, error) {
	s.queries = append(s.queries, query)
	return imagery.Photo{ImageURL: "https://img/" + query}, nil
}

func TestServiceImageForBuildsQuery(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := imagery.NewService(imagery.NewBuilder(imagery.FirstChooser), fetcher)

	url, err := svc.ImageFor(context.Background(), "dental", imagery.RoleHero, "Austin, TX")
	if err != nil {
		t.Fatalf("image for: %v", err)
	}
	if len(fetcher.queries) != 1 || url != "https://img/"+fetcher.queries[0] {
		t.Fatalf("unexpected fetch %v -> %s", fetcher.queries, url)
	}
}
