package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/internal/onboarding"
	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/website"
)

var testProfile = website.BusinessProfile{Name: "Pinewood Dental", Type: "dental", Location: "Austin, TX"}

type fakeFetcher struct {
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, query string) (imagery.Photo, error) {
	if f.err != nil {
		return imagery.Photo{}, f.err
	}
	if strings.Contains(query, "nothing") {
		return imagery.Photo{}, imagery.ErrNoResults
	}
	return imagery.Photo{ImageURL: "https://img.test/" + strings.ReplaceAll(query, " ", "-"), Photographer: "Ana", Alt: query}, nil
}

type apiFixture struct {
	mux   *http.ServeMux
	store persistence.Store
}

func newAPIFixture(t *testing.T, provider generation.Provider, fetcher imagery.Fetcher, opts ...Option) apiFixture {
	t.Helper()

	store := persistence.NewStore(persistence.NewMemoryStateRepository())
	gateway := generation.NewGateway(provider)
	images := imagery.NewService(imagery.NewBuilder(imagery.ChooserFunc(func(int) int { return 0 })), fetcher)
	registry := editor.NewRegistry(store,
		editor.WithGenerator(sites.NewBuilder(gateway, images)),
		editor.WithContent(gateway),
		editor.WithImages(images),
		editor.WithSections(catalog.New(images)),
		editor.WithTransitionDelay(time.Millisecond),
	)
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	base := []Option{
		WithOnboarding(onboarding.NewService(store)),
		WithEditors(registry),
		WithContentGenerator(gateway),
		WithImageFetcher(images),
		WithPublisher(sites.NewPublisher(sites.NewMemoryRepository(), sites.WithProjectRecorder(store))),
		WithProjects(store),
		WithExporter(renderer),
	}
	api := NewAPI(append(base, opts...)...)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}
	return apiFixture{mux: mux, store: store}
}

func failingProvider() generation.Provider {
	return generation.ProviderFunc(func(context.Context, generation.Request) (string, error) {
		return "", errors.New("upstream down")
	})
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	return doUserRequest(t, mux, "", method, path, body, wantStatus)
}

func doUserRequest(t *testing.T, mux *http.ServeMux, user, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestGenerateContentReturnsParsedObject(t *testing.T) {
	provider := generation.ProviderFunc(func(_ context.Context, req generation.Request) (string, error) {
		if !strings.Contains(req.Prompt, "Write a headline") {
			t.Fatalf("prompt not forwarded: %q", req.Prompt)
		}
		return "```json\n{\"headline\":\"Bright smiles in Austin\"}\n```", nil
	})
	fx := newAPIFixture(t, provider, &fakeFetcher{})

	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/generate-content", map[string]any{
		"prompt":       "Write a headline",
		"businessInfo": map[string]any{"name": "Pinewood Dental"},
	}, http.StatusOK)

	var body struct {
		Content map[string]any `json:"content"`
	}
	decodeJSONBody(t, rec, &body)
	if body.Content["headline"] != "Bright smiles in Austin" {
		t.Fatalf("unexpected content %#v", body.Content)
	}
}

func TestGenerateContentFailureReturnsErrorOnly(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})

	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/generate-content", map[string]any{"prompt": "anything"}, http.StatusInternalServerError)
	var body map[string]any
	decodeJSONBody(t, rec, &body)
	if len(body) != 1 || body["error"] == "" {
		t.Fatalf("expected a single error field, got %#v", body)
	}

	doJSONRequest(t, fx.mux, http.MethodPost, "/api/generate-content", map[string]any{"prompt": "  "}, http.StatusBadRequest)
}

func TestFetchImageStatuses(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})

	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/fetch-image", map[string]any{"query": "dental clinic"}, http.StatusOK)
	var photo imagery.Photo
	decodeJSONBody(t, rec, &photo)
	if photo.ImageURL != "https://img.test/dental-clinic" || photo.Photographer != "Ana" || photo.Alt != "dental clinic" {
		t.Fatalf("unexpected photo %#v", photo)
	}

	doJSONRequest(t, fx.mux, http.MethodPost, "/api/fetch-image", map[string]any{"query": ""}, http.StatusBadRequest)
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/fetch-image", map[string]any{"query": "nothing here"}, http.StatusNotFound)

	broken := newAPIFixture(t, failingProvider(), &fakeFetcher{err: errors.New("boom")})
	doJSONRequest(t, broken.mux, http.MethodPost, "/api/fetch-image", map[string]any{"query": "dental"}, http.StatusInternalServerError)
}

func TestProfileRoundTripAndValidation(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})

	doJSONRequest(t, fx.mux, http.MethodGet, "/api/profile", nil, http.StatusNotFound)

	rec := doJSONRequest(t, fx.mux, http.MethodPut, "/api/profile", website.BusinessProfile{Name: "Pinewood Dental"}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, rec, &failure)
	fields := map[string]bool{}
	for _, issue := range failure.Issues {
		fields[issue.Field] = true
	}
	if !fields["type"] || !fields["location"] || fields["name"] {
		t.Fatalf("unexpected issues %#v", failure.Issues)
	}

	doJSONRequest(t, fx.mux, http.MethodPut, "/api/profile", website.BusinessProfile{Name: " Pinewood Dental ", Type: "dental", Location: "Austin, TX"}, http.StatusOK)
	rec = doJSONRequest(t, fx.mux, http.MethodGet, "/api/profile", nil, http.StatusOK)
	var profile website.BusinessProfile
	decodeJSONBody(t, rec, &profile)
	if profile != testProfile {
		t.Fatalf("unexpected profile %#v", profile)
	}
}

func TestWebsiteGenerateRequiresProfile(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	doJSONRequest(t, fx.mux, http.MethodGet, "/api/website", nil, http.StatusNotFound)
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/website/generate", nil, http.StatusPreconditionRequired)
}

func generateWebsite(t *testing.T, fx apiFixture) website.Website {
	t.Helper()
	doJSONRequest(t, fx.mux, http.MethodPut, "/api/profile", testProfile, http.StatusOK)
	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/website/generate", nil, http.StatusOK)
	var site website.Website
	decodeJSONBody(t, rec, &site)
	return site
}

func TestWebsiteGenerateFallsBackOnContentAndListsDraftProject(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)

	if len(site.Blocks) != 7 || site.Blocks[0].Type != website.BlockHero {
		t.Fatalf("unexpected blocks %#v", site.Blocks)
	}
	if site.Blocks[0].Content.Title != "Welcome to Pinewood Dental" {
		t.Fatalf("expected fallback hero title, got %q", site.Blocks[0].Content.Title)
	}
	if !strings.HasPrefix(site.Blocks[0].Content.BackgroundImage, "https://img.test/") {
		t.Fatalf("expected fetched hero image, got %q", site.Blocks[0].Content.BackgroundImage)
	}

	rec := doJSONRequest(t, fx.mux, http.MethodGet, "/api/projects", nil, http.StatusOK)
	var projects []website.ProjectSummary
	decodeJSONBody(t, rec, &projects)
	if len(projects) != 1 || projects[0].ID != site.ID || projects[0].Status != website.ProjectDraft {
		t.Fatalf("unexpected projects %#v", projects)
	}

	completed, err := fx.store.OnboardingCompleted(context.Background(), AnonymousUser)
	if err != nil || !completed {
		t.Fatalf("expected onboarding completed, got %v %v", completed, err)
	}

	rec = doJSONRequest(t, fx.mux, http.MethodGet, "/api/website/export", nil, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Welcome to Pinewood Dental") {
		t.Fatalf("export missing hero title")
	}
}

func TestWebsiteGenerateImageFailureIsAlert(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{err: errors.New("401 unauthorized")})
	doJSONRequest(t, fx.mux, http.MethodPut, "/api/profile", testProfile, http.StatusOK)

	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/website/generate", nil, http.StatusBadGateway)
	var body errorResponse
	decodeJSONBody(t, rec, &body)
	if !strings.Contains(body.Message, "PEXELS_API_KEY") {
		t.Fatalf("expected credential hint, got %q", body.Message)
	}
	doJSONRequest(t, fx.mux, http.MethodGet, "/api/website", nil, http.StatusNotFound)
}

func TestEditorEndpointsMutateWebsite(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)
	hero := site.Blocks[0].ID
	about := site.Blocks[1].ID

	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/events", editor.Event{
		Type: editor.EventDoubleClickBlock, BlockID: hero, X: 900, Y: 10, ViewportWidth: 800, ViewportHeight: 600,
	}, http.StatusOK)
	var state editor.State
	decodeJSONBody(t, rec, &state)
	if state.SelectedBlockID != hero || state.FloatingMenu == nil || state.FloatingMenu.X != 572 {
		t.Fatalf("unexpected state %#v", state)
	}

	rec = doJSONRequest(t, fx.mux, http.MethodPatch, "/api/editor/blocks/"+hero+"/content", map[string]any{
		"field": "title", "value": "Gentle care for every smile",
	}, http.StatusOK)
	site = website.Website{}
	decodeJSONBody(t, rec, &site)
	if site.Blocks[0].Content.Title != "Gentle care for every smile" {
		t.Fatalf("content not updated: %q", site.Blocks[0].Content.Title)
	}

	rec = doJSONRequest(t, fx.mux, http.MethodPatch, "/api/editor/blocks/"+hero+"/styles", map[string]any{
		"styles": map[string]string{"backgroundColor": "#000000"},
	}, http.StatusOK)
	site = website.Website{}
	decodeJSONBody(t, rec, &site)
	if site.Blocks[0].Styles["backgroundColor"] != "#000000" {
		t.Fatalf("styles not merged: %#v", site.Blocks[0].Styles)
	}

	rec = doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/blocks/"+about+"/move", map[string]any{"direction": "up"}, http.StatusOK)
	site = website.Website{}
	decodeJSONBody(t, rec, &site)
	if site.Blocks[0].ID != about || site.Blocks[1].ID != hero {
		t.Fatalf("move did not swap blocks: %v", site.BlockIDs())
	}
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/blocks/"+about+"/move", map[string]any{"direction": "sideways"}, http.StatusBadRequest)

	rec = doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/sections", map[string]any{
		"sectionId": "gallery-grid", "afterId": hero,
	}, http.StatusOK)
	site = website.Website{}
	decodeJSONBody(t, rec, &site)
	if len(site.Blocks) != 8 || site.Blocks[2].Type != website.BlockGallery || len(site.Blocks[2].Content.Images) != 3 {
		t.Fatalf("gallery not inserted after hero: %v", site.BlockIDs())
	}
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/sections", map[string]any{"sectionId": "unknown"}, http.StatusBadRequest)

	rec = doJSONRequest(t, fx.mux, http.MethodDelete, "/api/editor/blocks/"+hero, nil, http.StatusOK)
	site = website.Website{}
	decodeJSONBody(t, rec, &site)
	if site.HasBlock(hero) || len(site.Blocks) != 7 {
		t.Fatalf("hero not deleted: %v", site.BlockIDs())
	}

	rec = doJSONRequest(t, fx.mux, http.MethodGet, "/api/editor", nil, http.StatusOK)
	state = editor.State{}
	decodeJSONBody(t, rec, &state)
	if state.FloatingMenu != nil || state.SelectedBlockID == hero {
		t.Fatalf("deleted block still referenced by ui state %#v", state)
	}

	stored, err := fx.store.LoadWebsite(context.Background(), AnonymousUser)
	if err != nil {
		t.Fatalf("load website: %v", err)
	}
	if len(stored.Blocks) != 7 || stored.HasBlock(hero) {
		t.Fatalf("mutations not persisted: %v", stored.BlockIDs())
	}
}

func TestEditorCloseResetsUIState(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)
	hero := site.Blocks[0].ID

	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/events", editor.Event{
		Type: editor.EventDoubleClickBlock, BlockID: hero, X: 10, Y: 10, ViewportWidth: 800, ViewportHeight: 600,
	}, http.StatusOK)
	doJSONRequest(t, fx.mux, http.MethodDelete, "/api/editor", nil, http.StatusNoContent)

	rec := doJSONRequest(t, fx.mux, http.MethodGet, "/api/editor", nil, http.StatusOK)
	var state editor.State
	decodeJSONBody(t, rec, &state)
	if !state.Idle() {
		t.Fatalf("expected idle state after close, got %#v", state)
	}
	doJSONRequest(t, fx.mux, http.MethodGet, "/api/website", nil, http.StatusOK)
}

func TestEditorContentPatchRejectsInvalidInput(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)
	hero := site.Blocks[0].ID
	path := "/api/editor/blocks/" + hero + "/content"

	cases := []struct {
		name string
		body map[string]any
	}{
		{"unknown field", map[string]any{"field": "nope", "value": "x"}},
		{"mistyped value", map[string]any{"field": "title", "value": 42}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSONRequest(t, fx.mux, http.MethodPatch, path, tc.body, http.StatusBadRequest)
			var resp errorResponse
			decodeJSONBody(t, rec, &resp)
			if resp.Error != "bad_request" {
				t.Fatalf("expected bad_request, got %#v", resp)
			}
		})
	}

	stored, err := fx.store.LoadWebsite(context.Background(), AnonymousUser)
	if err != nil {
		t.Fatalf("load website: %v", err)
	}
	if stored.Blocks[0].Content.Title != site.Blocks[0].Content.Title {
		t.Fatalf("rejected patch changed the title to %q", stored.Blocks[0].Content.Title)
	}
}

func TestEditorRegenerateTargets(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)
	hero := site.Blocks[0].ID

	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/blocks/"+hero+"/regenerate", map[string]any{"target": "everything"}, http.StatusBadRequest)
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/blocks/missing/regenerate", map[string]any{"target": "image"}, http.StatusNotFound)
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/blocks/"+hero+"/regenerate", map[string]any{"target": "content"}, http.StatusBadGateway)

	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/blocks/"+hero+"/regenerate", map[string]any{"target": "image"}, http.StatusOK)
	decodeJSONBody(t, rec, &site)
	if !strings.HasPrefix(site.Blocks[0].Content.BackgroundImage, "https://img.test/") {
		t.Fatalf("unexpected hero image %q", site.Blocks[0].Content.BackgroundImage)
	}
}

func TestPreviewModeRejectsEdits(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)
	hero := site.Blocks[0].ID

	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/events", editor.Event{Type: editor.EventTogglePreview}, http.StatusOK)
	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/events", editor.Event{Type: editor.EventClickBlock, BlockID: hero}, http.StatusOK)
	var state editor.State
	decodeJSONBody(t, rec, &state)
	if !state.PreviewMode || state.SelectedBlockID != "" {
		t.Fatalf("expected frozen preview state, got %#v", state)
	}
	doJSONRequest(t, fx.mux, http.MethodDelete, "/api/editor/blocks/"+hero, nil, http.StatusConflict)
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/events", editor.Event{Type: "wave"}, http.StatusOK)
}

func TestEditorUnknownEventOutsidePreview(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	generateWebsite(t, fx)
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/editor/events", editor.Event{Type: "wave"}, http.StatusBadRequest)
}

func TestPublishWebsite(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	site := generateWebsite(t, fx)

	payload := map[string]any{
		"name":         "Pinewood Dental",
		"subdomain":    "Pinewood-Dental",
		"projectId":    site.ID,
		"theme":        site.Theme,
		"content":      site.Blocks,
		"businessInfo": testProfile,
	}
	rec := doJSONRequest(t, fx.mux, http.MethodPost, "/api/websites", payload, http.StatusOK)
	var body struct {
		Success bool        `json:"success"`
		Website *sites.Site `json:"website"`
		Message string      `json:"message"`
	}
	decodeJSONBody(t, rec, &body)
	if !body.Success || body.Website == nil || body.Website.Subdomain != "pinewood-dental" || body.Message == "" {
		t.Fatalf("unexpected publish response %#v", body)
	}
	if len(body.Website.Pages) != 1 || len(body.Website.Pages[0].Blocks) != len(site.Blocks) {
		t.Fatalf("expected home page with all blocks, got %#v", body.Website.Pages)
	}

	rec = doJSONRequest(t, fx.mux, http.MethodGet, "/api/projects", nil, http.StatusOK)
	var projects []website.ProjectSummary
	decodeJSONBody(t, rec, &projects)
	if len(projects) != 1 || projects[0].Status != website.ProjectPublished {
		t.Fatalf("expected published project, got %#v", projects)
	}

	payload["projectId"] = "other-project"
	rec = doUserRequest(t, fx.mux, "user-2", http.MethodPost, "/api/websites", payload, http.StatusConflict)
	var conflict map[string]any
	decodeJSONBody(t, rec, &conflict)
	if len(conflict) != 1 || conflict["error"] == "" {
		t.Fatalf("expected error-only body, got %#v", conflict)
	}

	payload["subdomain"] = "x"
	doJSONRequest(t, fx.mux, http.MethodPost, "/api/websites", payload, http.StatusBadRequest)

	rec = doJSONRequest(t, fx.mux, http.MethodGet, "/api/websites/mine", nil, http.StatusOK)
	var mine []*sites.Site
	decodeJSONBody(t, rec, &mine)
	if len(mine) != 1 || mine[0].Subdomain != "pinewood-dental" {
		t.Fatalf("unexpected site list %#v", mine)
	}
}

func TestWebsitesDiscovery(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	rec := doJSONRequest(t, fx.mux, http.MethodGet, "/api/websites", nil, http.StatusOK)
	var body struct {
		Message   string            `json:"message"`
		Endpoints map[string]string `json:"endpoints"`
	}
	decodeJSONBody(t, rec, &body)
	if body.Message == "" || len(body.Endpoints) == 0 {
		t.Fatalf("unexpected discovery body %#v", body)
	}
}

func TestSectionsFilter(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	rec := doJSONRequest(t, fx.mux, http.MethodGet, "/api/sections?q=GALLERY", nil, http.StatusOK)
	var categories []catalog.Category
	decodeJSONBody(t, rec, &categories)
	if len(categories) != 1 || categories[0].Key != "media" {
		t.Fatalf("unexpected categories %#v", categories)
	}
}

func TestSessionsAreScopedByUser(t *testing.T) {
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{})
	generateWebsite(t, fx)
	doUserRequest(t, fx.mux, "user-2", http.MethodGet, "/api/website", nil, http.StatusNotFound)
	doJSONRequest(t, fx.mux, http.MethodGet, "/api/website", nil, http.StatusOK)
}

func TestBearerIdentity(t *testing.T) {
	const secret = "test-secret"
	fx := newAPIFixture(t, failingProvider(), &fakeFetcher{}, WithIdentity(NewIdentity(secret)))

	doJSONRequest(t, fx.mux, http.MethodGet, "/api/projects", nil, http.StatusUnauthorized)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"name":"Pinewood Dental","type":"dental","location":"Austin, TX"}`))
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	fx.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", rec.Code, rec.Body.String())
	}
	if _, err := fx.store.LoadProfile(context.Background(), "user-42"); err != nil {
		t.Fatalf("profile not stored for token subject: %v", err)
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"}).SignedString([]byte("other"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	fx.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", rec.Code)
	}
}

func TestMapErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &persistence.NotFoundError{Resource: "state", Key: "website"}, http.StatusNotFound},
		{"no website", editor.ErrNoWebsite, http.StatusNotFound},
		{"preview", editor.ErrPreviewMode, http.StatusConflict},
		{"alert", &editor.AlertError{Message: "Failed", Err: errors.New("x")}, http.StatusBadGateway},
		{"unknown section", catalog.ErrUnknownSection, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapError(tc.err)
			if status != tc.want {
				t.Fatalf("expected %d got %d", tc.want, status)
			}
		})
	}
}
