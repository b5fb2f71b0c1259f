package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/onboarding"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/website"
)

// ContentGenerator runs caller supplied prompts.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, businessInfo map[string]any) (map[string]any, error)
}

// ImageFetcher resolves a raw search query to a photo.
type ImageFetcher interface {
	Fetch(ctx context.Context, query string) (imagery.Photo, error)
}

// SitePublisher stores published websites.
type SitePublisher interface {
	Publish(ctx context.Context, userID string, req sites.PublishRequest) (*sites.Site, error)
	Sites(ctx context.Context, userID string) ([]*sites.Site, error)
}

// ProjectLister returns the user's recent projects.
type ProjectLister interface {
	RecentProjects(ctx context.Context, userID string) ([]website.ProjectSummary, error)
}

// Exporter renders a website to a standalone HTML document.
type Exporter interface {
	Render(site website.Website) ([]byte, error)
}

// API registers the site builder endpoints.
type API struct {
	basePath  string
	profiles  onboarding.Service
	editors   *editor.Registry
	generator ContentGenerator
	images    ImageFetcher
	publisher SitePublisher
	projects  ProjectLister
	exporter  Exporter
	identity  *Identity
	logger    interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		identity: NewIdentity(""),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithOnboarding wires the business profile service.
func WithOnboarding(service onboarding.Service) Option {
	return func(api *API) {
		api.profiles = service
	}
}

// WithEditors wires the editor session registry.
func WithEditors(registry *editor.Registry) Option {
	return func(api *API) {
		api.editors = registry
	}
}

// WithContentGenerator wires /generate-content.
func WithContentGenerator(generator ContentGenerator) Option {
	return func(api *API) {
		api.generator = generator
	}
}

// WithImageFetcher wires /fetch-image.
func WithImageFetcher(images ImageFetcher) Option {
	return func(api *API) {
		api.images = images
	}
}

// WithPublisher wires /websites.
func WithPublisher(publisher SitePublisher) Option {
	return func(api *API) {
		api.publisher = publisher
	}
}

// WithProjects wires the recent projects list.
func WithProjects(projects ProjectLister) Option {
	return func(api *API) {
		api.projects = projects
	}
}

// WithExporter wires the static HTML export.
func WithExporter(exporter Exporter) Option {
	return func(api *API) {
		api.exporter = exporter
	}
}

// WithIdentity sets the request identity resolver.
func WithIdentity(identity *Identity) Option {
	return func(api *API) {
		if identity != nil {
			api.identity = identity
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerGenerationRoutes(mux, base)
	api.registerWebsiteRoutes(mux, base)
	api.registerWorkspaceRoutes(mux, base)
	api.registerEditorRoutes(mux, base)

	return nil
}

func (api *API) handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.Handle(pattern, api.identity.Middleware(handler))
}

// log returns the request logger carrying the fields set by the identity
// middleware.
func (api *API) log(r *http.Request) interfaces.Logger {
	return api.logger.WithContext(r.Context())
}

func userID(r *http.Request) string {
	if id, ok := UserIDFromContext(r.Context()); ok {
		return id
	}
	return AnonymousUser
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}
