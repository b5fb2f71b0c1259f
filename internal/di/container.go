package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	sitehttp "github.com/goliatone/go-sitebuilder/internal/http"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/logging/console"
	"github.com/goliatone/go-sitebuilder/internal/logging/gologger"
	"github.com/goliatone/go-sitebuilder/internal/onboarding"
	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	textProvider generation.Provider
	imageFetcher imagery.Fetcher
	chooser      imagery.Chooser
	editorOpts   []editor.Option
	closers      []func() error

	stateRepo persistence.StateRepository
	siteRepo  sites.Repository

	store      persistence.Store
	onboarding onboarding.Service
	gateway    *generation.Gateway
	images     *imagery.Service
	catalog    *catalog.Catalog
	builder    *sites.Builder
	publisher  *sites.Publisher
	editors    *editor.Registry
	renderer   *render.Renderer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB stores state and published sites in db instead of memory.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithTextProvider overrides the provider selected from the generation config.
func WithTextProvider(provider generation.Provider) Option {
	return func(c *Container) {
		c.textProvider = provider
	}
}

// WithImageFetcher overrides the Pexels client.
func WithImageFetcher(fetcher imagery.Fetcher) Option {
	return func(c *Container) {
		c.imageFetcher = fetcher
	}
}

// WithImageChooser fixes the keyword choices of the query builder.
func WithImageChooser(chooser imagery.Chooser) Option {
	return func(c *Container) {
		c.chooser = chooser
	}
}

// WithEditorOptions appends options to the editor registry.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(c *Container) {
		c.editorOpts = append(c.editorOpts, opts...)
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureProviders(); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Focus: c.Config.Logging.Focus}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			logging.PersistenceLogger(c.loggerProvider).Warn("cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		c.stateRepo = persistence.NewMemoryStateRepository()
		c.siteRepo = sites.NewMemoryRepository()
		return
	}
	if c.cacheService != nil {
		c.stateRepo = persistence.NewBunStateRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.siteRepo = sites.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.stateRepo = persistence.NewBunStateRepository(c.bunDB)
	c.siteRepo = sites.NewBunRepository(c.bunDB)
}

func (c *Container) configureProviders() error {
	genCfg := c.Config.Generation
	if c.textProvider == nil {
		switch genCfg.ResolveProvider() {
		case runtimeconfig.ProviderGemini:
			gemini, err := generation.NewGemini(context.Background(), genCfg.GeminiKey, genCfg.GeminiModel)
			if err != nil {
				return err
			}
			c.textProvider = gemini
			c.closers = append(c.closers, gemini.Close)
		case runtimeconfig.ProviderOpenAI:
			c.textProvider = generation.NewOpenAI(genCfg.OpenAIKey,
				generation.WithOpenAIModel(genCfg.OpenAIModel),
				generation.WithOpenAIBaseURL(genCfg.OpenAIBaseURL),
			)
		default:
			logging.GenerationLogger(c.loggerProvider).Warn("generation.provider.none",
				"hint", "set GEMINI_API_KEY or OPENAI_API_KEY; fallback copy will be used")
		}
	}

	if c.imageFetcher == nil {
		imgCfg := c.Config.Images
		opts := []imagery.PexelsOption{
			imagery.WithBaseURL(imgCfg.BaseURL),
			imagery.WithLogger(logging.ImageryLogger(c.loggerProvider)),
		}
		if imgCfg.Timeout > 0 {
			opts = append(opts, imagery.WithHTTPClient(&http.Client{Timeout: imgCfg.Timeout}))
		}
		c.imageFetcher = imagery.NewPexelsClient(imgCfg.PexelsKey, opts...)
	}
	return nil
}

func (c *Container) configureServices() error {
	provider := c.loggerProvider

	c.store = persistence.NewStore(c.stateRepo,
		persistence.WithLogger(logging.PersistenceLogger(provider)),
		persistence.WithRecentLimit(c.Config.Editor.RecentLimit),
	)
	c.onboarding = onboarding.NewService(c.store)

	c.gateway = generation.NewGateway(c.textProvider,
		generation.WithLogger(logging.GenerationLogger(provider)),
		generation.WithTemperature(c.Config.Generation.Temperature),
	)

	chooser := c.chooser
	if chooser == nil {
		chooser = imagery.NewRandomChooser(time.Now().UnixNano())
	}
	c.images = imagery.NewService(imagery.NewBuilder(chooser), c.imageFetcher)
	c.catalog = catalog.New(c.images)

	c.builder = sites.NewBuilder(c.gateway, c.images, sites.WithLogger(logging.SitesLogger(provider)))
	c.publisher = sites.NewPublisher(c.siteRepo,
		sites.WithProjectRecorder(c.store),
		sites.WithPublishLogger(logging.SitesLogger(provider)),
	)

	editorOpts := append([]editor.Option{
		editor.WithGenerator(c.builder),
		editor.WithContent(c.gateway),
		editor.WithImages(c.images),
		editor.WithSections(c.catalog),
		editor.WithTransitionDelay(c.Config.Editor.TransitionDelay),
		editor.WithLogger(logging.EditorLogger(provider)),
	}, c.editorOpts...)
	c.editors = editor.NewRegistry(c.store, editorOpts...)

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("di: build renderer: %w", err)
	}
	c.renderer = renderer
	return nil
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Store returns the per-user persistence facade.
func (c *Container) Store() persistence.Store { return c.store }

// OnboardingService returns the business profile service.
func (c *Container) OnboardingService() onboarding.Service { return c.onboarding }

// Gateway returns the content generation gateway.
func (c *Container) Gateway() *generation.Gateway { return c.gateway }

// Images returns the image query and lookup service.
func (c *Container) Images() *imagery.Service { return c.images }

// Catalog returns the section catalog.
func (c *Container) Catalog() *catalog.Catalog { return c.catalog }

// Builder returns the initial website generator.
func (c *Container) Builder() *sites.Builder { return c.builder }

// Publisher returns the published website service.
func (c *Container) Publisher() *sites.Publisher { return c.publisher }

// Editors returns the per-user editor registry.
func (c *Container) Editors() *editor.Registry { return c.editors }

// Renderer returns the static HTML exporter.
func (c *Container) Renderer() *render.Renderer { return c.renderer }

// API builds the HTTP adapter over the container services.
func (c *Container) API() *sitehttp.API {
	return sitehttp.NewAPI(
		sitehttp.WithBasePath(c.Config.Server.BasePath),
		sitehttp.WithOnboarding(c.onboarding),
		sitehttp.WithEditors(c.editors),
		sitehttp.WithContentGenerator(c.gateway),
		sitehttp.WithImageFetcher(c.images),
		sitehttp.WithPublisher(c.publisher),
		sitehttp.WithProjects(c.store),
		sitehttp.WithExporter(c.renderer),
		sitehttp.WithIdentity(sitehttp.NewIdentity(c.Config.Auth.JWTSecret)),
		sitehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
}

// Close releases provider clients.
func (c *Container) Close() error {
	var first error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
