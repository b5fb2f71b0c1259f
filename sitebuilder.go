// Package sitebuilder assembles the AI website builder: onboarding, content
// generation, the block editor and publishing, served over a JSON API.
package sitebuilder

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/cors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/onboarding"
	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/internal/storage"
)

// Config is the runtime configuration of the module.
type Config = runtimeconfig.Config

// OnboardingService exports the business profile service contract.
type OnboardingService = onboarding.Service

// Store exports the per-user persistence contract.
type Store = persistence.Store

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads .env files, the YAML file at path and the environment.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	return runtimeconfig.Load(path, envFiles...)
}

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
	db        *bun.DB
}

// New constructs a module from cfg and optional DI overrides. Storage is not
// opened; pass di.WithBunDB for a database or use Open.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Open connects the configured database, creates missing tables when
// AutoMigrate is set and constructs the module over it. The memory driver
// skips the database.
func Open(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	db, err := storage.Open(cfg.Storage)
	if errors.Is(err, storage.ErrMemoryDriver) {
		return New(cfg, opts...)
	}
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if cfg.Storage.AutoMigrate {
		if err := storage.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	module, err := New(cfg, append(opts, di.WithBunDB(db))...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	module.db = db
	return module, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Onboarding returns the business profile service.
func (m *Module) Onboarding() OnboardingService {
	return m.container.OnboardingService()
}

// Store returns the per-user persistence facade.
func (m *Module) Store() Store {
	return m.container.Store()
}

// Gateway returns the content generation gateway.
func (m *Module) Gateway() *generation.Gateway {
	return m.container.Gateway()
}

// Editors returns the per-user editor registry.
func (m *Module) Editors() *editor.Registry {
	return m.container.Editors()
}

// Publisher returns the published website service.
func (m *Module) Publisher() *sites.Publisher {
	return m.container.Publisher()
}

// Handler registers the API on a new mux and applies the CORS policy from
// Server.AllowedOrigins.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.API().Register(mux); err != nil {
		return nil, err
	}
	policy := cors.New(cors.Options{
		AllowedOrigins: m.container.Config.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-User-ID"},
	})
	return policy.Handler(mux), nil
}

// Close releases provider clients and the database handle.
func (m *Module) Close() error {
	err := m.container.Close()
	if m.db != nil {
		if dbErr := m.db.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
		m.db = nil
	}
	return err
}
