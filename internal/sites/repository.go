package sites

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository stores published sites and their pages.
type Repository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*Site, error)
	GetByProject(ctx context.Context, userID, projectID string) (*Site, error)
	ListByUser(ctx context.Context, userID string) ([]*Site, error)
	SaveSite(ctx context.Context, site *Site) (*Site, error)
	SavePage(ctx context.Context, page *SitePage) (*SitePage, error)
	ListPages(ctx context.Context, siteID uuid.UUID) ([]*SitePage, error)
}

// MemoryRepository keeps sites in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	sites map[uuid.UUID]*Site
	pages map[uuid.UUID]*SitePage
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sites: make(map[uuid.UUID]*Site),
		pages: make(map[uuid.UUID]*SitePage),
	}
}

func (r *MemoryRepository) GetBySubdomain(_ context.Context, subdomain string) (*Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, site := range r.sites {
		if site.Subdomain == subdomain {
			return cloneSite(site), nil
		}
	}
	return nil, &NotFoundError{Resource: "site", Key: subdomain}
}

func (r *MemoryRepository) GetByProject(_ context.Context, userID, projectID string) (*Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	site, ok := r.sites[SiteID(userID, projectID)]
	if !ok {
		return nil, &NotFoundError{Resource: "site", Key: projectID}
	}
	return cloneSite(site), nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Site, 0)
	for _, site := range r.sites {
		if site.UserID == userID {
			out = append(out, cloneSite(site))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subdomain < out[j].Subdomain })
	return out, nil
}

func (r *MemoryRepository) SaveSite(_ context.Context, site *Site) (*Site, error) {
	if site == nil {
		return nil, nil
	}
	cloned := cloneSite(site)
	cloned.Pages = nil

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sites[cloned.ID]; ok && !existing.CreatedAt.IsZero() {
		cloned.CreatedAt = existing.CreatedAt
	}
	r.sites[cloned.ID] = cloned
	return cloneSite(cloned), nil
}

func (r *MemoryRepository) SavePage(_ context.Context, page *SitePage) (*SitePage, error) {
	if page == nil {
		return nil, nil
	}
	cloned := clonePage(page)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.pages[cloned.ID]; ok && !existing.CreatedAt.IsZero() {
		cloned.CreatedAt = existing.CreatedAt
	}
	r.pages[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (r *MemoryRepository) ListPages(_ context.Context, siteID uuid.UUID) ([]*SitePage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*SitePage, 0)
	for _, page := range r.pages {
		if page.SiteID == siteID {
			out = append(out, clonePage(page))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// NewSiteRecordRepository creates the generic bun repository for sites.
func NewSiteRecordRepository(db *bun.DB) repository.Repository[*Site] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Site]{
		NewRecord:          func() *Site { return &Site{} },
		GetID:              func(record *Site) uuid.UUID { return record.ID },
		SetID:              func(record *Site, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "subdomain" },
		GetIdentifierValue: func(record *Site) string { return record.Subdomain },
	})
}

// NewSitePageRecordRepository creates the generic bun repository for pages.
func NewSitePageRecordRepository(db *bun.DB) repository.Repository[*SitePage] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SitePage]{
		NewRecord: func() *SitePage { return &SitePage{} },
		GetID:     func(record *SitePage) uuid.UUID { return record.ID },
		SetID:     func(record *SitePage, id uuid.UUID) { record.ID = id },
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *SitePage) string { return record.ID.String() },
	})
}

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	sites repository.Repository[*Site]
	pages repository.Repository[*SitePage]
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository creates a site repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a site repository with caching support.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	sites := NewSiteRecordRepository(db)
	pages := NewSitePageRecordRepository(db)
	if cacheService != nil && serializer != nil {
		sites = repositorycache.New(sites, cacheService, serializer)
		pages = repositorycache.New(pages, cacheService, serializer)
	}
	return &BunRepository{sites: sites, pages: pages}
}

func (r *BunRepository) GetBySubdomain(ctx context.Context, subdomain string) (*Site, error) {
	record, err := r.sites.GetByIdentifier(ctx, strings.TrimSpace(subdomain))
	if err != nil {
		return nil, mapRepositoryError(err, "site", subdomain)
	}
	return record, nil
}

func (r *BunRepository) GetByProject(ctx context.Context, userID, projectID string) (*Site, error) {
	record, err := r.sites.GetByID(ctx, SiteID(userID, projectID).String())
	if err != nil {
		return nil, mapRepositoryError(err, "site", projectID)
	}
	return record, nil
}

func (r *BunRepository) ListByUser(ctx context.Context, userID string) ([]*Site, error) {
	records, _, err := r.sites.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.user_id = ?", userID).OrderExpr("?TableAlias.subdomain ASC")
	}))
	return records, err
}

func (r *BunRepository) SaveSite(ctx context.Context, site *Site) (*Site, error) {
	if site == nil {
		return nil, nil
	}
	if _, err := r.sites.GetByID(ctx, site.ID.String()); err != nil {
		if !errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "site", site.Subdomain)
		}
		created, err := r.sites.Create(ctx, site)
		if err != nil {
			return nil, fmt.Errorf("site repository error: %w", err)
		}
		return created, nil
	}
	updated, err := r.sites.Update(ctx, site,
		repository.UpdateByID(site.ID.String()),
		repository.UpdateColumns("name", "subdomain", "status", "theme", "business_info", "published_at", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "site", site.Subdomain)
	}
	return updated, nil
}

func (r *BunRepository) SavePage(ctx context.Context, page *SitePage) (*SitePage, error) {
	if page == nil {
		return nil, nil
	}
	if _, err := r.pages.GetByID(ctx, page.ID.String()); err != nil {
		if !errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "site_page", page.Slug)
		}
		created, err := r.pages.Create(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("site_page repository error: %w", err)
		}
		return created, nil
	}
	updated, err := r.pages.Update(ctx, page,
		repository.UpdateByID(page.ID.String()),
		repository.UpdateColumns("title", "blocks", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "site_page", page.Slug)
	}
	return updated, nil
}

func (r *BunRepository) ListPages(ctx context.Context, siteID uuid.UUID) ([]*SitePage, error) {
	records, _, err := r.pages.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.site_id = ?", siteID).OrderExpr("?TableAlias.slug ASC")
	}))
	return records, err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
