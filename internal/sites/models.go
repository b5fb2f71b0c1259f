package sites

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/identity"
	"github.com/goliatone/go-sitebuilder/website"
)

const HomePageSlug = "home"

var ErrRepositoryRequired = errors.New("sites: repository required")

// NotFoundError is returned when a site record is missing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sites: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// Site is the published record of a generated website.
type Site struct {
	bun.BaseModel `bun:"table:sites,alias:s"`

	ID           uuid.UUID               `bun:",pk,type:uuid" json:"id"`
	UserID       string                  `bun:"user_id,notnull" json:"userId"`
	ProjectID    string                  `bun:"project_id,notnull" json:"projectId"`
	Name         string                  `bun:"name,notnull" json:"name"`
	Subdomain    string                  `bun:"subdomain,notnull,unique" json:"subdomain"`
	Status       website.ProjectStatus   `bun:"status,notnull" json:"status"`
	Theme        website.Theme           `bun:"theme,type:jsonb" json:"theme"`
	BusinessInfo website.BusinessProfile `bun:"business_info,type:jsonb" json:"businessInfo"`
	Pages        []*SitePage             `bun:"rel:has-many,join:id=site_id" json:"pages,omitempty"`
	PublishedAt  *time.Time              `bun:"published_at,nullzero" json:"publishedAt,omitempty"`
	CreatedAt    time.Time               `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time               `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// SitePage stores the serialized blocks of one page of a site.
type SitePage struct {
	bun.BaseModel `bun:"table:site_pages,alias:sp"`

	ID        uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	SiteID    uuid.UUID              `bun:"site_id,notnull,type:uuid" json:"siteId"`
	Slug      string                 `bun:"slug,notnull" json:"slug"`
	Title     string                 `bun:"title,notnull" json:"title"`
	Blocks    []website.ContentBlock `bun:"blocks,type:jsonb" json:"blocks"`
	CreatedAt time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// SiteID derives the stable record id of a user's project.
func SiteID(userID, projectID string) uuid.UUID {
	return identity.SiteUUID(userID, projectID)
}

// PageID derives the stable record id of a site page.
func PageID(siteID uuid.UUID, slug string) uuid.UUID {
	return identity.SitePageUUID(siteID, slug)
}

func cloneSite(site *Site) *Site {
	if site == nil {
		return nil
	}
	cloned := *site
	cloned.Pages = nil
	for _, page := range site.Pages {
		cloned.Pages = append(cloned.Pages, clonePage(page))
	}
	if site.PublishedAt != nil {
		at := *site.PublishedAt
		cloned.PublishedAt = &at
	}
	return &cloned
}

func clonePage(page *SitePage) *SitePage {
	if page == nil {
		return nil
	}
	cloned := *page
	if page.Blocks != nil {
		cloned.Blocks = make([]website.ContentBlock, len(page.Blocks))
		for i, block := range page.Blocks {
			cloned.Blocks[i] = block.Clone()
		}
	}
	return &cloned
}
