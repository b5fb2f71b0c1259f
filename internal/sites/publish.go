package sites

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/website"
)

const (
	TextCodeSiteInvalid    = "WEBSITE_INVALID"
	TextCodeSubdomainTaken = "SUBDOMAIN_TAKEN"

	minSubdomainLength = 3
	maxSubdomainLength = 63
)

var (
	ErrSubdomainTaken = errors.New("sites: subdomain already taken")

	subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// PublishRequest is the payload saved when a user publishes a website.
type PublishRequest struct {
	Name         string                  `json:"name"`
	Subdomain    string                  `json:"subdomain"`
	ProjectID    string                  `json:"projectId"`
	Theme        website.Theme           `json:"theme"`
	Content      []website.ContentBlock  `json:"content"`
	BusinessInfo website.BusinessProfile `json:"businessInfo"`
}

// ProjectRecorder tracks dashboard summaries for published projects.
type ProjectRecorder interface {
	UpsertRecentProject(ctx context.Context, userID string, summary website.ProjectSummary) ([]website.ProjectSummary, error)
}

// PublishOption configures the publisher.
type PublishOption func(*Publisher)

// WithPublishNow overrides the time source (primarily for tests).
func WithPublishNow(now func() time.Time) PublishOption {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

// WithPublishLogger sets the publisher logger.
func WithPublishLogger(logger interfaces.Logger) PublishOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProjectRecorder marks published projects in the user's recent list.
func WithProjectRecorder(recorder ProjectRecorder) PublishOption {
	return func(p *Publisher) {
		p.projects = recorder
	}
}

// Publisher saves websites as site records with a home page.
type Publisher struct {
	repo     Repository
	projects ProjectRecorder
	now      func() time.Time
	logger   interfaces.Logger
}

// NewPublisher constructs a publisher.
func NewPublisher(repo Repository, opts ...PublishOption) *Publisher {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	p := &Publisher{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func normalizeSubdomain(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ValidatePublish checks the publish payload before anything is stored.
func ValidatePublish(req PublishRequest) error {
	req.Subdomain = normalizeSubdomain(req.Subdomain)
	req.Name = strings.TrimSpace(req.Name)
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.ErrorObject(validation.NewError("sites.name_required", "name is required"))),
		validation.Field(&req.ProjectID, validation.Required.ErrorObject(validation.NewError("sites.project_required", "projectId is required"))),
		validation.Field(&req.Subdomain,
			validation.Required.ErrorObject(validation.NewError("sites.subdomain_required", "subdomain is required")),
			validation.RuneLength(minSubdomainLength, maxSubdomainLength),
			validation.Match(subdomainPattern).ErrorObject(validation.NewError("sites.subdomain_format", "subdomain may only contain lowercase letters, numbers and hyphens")),
			validation.By(func(any) error {
				if !slug.IsValid(req.Subdomain) {
					return validation.NewError("sites.subdomain_format", "subdomain is not a valid slug")
				}
				return nil
			}),
		),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid website").WithTextCode(TextCodeSiteInvalid)
	}
	return nil
}

// Publish stores the website and its home page, then records the project as
// published. A subdomain owned by another project is a conflict.
func (p *Publisher) Publish(ctx context.Context, userID string, req PublishRequest) (*Site, error) {
	if err := ValidatePublish(req); err != nil {
		return nil, err
	}
	req.Subdomain = normalizeSubdomain(req.Subdomain)
	req.Name = strings.TrimSpace(req.Name)
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	id := SiteID(userID, req.ProjectID)

	owner, err := p.repo.GetBySubdomain(ctx, req.Subdomain)
	switch {
	case err == nil && owner.ID != id:
		return nil, goerrors.Wrap(ErrSubdomainTaken, goerrors.CategoryConflict, "subdomain is already taken").
			WithTextCode(TextCodeSubdomainTaken)
	case err != nil && !IsNotFound(err):
		return nil, err
	}

	now := p.now().UTC()
	site := &Site{
		ID:           id,
		UserID:       userID,
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Subdomain:    req.Subdomain,
		Status:       website.ProjectPublished,
		Theme:        req.Theme,
		BusinessInfo: req.BusinessInfo.Normalized(),
		PublishedAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	saved, err := p.repo.SaveSite(ctx, site)
	if err != nil {
		return nil, err
	}

	blocks := req.Content
	if blocks == nil {
		blocks = []website.ContentBlock{}
	}
	page, err := p.repo.SavePage(ctx, &SitePage{
		ID:        PageID(saved.ID, HomePageSlug),
		SiteID:    saved.ID,
		Slug:      HomePageSlug,
		Title:     req.Name,
		Blocks:    blocks,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	saved.Pages = []*SitePage{page}

	if p.projects != nil {
		summary := website.Summarize(website.Website{
			ID:           req.ProjectID,
			Title:        req.Name,
			BusinessName: req.BusinessInfo.Name,
			BusinessType: req.BusinessInfo.Type,
			Location:     req.BusinessInfo.Location,
			Theme:        req.Theme,
			Blocks:       blocks,
		}, website.ProjectPublished, now)
		if _, err := p.projects.UpsertRecentProject(ctx, userID, summary); err != nil {
			p.logger.Warn("sites.publish.recent_failed", "user_id", userID, "project_id", req.ProjectID, "error", err)
		}
	}

	p.logger.Info("sites.publish.notification",
		"user_id", userID,
		"project_id", req.ProjectID,
		"subdomain", req.Subdomain,
		"blocks", len(blocks),
	)
	return saved, nil
}

// Sites lists the sites a user has published.
func (p *Publisher) Sites(ctx context.Context, userID string) ([]*Site, error) {
	return p.repo.ListByUser(ctx, userID)
}
