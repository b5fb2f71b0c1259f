package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/website"
)

// Store is the per-user persistence facade used by the editor and onboarding.
type Store interface {
	LoadProfile(ctx context.Context, userID string) (website.BusinessProfile, error)
	SaveProfile(ctx context.Context, userID string, profile website.BusinessProfile) error

	LoadWebsite(ctx context.Context, userID string) (website.Website, error)
	SaveWebsite(ctx context.Context, userID string, site website.Website) error

	OnboardingCompleted(ctx context.Context, userID string) (bool, error)
	SetOnboardingCompleted(ctx context.Context, userID string, completed bool) error

	RecentProjects(ctx context.Context, userID string) ([]website.ProjectSummary, error)
	UpsertRecentProject(ctx context.Context, userID string, summary website.ProjectSummary) ([]website.ProjectSummary, error)
	ProjectStatus(ctx context.Context, userID, websiteID string) (website.ProjectStatus, error)
}

// StoreOption configures the store.
type StoreOption func(*store)

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) StoreOption {
	return func(s *store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecentLimit overrides the recent projects bound.
func WithRecentLimit(limit int) StoreOption {
	return func(s *store) {
		if limit > 0 {
			s.recentLimit = limit
		}
	}
}

type store struct {
	repo        StateRepository
	now         func() time.Time
	logger      interfaces.Logger
	recentLimit int

	// recent serialises read-modify-write of recent project lists.
	recent sync.Mutex
}

// NewStore constructs the persistence facade.
func NewStore(repo StateRepository, opts ...StoreOption) Store {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &store{
		repo:        repo,
		now:         time.Now,
		logger:      logging.NoOp(),
		recentLimit: website.MaxRecentProjects,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *store) put(ctx context.Context, userID string, key StateKey, value any) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserRequired
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", key, err)
	}
	now := s.now().UTC()
	_, err = s.repo.Put(ctx, &StateRecord{
		ID:        StateID(userID, key),
		UserID:    userID,
		Key:       key,
		Value:     string(encoded),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("persistence.put.failed", "user_id", userID, "key", string(key), "error", err)
	}
	return err
}

func (s *store) get(ctx context.Context, userID string, key StateKey) (*StateRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}
	return s.repo.Get(ctx, userID, key)
}

func (s *store) LoadProfile(ctx context.Context, userID string) (website.BusinessProfile, error) {
	record, err := s.get(ctx, userID, KeyBusinessProfile)
	if err != nil {
		return website.BusinessProfile{}, err
	}
	var profile website.BusinessProfile
	if err := json.Unmarshal([]byte(record.Value), &profile); err != nil {
		return website.BusinessProfile{}, fmt.Errorf("persistence: decode profile: %w", err)
	}
	return profile, nil
}

func (s *store) SaveProfile(ctx context.Context, userID string, profile website.BusinessProfile) error {
	return s.put(ctx, userID, KeyBusinessProfile, profile.Normalized())
}

// LoadWebsite returns ErrSnapshotCorrupt when the stored snapshot cannot be
// decoded; callers are expected to regenerate.
func (s *store) LoadWebsite(ctx context.Context, userID string) (website.Website, error) {
	record, err := s.get(ctx, userID, KeyWebsite)
	if err != nil {
		return website.Website{}, err
	}
	var site website.Website
	if err := json.Unmarshal([]byte(record.Value), &site); err != nil {
		s.logger.Warn("persistence.website.corrupt", "user_id", userID, "error", err)
		return website.Website{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if strings.TrimSpace(site.ID) == "" {
		return website.Website{}, fmt.Errorf("%w: missing website id", ErrSnapshotCorrupt)
	}
	return site, nil
}

func (s *store) SaveWebsite(ctx context.Context, userID string, site website.Website) error {
	return s.put(ctx, userID, KeyWebsite, site)
}

func (s *store) OnboardingCompleted(ctx context.Context, userID string) (bool, error) {
	record, err := s.get(ctx, userID, KeyOnboardingCompleted)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	var completed bool
	if err := json.Unmarshal([]byte(record.Value), &completed); err != nil {
		return false, nil
	}
	return completed, nil
}

func (s *store) SetOnboardingCompleted(ctx context.Context, userID string, completed bool) error {
	return s.put(ctx, userID, KeyOnboardingCompleted, completed)
}

func (s *store) RecentProjects(ctx context.Context, userID string) ([]website.ProjectSummary, error) {
	record, err := s.get(ctx, userID, KeyRecentProjects)
	if err != nil {
		if IsNotFound(err) {
			return []website.ProjectSummary{}, nil
		}
		return nil, err
	}
	var list []website.ProjectSummary
	if err := json.Unmarshal([]byte(record.Value), &list); err != nil {
		s.logger.Warn("persistence.recent.corrupt", "user_id", userID, "error", err)
		return []website.ProjectSummary{}, nil
	}
	if list == nil {
		list = []website.ProjectSummary{}
	}
	return list, nil
}

func (s *store) UpsertRecentProject(ctx context.Context, userID string, summary website.ProjectSummary) ([]website.ProjectSummary, error) {
	if strings.TrimSpace(summary.ID) == "" {
		return nil, errors.New("persistence: project summary id required")
	}
	if summary.LastModified.IsZero() {
		summary.LastModified = s.now().UTC()
	}

	s.recent.Lock()
	defer s.recent.Unlock()

	list, err := s.RecentProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	list = website.UpsertSummary(list, summary, s.recentLimit)
	if err := s.put(ctx, userID, KeyRecentProjects, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ProjectStatus returns the recorded status of a website, or draft when the
// website is not in the recent list.
func (s *store) ProjectStatus(ctx context.Context, userID, websiteID string) (website.ProjectStatus, error) {
	list, err := s.RecentProjects(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, summary := range list {
		if summary.ID == websiteID && summary.Status != "" {
			return summary.Status, nil
		}
	}
	return website.ProjectDraft, nil
}
