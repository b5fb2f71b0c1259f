// Package onboarding captures and serves the user's business profile.
package onboarding

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/website"
)

var (
	ErrStoreRequired   = errors.New("onboarding: store required")
	ErrProfileNotFound = errors.New("onboarding: business profile not found")
)

const (
	maxNameLength        = 120
	maxTypeLength        = 80
	maxLocationLength    = 120
	maxDescriptionLength = 2000
)

// Service exposes the business profile store.
type Service interface {
	Get(ctx context.Context, userID string) (website.BusinessProfile, error)
	Set(ctx context.Context, userID string, profile website.BusinessProfile) (website.BusinessProfile, error)
	Completed(ctx context.Context, userID string) (bool, error)
	MarkCompleted(ctx context.Context, userID string) error
}

type service struct {
	store persistence.Store
}

// NewService constructs the onboarding service.
func NewService(store persistence.Store) Service {
	if store == nil {
		panic(ErrStoreRequired)
	}
	return &service{store: store}
}

// Validate checks the fields required before onboarding may advance.
func Validate(profile website.BusinessProfile) error {
	profile = profile.Normalized()
	err := validation.ValidateStruct(&profile,
		validation.Field(&profile.Name,
			validation.Required.ErrorObject(validation.NewError("onboarding.name_required", "business name is required")),
			validation.RuneLength(1, maxNameLength)),
		validation.Field(&profile.Type,
			validation.Required.ErrorObject(validation.NewError("onboarding.type_required", "business type is required")),
			validation.RuneLength(1, maxTypeLength)),
		validation.Field(&profile.Location,
			validation.Required.ErrorObject(validation.NewError("onboarding.location_required", "location is required")),
			validation.RuneLength(1, maxLocationLength)),
		validation.Field(&profile.Description, validation.RuneLength(0, maxDescriptionLength)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid business profile").WithTextCode("PROFILE_INVALID")
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID string) (website.BusinessProfile, error) {
	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		if persistence.IsNotFound(err) {
			return website.BusinessProfile{}, ErrProfileNotFound
		}
		return website.BusinessProfile{}, err
	}
	return profile, nil
}

func (s *service) Set(ctx context.Context, userID string, profile website.BusinessProfile) (website.BusinessProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return website.BusinessProfile{}, persistence.ErrUserRequired
	}
	if err := Validate(profile); err != nil {
		return website.BusinessProfile{}, err
	}
	normalized := profile.Normalized()
	if err := s.store.SaveProfile(ctx, userID, normalized); err != nil {
		return website.BusinessProfile{}, err
	}
	return normalized, nil
}

func (s *service) Completed(ctx context.Context, userID string) (bool, error) {
	return s.store.OnboardingCompleted(ctx, userID)
}

func (s *service) MarkCompleted(ctx context.Context, userID string) error {
	return s.store.SetOnboardingCompleted(ctx, userID, true)
}
