// Package persistence stores per-user editor state: the business profile, the
// current website snapshot, the onboarding flag and the recent projects list.
package persistence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/identity"
)

// StateKey names one persisted value per user.
type StateKey string

const (
	KeyBusinessProfile     StateKey = "business_profile"
	KeyWebsite             StateKey = "website"
	KeyOnboardingCompleted StateKey = "onboarding_completed"
	KeyRecentProjects      StateKey = "recent_projects"
)

var (
	ErrUserRequired       = errors.New("persistence: user id required")
	ErrRepositoryRequired = errors.New("persistence: state repository required")
	ErrSnapshotCorrupt    = errors.New("persistence: stored website snapshot is unreadable")
)

// NotFoundError reports a missing state entry.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("persistence: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// StateRecord is one JSON encoded value scoped by user and key.
type StateRecord struct {
	bun.BaseModel `bun:"table:user_states,alias:us"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	Key       StateKey  `bun:"state_key,notnull" json:"state_key"`
	Scope     string    `bun:"scope,notnull,unique" json:"scope"`
	Value     string    `bun:"value,notnull" json:"value"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ScopeFor returns the unique scope string of a user's key.
func ScopeFor(userID string, key StateKey) string {
	return strings.TrimSpace(userID) + ":" + string(key)
}

// StateID derives the stable record id of a user's key.
func StateID(userID string, key StateKey) uuid.UUID {
	return identity.StateUUID(ScopeFor(userID, key))
}

func cloneRecord(record *StateRecord) *StateRecord {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
