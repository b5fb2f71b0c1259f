package persistence

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StateRepository reads and writes state records.
type StateRepository interface {
	Get(ctx context.Context, userID string, key StateKey) (*StateRecord, error)
	Put(ctx context.Context, record *StateRecord) (*StateRecord, error)
	Delete(ctx context.Context, userID string, key StateKey) error
	ListByUser(ctx context.Context, userID string) ([]*StateRecord, error)
}

// NewStateRecordRepository creates the generic bun repository for state records.
func NewStateRecordRepository(db *bun.DB) repository.Repository[*StateRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*StateRecord]{
		NewRecord:          func() *StateRecord { return &StateRecord{} },
		GetID:              func(record *StateRecord) uuid.UUID { return record.ID },
		SetID:              func(record *StateRecord, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "scope" },
		GetIdentifierValue: func(record *StateRecord) string { return record.Scope },
	})
}
