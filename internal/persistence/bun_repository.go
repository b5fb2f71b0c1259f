package persistence

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStateRepository implements StateRepository with optional caching.
type BunStateRepository struct {
	repo repository.Repository[*StateRecord]
}

var _ StateRepository = (*BunStateRepository)(nil)

// NewBunStateRepository creates a state repository without caching.
func NewBunStateRepository(db *bun.DB) *BunStateRepository {
	return NewBunStateRepositoryWithCache(db, nil, nil)
}

// NewBunStateRepositoryWithCache creates a state repository with caching support.
func NewBunStateRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStateRepository {
	base := NewStateRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunStateRepository{repo: base}
}

func (r *BunStateRepository) Get(ctx context.Context, userID string, key StateKey) (*StateRecord, error) {
	scope := ScopeFor(userID, key)
	record, err := r.repo.GetByIdentifier(ctx, scope)
	if err != nil {
		return nil, mapRepositoryError(err, "state", scope)
	}
	return record, nil
}

func (r *BunStateRepository) Put(ctx context.Context, record *StateRecord) (*StateRecord, error) {
	if record == nil {
		return nil, nil
	}
	record.Scope = ScopeFor(record.UserID, record.Key)
	if record.ID == uuid.Nil {
		record.ID = StateID(record.UserID, record.Key)
	}

	if _, err := r.repo.GetByID(ctx, record.ID.String()); err != nil {
		if !errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "state", record.Scope)
		}
		created, err := r.repo.Create(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("state repository error: %w", err)
		}
		return created, nil
	}

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("value", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "state", record.Scope)
	}
	return updated, nil
}

func (r *BunStateRepository) Delete(ctx context.Context, userID string, key StateKey) error {
	err := r.repo.Delete(ctx, &StateRecord{ID: StateID(userID, key)})
	if err != nil && !errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return err
	}
	return nil
}

func (r *BunStateRepository) ListByUser(ctx context.Context, userID string) ([]*StateRecord, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.user_id = ?", userID).OrderExpr("?TableAlias.state_key ASC")
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
