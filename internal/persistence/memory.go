package persistence

import (
	"context"
	"sort"
	"sync"
)

// MemoryStateRepository keeps state records in process memory.
type MemoryStateRepository struct {
	mu      sync.RWMutex
	byScope map[string]*StateRecord
}

// NewMemoryStateRepository constructs an empty memory-backed repository.
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{byScope: make(map[string]*StateRecord)}
}

var _ StateRepository = (*MemoryStateRepository)(nil)

func (r *MemoryStateRepository) Get(_ context.Context, userID string, key StateKey) (*StateRecord, error) {
	scope := ScopeFor(userID, key)

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byScope[scope]
	if !ok {
		return nil, &NotFoundError{Resource: "state", Key: scope}
	}
	return cloneRecord(record), nil
}

func (r *MemoryStateRepository) Put(_ context.Context, record *StateRecord) (*StateRecord, error) {
	if record == nil {
		return nil, nil
	}
	cloned := cloneRecord(record)
	cloned.Scope = ScopeFor(cloned.UserID, cloned.Key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byScope[cloned.Scope]; ok && !existing.CreatedAt.IsZero() {
		cloned.CreatedAt = existing.CreatedAt
	}
	r.byScope[cloned.Scope] = cloned
	return cloneRecord(cloned), nil
}

func (r *MemoryStateRepository) Delete(_ context.Context, userID string, key StateKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byScope, ScopeFor(userID, key))
	return nil
}

func (r *MemoryStateRepository) ListByUser(_ context.Context, userID string) ([]*StateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*StateRecord, 0)
	for _, record := range r.byScope {
		if record.UserID == userID {
			out = append(out, cloneRecord(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
