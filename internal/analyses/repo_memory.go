package analyses

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]ResponseRecord // ownerID -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]ResponseRecord)}
}

// Create stores a new response record under its owner.
func (r *MemoryRepo) Create(ctx context.Context, record ResponseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[record.UserID] = append(r.data[record.UserID], record)
	return nil
}

// ListByOwner returns the owner's newest records first, capped at listLimit.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]ResponseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	owned := r.data[ownerID]
	records := make([]ResponseRecord, len(owned))
	copy(records, owned)
	r.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if len(records) > listLimit {
		records = records[:listLimit]
	}
	return records, nil
}

// CountByOwner returns how many records the owner has.
func (r *MemoryRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[ownerID]), nil
}
