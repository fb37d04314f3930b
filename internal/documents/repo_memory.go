package documents

import (
	"context"
	"sort"
	"sync"
	"time"

	"lexibridge-backend/internal/shared/ids"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // ownerID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Document)}
}

// Create stores a new document under its owner.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// GetByID returns an owned document by id.
func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	key := ids.Normalize(documentID)
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == key {
			return docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByOwner returns the owner's documents, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	ownerDocs := r.data[ownerID]
	docs := make([]Document, len(ownerDocs))
	copy(docs, ownerDocs)
	r.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// UpdateAnalysis overwrites the summary and status of an owned document.
func (r *MemoryRepo) UpdateAnalysis(ctx context.Context, ownerID, documentID, summary, status string, analyzedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := ids.Normalize(documentID)
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == key {
			docs[i].AISummary = summary
			docs[i].AnalysisStatus = status
			at := analyzedAt
			docs[i].AnalyzedAt = &at
			docs[i].UpdatedAt = analyzedAt
			return nil
		}
	}
	return ErrNotFound
}

// CountByOwner returns how many documents the owner has.
func (r *MemoryRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[ownerID]), nil
}
