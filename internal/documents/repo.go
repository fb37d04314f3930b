package documents

import (
	"context"
	"time"
)

// Repo defines owner-scoped persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	// GetByID returns the document only when it is owned by ownerID;
	// a missing or foreign document is ErrNotFound.
	GetByID(ctx context.Context, ownerID, documentID string) (Document, error)
	// ListByOwner returns the owner's documents ordered by creation time
	// descending.
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	// UpdateAnalysis overwrites the summary and status fields; re-analysis
	// is idempotent and replaces the prior summary.
	UpdateAnalysis(ctx context.Context, ownerID, documentID, summary, status string, analyzedAt time.Time) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
