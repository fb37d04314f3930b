package analyses

import "context"

// listLimit bounds how many records a history listing returns.
const listLimit = 50

// Repo defines owner-scoped persistence for response records.
type Repo interface {
	Create(ctx context.Context, record ResponseRecord) error
	// ListByOwner returns the owner's newest records first, at most
	// listLimit of them.
	ListByOwner(ctx context.Context, ownerID string) ([]ResponseRecord, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
