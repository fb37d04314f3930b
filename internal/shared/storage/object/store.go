package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for retaining and retrieving the raw
// uploaded files. Retention is best-effort: callers log failures and move
// on, so implementations must never be required for the request pipeline.
type ObjectStore interface {
	Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
