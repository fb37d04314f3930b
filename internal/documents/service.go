package documents

import (
	"bytes"
	"context"
	"io"
	"time"

	"lexibridge-backend/internal/extract"
	"lexibridge-backend/internal/shared/ids"
	"lexibridge-backend/internal/shared/storage/object"
	"lexibridge-backend/internal/shared/telemetry"
)

// Service implements document ingestion and retrieval.
type Service struct {
	Repo      Repo
	Extractor extract.Extractor
	Store     object.ObjectStore // nil disables retention
}

// NewService constructs a Service.
func NewService(repo Repo, extractor extract.Extractor, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Extractor: extractor, Store: store}
}

// Upload extracts text from the PDF payload and persists a new document in
// pending state. Retention of the original bytes is best-effort and never
// fails the upload.
func (s *Service) Upload(ctx context.Context, userID, userName, filename string, data []byte) (Document, error) {
	content, err := s.Extractor.Extract(ctx, data)
	if err != nil {
		return Document{}, err
	}

	now := time.Now().UTC()
	doc := Document{
		ID:               ids.New(),
		UserID:           userID,
		UserName:         userName,
		DocumentName:     filename,
		OriginalFilename: filename,
		Content:          content,
		AnalysisStatus:   StatusPending,
		FileSize:         int64(len(data)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if s.Store != nil {
		key := userID + "/" + doc.ID + ".pdf"
		if _, err := s.Store.Save(ctx, key, "application/pdf", bytes.NewReader(data)); err != nil {
			telemetry.BestEffort("document.retain", err, map[string]any{
				"document_id": doc.ID,
				"user_id":     userID,
			})
		} else {
			doc.StorageKey = key
		}
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns an owned document with its full content.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	return s.Repo.GetByID(ctx, ownerID, documentID)
}

// OpenOriginal returns an owned document together with a reader over its
// retained PDF bytes. The caller closes the reader. Documents uploaded
// while retention was disabled return ErrNoStoredFile.
func (s *Service) OpenOriginal(ctx context.Context, ownerID, documentID string) (Document, io.ReadCloser, error) {
	doc, err := s.Repo.GetByID(ctx, ownerID, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	if s.Store == nil || doc.StorageKey == "" {
		return Document{}, nil, ErrNoStoredFile
	}
	reader, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, reader, nil
}

// List returns the owner's documents, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Document, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// CountByOwner returns how many documents the owner has.
func (s *Service) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return s.Repo.CountByOwner(ctx, ownerID)
}
