package analyses

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"lexibridge-backend/internal/documents"
	"lexibridge-backend/internal/llm"
	"lexibridge-backend/internal/shared/ids"
	"lexibridge-backend/internal/shared/telemetry"
	"lexibridge-backend/internal/users"
)

const generalQuestionName = "General Question"

// Service runs the AI analysis pipeline: resolve the document, obtain the
// AI answer, then record the outcome across the document, response and
// chat-history stores. Everything after the AI answer is best-effort.
type Service struct {
	Repo   Repo
	Docs   documents.Repo
	Users  *users.Service
	Engine *llm.Engine

	inFlight singleflight.Group
}

// NewService constructs a Service.
func NewService(repo Repo, docs documents.Repo, usersSvc *users.Service, engine *llm.Engine) *Service {
	return &Service{Repo: repo, Docs: docs, Users: usersSvc, Engine: engine}
}

// AnalyzeDocument summarizes an owned document. Concurrent calls for the
// same document share one provider invocation and one persisted result.
func (s *Service) AnalyzeDocument(ctx context.Context, userID, documentID string) (ResponseRecord, error) {
	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return ResponseRecord{}, ErrDocumentNotFound
		}
		return ResponseRecord{}, err
	}
	if doc.Content == "" {
		return ResponseRecord{}, ErrEmptyDocument
	}

	key := userID + "/" + doc.ID
	result, err, _ := s.inFlight.Do(key, func() (any, error) {
		return s.analyze(ctx, userID, doc), nil
	})
	if err != nil {
		return ResponseRecord{}, err
	}
	return result.(ResponseRecord), nil
}

func (s *Service) analyze(ctx context.Context, userID string, doc documents.Document) ResponseRecord {
	summary := s.Engine.Analyze(ctx, doc.Content, "")
	now := time.Now().UTC()

	telemetry.BestEffort("document.update-analysis",
		s.Docs.UpdateAnalysis(ctx, userID, doc.ID, summary, documents.StatusCompleted, now),
		map[string]any{"document_id": doc.ID})

	record := ResponseRecord{
		ResponseID:   ids.New(),
		UserID:       userID,
		UserName:     doc.UserName,
		DocumentID:   doc.ID,
		DocumentName: doc.DocumentName,
		UserMessage:  "Analyze this document",
		AIResponse:   summary,
		Type:         TypeDocumentAnalysis,
		Timestamp:    now,
	}
	s.record(ctx, record)
	return record
}

// AskAI answers a free-form question, optionally grounded in an owned
// document. A documentId that cannot be resolved is ignored and the
// question proceeds without document context.
func (s *Service) AskAI(ctx context.Context, userID, userName, question, documentID string) (ResponseRecord, error) {
	documentContent := ""
	documentName := generalQuestionName
	if documentID != "" {
		doc, err := s.Docs.GetByID(ctx, userID, documentID)
		if err == nil {
			documentContent = doc.Content
			documentName = doc.DocumentName
		} else {
			telemetry.Warn("askai.document-fetch failed", map[string]any{
				"document_id": documentID,
				"error":       err.Error(),
			})
		}
	}

	answer := s.Engine.Analyze(ctx, documentContent, question)
	record := ResponseRecord{
		ResponseID:   ids.New(),
		UserID:       userID,
		UserName:     userName,
		DocumentID:   documentID,
		DocumentName: documentName,
		UserMessage:  question,
		AIResponse:   answer,
		Type:         TypeQuestion,
		Timestamp:    time.Now().UTC(),
	}
	s.record(ctx, record)
	return record, nil
}

// History returns the owner's newest response records, capped at 50.
func (s *Service) History(ctx context.Context, userID string) ([]ResponseRecord, error) {
	return s.Repo.ListByOwner(ctx, userID)
}

// CountByOwner returns how many response records the owner has.
func (s *Service) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return s.Repo.CountByOwner(ctx, ownerID)
}

func (s *Service) record(ctx context.Context, record ResponseRecord) {
	telemetry.BestEffort("response.save", s.Repo.Create(ctx, record),
		map[string]any{"response_id": record.ResponseID})

	telemetry.BestEffort("history.append",
		s.Users.RecordHistory(ctx, record.UserID, users.ChatHistoryEntry{
			ResponseID:   record.ResponseID,
			DocumentID:   record.DocumentID,
			DocumentName: record.DocumentName,
			UserMessage:  record.UserMessage,
			AIResponse:   record.AIResponse,
			Timestamp:    record.Timestamp,
		}),
		map[string]any{"response_id": record.ResponseID})
}
