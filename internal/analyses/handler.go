package analyses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/shared/server/middleware"
	"lexibridge-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/analyze-document", h.analyzeDocument)
	rg.POST("/ask-ai", h.askAI)
	rg.GET("/chat-history", h.chatHistory)
}

type analyzeRequest struct {
	DocumentID string `form:"documentId" json:"documentId"`
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body")
		return
	}
	req.DocumentID = strings.TrimSpace(req.DocumentID)
	if req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "documentId is required")
		return
	}
	middleware.SetDocumentID(c, req.DocumentID)

	record, err := h.Svc.AnalyzeDocument(c.Request.Context(), userID, req.DocumentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, err.Error())
		case errors.Is(err, ErrEmptyDocument):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeAI, "AI analysis failed")
		}
		return
	}

	respond.OK(c, gin.H{
		"success":      true,
		"message":      "Document analyzed successfully",
		"responseId":   record.ResponseID,
		"documentId":   record.DocumentID,
		"documentName": record.DocumentName,
		"aiSummary":    record.AIResponse,
		"timestamp":    record.Timestamp,
	})
}

type askRequest struct {
	Question   string `form:"question" json:"question"`
	DocumentID string `form:"documentId" json:"documentId"`
}

func (h *Handler) askAI(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)

	var req askRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "question is required")
		return
	}

	middleware.SetDocumentID(c, strings.TrimSpace(req.DocumentID))
	record, err := h.Svc.AskAI(c.Request.Context(), ident.UserID, ident.Username, req.Question, strings.TrimSpace(req.DocumentID))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeAI, "AI service error")
		return
	}

	respond.OK(c, gin.H{
		"success":     true,
		"responseId":  record.ResponseID,
		"userMessage": record.UserMessage,
		"aiResponse":  record.AIResponse,
		"timestamp":   record.Timestamp,
	})
}

func (h *Handler) chatHistory(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	records, err := h.Svc.History(c.Request.Context(), userID)
	if err != nil {
		// History degrades to an empty collection rather than failing.
		respond.OK(c, gin.H{"success": true, "responses": []HistoryItemResponse{}})
		return
	}

	items := make([]HistoryItemResponse, 0, len(records))
	for _, record := range records {
		items = append(items, toHistoryItem(record))
	}
	respond.OK(c, gin.H{"success": true, "responses": items})
}
