package documents

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/extract"
	"lexibridge-backend/internal/shared/server/middleware"
	"lexibridge-backend/internal/shared/server/respond"
)

const maxUploadSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the documents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/upload-document", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required")
		return
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Only PDF files are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file")
		return
	}
	defer file.Close()

	// One probe byte past the cap detects oversize payloads without
	// buffering more than the limit.
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file")
		return
	}
	if len(data) > maxUploadSize {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "File size exceeds 25MB limit")
		return
	}

	doc, err := h.Svc.Upload(c.Request.Context(), ident.UserID, ident.Username, fileHeader.Filename, data)
	if err != nil {
		var extErr *extract.Error
		if errors.As(err, &extErr) {
			respond.Error(c, http.StatusBadRequest, respond.CodeExtraction,
				fmt.Sprintf("Failed to extract text from PDF: %v", extErr.Cause))
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save document")
		return
	}

	middleware.SetDocumentID(c, doc.ID)
	respond.OK(c, gin.H{
		"success":             true,
		"message":             "Document uploaded successfully",
		"documentId":          doc.ID,
		"documentName":        doc.DocumentName,
		"extractedTextLength": len(doc.Content),
		"fileSize":            doc.FileSize,
		"analysisStatus":      doc.AnalysisStatus,
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		// Listing degrades to an empty collection rather than failing.
		respond.OK(c, gin.H{"success": true, "documents": []ListItemResponse{}})
		return
	}

	items := make([]ListItemResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toListItem(doc))
	}
	respond.OK(c, gin.H{"success": true, "documents": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	middleware.SetDocumentID(c, c.Param("id"))

	doc, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Document not found")
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, fmt.Sprintf("Invalid document ID: %v", err))
		return
	}

	respond.OK(c, gin.H{"success": true, "document": toDetail(doc)})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	middleware.SetDocumentID(c, c.Param("id"))

	doc, reader, err := h.Svc.OpenOriginal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Document not found")
		case errors.Is(err, ErrNoStoredFile):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Original file is not available for this document")
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load document file")
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
