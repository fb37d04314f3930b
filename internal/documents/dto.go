package documents

import (
	"time"
	"unicode/utf8"
)

const summaryPreviewLength = 150

// ListItemResponse is the outward-facing representation of a document in
// list views. SummaryPreview is null until analysis has produced a summary.
type ListItemResponse struct {
	ID               string    `json:"id"`
	DocumentName     string    `json:"documentName"`
	OriginalFilename string    `json:"originalFilename"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	FileSize         int64     `json:"fileSize"`
	HasSummary       bool      `json:"hasSummary"`
	AnalysisStatus   string    `json:"analysisStatus"`
	SummaryPreview   *string   `json:"summaryPreview"`
}

// DetailResponse is the full document view including extracted content.
type DetailResponse struct {
	ID               string     `json:"id"`
	DocumentName     string     `json:"documentName"`
	OriginalFilename string     `json:"originalFilename"`
	DocumentContent  string     `json:"documentContent"`
	AISummary        string     `json:"aiSummary"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	FileSize         int64      `json:"fileSize"`
	AnalysisStatus   string     `json:"analysisStatus"`
	AnalyzedAt       *time.Time `json:"analyzedAt"`
}

func toListItem(doc Document) ListItemResponse {
	item := ListItemResponse{
		ID:               doc.ID,
		DocumentName:     doc.DocumentName,
		OriginalFilename: doc.OriginalFilename,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
		FileSize:         doc.FileSize,
		HasSummary:       doc.HasSummary(),
		AnalysisStatus:   doc.AnalysisStatus,
	}
	if doc.HasSummary() {
		preview := doc.AISummary
		if utf8.RuneCountInString(preview) > summaryPreviewLength {
			preview = string([]rune(preview)[:summaryPreviewLength])
		}
		preview += "..."
		item.SummaryPreview = &preview
	}
	return item
}

func toDetail(doc Document) DetailResponse {
	return DetailResponse{
		ID:               doc.ID,
		DocumentName:     doc.DocumentName,
		OriginalFilename: doc.OriginalFilename,
		DocumentContent:  doc.Content,
		AISummary:        doc.AISummary,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
		FileSize:         doc.FileSize,
		AnalysisStatus:   doc.AnalysisStatus,
		AnalyzedAt:       doc.AnalyzedAt,
	}
}
