package documents

import "time"

// Analysis lifecycle markers. The synchronous pipeline writes pending and
// completed; analyzing is accepted on read for forward compatibility but
// never persisted.
const (
	StatusPending   = "pending"
	StatusAnalyzing = "analyzing"
	StatusCompleted = "completed"
)

// Document is an uploaded PDF owned by a user. The owner never changes.
// AISummary is empty exactly while AnalysisStatus is pending.
type Document struct {
	ID               string
	UserID           string
	UserName         string
	DocumentName     string
	OriginalFilename string
	Content          string
	AISummary        string
	AnalysisStatus   string
	FileSize         int64
	StorageKey       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AnalyzedAt       *time.Time
}

// HasSummary reports whether analysis has produced a summary.
func (d Document) HasSummary() bool {
	return d.AISummary != ""
}
