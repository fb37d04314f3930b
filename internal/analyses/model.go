package analyses

import "time"

// Response record kinds.
const (
	TypeDocumentAnalysis = "document_analysis"
	TypeQuestion         = "question"
)

// ResponseRecord is one completed AI interaction. Records are immutable
// once written.
type ResponseRecord struct {
	ResponseID   string
	UserID       string
	UserName     string
	DocumentID   string
	DocumentName string
	UserMessage  string
	AIResponse   string
	Type         string
	Timestamp    time.Time
}
