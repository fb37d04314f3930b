package analyses

import "errors"

var (
	ErrDocumentNotFound = errors.New("Document not found")
	ErrEmptyDocument    = errors.New("Document has no content to analyze")
)
