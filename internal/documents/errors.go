package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoStoredFile marks a document whose original bytes were never
	// retained, either because retention is disabled or the save failed.
	ErrNoStoredFile = errors.New("original file not retained")
)
