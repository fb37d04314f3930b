package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxTextLength bounds the extracted text kept for AI processing.
const MaxTextLength = 10000

// Error wraps any extraction failure so handlers can surface it as a
// client-facing error with the underlying cause.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("error extracting text from PDF: %v", e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Extractor turns raw PDF bytes into normalized plain text. It is the
// collaborator boundary for document ingestion; handlers depend on the
// interface so tests can substitute a stub.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// PDFExtractor implements Extractor with github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor constructs a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Extract pulls the plain text from a PDF payload, collapses whitespace
// runs to single spaces and truncates to MaxTextLength characters.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Cause: err}
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &Error{Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &Error{Cause: err}
	}

	return Normalize(buf.String()), nil
}

// Normalize collapses whitespace runs, trims, and truncates to MaxTextLength
// characters. Truncation counts runes so a multi-byte character is never
// split.
func Normalize(text string) string {
	text = strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
	if utf8.RuneCountInString(text) > MaxTextLength {
		text = string([]rune(text)[:MaxTextLength])
	}
	return text
}
