// Package ids treats record identifiers as opaque strings. Stored ids are
// canonical UUID strings, but ids arriving over the wire may be arbitrary
// client-supplied values; lookups with a malformed id must degrade to
// not-found rather than fail.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh canonical identifier.
func New() string {
	return uuid.NewString()
}

// Normalize canonicalizes a parseable UUID (lowercase, hyphenated) and
// passes any other value through unchanged.
func Normalize(id string) string {
	trimmed := strings.TrimSpace(id)
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return parsed.String()
	}
	return trimmed
}
