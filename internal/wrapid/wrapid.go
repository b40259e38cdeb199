// Package wrapid generates wrapper identifiers: 128-bit random values
// rendered as 32 hex characters. Collisions are statistically negligible,
// so callers do not check for an existing record before writing.
package wrapid

import (
	"strings"

	"github.com/google/uuid"
)

const Length = 32

// New returns a fresh random identifier (a v4 UUID with the dashes
// stripped), safe for use as a storage key and in URLs.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
