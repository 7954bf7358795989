package gosplice

import (
	"crypto/rand"
	"encoding/hex"
)

// IDFunc produces a random hexadecimal identifier of the requested even
// length. Segment and DNT identifiers are drawn from the same generator;
// disjointness relies on the id-space size, not on cross-checking.
type IDFunc func(length int) string

// NewID returns a random hex string of the given even length, read from the
// system entropy source.
func NewID(length int) string {
	buf := make([]byte, length/2)
	if _, err := rand.Read(buf); err != nil {
		// The system entropy source being unreadable is not a
		// recoverable document-processing condition.
		panic("gosplice: reading random source: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
