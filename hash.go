package gosplice

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashMarkup computes the SHA-256 hash of the trimmed segment markup.
func HashMarkup(markup string) string {
	trimmed := strings.TrimSpace(markup)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// MemoryKey generates a translation-memory key from a markup hash and the
// target language.
func MemoryKey(hash, targetLang string) string {
	return hash + ":" + targetLang
}

// MemoryKeyExtended generates an extended key including the source language
// and provider name, for memories shared across differently configured runs.
func MemoryKeyExtended(hash, sourceLang, targetLang, provider string) string {
	return hash + ":" + sourceLang + ":" + targetLang + ":" + provider
}
