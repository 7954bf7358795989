// Package cache provides translation-memory implementations. A memory
// stores translated segment markup keyed by the hash of the source markup
// and the target language, so segments repeated across documents are not
// sent out for translation again.
package cache

// TranslationMemory is the interface consulted by the batch translation
// step.
type TranslationMemory interface {
	// Get retrieves a remembered translation. Returns empty string and
	// false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the memory.
	Set(key string, value string) error
}
