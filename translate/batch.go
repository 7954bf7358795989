package translate

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/gosplice"
	"github.com/ZaguanLabs/gosplice/cache"
)

// Batcher translates extracted segments through a Provider, consulting a
// translation memory first so repeated markup is only sent out once.
type Batcher struct {
	provider          Provider
	memory            cache.TranslationMemory
	sourceLang        string
	targetLang        string
	parallelThreshold int // Minimum segments to trigger parallel lookup
}

// BatchStats reports where each translation came from.
type BatchStats struct {
	Total      int // Segments in the batch
	FromMemory int // Distinct hashes served from the memory
	Translated int // Distinct hashes sent to the provider
}

// BatcherOption is a functional option for configuring the Batcher.
type BatcherOption func(*Batcher)

// WithSourceLang sets the source language.
func WithSourceLang(lang string) BatcherOption {
	return func(b *Batcher) {
		b.sourceLang = lang
	}
}

// WithMemory sets the translation memory.
func WithMemory(memory cache.TranslationMemory) BatcherOption {
	return func(b *Batcher) {
		b.memory = memory
	}
}

// WithParallelThreshold sets the minimum segments for parallel memory
// lookups.
func WithParallelThreshold(n int) BatcherOption {
	return func(b *Batcher) {
		b.parallelThreshold = n
	}
}

// NewBatcher creates a new Batcher for the given target language and
// provider.
func NewBatcher(targetLang string, provider Provider, opts ...BatcherOption) *Batcher {
	b := &Batcher{
		provider:          provider,
		sourceLang:        "en-US",
		targetLang:        targetLang,
		parallelThreshold: 5, // Use parallel for 5+ segments
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Translate translates all segments and returns one entry per segment, in
// order. Segments with identical source markup share a translation.
func (b *Batcher) Translate(ctx context.Context, segments []gosplice.Segment) ([]gosplice.TranslationEntry, BatchStats, error) {
	stats := BatchStats{Total: len(segments)}
	if len(segments) == 0 {
		return nil, stats, nil
	}

	hashes := make([]string, len(segments))
	for i, seg := range segments {
		hashes[i] = gosplice.HashMarkup(seg.Source)
	}

	// Memory lookup first
	translations := make(map[string]string)
	var misses []gosplice.Segment
	if b.memory != nil {
		if len(segments) >= b.parallelThreshold {
			translations, misses = ParallelMemoryLookup(b.memory, segments, b.targetLang)
		} else {
			seen := make(map[string]bool)
			for i, seg := range segments {
				hash := hashes[i]
				if seen[hash] {
					continue
				}
				seen[hash] = true
				if val, ok := b.memory.Get(gosplice.MemoryKey(hash, b.targetLang)); ok {
					translations[hash] = val
				} else {
					misses = append(misses, seg)
				}
			}
		}
		stats.FromMemory = len(translations)
	} else {
		seen := make(map[string]bool)
		for i, seg := range segments {
			if seen[hashes[i]] {
				continue
			}
			seen[hashes[i]] = true
			misses = append(misses, seg)
		}
	}

	// Translate memory misses via the provider
	if len(misses) > 0 {
		if b.provider == nil {
			return nil, stats, &gosplice.ProviderError{Message: "no provider configured"}
		}

		texts := make([]string, len(misses))
		for i, seg := range misses {
			texts[i] = seg.Source
		}

		results, err := b.provider.Translate(ctx, Request{
			Texts:      texts,
			SourceLang: b.sourceLang,
			TargetLang: b.targetLang,
		})
		if err != nil {
			return nil, stats, err
		}
		if len(results) != len(texts) {
			return nil, stats, &gosplice.CountMismatchError{
				Expected: len(texts),
				Got:      len(results),
			}
		}

		for i, seg := range misses {
			hash := gosplice.HashMarkup(seg.Source)
			translations[hash] = results[i]
			if b.memory != nil {
				_ = b.memory.Set(gosplice.MemoryKey(hash, b.targetLang), results[i]) // Ignore memory set errors
			}
			stats.Translated++
		}
	}

	entries := make([]gosplice.TranslationEntry, len(segments))
	for i, seg := range segments {
		entries[i] = gosplice.TranslationEntry{
			ID:   seg.ID,
			Text: translations[hashes[i]],
		}
	}

	return entries, stats, nil
}

// ParallelMemoryLookup performs memory lookups in parallel using goroutines.
// Returns a map of hash to remembered value, and the segments that missed
// (deduplicated by hash, original order preserved).
func ParallelMemoryLookup(memory cache.TranslationMemory, segments []gosplice.Segment, targetLang string) (map[string]string, []gosplice.Segment) {
	if memory == nil || len(segments) == 0 {
		return make(map[string]string), segments
	}

	type lookupResult struct {
		hash  string
		value string
		found bool
	}

	// Deduplicate segments by hash first
	hashes := make([]string, len(segments))
	uniqueHashes := make(map[string]bool)
	for i, seg := range segments {
		hashes[i] = gosplice.HashMarkup(seg.Source)
		uniqueHashes[hashes[i]] = true
	}

	results := make(chan lookupResult, len(uniqueHashes))
	var wg sync.WaitGroup

	for hash := range uniqueHashes {
		wg.Add(1)
		go func(h string) {
			defer wg.Done()
			key := gosplice.MemoryKey(h, targetLang)
			if val, ok := memory.Get(key); ok {
				results <- lookupResult{hash: h, value: val, found: true}
			} else {
				results <- lookupResult{hash: h, found: false}
			}
		}(hash)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	translations := make(map[string]string)
	missedHashes := make(map[string]bool)

	for result := range results {
		if result.found {
			translations[result.hash] = result.value
		} else {
			missedHashes[result.hash] = true
		}
	}

	// Build miss slice preserving original order
	var misses []gosplice.Segment
	seenMisses := make(map[string]bool)
	for i, seg := range segments {
		if missedHashes[hashes[i]] && !seenMisses[hashes[i]] {
			misses = append(misses, seg)
			seenMisses[hashes[i]] = true
		}
	}

	return translations, misses
}
