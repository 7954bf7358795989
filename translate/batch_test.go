package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gosplice"
	"github.com/ZaguanLabs/gosplice/cache"
)

func segs(sources ...string) []gosplice.Segment {
	out := make([]gosplice.Segment, len(sources))
	for i, s := range sources {
		out[i] = gosplice.Segment{ID: string(rune('a' + i)), Source: s}
	}
	return out
}

func TestBatcher_Translate(t *testing.T) {
	provider := NewMockProvider()
	provider.Translations["Hello"] = "Hallo"
	provider.Translations["World"] = "Welt"

	b := NewBatcher("de-DE", provider)
	entries, stats, err := b.Translate(context.Background(), segs("Hello", "World"))
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "Hallo" || entries[1].Text != "Welt" {
		t.Errorf("unexpected translations: %+v", entries)
	}
	if stats.Translated != 2 || stats.FromMemory != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestBatcher_MemoryHit(t *testing.T) {
	provider := NewMockProvider()
	memory := cache.NewInMemoryCache(0)

	hash := gosplice.HashMarkup("Hello")
	memory.Set(gosplice.MemoryKey(hash, "de-DE"), "Hallo")

	b := NewBatcher("de-DE", provider, WithMemory(memory))
	entries, stats, err := b.Translate(context.Background(), segs("Hello"))
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if entries[0].Text != "Hallo" {
		t.Errorf("expected remembered translation, got %q", entries[0].Text)
	}
	if stats.FromMemory != 1 || stats.Translated != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if provider.CallCount != 0 {
		t.Errorf("provider should not have been called, got %d calls", provider.CallCount)
	}
}

func TestBatcher_MemoryStore(t *testing.T) {
	provider := NewMockProvider()
	provider.Translations["Hello"] = "Hallo"
	memory := cache.NewInMemoryCache(0)

	b := NewBatcher("de-DE", provider, WithMemory(memory))
	if _, _, err := b.Translate(context.Background(), segs("Hello")); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	key := gosplice.MemoryKey(gosplice.HashMarkup("Hello"), "de-DE")
	if val, ok := memory.Get(key); !ok || val != "Hallo" {
		t.Errorf("translation not stored in memory: %q, %v", val, ok)
	}
}

func TestBatcher_DuplicateSegments(t *testing.T) {
	provider := NewMockProvider()
	provider.Translations["Same"] = "Gleich"

	b := NewBatcher("de-DE", provider)
	entries, stats, err := b.Translate(context.Background(), segs("Same", "Same", "Same"))
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if stats.Translated != 1 {
		t.Errorf("expected 1 distinct translation, got %d", stats.Translated)
	}
	for _, e := range entries {
		if e.Text != "Gleich" {
			t.Errorf("entry %s: expected Gleich, got %q", e.ID, e.Text)
		}
	}
	if len(provider.LastRequest.Texts) != 1 {
		t.Errorf("expected deduplicated request, got %d texts", len(provider.LastRequest.Texts))
	}
}

func TestBatcher_ParallelLookup(t *testing.T) {
	provider := NewMockProvider()
	memory := cache.NewInMemoryCache(0)

	sources := []string{"one", "two", "three", "four", "five", "six"}
	for _, s := range sources {
		memory.Set(gosplice.MemoryKey(gosplice.HashMarkup(s), "de-DE"), strings.ToUpper(s))
	}

	b := NewBatcher("de-DE", provider, WithMemory(memory), WithParallelThreshold(5))
	entries, stats, err := b.Translate(context.Background(), segs(sources...))
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if stats.FromMemory != 6 {
		t.Errorf("expected 6 memory hits, got %d", stats.FromMemory)
	}
	for i, e := range entries {
		if e.Text != strings.ToUpper(sources[i]) {
			t.Errorf("entry %d: got %q", i, e.Text)
		}
	}
}

func TestBatcher_CountMismatch(t *testing.T) {
	provider := &truncatingProvider{}
	b := NewBatcher("de-DE", provider)

	_, _, err := b.Translate(context.Background(), segs("a", "b"))
	if err == nil {
		t.Fatal("expected count mismatch error")
	}
	var mismatch *gosplice.CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CountMismatchError, got %T", err)
	}
	if mismatch.Expected != 2 || mismatch.Got != 1 {
		t.Errorf("unexpected counts: %+v", mismatch)
	}
}

func TestBatcher_Empty(t *testing.T) {
	b := NewBatcher("de-DE", NewMockProvider())
	entries, stats, err := b.Translate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if entries != nil || stats.Total != 0 {
		t.Errorf("expected empty result, got %v, %+v", entries, stats)
	}
}

// truncatingProvider returns fewer results than requested.
type truncatingProvider struct{}

func (p *truncatingProvider) Translate(_ context.Context, req Request) ([]string, error) {
	return req.Texts[:len(req.Texts)-1], nil
}
