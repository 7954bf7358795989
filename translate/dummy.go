package translate

import (
	"context"
	"fmt"
	"sync"
)

// DummyProvider produces pseudo-translations by prefixing each text with a
// numbered target-language marker, e.g. "[de-DE_3] ". Useful for verifying
// the round trip without a real backend.
type DummyProvider struct {
	mu      sync.Mutex
	counter int
}

// NewDummyProvider creates a new dummy provider. Numbering starts at 1 and
// increases across requests.
func NewDummyProvider() *DummyProvider {
	return &DummyProvider{}
}

// Translate returns the inputs with numbered language markers prepended.
func (d *DummyProvider) Translate(_ context.Context, req Request) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		d.counter++
		results[i] = fmt.Sprintf("[%s_%d] %s", req.TargetLang, d.counter, text)
	}
	return results, nil
}

// Reset restarts the numbering.
func (d *DummyProvider) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counter = 0
}

// Verify DummyProvider implements Provider
var _ Provider = (*DummyProvider)(nil)
