package translate

import (
	"context"
	"fmt"
)

// MockProvider is a scripted provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source markup to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *Request          // Last request received
	Err          error             // If set, returned on every call
}

// NewMockProvider creates a new mock provider with an empty script.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: make(map[string]string),
	}
}

// Translate returns scripted translations, or the text wrapped in brackets
// when no script entry exists.
func (m *MockProvider) Translate(_ context.Context, req Request) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}
	return results, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
