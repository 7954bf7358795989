// Package translate defines the provider boundary for turning extracted
// segments into translated entries, with retry, rate limiting, and
// translation-memory support around any Provider implementation.
package translate

import "context"

// Provider is the interface for translation backends. A backend receives a
// batch of segment markup strings and must return one translated string per
// input, in order.
type Provider interface {
	Translate(ctx context.Context, req Request) ([]string, error)
}

// Request contains the parameters for a translation request.
type Request struct {
	Texts      []string // Segment markup, placeholders included
	SourceLang string
	TargetLang string
	Contexts   []string // Optional per-text context (e.g. enclosing element)
}
