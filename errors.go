package gosplice

import "fmt"

// ParseError indicates a source or intermediate document failed to parse.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SegmentNotFoundError indicates a translated entry referenced a segment id
// that does not exist in the skeleton. Direct reintegration logs and skips
// such entries rather than aborting the batch.
type SegmentNotFoundError struct {
	ID string
}

func (e *SegmentNotFoundError) Error() string {
	return fmt.Sprintf("segment id %s not found in skeleton", e.ID)
}

// ProviderError indicates a translation provider failure.
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// MemoryError indicates a translation-memory operation failure.
type MemoryError struct {
	Message string
	Cause   error
}

func (e *MemoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("memory error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("memory error: %s", e.Message)
}

func (e *MemoryError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates a provider returned a different number of
// translations than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
