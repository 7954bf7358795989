package translate

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/gosplice"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Delay before the first retry
	MaxDelay   time.Duration // Ceiling for the doubled delay
}

// DefaultRetryConfig sizes backoff for batch-per-document requests: one
// request carries a whole segment batch, so the first retry comes quickly
// and the doubled delay is capped low.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 4,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   20 * time.Second,
	}
}

// backoffDelay returns the delay before retrying the given attempt,
// doubling from BaseDelay and capped at MaxDelay.
func (cfg RetryConfig) backoffDelay(attempt int) time.Duration {
	delay := cfg.BaseDelay * time.Duration(1<<attempt)
	if delay > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return delay
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff. Only retryable
// provider errors are retried; everything else returns immediately.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err

		// No sleep after the final attempt
		if attempt == cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(cfg.backoffDelay(attempt)):
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether an error is worth retrying. Only provider
// errors carry that signal; anything else is treated as permanent.
func IsRetryable(err error) bool {
	var providerErr *gosplice.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// RetryableProvider wraps a Provider with retry logic.
type RetryableProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryableProvider creates a new provider with retry logic.
func NewRetryableProvider(provider Provider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{
		provider: provider,
		config:   cfg,
	}
}

// Translate implements Provider with retry logic.
func (p *RetryableProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	return WithRetry(ctx, p.config, func() ([]string, error) {
		return p.provider.Translate(ctx, req)
	})
}

// Verify RetryableProvider implements Provider
var _ Provider = (*RetryableProvider)(nil)
