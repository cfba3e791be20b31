package translate

import (
	"context"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// WithRetry executes a function with exponential backoff retry. Only errors
// reported retryable by IsRetryable are attempted again.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
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

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// RetryingTranslator wraps a Translator with retry logic. It belongs in
// offline tooling; request handlers wire the bare Translator so client
// requests fail fast.
type RetryingTranslator struct {
	translator Translator
	config     RetryConfig
}

// NewRetryingTranslator creates a new translator with retry logic.
func NewRetryingTranslator(translator Translator, cfg RetryConfig) *RetryingTranslator {
	return &RetryingTranslator{translator: translator, config: cfg}
}

// Translate implements Translator with retry logic.
func (t *RetryingTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return WithRetry(ctx, t.config, func() (string, error) {
		return t.translator.Translate(ctx, text, targetLanguage)
	})
}
