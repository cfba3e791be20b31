// Package translate provides the machine-translation client used to localize
// review content, plus decorators for retrying and rate limiting. The server
// wires the bare client on the request path: a failed translation surfaces to
// the caller immediately and is never retried there. The decorators exist for
// offline work (seed warming) and for deployments with provider quotas.
package translate

import (
	"context"
	"errors"
	"fmt"
)

// Translator produces a translation of text into the target language. The
// source language is detected by the provider.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// ServiceError indicates a translation provider failure (API error, throttling, etc.).
type ServiceError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("translation error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Retryable
	}

	// Context errors are not retryable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}
