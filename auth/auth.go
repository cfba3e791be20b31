// Package auth verifies the bearer tokens presented to protected endpoints
// and extracts the caller's identity from them. Two verifiers exist: an
// issuer verifier that validates tokens against a Cognito user pool's JWKS,
// and a shared-secret verifier for local development.
package auth

import (
	"context"
	"fmt"
)

// Claims is the verified identity carried by a token.
type Claims struct {
	// Subject is the stable reviewer identity the token proves. Ownership
	// checks compare it against the stored author of a review.
	Subject string
}

// Verifier checks a raw bearer token and returns its verified claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// TokenError indicates a token that failed verification: bad signature,
// expired, wrong issuer, or missing claims.
type TokenError struct {
	Message string
	Cause   error
}

func (e *TokenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("token error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("token error: %s", e.Message)
}

func (e *TokenError) Unwrap() error {
	return e.Cause
}
