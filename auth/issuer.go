package auth

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// IssuerVerifier validates RS256 tokens against an OpenID issuer's JWKS.
// Built for Cognito user pools, whose id tokens carry the reviewer identity
// in the standard subject claim.
type IssuerVerifier struct {
	issuer  string
	keyfunc jwt.Keyfunc
}

// CognitoIssuerURL builds the issuer URL of a Cognito user pool.
func CognitoIssuerURL(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// NewIssuerVerifier fetches the issuer's JWKS and keeps it refreshed in the
// background for the lifetime of ctx.
func NewIssuerVerifier(ctx context.Context, issuer string) (*IssuerVerifier, error) {
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{issuer + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("fetching jwks for %s: %w", issuer, err)
	}
	return &IssuerVerifier{issuer: issuer, keyfunc: jwks.Keyfunc}, nil
}

// Verify parses and validates a token: signature against the JWKS, expiry,
// issuer, and that it is an id token rather than an access token.
func (v *IssuerVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	token, err := jwt.Parse(rawToken, v.keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, &TokenError{Message: "invalid token", Cause: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &TokenError{Message: "invalid token claims"}
	}

	// A user pool signs id and access tokens with the same keys; only id
	// tokens are accepted here.
	if use, _ := claims["token_use"].(string); use != "id" {
		return nil, &TokenError{Message: "token is not an id token"}
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, &TokenError{Message: "token missing subject"}
	}

	return &Claims{Subject: subject}, nil
}
