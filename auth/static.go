package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaticVerifier validates HS256 tokens signed with a shared secret. It is
// the local-development scheme; deployed environments verify against the
// identity provider instead.
type StaticVerifier struct {
	secret []byte
}

// NewStaticVerifier creates a verifier for the given shared secret.
func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

// Verify parses and validates a token, returning the subject it proves.
func (v *StaticVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	token, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, &TokenError{Message: "invalid token", Cause: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &TokenError{Message: "invalid token claims"}
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, &TokenError{Message: "token missing subject"}
	}

	return &Claims{Subject: subject}, nil
}

// Mint signs a token for the given subject, valid for the given duration.
// Exposed through the token endpoint so local clients can authenticate
// without an identity provider.
func (v *StaticVerifier) Mint(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString(v.secret)
}
