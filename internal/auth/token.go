// internal/auth/token.go
// Verification of access tokens issued by the external identity provider.
// This service never issues tokens; it only validates them.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoPrincipal  = errors.New("token carries no subject")
)

// Claims are the token claims we care about. The principal comes from
// the registered "sub" claim, with "user_id" accepted as an alternative
// for issuers that set it instead.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates externally-issued HS256 tokens
type Verifier struct {
	secret []byte
}

// NewVerifier creates a token verifier with the shared signing secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// ValidateToken parses and validates a token, returning its claims
func (v *Verifier) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject != "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, ErrNoPrincipal
	}

	return claims, nil
}
