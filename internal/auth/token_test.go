package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func accessClaims(userID string) *Claims {
	return &Claims{
		UserID: userID,
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	verifier := NewVerifier(testSecret)

	claims, err := verifier.ValidateToken(context.Background(), signToken(t, testSecret, accessClaims("user-1")))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)

	_, err := verifier.ValidateToken(context.Background(), signToken(t, "other-secret", accessClaims("user-1")))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	verifier := NewVerifier(testSecret)

	expired := accessClaims("user-1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := verifier.ValidateToken(context.Background(), signToken(t, testSecret, expired))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenFallsBackToSubject(t *testing.T) {
	verifier := NewVerifier(testSecret)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	parsed, err := verifier.ValidateToken(context.Background(), signToken(t, testSecret, claims))
	require.NoError(t, err)
	assert.Equal(t, "user-2", parsed.UserID)
}

func TestValidateTokenSubjectTakesPrecedence(t *testing.T) {
	verifier := NewVerifier(testSecret)

	claims := accessClaims("legacy-id")
	claims.Subject = "user-3"

	parsed, err := verifier.ValidateToken(context.Background(), signToken(t, testSecret, claims))
	require.NoError(t, err)
	assert.Equal(t, "user-3", parsed.UserID)
}

func TestValidateTokenNoPrincipal(t *testing.T) {
	verifier := NewVerifier(testSecret)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err := verifier.ValidateToken(context.Background(), signToken(t, testSecret, claims))
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestAuthenticateMiddleware(t *testing.T) {
	middleware := NewMiddleware(NewVerifier(testSecret))

	var gotUserID string
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/profile", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, accessClaims("user-1")))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/profile", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/profile", nil)
		req.Header.Set("Authorization", "Token abc")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh := accessClaims("user-1")
		refresh.Type = "refresh"

		req := httptest.NewRequest("GET", "/api/v1/profile", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, refresh))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
