package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testClaims() *SessionClaims {
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Hash:  "sessionhash",
		Email: "user@example.com",
	}
}

func TestEncodeDecode(t *testing.T) {
	token, err := Encode(testSecret, testClaims())
	require.NoError(t, err)

	decoded, err := Decode(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", decoded.Subject)
	require.Equal(t, "sessionhash", decoded.Hash)
	require.Equal(t, "user@example.com", decoded.Email)
}

func TestDecodeWrongSecret(t *testing.T) {
	token, err := Encode(testSecret, testClaims())
	require.NoError(t, err)

	_, err = Decode("other-secret", token)
	require.Error(t, err)
}

func TestDecodeExpired(t *testing.T) {
	claims := testClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	token, err := Encode(testSecret, claims)
	require.NoError(t, err)

	_, err = Decode(testSecret, token)
	require.Error(t, err)
}

func TestGetUser(t *testing.T) {
	require.Empty(t, GetUser(context.Background()))

	ctx := WithClaims(context.Background(), testClaims())
	require.Equal(t, "user-1", GetUser(ctx))
	require.Equal(t, "sessionhash", GetClaims(ctx).Hash)
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	require.Empty(t, tokenFromRequest(r))

	r.Header.Set("Authorization", "Bearer abc")
	require.Equal(t, "abc", tokenFromRequest(r))

	// cookie wins over the header
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "xyz"})
	require.Equal(t, "xyz", tokenFromRequest(r))
}
