package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prezlink/prezlink/internal/cache"
	"github.com/prezlink/prezlink/pkg/models"
	"gorm.io/gorm"
)

type authContextKey string

const authKey authContextKey = "authUser"

const sessionCookieName = "access_token"

// SessionClaims is the JWT payload issued by the identity provider. Subject
// is the user id; Hash points at the server-side session row.
type SessionClaims struct {
	jwt.RegisteredClaims
	Hash  string `json:"hash"`
	Email string `json:"email"`
}

func Encode(secret string, claims *SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func Decode(secret string, token string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetUser returns the authenticated user id from the request context.
func GetUser(ctx context.Context) string {
	claims, _ := ctx.Value(authKey).(*SessionClaims)
	if claims == nil {
		return ""
	}
	return claims.Subject
}

func GetClaims(ctx context.Context) *SessionClaims {
	claims, _ := ctx.Value(authKey).(*SessionClaims)
	return claims
}

func WithClaims(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, authKey, claims)
}

// VerifyUser decodes the JWT and checks the referenced session row still
// exists, cache first.
func VerifyUser(db *gorm.DB, cacher cache.Cacher, secret, token string) (*SessionClaims, error) {
	claims, err := Decode(secret, token)
	if err != nil {
		return nil, err
	}

	session, err := getSessionByHash(db, cacher, claims.Hash)
	if err != nil {
		return nil, errors.New("invalid session")
	}
	if session.UserID != claims.Subject {
		return nil, errors.New("invalid session")
	}

	return claims, nil
}

func getSessionByHash(db *gorm.DB, cacher cache.Cacher, hash string) (*models.Session, error) {
	var session models.Session

	err := cacher.Get(cache.KeySessionHash(hash), &session)
	if err != nil {
		if err := db.Model(&models.Session{}).Where("hash = ?", hash).First(&session).Error; err != nil {
			return nil, err
		}
		cacher.Set(cache.KeySessionHash(hash), &session, 0)
	}

	return &session, nil
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// Middleware rejects requests without a verifiable session and stores the
// claims in the request context.
func Middleware(db *gorm.DB, cacher cache.Cacher, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"code":401,"message":"user not authenticated"}`))
				return
			}
			claims, err := VerifyUser(db, cacher, secret, token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"code":401,"message":"user not authenticated"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
