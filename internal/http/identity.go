package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/goliatone/go-sitebuilder/internal/logging"
)

// AnonymousUser scopes requests when authentication is disabled and no
// X-User-ID header is supplied.
const AnonymousUser = "anonymous"

// UserHeader carries the user id when authentication is disabled.
const UserHeader = "X-User-ID"

var (
	ErrMissingToken = errors.New("http: bearer token required")
	ErrInvalidToken = errors.New("http: invalid bearer token")
)

type contextKey string

const userIDContextKey contextKey = "userID"

// WithUserID stores the resolved user id on ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDContextKey, id)
}

// UserIDFromContext returns the user id stored by the Identity middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(userIDContextKey).(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// Identity resolves the caller of a request.
type Identity struct {
	secret   []byte
	required bool
}

// NewIdentity builds a resolver. With an empty secret authentication is
// disabled and the X-User-ID header is trusted.
func NewIdentity(secret string) *Identity {
	secret = strings.TrimSpace(secret)
	return &Identity{secret: []byte(secret), required: secret != ""}
}

// Resolve returns the user id for r.
func (i *Identity) Resolve(r *http.Request) (string, error) {
	if i == nil || !i.required {
		if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
			return id, nil
		}
		return AnonymousUser, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", ErrMissingToken
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || strings.TrimSpace(sub) == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Middleware rejects unauthenticated requests and stores the user id on the
// request context.
func (i *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := i.Resolve(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()})
			return
		}
		ctx := WithUserID(r.Context(), userID)
		ctx = logging.ContextWithFields(ctx, map[string]any{"user_id": userID, "route": r.Pattern})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
