package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kosbot/kosbot-api/internal/auth"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// OwnerIDKey is the context key for the authenticated owner's profile id
	OwnerIDKey ContextKey = "ownerID"
	// OwnerEmailKey is the context key for the owner's email
	OwnerEmailKey ContextKey = "email"
)

// AuthMiddleware returns a middleware that validates JWT access tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := WithOwner(r.Context(), claims.OwnerID, claims.Email)

			AddLogField(w, "owner_id", claims.OwnerID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken reads the token from the Authorization header, falling back
// to the accessToken cookie
func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// WithOwner stores the authenticated owner on ctx
func WithOwner(ctx context.Context, ownerID, email string) context.Context {
	ctx = context.WithValue(ctx, OwnerIDKey, ownerID)
	return context.WithValue(ctx, OwnerEmailKey, email)
}

// GetOwnerID extracts the owner id from the request context
func GetOwnerID(r *http.Request) (string, bool) {
	ownerID, ok := r.Context().Value(OwnerIDKey).(string)
	return ownerID, ok && ownerID != ""
}

// GetOwnerEmail extracts the owner email from the request context
func GetOwnerEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(OwnerEmailKey).(string)
	return email, ok
}
