package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/qlpapp/qlp-server/internal/domain"
	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
	"github.com/qlpapp/qlp-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userKey is the context key for the authenticated user.
const userKey ctxKey = "user"

// GetUser returns the authenticated user from context.
// Returns 401 error if user is not authenticated.
func GetUser(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok || user == nil {
		return nil, huma.Error401Unauthorized("Authentication required")
	}
	return user, nil
}

func setUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// authMiddleware returns a middleware that validates Bearer tokens and stores the user in context.
// If no token is present or invalid, continues without user in context.
// Handlers use GetUser to check authentication.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.VerifyToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(setUser(r.Context(), user)))
		})
	}
}

// RequireAdmin validates the user is authenticated and has the admin profile.
func RequireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		return nil, domainerrors.Forbidden("Admin access required")
	}

	return user, nil
}
