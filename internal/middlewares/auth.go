package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
)

// TokenResolver defines the minimal interface needed by the middleware
type TokenResolver interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Resolve(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// unauthenticatedResponse is the body written for rejected requests
type unauthenticatedResponse struct {
	Error string `json:"error"`
}

// AuthMiddleware returns a middleware that resolves the bearer token to a
// user id and stores it in the request context. Requests with a missing,
// invalid, or revoked token are rejected with 401 before any handler runs.
func AuthMiddleware(tokener TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(unauthenticatedResponse{Error: "unauthenticated"})
				return
			}

			userID, err := tokener.Resolve(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(unauthenticatedResponse{Error: "unauthenticated"})
				return
			}

			ctx = SetUserIDToContext(ctx, userID)
			ctx = SetTokenToContext(ctx, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userIDKey and tokenKey are unexported context key types
type userIDKey struct{}
type tokenKey struct{}

// SetUserIDToContext stores the authenticated user id in the context
func SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext retrieves the authenticated user id from the context.
// The second return value is false if the request did not pass AuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}

// SetTokenToContext stores the presented token string in the context
func SetTokenToContext(ctx context.Context, tokenString string) context.Context {
	return context.WithValue(ctx, tokenKey{}, tokenString)
}

// GetTokenFromContext retrieves the presented token string from the context.
// Used by logout to revoke exactly the token the request was made with.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenString, ok := ctx.Value(tokenKey{}).(string)
	return tokenString, ok
}
