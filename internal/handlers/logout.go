package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, tokenString string) error
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success flag
	// example: true
	OK bool `json:"ok"`
}

// LogoutErrorResponse represents an error response for logout
// swagger:model LogoutErrorResponse
type LogoutErrorResponse struct {
	// Error code
	// example: unauthenticated
	Error string `json:"error"`
}

// NewLogoutHandler returns an HTTP handler that revokes the token the
// request was authenticated with. Other tokens of the same user stay valid.
// @Summary Logout
// @Description Revoke the presented bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse "Token revoked"
// @Failure 401 {object} handlers.LogoutErrorResponse "Unauthenticated"
// @Router /logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenString, ok := middlewares.GetTokenFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(LogoutErrorResponse{
				Error: "unauthenticated",
			})
			return
		}

		if err := svc.Logout(ctx, tokenString); err != nil {
			logger.Log.Errorw("failed to logout", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LogoutErrorResponse{
				Error: "internal_error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogoutResponse{OK: true})
	}
}
