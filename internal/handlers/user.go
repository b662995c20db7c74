package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/middlewares"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// UserGetter defines the interface that the user service must implement.
type UserGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserInfo represents the public view of a user
// swagger:model UserInfo
type UserInfo struct {
	// User identifier
	ID string `json:"id"`

	// Username
	// example: john_doe
	Username string `json:"username"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// UserResponse represents a successful current-user response
// swagger:model UserResponse
type UserResponse struct {
	// The authenticated user
	User *UserInfo `json:"user"`
}

// UserErrorResponse represents an error response for the current-user route
// swagger:model UserErrorResponse
type UserErrorResponse struct {
	// Error code
	// example: unauthenticated
	Error string `json:"error"`
}

// NewUserHandler returns an HTTP handler for fetching the authenticated user.
// @Summary Current user
// @Description Returns the user the presented token resolves to
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.UserResponse "Authenticated user"
// @Failure 401 {object} handlers.UserErrorResponse "Unauthenticated"
// @Router /user [get]
// @Security BearerAuth
func NewUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UserErrorResponse{
				Error: "unauthenticated",
			})
			return
		}

		user, err := svc.GetUser(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{
				Error: "internal_error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UserResponse{
			User: &UserInfo{
				ID:        user.UserID.String(),
				Username:  user.Username,
				CreatedAt: user.CreatedAt,
			},
		})
	}
}
