package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) (uuid.UUID, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password, at least 3 characters
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success flag
	// example: true
	OK bool `json:"ok"`

	// Identifier of the new user
	UserID string `json:"user_id"`
}

// RegisterErrorResponse represents an error response for registration
// swagger:model RegisterErrorResponse
type RegisterErrorResponse struct {
	// Error code
	// example: duplicate_username
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique username. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 422 {object} handlers.RegisterErrorResponse "Duplicate username or invalid input"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(RegisterErrorResponse{
				Error: "invalid_input",
			})
			return
		}

		userID, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "invalid_input",
				})
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "duplicate_username",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "internal_error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RegisterResponse{
			OK:     true,
			UserID: userID.String(),
		})
	}
}
