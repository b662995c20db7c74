package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/middlewares"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

// TodoCreator defines the interface that the creation service must implement.
type TodoCreator interface {
	Create(ctx context.Context, userID uuid.UUID, title string) (int64, error)
}

// TodoCreateRequest represents the JSON body for item creation
// swagger:model TodoCreateRequest
type TodoCreateRequest struct {
	// Item title
	// required: true
	// example: buy milk
	Title string `json:"title"`
}

// TodoCreateResponse represents a successful item creation response
// swagger:model TodoCreateResponse
type TodoCreateResponse struct {
	// Success flag
	// example: true
	OK bool `json:"ok"`

	// Identifier of the new item
	// example: 1
	ID int64 `json:"id"`
}

// TodoCreateErrorResponse represents an error response for item creation
// swagger:model TodoCreateErrorResponse
type TodoCreateErrorResponse struct {
	// Error code
	// example: invalid_input
	Error string `json:"error"`
}

// NewTodoCreateHandler returns an HTTP handler for creating a todo item.
// @Summary Create a todo item
// @Description Creates a new item for the authenticated user; completed starts false
// @Tags todos
// @Accept json
// @Produce json
// @Param todoCreateRequest body handlers.TodoCreateRequest true "Item creation request"
// @Success 200 {object} handlers.TodoCreateResponse "Item created"
// @Failure 401 {object} handlers.TodoCreateErrorResponse "Unauthenticated"
// @Failure 422 {object} handlers.TodoCreateErrorResponse "Missing or empty title"
// @Router /todos [post]
// @Security BearerAuth
func NewTodoCreateHandler(svc TodoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoCreateErrorResponse{
				Error: "unauthenticated",
			})
			return
		}

		var req TodoCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TodoCreateErrorResponse{
				Error: "invalid_input",
			})
			return
		}

		id, err := svc.Create(ctx, userID, req.Title)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(TodoCreateErrorResponse{
					Error: "invalid_input",
				})
			default:
				logger.Log.Errorw("failed to create item", "userID", userID, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TodoCreateErrorResponse{
					Error: "internal_error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TodoCreateResponse{
			OK: true,
			ID: id,
		})
	}
}
