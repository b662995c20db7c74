package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/middlewares"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

// TodoUpdater defines the interface that the update service must implement.
type TodoUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, itemID int64, title *string, completed *bool) (int64, error)
}

// TodoUpdateRequest represents the JSON body for a partial item update.
// Absent fields are left unchanged.
// swagger:model TodoUpdateRequest
type TodoUpdateRequest struct {
	// New title
	// example: buy oat milk
	Title *string `json:"title,omitempty"`

	// New completion flag
	// example: true
	Completed *bool `json:"completed,omitempty"`
}

// TodoUpdateResponse represents a successful item update response
// swagger:model TodoUpdateResponse
type TodoUpdateResponse struct {
	// Success flag
	// example: true
	OK bool `json:"ok"`

	// Number of items updated
	// example: 1
	Updated int64 `json:"updated"`
}

// TodoUpdateErrorResponse represents an error response for item update
// swagger:model TodoUpdateErrorResponse
type TodoUpdateErrorResponse struct {
	// Error code
	// example: not_found
	Error string `json:"error"`
}

// NewTodoUpdateHandler returns an HTTP handler for updating a todo item.
// The item id is taken from the id query parameter and must be positive.
// @Summary Update a todo item
// @Description Partially updates an item owned by the authenticated user. An item owned by someone else is reported as not found.
// @Tags todos
// @Accept json
// @Produce json
// @Param id query int true "Item id"
// @Param todoUpdateRequest body handlers.TodoUpdateRequest true "Fields to change"
// @Success 200 {object} handlers.TodoUpdateResponse "Item updated"
// @Failure 400 {object} handlers.TodoUpdateErrorResponse "Missing or non-positive id"
// @Failure 401 {object} handlers.TodoUpdateErrorResponse "Unauthenticated"
// @Failure 404 {object} handlers.TodoUpdateErrorResponse "Item not found"
// @Router /todo [put]
// @Security BearerAuth
func NewTodoUpdateHandler(svc TodoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoUpdateErrorResponse{
				Error: "unauthenticated",
			})
			return
		}

		itemID, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if itemID <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoUpdateErrorResponse{
				Error: "id_required",
			})
			return
		}

		var req TodoUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoUpdateErrorResponse{
				Error: "invalid_request",
			})
			return
		}

		updated, err := svc.Update(ctx, userID, itemID, req.Title, req.Completed)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrItemNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TodoUpdateErrorResponse{
					Error: "not_found",
				})
			case errors.Is(err, services.ErrInvalidInput):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TodoUpdateErrorResponse{
					Error: "id_required",
				})
			default:
				logger.Log.Errorw("failed to update item", "userID", userID, "itemID", itemID, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TodoUpdateErrorResponse{
					Error: "internal_error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TodoUpdateResponse{
			OK:      true,
			Updated: updated,
		})
	}
}
