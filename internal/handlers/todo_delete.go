package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/middlewares"
)

// TodoDestroyer defines the interface that the deletion service must implement.
type TodoDestroyer interface {
	Destroy(ctx context.Context, userID uuid.UUID, itemID int64) (int64, error)
}

// TodoDeleteResponse represents a successful item deletion response.
// deleted is 0 when the item did not exist for this owner.
// swagger:model TodoDeleteResponse
type TodoDeleteResponse struct {
	// Success flag
	// example: true
	OK bool `json:"ok"`

	// Number of items deleted
	// example: 1
	Deleted int64 `json:"deleted"`
}

// TodoDeleteErrorResponse represents an error response for item deletion
// swagger:model TodoDeleteErrorResponse
type TodoDeleteErrorResponse struct {
	// Error code
	// example: id_required
	Error string `json:"error"`
}

// NewTodoDeleteHandler returns an HTTP handler for deleting a todo item.
// The item id is taken from the id query parameter and must be positive.
// @Summary Delete a todo item
// @Description Deletes an item owned by the authenticated user. Absence is not an error: deleted reports 0.
// @Tags todos
// @Produce json
// @Param id query int true "Item id"
// @Success 200 {object} handlers.TodoDeleteResponse "Deletion result"
// @Failure 400 {object} handlers.TodoDeleteErrorResponse "Missing or non-positive id"
// @Failure 401 {object} handlers.TodoDeleteErrorResponse "Unauthenticated"
// @Router /todo [delete]
// @Security BearerAuth
func NewTodoDeleteHandler(svc TodoDestroyer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoDeleteErrorResponse{
				Error: "unauthenticated",
			})
			return
		}

		itemID, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if itemID <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoDeleteErrorResponse{
				Error: "id_required",
			})
			return
		}

		deleted, err := svc.Destroy(ctx, userID, itemID)
		if err != nil {
			logger.Log.Errorw("failed to delete item", "userID", userID, "itemID", itemID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoDeleteErrorResponse{
				Error: "internal_error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TodoDeleteResponse{
			OK:      true,
			Deleted: deleted,
		})
	}
}
