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

// TodoLister defines the interface that the listing service must implement.
type TodoLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.ItemDB, error)
}

// TodoItem represents the public view of a todo item
// swagger:model TodoItem
type TodoItem struct {
	// Item identifier
	// example: 1
	ID int64 `json:"id"`

	// Item title
	// example: buy milk
	Title string `json:"title"`

	// Completion flag
	// example: false
	Completed bool `json:"completed"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// TodoListResponse represents a successful item listing
// swagger:model TodoListResponse
type TodoListResponse struct {
	// Items owned by the user, newest first
	Items []TodoItem `json:"items"`
}

// TodoListErrorResponse represents an error response for item listing
// swagger:model TodoListErrorResponse
type TodoListErrorResponse struct {
	// Error code
	// example: unauthenticated
	Error string `json:"error"`
}

// NewTodoListHandler returns an HTTP handler for listing the user's items.
// @Summary List todo items
// @Description Returns all items owned by the authenticated user, most recently created first
// @Tags todos
// @Produce json
// @Success 200 {object} handlers.TodoListResponse "Items"
// @Failure 401 {object} handlers.TodoListErrorResponse "Unauthenticated"
// @Router /todos [get]
// @Security BearerAuth
func NewTodoListHandler(svc TodoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoListErrorResponse{
				Error: "unauthenticated",
			})
			return
		}

		items, err := svc.List(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to list items", "userID", userID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoListErrorResponse{
				Error: "internal_error",
			})
			return
		}

		resp := TodoListResponse{Items: make([]TodoItem, 0, len(items))}
		for _, item := range items {
			resp.Items = append(resp.Items, TodoItem{
				ID:        item.ID,
				Title:     item.Title,
				Completed: item.Completed,
				CreatedAt: item.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
