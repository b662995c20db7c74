package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrItemNotFound is returned when an item does not exist for the
	// requesting owner. An item owned by someone else is reported the same
	// way as a missing one.
	ErrItemNotFound = errors.New("item not found")
)

// ItemReader defines read operations for todo items.
type ItemReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ItemDB, error) // Returns items owned by the user, newest first
}

// ItemWriter defines write operations for todo items.
type ItemWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title string) (int64, error)                                          // Creates an item, returns its id
	Update(ctx context.Context, userID uuid.UUID, itemID int64, title *string, completed *bool) (int64, error)        // Partial update, returns rows updated
	Delete(ctx context.Context, userID uuid.UUID, itemID int64) (int64, error)                                        // Deletes an item, returns rows deleted
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TodoService handles owner-scoped item operations and Kafka publishing.
type TodoService struct {
	readRepo    ItemReader
	writeRepo   ItemWriter
	kafkaWriter KafkaWriter
}

// NewTodoService creates a new TodoService.
func NewTodoService(readRepo ItemReader, writeRepo ItemWriter, kafkaWriter KafkaWriter) *TodoService {
	return &TodoService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes an item change event to Kafka.
func (s *TodoService) publishEvent(ctx context.Context, userID uuid.UUID, itemID int64, action string) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "item_id", itemID, "action", action)
		return
	}

	event := models.ItemEvent{
		EventID:   uuid.NewString(),
		ItemID:    itemID,
		UserID:    userID.String(),
		Action:    action,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal item event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(itemID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish item event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Item event published to Kafka", "event_id", event.EventID, "action", action)
	}
}

// List returns all items owned by userID, most recently created first.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]models.ItemDB, error) {
	items, err := s.readRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list items", "userID", userID, "error", err)
		return nil, err
	}
	return items, nil
}

// Create adds a new item for userID and publishes the change.
func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, title string) (int64, error) {
	if title == "" {
		return 0, ErrInvalidInput
	}

	itemID, err := s.writeRepo.Save(ctx, userID, title)
	if err != nil {
		logger.Log.Errorw("failed to create item", "userID", userID, "error", err)
		return 0, err
	}

	s.publishEvent(ctx, userID, itemID, models.ItemActionCreate)

	return itemID, nil
}

// Update applies a partial update to an item owned by userID. Nil fields are
// left unchanged. Returns the number of rows updated (1 when found).
func (s *TodoService) Update(ctx context.Context, userID uuid.UUID, itemID int64, title *string, completed *bool) (int64, error) {
	if itemID <= 0 {
		return 0, ErrInvalidInput
	}

	updated, err := s.writeRepo.Update(ctx, userID, itemID, title, completed)
	if err != nil {
		logger.Log.Errorw("failed to update item", "userID", userID, "itemID", itemID, "error", err)
		return 0, err
	}
	if updated == 0 {
		return 0, ErrItemNotFound
	}

	s.publishEvent(ctx, userID, itemID, models.ItemActionUpdate)

	return updated, nil
}

// Destroy deletes an item owned by userID. Absence is not an error: the
// deleted count (0 or 1) is reported to the caller.
func (s *TodoService) Destroy(ctx context.Context, userID uuid.UUID, itemID int64) (int64, error) {
	if itemID <= 0 {
		return 0, ErrInvalidInput
	}

	deleted, err := s.writeRepo.Delete(ctx, userID, itemID)
	if err != nil {
		logger.Log.Errorw("failed to delete item", "userID", userID, "itemID", itemID, "error", err)
		return 0, err
	}

	if deleted > 0 {
		s.publishEvent(ctx, userID, itemID, models.ItemActionDelete)
	}

	return deleted, nil
}
