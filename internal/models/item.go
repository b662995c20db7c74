package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemDB represents a todo item row in the database
type ItemDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key, serial
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Owner, set once at creation
	Title     string    `json:"title" db:"title"`           // Item title
	Completed bool      `json:"completed" db:"completed"`   // Completion flag
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
