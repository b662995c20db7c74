package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Name         string    `json:"name" db:"name"`             // Display name, defaults to username
	Email        string    `json:"email" db:"email"`           // Synthetic contact address, cosmetic only
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
