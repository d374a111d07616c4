package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a profile record in the database
type UserDB struct {
	UserID    uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Name      string    `json:"name" db:"name"`             // Unique display name
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
