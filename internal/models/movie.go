package models

import (
	"time"

	"github.com/google/uuid"
)

// MovieDB represents a movie row in the database
type MovieDB struct {
	MovieID   uuid.UUID `json:"id" db:"movie_id"`                     // Unique movie identifier
	UserID    uuid.UUID `json:"user_id" db:"user_id"`                 // Identifier of the owning profile
	Title     string    `json:"title" db:"title"`                     // Movie title, unique per profile
	Year      int       `json:"year" db:"year"`                       // Release year
	Rating    float64   `json:"rating" db:"rating"`                   // Rating on a 0-10 scale
	PosterURL *string   `json:"poster_url,omitempty" db:"poster_url"` // Poster image URL, nil when unknown
	Note      *string   `json:"note,omitempty" db:"note"`             // Free-form personal note, nil when unset
	CreatedAt time.Time `json:"created_at" db:"created_at"`           // Timestamp when the movie was added
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`           // Timestamp of the last update
}
