package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
)

// MovieReadRepository handles movie read operations
type MovieReadRepository struct {
	db *sqlx.DB
}

func NewMovieReadRepository(db *sqlx.DB) *MovieReadRepository {
	return &MovieReadRepository{db: db}
}

// ListByUser returns all movies owned by the given profile ordered by title.
func (r *MovieReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	const query = `
		SELECT movie_id, user_id, title, year, rating, poster_url, note, created_at, updated_at
		FROM movies
		WHERE user_id = ?
		ORDER BY title
	`

	var movies []models.MovieDB
	err := r.db.SelectContext(ctx, &movies, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(movies),
		"error", err,
	)

	return movies, err
}

// GetByTitle returns the movie with the given title within one
// profile's collection. The title column is COLLATE NOCASE, so the
// match is case-insensitive.
func (r *MovieReadRepository) GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) {
	const query = `
		SELECT movie_id, user_id, title, year, rating, poster_url, note, created_at, updated_at
		FROM movies
		WHERE user_id = ? AND title = ?
		LIMIT 1
	`

	var movie models.MovieDB
	err := r.db.GetContext(ctx, &movie, query, userID, title)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, title},
		"result", movie,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// MovieWriteRepository handles movie write operations
type MovieWriteRepository struct {
	db *sqlx.DB
}

func NewMovieWriteRepository(db *sqlx.DB) *MovieWriteRepository {
	return &MovieWriteRepository{db: db}
}

// Save inserts a new movie for a profile and returns it. A title is
// unique within one profile's collection; inserting a duplicate
// returns ErrMovieExists.
func (r *MovieWriteRepository) Save(ctx context.Context, userID uuid.UUID, title string, year int, rating float64, posterURL, note *string) (*models.MovieDB, error) {
	const query = `
		INSERT INTO movies (movie_id, user_id, title, year, rating, poster_url, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	movie := models.MovieDB{
		MovieID:   uuid.New(),
		UserID:    userID,
		Title:     title,
		Year:      year,
		Rating:    rating,
		PosterURL: posterURL,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	args := []any{movie.MovieID, movie.UserID, movie.Title, movie.Year, movie.Rating, movie.PosterURL, movie.Note, movie.CreatedAt, movie.UpdatedAt}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrMovieExists
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// UpdateRating sets a new rating, and optionally a note, on an
// existing movie. Year stays unchanged. Returns ErrMovieNotFound when
// the (profile, title) pair does not exist.
func (r *MovieWriteRepository) UpdateRating(ctx context.Context, userID uuid.UUID, title string, rating float64, note *string) error {
	query := `
		UPDATE movies
		SET rating = ?, updated_at = ?
		WHERE user_id = ? AND title = ?
	`
	args := []any{rating, time.Now().UTC(), userID, title}

	if note != nil {
		query = `
			UPDATE movies
			SET rating = ?, note = ?, updated_at = ?
			WHERE user_id = ? AND title = ?
		`
		args = []any{rating, note, time.Now().UTC(), userID, title}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMovieNotFound
	}

	return nil
}

// Delete removes one movie from a profile's collection. Deleting an
// absent title is an error, not a silent no-op.
func (r *MovieWriteRepository) Delete(ctx context.Context, userID uuid.UUID, title string) error {
	const query = `DELETE FROM movies WHERE user_id = ? AND title = ?`

	res, err := r.db.ExecContext(ctx, query, userID, title)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, title},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMovieNotFound
	}

	return nil
}
