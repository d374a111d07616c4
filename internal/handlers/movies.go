package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
)

// MovieLister defines the interface that the service must implement.
type MovieLister interface {
	ListMovies(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error)
}

// MoviesResponse represents one profile's collection
type MoviesResponse struct {
	// All movies owned by the profile
	Movies []models.MovieDB `json:"movies"`
}

// MoviesErrorResponse represents an error response
type MoviesErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewListMoviesHandler returns an HTTP handler for listing one
// profile's movies. The profile id is taken from the URL.
func NewListMoviesHandler(svc MovieLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MoviesErrorResponse{Error: "Invalid user id"})
			return
		}

		movies, err := svc.ListMovies(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list movies", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MoviesErrorResponse{Error: "Internal server error"})
			return
		}

		json.NewEncoder(w).Encode(MoviesResponse{Movies: movies})
	}
}
