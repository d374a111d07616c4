package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserDB, error)
}

// UsersResponse represents the list of profiles
type UsersResponse struct {
	// All known profiles
	Users []models.UserDB `json:"users"`
}

// UsersErrorResponse represents an error response
type UsersErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler for listing profiles.
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list users", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UsersErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UsersResponse{Users: users})
	}
}
