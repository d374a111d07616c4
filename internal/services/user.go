package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
)

// UserReader defines the profile read operations the service depends on.
type UserReader interface {
	List(ctx context.Context) ([]models.UserDB, error)                     // Returns all profiles ordered by name
	GetByName(ctx context.Context, name string) (*models.UserDB, error)    // Returns one profile by display name
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) // Returns one profile by id
}

// UserWriter defines the profile write operations the service depends on.
type UserWriter interface {
	Save(ctx context.Context, name string) (*models.UserDB, error) // Creates a profile
	Delete(ctx context.Context, userID uuid.UUID) error            // Removes a profile and its movies
}

// UserService manages profiles. The active profile is never stored
// here; callers pass the selected profile into every catalog call.
type UserService struct {
	readRepo  UserReader
	writeRepo UserWriter
}

// NewUserService creates a new UserService.
func NewUserService(readRepo UserReader, writeRepo UserWriter) *UserService {
	return &UserService{readRepo: readRepo, writeRepo: writeRepo}
}

// ListUsers returns all profiles.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserDB, error) {
	users, err := s.readRepo.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// CreateUser creates a new profile. The name is trimmed; a duplicate
// name surfaces the repository's ErrUserExists unchanged.
func (s *UserService) CreateUser(ctx context.Context, name string) (*models.UserDB, error) {
	user, err := s.writeRepo.Save(ctx, strings.TrimSpace(name))
	if err != nil {
		logger.Log.Errorw("failed to create user", "name", name, "error", err)
		return nil, err
	}
	return user, nil
}

// SelectUser resolves a profile by display name for the session.
func (s *UserService) SelectUser(ctx context.Context, name string) (*models.UserDB, error) {
	user, err := s.readRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		logger.Log.Errorw("failed to select user", "name", name, "error", err)
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a profile and, via the cascade, every movie it owns.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.writeRepo.Delete(ctx, userID); err != nil {
		logger.Log.Errorw("failed to delete user", "userID", userID, "error", err)
		return err
	}
	return nil
}
