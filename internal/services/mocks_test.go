package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockMovieReader struct{ mock.Mock }

func (m *MockMovieReader) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	args := m.Called(ctx, userID)
	var movies []models.MovieDB
	if v := args.Get(0); v != nil {
		movies = v.([]models.MovieDB)
	}
	return movies, args.Error(1)
}

func (m *MockMovieReader) GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) {
	args := m.Called(ctx, userID, title)
	var movie *models.MovieDB
	if v := args.Get(0); v != nil {
		movie = v.(*models.MovieDB)
	}
	return movie, args.Error(1)
}

type MockMovieWriter struct{ mock.Mock }

func (m *MockMovieWriter) Save(ctx context.Context, userID uuid.UUID, title string, year int, rating float64, posterURL, note *string) (*models.MovieDB, error) {
	args := m.Called(ctx, userID, title, year, rating, posterURL, note)
	var movie *models.MovieDB
	if v := args.Get(0); v != nil {
		movie = v.(*models.MovieDB)
	}
	return movie, args.Error(1)
}

func (m *MockMovieWriter) UpdateRating(ctx context.Context, userID uuid.UUID, title string, rating float64, note *string) error {
	return m.Called(ctx, userID, title, rating, note).Error(0)
}

func (m *MockMovieWriter) Delete(ctx context.Context, userID uuid.UUID, title string) error {
	return m.Called(ctx, userID, title).Error(0)
}

type MockMetadataFetcher struct{ mock.Mock }

func (m *MockMetadataFetcher) Fetch(ctx context.Context, title string) (*models.MovieMetadata, error) {
	args := m.Called(ctx, title)
	var meta *models.MovieMetadata
	if v := args.Get(0); v != nil {
		meta = v.(*models.MovieMetadata)
	}
	return meta, args.Error(1)
}

type MockUserReader struct{ mock.Mock }

func (m *MockUserReader) List(ctx context.Context) ([]models.UserDB, error) {
	args := m.Called(ctx)
	var users []models.UserDB
	if v := args.Get(0); v != nil {
		users = v.([]models.UserDB)
	}
	return users, args.Error(1)
}

func (m *MockUserReader) GetByName(ctx context.Context, name string) (*models.UserDB, error) {
	args := m.Called(ctx, name)
	var user *models.UserDB
	if v := args.Get(0); v != nil {
		user = v.(*models.UserDB)
	}
	return user, args.Error(1)
}

func (m *MockUserReader) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	args := m.Called(ctx, userID)
	var user *models.UserDB
	if v := args.Get(0); v != nil {
		user = v.(*models.UserDB)
	}
	return user, args.Error(1)
}

type MockUserWriter struct{ mock.Mock }

func (m *MockUserWriter) Save(ctx context.Context, name string) (*models.UserDB, error) {
	args := m.Called(ctx, name)
	var user *models.UserDB
	if v := args.Get(0); v != nil {
		user = v.(*models.UserDB)
	}
	return user, args.Error(1)
}

func (m *MockUserWriter) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
