package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
	"github.com/movieshelf/movieshelf/internal/repositories"
)

// ErrEmptyCollection is returned by RandomMovie and Stats when the
// profile has no movies yet.
var ErrEmptyCollection = errors.New("collection is empty")

// MovieReader defines the movie read operations the service depends on.
type MovieReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error)              // Returns all movies of a profile
	GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) // Returns one movie by title
}

// MovieWriter defines the movie write operations the service depends on.
type MovieWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title string, year int, rating float64, posterURL, note *string) (*models.MovieDB, error) // Inserts a movie
	UpdateRating(ctx context.Context, userID uuid.UUID, title string, rating float64, note *string) error                                 // Updates rating and note
	Delete(ctx context.Context, userID uuid.UUID, title string) error                                                                     // Removes a movie
}

// MetadataFetcher retrieves movie attributes from the external API.
type MetadataFetcher interface {
	Fetch(ctx context.Context, title string) (*models.MovieMetadata, error) // One blocking request per call
}

// MovieFilter carries the optional read-side filter criteria. A nil
// field means no bound for that criterion; bounds are inclusive.
type MovieFilter struct {
	MinRating *float64
	StartYear *int
	EndYear   *int
}

// CatalogService composes the metadata fetcher and the movie
// repositories. All sort, search, and filter operations are pure
// read-side transformations with no persisted effect.
type CatalogService struct {
	readRepo  MovieReader
	writeRepo MovieWriter
	fetcher   MetadataFetcher

	randIndex func(n int) int
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(readRepo MovieReader, writeRepo MovieWriter, fetcher MetadataFetcher) *CatalogService {
	return &CatalogService{
		readRepo:  readRepo,
		writeRepo: writeRepo,
		fetcher:   fetcher,
		randIndex: rand.IntN,
	}
}

// AddMovie fetches metadata for the given title and persists the
// result. Nothing is persisted when the fetch fails. The duplicate
// check runs against both the requested title and the canonical title
// the API returns, since the two may differ in case or spelling.
func (s *CatalogService) AddMovie(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) {
	if existing, err := s.readRepo.GetByTitle(ctx, userID, title); err == nil && existing != nil {
		return nil, repositories.ErrMovieExists
	} else if err != nil && !errors.Is(err, repositories.ErrMovieNotFound) {
		return nil, err
	}

	meta, err := s.fetcher.Fetch(ctx, title)
	if err != nil {
		logger.Log.Errorw("failed to fetch movie metadata", "title", title, "error", err)
		return nil, err
	}

	movie, err := s.writeRepo.Save(ctx, userID, meta.Title, meta.Year, meta.Rating, meta.PosterURL, nil)
	if err != nil {
		logger.Log.Errorw("failed to save movie", "title", meta.Title, "userID", userID, "error", err)
		return nil, err
	}

	return movie, nil
}

// ListMovies returns the profile's full collection ordered by title.
func (s *CatalogService) ListMovies(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list movies", "userID", userID, "error", err)
		return nil, err
	}
	return movies, nil
}

// GetMovie returns one movie by title, matched case-insensitively.
func (s *CatalogService) GetMovie(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) {
	return s.readRepo.GetByTitle(ctx, userID, title)
}

// UpdateMovie sets a new rating, and optionally a note, on an existing
// movie.
func (s *CatalogService) UpdateMovie(ctx context.Context, userID uuid.UUID, title string, rating float64, note *string) error {
	if err := s.writeRepo.UpdateRating(ctx, userID, title, rating, note); err != nil {
		logger.Log.Errorw("failed to update movie", "title", title, "userID", userID, "error", err)
		return err
	}
	return nil
}

// DeleteMovie removes one movie from the collection.
func (s *CatalogService) DeleteMovie(ctx context.Context, userID uuid.UUID, title string) error {
	if err := s.writeRepo.Delete(ctx, userID, title); err != nil {
		logger.Log.Errorw("failed to delete movie", "title", title, "userID", userID, "error", err)
		return err
	}
	return nil
}

// SearchMovies returns movies whose title contains the term,
// case-insensitively.
func (s *CatalogService) SearchMovies(ctx context.Context, userID uuid.UUID, term string) ([]models.MovieDB, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	var results []models.MovieDB
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), term) {
			results = append(results, m)
		}
	}
	return results, nil
}

// FilterMovies returns movies matching every criterion set in the filter.
func (s *CatalogService) FilterMovies(ctx context.Context, userID uuid.UUID, filter MovieFilter) ([]models.MovieDB, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var results []models.MovieDB
	for _, m := range movies {
		if filter.MinRating != nil && m.Rating < *filter.MinRating {
			continue
		}
		if filter.StartYear != nil && m.Year < *filter.StartYear {
			continue
		}
		if filter.EndYear != nil && m.Year > *filter.EndYear {
			continue
		}
		results = append(results, m)
	}
	return results, nil
}

// SortedByRating returns the collection sorted by rating, highest
// first. Equal ratings fall back to title ascending so the order is
// deterministic.
func (s *CatalogService) SortedByRating(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(movies, func(i, j int) bool {
		if movies[i].Rating != movies[j].Rating {
			return movies[i].Rating > movies[j].Rating
		}
		return movies[i].Title < movies[j].Title
	})
	return movies, nil
}

// SortedByYear returns the collection sorted by year, oldest first.
// Equal years fall back to title ascending.
func (s *CatalogService) SortedByYear(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(movies, func(i, j int) bool {
		if movies[i].Year != movies[j].Year {
			return movies[i].Year < movies[j].Year
		}
		return movies[i].Title < movies[j].Title
	})
	return movies, nil
}

// RandomMovie returns one movie picked uniformly from the collection.
func (s *CatalogService) RandomMovie(ctx context.Context, userID uuid.UUID) (*models.MovieDB, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrEmptyCollection
	}

	movie := movies[s.randIndex(len(movies))]
	return &movie, nil
}

// Stats summarizes the collection's ratings: total count, mean,
// median, and the titles sharing the best and worst ratings.
func (s *CatalogService) Stats(ctx context.Context, userID uuid.UUID) (*models.Stats, error) {
	movies, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrEmptyCollection
	}

	ratings := make([]float64, len(movies))
	var sum float64
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
	}
	sort.Float64s(ratings)

	stats := &models.Stats{
		Total:         len(movies),
		AverageRating: sum / float64(len(movies)),
		MedianRating:  median(ratings),
		BestRating:    ratings[len(ratings)-1],
		WorstRating:   ratings[0],
	}

	for _, m := range movies {
		if m.Rating == stats.BestRating {
			stats.BestMovies = append(stats.BestMovies, m.Title)
		}
		if m.Rating == stats.WorstRating {
			stats.WorstMovies = append(stats.WorstMovies, m.Title)
		}
	}

	return stats, nil
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
