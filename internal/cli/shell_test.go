package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/models"
	"github.com/movieshelf/movieshelf/internal/repositories"
	"github.com/movieshelf/movieshelf/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend implements UserManager, Catalog, and SiteGenerator with
// an in-memory map. The shell tests script stdin and assert on stdout.
type stubBackend struct {
	users    map[string]*models.UserDB
	movies   map[uuid.UUID][]models.MovieDB
	metadata map[string]models.MovieMetadata

	generated []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		users:    map[string]*models.UserDB{},
		movies:   map[uuid.UUID][]models.MovieDB{},
		metadata: map[string]models.MovieMetadata{},
	}
}

func (b *stubBackend) ListUsers(ctx context.Context) ([]models.UserDB, error) {
	var users []models.UserDB
	for _, u := range b.users {
		users = append(users, *u)
	}
	return users, nil
}

func (b *stubBackend) CreateUser(ctx context.Context, name string) (*models.UserDB, error) {
	if _, ok := b.users[name]; ok {
		return nil, repositories.ErrUserExists
	}
	user := &models.UserDB{UserID: uuid.New(), Name: name}
	b.users[name] = user
	return user, nil
}

func (b *stubBackend) SelectUser(ctx context.Context, name string) (*models.UserDB, error) {
	user, ok := b.users[name]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (b *stubBackend) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	for name, u := range b.users {
		if u.UserID == userID {
			delete(b.users, name)
			delete(b.movies, userID)
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (b *stubBackend) AddMovie(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) {
	meta, ok := b.metadata[strings.ToLower(title)]
	if !ok {
		return nil, repositories.ErrMovieNotFound
	}
	for _, m := range b.movies[userID] {
		if strings.EqualFold(m.Title, meta.Title) {
			return nil, repositories.ErrMovieExists
		}
	}
	movie := models.MovieDB{UserID: userID, Title: meta.Title, Year: meta.Year, Rating: meta.Rating, PosterURL: meta.PosterURL}
	b.movies[userID] = append(b.movies[userID], movie)
	return &movie, nil
}

func (b *stubBackend) ListMovies(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	return b.movies[userID], nil
}

func (b *stubBackend) GetMovie(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error) {
	for i, m := range b.movies[userID] {
		if strings.EqualFold(m.Title, title) {
			return &b.movies[userID][i], nil
		}
	}
	return nil, repositories.ErrMovieNotFound
}

func (b *stubBackend) UpdateMovie(ctx context.Context, userID uuid.UUID, title string, rating float64, note *string) error {
	for i, m := range b.movies[userID] {
		if strings.EqualFold(m.Title, title) {
			b.movies[userID][i].Rating = rating
			if note != nil {
				b.movies[userID][i].Note = note
			}
			return nil
		}
	}
	return repositories.ErrMovieNotFound
}

func (b *stubBackend) DeleteMovie(ctx context.Context, userID uuid.UUID, title string) error {
	for i, m := range b.movies[userID] {
		if strings.EqualFold(m.Title, title) {
			b.movies[userID] = append(b.movies[userID][:i], b.movies[userID][i+1:]...)
			return nil
		}
	}
	return repositories.ErrMovieNotFound
}

func (b *stubBackend) SearchMovies(ctx context.Context, userID uuid.UUID, term string) ([]models.MovieDB, error) {
	var results []models.MovieDB
	for _, m := range b.movies[userID] {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(term)) {
			results = append(results, m)
		}
	}
	return results, nil
}

func (b *stubBackend) FilterMovies(ctx context.Context, userID uuid.UUID, filter services.MovieFilter) ([]models.MovieDB, error) {
	return b.movies[userID], nil
}

func (b *stubBackend) SortedByRating(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	return b.movies[userID], nil
}

func (b *stubBackend) SortedByYear(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error) {
	return b.movies[userID], nil
}

func (b *stubBackend) RandomMovie(ctx context.Context, userID uuid.UUID) (*models.MovieDB, error) {
	if len(b.movies[userID]) == 0 {
		return nil, services.ErrEmptyCollection
	}
	return &b.movies[userID][0], nil
}

func (b *stubBackend) Stats(ctx context.Context, userID uuid.UUID) (*models.Stats, error) {
	if len(b.movies[userID]) == 0 {
		return nil, services.ErrEmptyCollection
	}
	return &models.Stats{Total: len(b.movies[userID])}, nil
}

func (b *stubBackend) Generate(ctx context.Context, user *models.UserDB) (string, error) {
	path := user.Name + ".html"
	b.generated = append(b.generated, path)
	return path, nil
}

func runShell(t *testing.T, backend *stubBackend, script string) string {
	t.Helper()

	out := &bytes.Buffer{}
	shell := NewShell(strings.NewReader(script), out, backend, backend, backend)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func TestShell_AddListGenerateScenario(t *testing.T) {
	backend := newStubBackend()
	backend.metadata["inception"] = models.MovieMetadata{Title: "Inception", Year: 2010, Rating: 8.8}

	// Fresh database: the shell creates the first profile, adds a
	// movie, lists it, generates the site, then exits.
	script := strings.Join([]string{
		"John",      // create first profile
		"2",         // add movie
		"Inception", // title
		"1",         // list movies
		"11",        // generate website
		"0",         // exit
	}, "\n") + "\n"

	output := runShell(t, backend, script)

	assert.Contains(t, output, "Movie Inception (2010) with rating 8.8 was added!")
	assert.Contains(t, output, "1 movie(s) in total")
	assert.Contains(t, output, "Website was generated successfully: John.html")
	assert.Equal(t, []string{"John.html"}, backend.generated)
}

func TestShell_DuplicateAddIsRecoverable(t *testing.T) {
	backend := newStubBackend()
	backend.metadata["inception"] = models.MovieMetadata{Title: "Inception", Year: 2010, Rating: 8.8}

	script := strings.Join([]string{
		"John",
		"2", "Inception",
		"2", "inception", // duplicate, different case
		"0",
	}, "\n") + "\n"

	output := runShell(t, backend, script)

	assert.Contains(t, output, "already in the collection")
	require.Len(t, backend.movies, 1)
	for _, movies := range backend.movies {
		assert.Len(t, movies, 1)
	}
}

func TestShell_UnknownProfileOffersCreation(t *testing.T) {
	backend := newStubBackend()
	_, err := backend.CreateUser(context.Background(), "Mary")
	require.NoError(t, err)

	script := strings.Join([]string{
		"John", // not a known profile
		"y",    // create it
		"0",
	}, "\n") + "\n"

	output := runShell(t, backend, script)

	assert.Contains(t, output, `Profile "John" does not exist`)
	assert.Contains(t, backend.users, "John")
	assert.Contains(t, output, "Active profile: John")
}

func TestShell_InvalidMenuChoiceContinues(t *testing.T) {
	backend := newStubBackend()

	script := strings.Join([]string{
		"John",
		"99",
		"0",
	}, "\n") + "\n"

	output := runShell(t, backend, script)
	assert.Contains(t, output, "Invalid choice")
	assert.Contains(t, output, "Goodbye")
}

func TestShell_UpdateMovie(t *testing.T) {
	backend := newStubBackend()
	backend.metadata["alien"] = models.MovieMetadata{Title: "Alien", Year: 1979, Rating: 8.5}

	script := strings.Join([]string{
		"John",
		"2", "Alien",
		"4", "alien", // update, case-insensitive lookup
		"9.0", // new rating
		"",    // no note
		"0",
	}, "\n") + "\n"

	output := runShell(t, backend, script)

	assert.Contains(t, output, `Current rating for "Alien" (1979) is 8.5`)
	assert.Contains(t, output, `"Alien" now has a rating of 9.0`)
}

func TestShell_EOFExitsCleanly(t *testing.T) {
	backend := newStubBackend()
	_, err := backend.CreateUser(context.Background(), "John")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	shell := NewShell(strings.NewReader("John\n"), out, backend, backend, backend)
	assert.NoError(t, shell.Run(context.Background()))
}
