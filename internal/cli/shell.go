// Package cli implements the interactive menu shell. The shell owns
// no business logic: every action is dispatched to the user service,
// the catalog service, or the site generator, and every error they
// return is converted to a message so the menu loop always continues.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/facades"
	"github.com/movieshelf/movieshelf/internal/models"
	"github.com/movieshelf/movieshelf/internal/repositories"
	"github.com/movieshelf/movieshelf/internal/services"
)

// UserManager defines the profile operations the shell depends on.
type UserManager interface {
	ListUsers(ctx context.Context) ([]models.UserDB, error)
	CreateUser(ctx context.Context, name string) (*models.UserDB, error)
	SelectUser(ctx context.Context, name string) (*models.UserDB, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// Catalog defines the movie operations the shell depends on.
type Catalog interface {
	AddMovie(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error)
	ListMovies(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error)
	GetMovie(ctx context.Context, userID uuid.UUID, title string) (*models.MovieDB, error)
	UpdateMovie(ctx context.Context, userID uuid.UUID, title string, rating float64, note *string) error
	DeleteMovie(ctx context.Context, userID uuid.UUID, title string) error
	SearchMovies(ctx context.Context, userID uuid.UUID, term string) ([]models.MovieDB, error)
	FilterMovies(ctx context.Context, userID uuid.UUID, filter services.MovieFilter) ([]models.MovieDB, error)
	SortedByRating(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error)
	SortedByYear(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error)
	RandomMovie(ctx context.Context, userID uuid.UUID) (*models.MovieDB, error)
	Stats(ctx context.Context, userID uuid.UUID) (*models.Stats, error)
}

// SiteGenerator defines the site operation the shell depends on.
type SiteGenerator interface {
	Generate(ctx context.Context, user *models.UserDB) (string, error)
}

// Shell runs the interactive menu. The active profile is an explicit
// field set by profile selection and passed into every call, never a
// process-wide global.
type Shell struct {
	p         prompter
	users     UserManager
	catalog   Catalog
	generator SiteGenerator

	active *models.UserDB
}

// NewShell creates a shell reading from in and writing to out.
func NewShell(in io.Reader, out io.Writer, users UserManager, catalog Catalog, generator SiteGenerator) *Shell {
	return &Shell{
		p:         prompter{in: bufio.NewReader(in), out: out},
		users:     users,
		catalog:   catalog,
		generator: generator,
	}
}

// Run executes the menu loop until the user exits or stdin closes.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.p.out, "")
	fmt.Fprintln(s.p.out, "==============================================")
	fmt.Fprintln(s.p.out, "           My Movies Database")
	fmt.Fprintln(s.p.out, "==============================================")

	if err := s.selectProfile(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	for {
		choice, err := s.menu()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if choice == "0" {
			fmt.Fprintln(s.p.out, "\nExiting program... Goodbye!")
			return nil
		}

		action, ok := s.actions()[choice]
		if !ok {
			fmt.Fprintln(s.p.out, "\nInvalid choice. Please try again.")
			continue
		}

		fmt.Fprintf(s.p.out, "\nYou've chosen: %s\n\n", action.label)
		if err := action.fn(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.report(err)
		}
	}
}

type action struct {
	label string
	fn    func(ctx context.Context) error
}

func (s *Shell) actions() map[string]action {
	return map[string]action{
		"1":  {"List movies", s.listMovies},
		"2":  {"Add movie", s.addMovie},
		"3":  {"Delete movie", s.deleteMovie},
		"4":  {"Update movie", s.updateMovie},
		"5":  {"Stats", s.stats},
		"6":  {"Random movie", s.randomMovie},
		"7":  {"Search movie", s.searchMovies},
		"8":  {"Movies sorted by rating", s.sortedByRating},
		"9":  {"Movies sorted by year", s.sortedByYear},
		"10": {"Filter movies", s.filterMovies},
		"11": {"Generate website", s.generateWebsite},
		"12": {"Switch user", s.switchUser},
		"13": {"Create user", s.createUser},
		"14": {"Delete user", s.deleteUser},
	}
}

func (s *Shell) menu() (string, error) {
	fmt.Fprintf(s.p.out, "\nActive profile: %s\n\n", s.active.Name)
	fmt.Fprintln(s.p.out, "Menu:")
	fmt.Fprintln(s.p.out, "")
	fmt.Fprintln(s.p.out, "0. Exit")
	fmt.Fprintln(s.p.out, "1. List movies")
	fmt.Fprintln(s.p.out, "2. Add movie")
	fmt.Fprintln(s.p.out, "3. Delete movie")
	fmt.Fprintln(s.p.out, "4. Update movie")
	fmt.Fprintln(s.p.out, "5. Stats")
	fmt.Fprintln(s.p.out, "6. Random movie")
	fmt.Fprintln(s.p.out, "7. Search movie")
	fmt.Fprintln(s.p.out, "8. Movies sorted by rating")
	fmt.Fprintln(s.p.out, "9. Movies sorted by year")
	fmt.Fprintln(s.p.out, "10. Filter movies")
	fmt.Fprintln(s.p.out, "11. Generate website")
	fmt.Fprintln(s.p.out, "12. Switch user")
	fmt.Fprintln(s.p.out, "13. Create user")
	fmt.Fprintln(s.p.out, "14. Delete user")
	fmt.Fprintln(s.p.out, "")
	fmt.Fprint(s.p.out, "Enter choice (0-14): ")
	return s.p.readLine()
}

// report converts a service error into a menu message. Everything the
// lower layers return is recoverable here; the loop continues.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, repositories.ErrMovieExists):
		fmt.Fprintln(s.p.out, "That movie is already in the collection.")
	case errors.Is(err, repositories.ErrMovieNotFound):
		fmt.Fprintln(s.p.out, "Movie not found in the collection.")
	case errors.Is(err, repositories.ErrUserExists):
		fmt.Fprintln(s.p.out, "A profile with that name already exists.")
	case errors.Is(err, repositories.ErrUserNotFound):
		fmt.Fprintln(s.p.out, "Profile not found.")
	case errors.Is(err, facades.ErrNoMatch):
		fmt.Fprintln(s.p.out, "The movie API has no match for that title.")
	case errors.Is(err, facades.ErrUnavailable):
		fmt.Fprintln(s.p.out, "Could not reach the movie API. Try again later.")
	case errors.Is(err, services.ErrEmptyCollection):
		fmt.Fprintln(s.p.out, "No movies in the collection yet.")
	default:
		fmt.Fprintf(s.p.out, "Something went wrong: %v\n", err)
	}
}

// selectProfile picks the active profile on startup. With no profiles
// yet, it creates the first one; otherwise it resolves a name and
// offers to create it when unknown.
func (s *Shell) selectProfile(ctx context.Context) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(s.p.out, "\nNo profiles yet. Let's create one.")
		return s.createUser(ctx)
	}

	fmt.Fprintln(s.p.out, "\nProfiles:")
	for _, u := range users {
		fmt.Fprintf(s.p.out, "  - %s\n", u.Name)
	}

	for {
		name, err := s.p.nonEmpty("Enter profile name: ")
		if err != nil {
			return err
		}

		user, err := s.users.SelectUser(ctx, name)
		if err == nil {
			s.active = user
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}

		create, err := s.p.yesNo(fmt.Sprintf("Profile %q does not exist. Create it? (y/n): ", name))
		if err != nil {
			return err
		}
		if !create {
			continue
		}

		user, err = s.users.CreateUser(ctx, name)
		if err != nil {
			s.report(err)
			continue
		}
		s.active = user
		return nil
	}
}

func (s *Shell) listMovies(ctx context.Context) error {
	movies, err := s.catalog.ListMovies(ctx, s.active.UserID)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		fmt.Fprintln(s.p.out, "No movies in the collection yet.")
		return nil
	}

	fmt.Fprintf(s.p.out, "%d movie(s) in total\n\n", len(movies))
	s.printMovies(movies)
	return nil
}

func (s *Shell) addMovie(ctx context.Context) error {
	title, err := s.p.nonEmpty("Enter the movie title: ")
	if err != nil {
		return err
	}

	movie, err := s.catalog.AddMovie(ctx, s.active.UserID, title)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.p.out, "Movie %s (%d) with rating %.1f was added!\n", movie.Title, movie.Year, movie.Rating)
	return nil
}

func (s *Shell) deleteMovie(ctx context.Context) error {
	title, err := s.p.nonEmpty("Enter the movie title you want to delete: ")
	if err != nil {
		return err
	}

	if err := s.catalog.DeleteMovie(ctx, s.active.UserID, title); err != nil {
		return err
	}

	fmt.Fprintf(s.p.out, "Movie %q was deleted successfully.\n", title)
	return nil
}

func (s *Shell) updateMovie(ctx context.Context) error {
	title, err := s.p.nonEmpty("Enter the movie you want to update: ")
	if err != nil {
		return err
	}

	movie, err := s.catalog.GetMovie(ctx, s.active.UserID, title)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.p.out, "Current rating for %q (%d) is %.1f\n", movie.Title, movie.Year, movie.Rating)

	rating, err := s.p.floatInRange("Enter the new rating (0-10): ", 0, 10)
	if err != nil {
		return err
	}
	note, err := s.p.optionalString("Enter a note (leave blank to keep): ")
	if err != nil {
		return err
	}

	if err := s.catalog.UpdateMovie(ctx, s.active.UserID, movie.Title, rating, note); err != nil {
		return err
	}

	fmt.Fprintf(s.p.out, "%q now has a rating of %.1f\n", movie.Title, rating)
	return nil
}

func (s *Shell) stats(ctx context.Context) error {
	stats, err := s.catalog.Stats(ctx, s.active.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.p.out, "Movies statistics:")
	fmt.Fprintf(s.p.out, "- Total movies: %d\n", stats.Total)
	fmt.Fprintf(s.p.out, "- Average rating: %.1f\n", stats.AverageRating)
	fmt.Fprintf(s.p.out, "- Median rating: %.1f\n", stats.MedianRating)
	fmt.Fprintln(s.p.out, "- Best movie(s):")
	for _, title := range stats.BestMovies {
		fmt.Fprintf(s.p.out, "    %q with rating %.1f\n", title, stats.BestRating)
	}
	fmt.Fprintln(s.p.out, "- Worst movie(s):")
	for _, title := range stats.WorstMovies {
		fmt.Fprintf(s.p.out, "    %q with rating %.1f\n", title, stats.WorstRating)
	}
	return nil
}

func (s *Shell) randomMovie(ctx context.Context) error {
	movie, err := s.catalog.RandomMovie(ctx, s.active.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.p.out, "Random movie suggestion:")
	fmt.Fprintf(s.p.out, "-> %s (%d) with a rating of %.1f\n", movie.Title, movie.Year, movie.Rating)
	return nil
}

func (s *Shell) searchMovies(ctx context.Context) error {
	term, err := s.p.nonEmpty("Enter part of movie name: ")
	if err != nil {
		return err
	}

	results, err := s.catalog.SearchMovies(ctx, s.active.UserID, term)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(s.p.out, "No matching movies found.")
		return nil
	}

	fmt.Fprintf(s.p.out, "Search results for %q:\n", term)
	s.printMovies(results)
	return nil
}

func (s *Shell) sortedByRating(ctx context.Context) error {
	movies, err := s.catalog.SortedByRating(ctx, s.active.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.p.out, "Movies sorted by rating:")
	s.printNumbered(movies)
	return nil
}

func (s *Shell) sortedByYear(ctx context.Context) error {
	movies, err := s.catalog.SortedByYear(ctx, s.active.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.p.out, "Movies sorted by year:")
	s.printNumbered(movies)
	return nil
}

func (s *Shell) filterMovies(ctx context.Context) error {
	minRating, err := s.p.optionalFloat("Enter minimum rating (leave blank for none): ")
	if err != nil {
		return err
	}
	startYear, err := s.p.optionalInt("Enter start year (leave blank for none): ")
	if err != nil {
		return err
	}
	endYear, err := s.p.optionalInt("Enter end year (leave blank for none): ")
	if err != nil {
		return err
	}

	results, err := s.catalog.FilterMovies(ctx, s.active.UserID, services.MovieFilter{
		MinRating: minRating,
		StartYear: startYear,
		EndYear:   endYear,
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(s.p.out, "No movies match your filters.")
		return nil
	}

	fmt.Fprintln(s.p.out, "Filtered movies:")
	s.printMovies(results)
	return nil
}

func (s *Shell) generateWebsite(ctx context.Context) error {
	path, err := s.generator.Generate(ctx, s.active)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.p.out, "Website was generated successfully: %s\n", path)
	return nil
}

func (s *Shell) switchUser(ctx context.Context) error {
	return s.selectProfile(ctx)
}

func (s *Shell) createUser(ctx context.Context) error {
	name, err := s.p.nonEmpty("Enter new profile name: ")
	if err != nil {
		return err
	}

	user, err := s.users.CreateUser(ctx, name)
	if err != nil {
		return err
	}

	s.active = user
	fmt.Fprintf(s.p.out, "Profile %q created and selected.\n", user.Name)
	return nil
}

// deleteUser removes the active profile and all its movies, then
// forces a new profile selection.
func (s *Shell) deleteUser(ctx context.Context) error {
	confirmed, err := s.p.yesNo(fmt.Sprintf("Delete profile %q and all its movies? (y/n): ", s.active.Name))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(s.p.out, "Cancelled.")
		return nil
	}

	if err := s.users.DeleteUser(ctx, s.active.UserID); err != nil {
		return err
	}

	fmt.Fprintf(s.p.out, "Profile %q deleted.\n", s.active.Name)
	s.active = nil
	return s.selectProfile(ctx)
}

func (s *Shell) printMovies(movies []models.MovieDB) {
	for _, m := range movies {
		fmt.Fprintf(s.p.out, "%s (%d): %.1f\n", m.Title, m.Year, m.Rating)
	}
}

func (s *Shell) printNumbered(movies []models.MovieDB) {
	for i, m := range movies {
		fmt.Fprintf(s.p.out, "%d. %s (%d) - rating %.1f\n", i+1, m.Title, m.Year, m.Rating)
	}
}
