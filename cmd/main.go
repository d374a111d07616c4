package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/movieshelf/movieshelf/internal/cli"
	"github.com/movieshelf/movieshelf/internal/facades"
	"github.com/movieshelf/movieshelf/internal/handlers"
	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/middlewares"
	"github.com/movieshelf/movieshelf/internal/repositories"
	"github.com/movieshelf/movieshelf/internal/services"
	"github.com/movieshelf/movieshelf/internal/site"

	_ "modernc.org/sqlite"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the binary
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath, serve := parseFlags()

	dbPath, siteDir, templatePath,
		omdbURL, omdbAPIKey, omdbTimeoutSecs,
		appHost, appPort, logLevel, logPath,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		serve,
		dbPath, siteDir, templatePath,
		omdbURL, omdbAPIKey, omdbTimeoutSecs,
		appHost, appPort, logLevel, logPath,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("movieshelf version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file
// path and whether to run the site preview server instead of the
// interactive menu.
func parseFlags() (string, bool) {
	c := flag.String("c", "config.env", "Path to configuration file")
	serve := flag.Bool("serve", false, "Serve the generated site and a read-only JSON API instead of the interactive menu")
	flag.Parse()
	return *c, *serve
}

// parseConfig loads environment variables from a file and returns all
// storage, metadata API, site, and logging configuration. The OMDb
// API key is the only required value; its absence fails here, before
// any catalog operation is attempted.
func parseConfig(path string) (
	dbPath, siteDir, templatePath string,
	omdbURL, omdbAPIKey string, omdbTimeoutSecs int,
	appHost, appPort, logLevel, logPath string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Storage and site config
	dbPath = getEnv("MOVIESHELF_DB_PATH", filepath.Join("data", "movies.db"))
	siteDir = getEnv("MOVIESHELF_SITE_DIR", "_static")
	templatePath = getEnv("MOVIESHELF_TEMPLATE", "")

	// Metadata API config
	omdbURL = getEnv("OMDB_URL", "https://www.omdbapi.com/")
	omdbAPIKey = os.Getenv("OMDB_API_KEY")
	if omdbAPIKey == "" {
		err = fmt.Errorf("OMDB_API_KEY is required")
		return
	}
	if omdbTimeoutSecs, err = strconv.Atoi(getEnv("OMDB_TIMEOUT_SECONDS", "10")); err != nil {
		return
	}
	if _, err = url.Parse(omdbURL); err != nil {
		return
	}

	// Preview server config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")

	// Logging config
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	logPath = getEnv("APP_LOG_PATH", "movieshelf.log")

	return
}

// run initializes the logger, database, metadata facade, and services,
// then starts either the interactive shell or the preview HTTP server.
func run(ctx context.Context,
	serve bool,
	dbPath, siteDir, templatePath string,
	omdbURL, omdbAPIKey string, omdbTimeoutSecs int,
	appHost, appPort, logLevel, logPath string,
) error {
	// Initialize logger. Interactive mode logs to a file so log lines
	// do not interleave with the menu.
	logTargets := []string{logPath}
	if serve {
		logTargets = nil
	}
	if err := logger.Initialize(logLevel, logTargets...); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Open SQLite database
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", dbPath)
	logger.Log.Infof("Opening SQLite database: %s", dbPath)

	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		logger.Log.Errorw("SQLite connection error", "error", err)
		return err
	}
	defer db.Close()

	if err := repositories.Initialize(ctx, db); err != nil {
		logger.Log.Errorw("schema initialization failed", "error", err)
		return err
	}

	// Initialize metadata facade
	omdb := facades.NewOMDBFacade(omdbURL, omdbAPIKey, time.Duration(omdbTimeoutSecs)*time.Second)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	movieReadRepo := repositories.NewMovieReadRepository(db)
	movieWriteRepo := repositories.NewMovieWriteRepository(db)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo)
	catalogService := services.NewCatalogService(movieReadRepo, movieWriteRepo, omdb)

	generator, err := site.NewGenerator(movieReadRepo, siteDir, templatePath)
	if err != nil {
		logger.Log.Errorw("site generator initialization failed", "error", err)
		return err
	}

	if serve {
		return runPreviewServer(ctx, userService, catalogService, siteDir, appHost, appPort)
	}

	shell := cli.NewShell(os.Stdin, os.Stdout, userService, catalogService, generator)
	return shell.Run(ctx)
}

// runPreviewServer serves the generated site directory plus a
// read-only JSON API over the catalog, with graceful shutdown.
func runPreviewServer(ctx context.Context,
	userService *services.UserService,
	catalogService *services.CatalogService,
	siteDir, appHost, appPort string,
) error {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Get("/api/users", handlers.NewListUsersHandler(userService))
	r.Get("/api/users/{userID}/movies", handlers.NewListMoviesHandler(catalogService))
	r.Handle("/*", http.FileServer(http.Dir(siteDir)))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("Preview server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("preview server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping preview server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("preview server shutdown error", "error", err)
	}

	logger.Log.Info("Preview server stopped gracefully")
	return nil
}
