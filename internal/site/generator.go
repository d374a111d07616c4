// Package site renders one static HTML page per profile from the
// movies stored in the database.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
)

//go:embed templates/index.gohtml templates/style.css
var templateFS embed.FS

// MovieReader defines the read operation the generator depends on.
type MovieReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MovieDB, error)
}

// pageData is the template input for one rendered page.
type pageData struct {
	Title  string
	Movies []models.MovieDB
}

// Generator writes a profile's collection as a static HTML file in
// OutputDir. An existing file for the same profile is overwritten.
type Generator struct {
	readRepo  MovieReader
	outputDir string
	tmpl      *template.Template
}

// NewGenerator creates a generator. templatePath overrides the
// embedded page template when non-empty.
func NewGenerator(readRepo MovieReader, outputDir, templatePath string) (*Generator, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if templatePath != "" {
		tmpl, err = template.ParseFiles(templatePath)
	} else {
		tmpl, err = template.ParseFS(templateFS, "templates/index.gohtml")
	}
	if err != nil {
		return nil, fmt.Errorf("parse site template: %w", err)
	}

	return &Generator{
		readRepo:  readRepo,
		outputDir: outputDir,
		tmpl:      tmpl,
	}, nil
}

// Generate renders the page for one profile and returns the path of
// the written file. A profile with zero movies still produces a valid
// page with an empty grid.
func (g *Generator) Generate(ctx context.Context, user *models.UserDB) (string, error) {
	movies, err := g.readRepo.ListByUser(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to read movies for site generation", "userID", user.UserID, "error", err)
		return "", err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create site directory: %w", err)
	}
	if err := g.writeStylesheet(); err != nil {
		return "", err
	}

	outPath := filepath.Join(g.outputDir, fileName(user.Name))

	f, err := os.Create(outPath)
	if err != nil {
		logger.Log.Errorw("failed to create site file", "path", outPath, "error", err)
		return "", fmt.Errorf("create site file: %w", err)
	}
	defer f.Close()

	data := pageData{
		Title:  fmt.Sprintf("%s's Movies Database", user.Name),
		Movies: movies,
	}
	if err := g.tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render site page: %w", err)
	}

	logger.Log.Infow("site page generated", "user", user.Name, "path", outPath, "movies", len(movies))

	return outPath, nil
}

// writeStylesheet places the stylesheet the pages link next to them.
// Shared by all profiles, so it is only written once.
func (g *Generator) writeStylesheet() error {
	target := filepath.Join(g.outputDir, "style.css")
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return fmt.Errorf("read embedded stylesheet: %w", err)
	}
	if err := os.WriteFile(target, css, 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}

// fileName maps a profile name to a safe file name. Anything outside
// letters, digits, space, dash, and underscore is dropped.
func fileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, name)

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "index"
	}
	return cleaned + ".html"
}
