// Package facades wraps external services behind narrow interfaces.
package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/movieshelf/movieshelf/internal/logger"
	"github.com/movieshelf/movieshelf/internal/models"
)

// ErrNoMatch is returned when the metadata API reports no movie for
// the requested title.
var ErrNoMatch = errors.New("omdb: no match for title")

// ErrUnavailable wraps transport failures, timeouts, and malformed
// responses from the metadata API.
var ErrUnavailable = errors.New("omdb: service unavailable")

// OMDBFacade fetches movie metadata from the OMDb HTTP API. One
// outbound request per call; no retry, no caching.
type OMDBFacade struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOMDBFacade creates a facade for the given endpoint and API key.
func NewOMDBFacade(baseURL, apiKey string, timeout time.Duration) *OMDBFacade {
	return &OMDBFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// omdbResponse mirrors the subset of the OMDb payload we consume.
// OMDb reports errors in-band: Response is the string "False" and
// Error carries the reason.
type omdbResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	ImdbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Fetch queries the API by title and returns normalized metadata.
func (f *OMDBFacade) Fetch(ctx context.Context, title string) (*models.MovieMetadata, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %v", ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("t", title)
	q.Set("apikey", f.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("metadata request failed", "title", title, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("metadata request returned unexpected status", "title", title, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	}

	var payload omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Log.Errorw("metadata response decode failed", "title", title, "error", err)
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if payload.Response == "False" {
		logger.Log.Infow("metadata lookup found no match", "title", title, "reason", payload.Error)
		return nil, ErrNoMatch
	}

	meta := normalize(payload)

	logger.Log.Infow("metadata fetched",
		"title", meta.Title,
		"year", meta.Year,
		"rating", meta.Rating,
	)

	return meta, nil
}

// normalize applies the OMDb quirks: Year may carry a range like
// "2010-2012", ratings and posters use the literal "N/A" for absent
// values.
func normalize(payload omdbResponse) *models.MovieMetadata {
	meta := &models.MovieMetadata{
		Title: strings.TrimSpace(payload.Title),
	}

	yearRaw := strings.TrimSpace(payload.Year)
	if len(yearRaw) >= 4 {
		if y, err := strconv.Atoi(yearRaw[:4]); err == nil {
			meta.Year = y
		}
	}

	ratingRaw := strings.TrimSpace(payload.ImdbRating)
	if ratingRaw != "" && ratingRaw != "N/A" {
		if r, err := strconv.ParseFloat(ratingRaw, 64); err == nil {
			meta.Rating = r
		}
	}

	posterRaw := strings.TrimSpace(payload.Poster)
	if posterRaw != "" && posterRaw != "N/A" {
		meta.PosterURL = &posterRaw
	}

	return meta
}
