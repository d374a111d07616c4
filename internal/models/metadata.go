package models

// MovieMetadata holds the normalized attributes returned by the
// external metadata API for a single title.
type MovieMetadata struct {
	Title     string  `json:"title"`                // Canonical title as reported by the API
	Year      int     `json:"year"`                 // Release year, 0 when the API value is not parseable
	Rating    float64 `json:"rating"`               // Rating on a 0-10 scale, 0 when unrated
	PosterURL *string `json:"poster_url,omitempty"` // Poster image URL, nil when the API has none
}
