package models

// Stats summarizes the ratings of one profile's collection.
type Stats struct {
	Total         int      `json:"total"`          // Number of movies in the collection
	AverageRating float64  `json:"average_rating"` // Mean rating across all movies
	MedianRating  float64  `json:"median_rating"`  // Median rating across all movies
	BestRating    float64  `json:"best_rating"`    // Highest rating in the collection
	WorstRating   float64  `json:"worst_rating"`   // Lowest rating in the collection
	BestMovies    []string `json:"best_movies"`    // Titles sharing the highest rating
	WorstMovies   []string `json:"worst_movies"`   // Titles sharing the lowest rating
}
