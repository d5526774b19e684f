package domain

// Rating represents a single user's rating for a movie.
type Rating struct {
	MovieID int
	UserID  string
	Value   float64
}

// RatingAggregate provides average and count for a movie's ratings.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
