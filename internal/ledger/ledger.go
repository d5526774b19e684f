package ledger

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Clark-Hu/moviedash/internal/domain"
)

var (
	// ErrInvalidRating is returned for ratings outside [MinRating, MaxRating].
	ErrInvalidRating = errors.New("ledger: rating must be between 1 and 5")
	// ErrUnknownMovie is returned when the movie id is not in the catalog.
	ErrUnknownMovie = errors.New("ledger: movie not found")
	// ErrNotFound indicates the user has not rated the movie.
	ErrNotFound = errors.New("ledger: rating not found")
)

const (
	MinRating = 1
	MaxRating = 5
)

// Ledger records per-user ratings for a fixed catalog of movies and keeps each
// movie's average and count in step with them.
type Ledger struct {
	mu      sync.RWMutex
	movies  map[int]*domain.Movie
	byKey   map[string]int
	order   []int
	ratings map[int]map[string]float64
}

// New builds a ledger over the given catalog. Later duplicates of an id
// replace earlier ones.
func New(movies []domain.Movie) *Ledger {
	l := &Ledger{
		movies:  make(map[int]*domain.Movie, len(movies)),
		byKey:   make(map[string]int, len(movies)),
		ratings: make(map[int]map[string]float64),
	}
	for _, m := range movies {
		movie := m
		if _, exists := l.movies[movie.ID]; !exists {
			l.order = append(l.order, movie.ID)
		}
		l.movies[movie.ID] = &movie
		if movie.Key != "" {
			l.byKey[movie.Key] = movie.ID
		}
	}
	return l
}

// AddRating stores userID's rating for movieID, replacing any earlier rating
// by the same user, and returns the updated movie record. Nothing changes when
// an error is returned.
func (l *Ledger) AddRating(userID string, movieID int, rating float64) (domain.Movie, error) {
	movie, _, err := l.Record(userID, movieID, rating)
	return movie, err
}

// Record behaves like AddRating and also reports whether userID had no
// earlier rating for the movie. Both happen under one lock.
func (l *Ledger) Record(userID string, movieID int, rating float64) (domain.Movie, bool, error) {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return domain.Movie{}, false, ErrInvalidRating
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	movie, ok := l.movies[movieID]
	if !ok {
		return domain.Movie{}, false, ErrUnknownMovie
	}

	entries, ok := l.ratings[movieID]
	if !ok {
		entries = make(map[string]float64)
		l.ratings[movieID] = entries
	}
	_, existed := entries[userID]
	entries[userID] = rating

	movie.AvgRating = average(entries)
	movie.TotalRatings = len(entries)
	return *movie, !existed, nil
}

// GetRating returns the current average rating of a movie.
func (l *Ledger) GetRating(movieID int) (float64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	movie, ok := l.movies[movieID]
	if !ok {
		return 0, ErrUnknownMovie
	}
	return movie.AvgRating, nil
}

// Aggregate returns the rating average and count for a movie.
func (l *Ledger) Aggregate(movieID int) (domain.RatingAggregate, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	movie, ok := l.movies[movieID]
	if !ok {
		return domain.RatingAggregate{}, ErrUnknownMovie
	}
	return domain.RatingAggregate{Average: movie.AvgRating, Count: movie.TotalRatings}, nil
}

// UserRating retrieves a single user's rating for a movie.
func (l *Ledger) UserRating(movieID int, userID string) (domain.Rating, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.movies[movieID]; !ok {
		return domain.Rating{}, ErrUnknownMovie
	}
	value, ok := l.ratings[movieID][userID]
	if !ok {
		return domain.Rating{}, ErrNotFound
	}
	return domain.Rating{MovieID: movieID, UserID: userID, Value: value}, nil
}

// Ratings lists every rating recorded for a movie, ordered by user id.
func (l *Ledger) Ratings(movieID int) ([]domain.Rating, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.movies[movieID]; !ok {
		return nil, ErrUnknownMovie
	}
	entries := l.ratings[movieID]
	out := make([]domain.Rating, 0, len(entries))
	for user, value := range entries {
		out = append(out, domain.Rating{MovieID: movieID, UserID: user, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// Movie returns a copy of the catalog record for id.
func (l *Ledger) Movie(id int) (domain.Movie, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	movie, ok := l.movies[id]
	if !ok {
		return domain.Movie{}, ErrUnknownMovie
	}
	return *movie, nil
}

// Lookup resolves a stable movie key to its record.
func (l *Ledger) Lookup(key string) (domain.Movie, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	id, ok := l.byKey[key]
	if !ok {
		return domain.Movie{}, ErrUnknownMovie
	}
	return *l.movies[id], nil
}

// Movies returns a snapshot of the catalog in insertion order.
func (l *Ledger) Movies() []domain.Movie {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Movie, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.movies[id])
	}
	return out
}

// Len reports the catalog size.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.movies)
}

// average is the arithmetic mean rounded half away from zero to 2 places.
func average(entries map[string]float64) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range entries {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	avg, _ := sum.DivRound(decimal.NewFromInt(int64(len(entries))), 2).Float64()
	return avg
}
