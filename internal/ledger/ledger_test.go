package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/Clark-Hu/moviedash/internal/domain"
)

func newTestLedger() *Ledger {
	return New([]domain.Movie{
		{ID: 0, Key: "k-lagaan", Title: "Lagaan", Genre: "Drama"},
		{ID: 1, Key: "k-swades", Title: "Swades", Genre: "Drama"},
		{ID: 2, Key: "k-andaz", Title: "Andaz Apna Apna", Genre: "Comedy"},
	})
}

func TestAddRatingAndAverage(t *testing.T) {
	l := newTestLedger()

	movie, err := l.AddRating("user1", 0, 4)
	if err != nil {
		t.Fatalf("first rating: %v", err)
	}
	if movie.AvgRating != 4 || movie.TotalRatings != 1 {
		t.Fatalf("after first rating = %+v", movie)
	}

	if _, err := l.AddRating("user2", 0, 5); err != nil {
		t.Fatalf("second rating: %v", err)
	}
	movie, err = l.AddRating("user3", 0, 5)
	if err != nil {
		t.Fatalf("third rating: %v", err)
	}
	if movie.AvgRating != 4.67 || movie.TotalRatings != 3 {
		t.Fatalf("after three ratings = %+v, want avg 4.67 count 3", movie)
	}

	avg, err := l.GetRating(0)
	if err != nil {
		t.Fatalf("GetRating: %v", err)
	}
	if avg != 4.67 {
		t.Fatalf("GetRating = %v, want 4.67", avg)
	}
}

func TestAddRatingOverwrites(t *testing.T) {
	l := newTestLedger()

	for i := 0; i < 3; i++ {
		if _, err := l.AddRating("user1", 1, 3); err != nil {
			t.Fatalf("resubmission %d: %v", i, err)
		}
	}
	agg, err := l.Aggregate(1)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.Count != 1 || agg.Average != 3 {
		t.Fatalf("aggregate after identical resubmissions = %+v", agg)
	}

	if _, err := l.AddRating("user1", 1, 5); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	rating, err := l.UserRating(1, "user1")
	if err != nil {
		t.Fatalf("UserRating: %v", err)
	}
	if rating.Value != 5 {
		t.Fatalf("UserRating = %v, want 5", rating.Value)
	}
	if avg, _ := l.GetRating(1); avg != 5 {
		t.Fatalf("average after overwrite = %v, want 5", avg)
	}
}

func TestAddRatingRejectsOutOfRange(t *testing.T) {
	l := newTestLedger()
	if _, err := l.AddRating("user1", 2, 2); err != nil {
		t.Fatalf("seed rating: %v", err)
	}
	before := l.Movies()

	for _, value := range []float64{0, 6, 0.99, 5.01, -1, math.NaN()} {
		if _, err := l.AddRating("user2", 2, value); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("AddRating(%v) error = %v, want ErrInvalidRating", value, err)
		}
	}
	// Invalid rating is checked before the movie id.
	if _, err := l.AddRating("user2", 99, 6); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("AddRating(unknown, 6) error = %v, want ErrInvalidRating", err)
	}

	after := l.Movies()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("ledger mutated by rejected rating: %+v -> %+v", before[i], after[i])
		}
	}
	if _, err := l.UserRating(2, "user2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rejected rating was stored: %v", err)
	}
}

func TestUnknownMovie(t *testing.T) {
	l := newTestLedger()

	if _, err := l.AddRating("user1", 42, 3); !errors.Is(err, ErrUnknownMovie) {
		t.Fatalf("AddRating error = %v, want ErrUnknownMovie", err)
	}
	if _, err := l.GetRating(42); !errors.Is(err, ErrUnknownMovie) {
		t.Fatalf("GetRating error = %v, want ErrUnknownMovie", err)
	}
	if _, err := l.Movie(-1); !errors.Is(err, ErrUnknownMovie) {
		t.Fatalf("Movie error = %v, want ErrUnknownMovie", err)
	}
	if _, err := l.Lookup("missing"); !errors.Is(err, ErrUnknownMovie) {
		t.Fatalf("Lookup error = %v, want ErrUnknownMovie", err)
	}
	if _, err := l.Ratings(42); !errors.Is(err, ErrUnknownMovie) {
		t.Fatalf("Ratings error = %v, want ErrUnknownMovie", err)
	}
}

func TestAverageMatchesRoundedMean(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		l := newTestLedger()
		final := make(map[string]int)
		submissions := 1 + rnd.Intn(30)
		for i := 0; i < submissions; i++ {
			user := fmt.Sprintf("user-%d", rnd.Intn(12))
			value := 1 + rnd.Intn(5)
			if _, err := l.AddRating(user, 0, float64(value)); err != nil {
				t.Fatalf("trial %d: AddRating: %v", trial, err)
			}
			final[user] = value
		}

		sum := 0
		for _, v := range final {
			sum += v
		}
		want := math.Round(float64(sum)*100/float64(len(final))) / 100

		agg, err := l.Aggregate(0)
		if err != nil {
			t.Fatalf("trial %d: Aggregate: %v", trial, err)
		}
		if math.Abs(agg.Average-want) > 1e-9 || agg.Count != len(final) {
			t.Fatalf("trial %d: aggregate = %+v, want avg %v count %d", trial, agg, want, len(final))
		}
	}
}

func TestAverageRoundsFractionalMeanOnce(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{"just below half", []float64{1, 1, 4.0149999999}, 2.00},
		{"exact half rounds up", []float64{1.005, 1.005}, 1.01},
		{"single fractional", []float64{4.335}, 4.34},
		{"repeating third", []float64{2, 2, 2.005}, 2.00},
		{"carries to whole", []float64{4.99, 5, 5}, 5.00},
		{"plain half", []float64{1, 2}, 1.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			for i, v := range tt.ratings {
				if _, err := l.AddRating(fmt.Sprintf("user-%d", i), 1, v); err != nil {
					t.Fatalf("AddRating(%v): %v", v, err)
				}
			}
			got, err := l.GetRating(1)
			if err != nil {
				t.Fatalf("GetRating: %v", err)
			}
			if got != tt.want {
				t.Fatalf("GetRating = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordReportsNewEntries(t *testing.T) {
	l := newTestLedger()

	if _, created, err := l.Record("u1", 2, 3); err != nil || !created {
		t.Fatalf("first Record created=%v err=%v, want created", created, err)
	}
	movie, created, err := l.Record("u1", 2, 4)
	if err != nil || created {
		t.Fatalf("second Record created=%v err=%v, want overwrite", created, err)
	}
	if movie.AvgRating != 4 || movie.TotalRatings != 1 {
		t.Fatalf("movie = %+v", movie)
	}
	if _, created, err := l.Record("u1", 2, 9); !errors.Is(err, ErrInvalidRating) || created {
		t.Fatalf("invalid Record created=%v err=%v", created, err)
	}
}

func TestConcurrentFirstRatingsCreateOnce(t *testing.T) {
	l := newTestLedger()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		creates int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := l.Record("same-rater", 0, 4)
			if err != nil {
				t.Errorf("Record: %v", err)
				return
			}
			if created {
				mu.Lock()
				creates++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if creates != 1 {
		t.Fatalf("created reported %d times, want 1", creates)
	}
}

func TestLookupAndRatings(t *testing.T) {
	l := newTestLedger()

	movie, err := l.Lookup("k-swades")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if movie.ID != 1 || movie.Title != "Swades" {
		t.Fatalf("Lookup = %+v", movie)
	}

	_, _ = l.AddRating("b", 1, 2)
	_, _ = l.AddRating("a", 1, 4.5)
	ratings, err := l.Ratings(1)
	if err != nil {
		t.Fatalf("Ratings: %v", err)
	}
	if len(ratings) != 2 || ratings[0].UserID != "a" || ratings[1].Value != 2 {
		t.Fatalf("Ratings = %+v", ratings)
	}
	if avg, _ := l.GetRating(1); avg != 3.25 {
		t.Fatalf("average = %v, want 3.25", avg)
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
}

func TestConcurrentAddRating(t *testing.T) {
	l := newTestLedger()
	const workers = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			if _, err := l.AddRating(user, 2, 4); err != nil {
				t.Errorf("AddRating for %s: %v", user, err)
			}
		}(fmt.Sprintf("user-%d", i))
	}
	wg.Wait()

	agg, err := l.Aggregate(2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.Count != workers || agg.Average != 4 {
		t.Fatalf("aggregate after concurrent ratings = %+v", agg)
	}
}

func BenchmarkAddRating(b *testing.B) {
	l := newTestLedger()
	for i := 0; i < b.N; i++ {
		if _, err := l.AddRating(fmt.Sprintf("bench-%d", i%1000), 0, float64(1+i%5)); err != nil {
			b.Fatalf("AddRating: %v", err)
		}
	}
}
