package analysis

import (
	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// Summary holds the headline metrics shown above the charts.
type Summary struct {
	TotalMovies   int            `json:"totalMovies"`
	RatedMovies   int            `json:"ratedMovies"`
	AverageRating dataset.Number `json:"averageRating"`
	HighestRating dataset.Number `json:"highestRating"`
	HighestRated  string         `json:"highestRated,omitempty"`
	MostVotes     dataset.Number `json:"mostVotes"`
	MostVoted     string         `json:"mostVoted,omitempty"`
}

// Summarize skips missing cells the way column statistics usually do; the
// first row wins when several share the maximum.
func Summarize(rows []dataset.Row) Summary {
	s := Summary{TotalMovies: len(rows)}
	var sum float64
	for _, row := range rows {
		if row.Rating.Valid {
			s.RatedMovies++
			sum += row.Rating.Value
			if !s.HighestRating.Valid || row.Rating.Value > s.HighestRating.Value {
				s.HighestRating = row.Rating
				s.HighestRated = row.Name
			}
		}
		if row.Votes.Valid && (!s.MostVotes.Valid || row.Votes.Value > s.MostVotes.Value) {
			s.MostVotes = row.Votes
			s.MostVoted = row.Name
		}
	}
	if s.RatedMovies > 0 {
		s.AverageRating = dataset.Float(sum / float64(s.RatedMovies))
	}
	return s
}
