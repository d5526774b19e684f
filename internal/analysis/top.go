package analysis

import (
	"sort"

	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// TopMovie is one line of the top-rated table.
type TopMovie struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Rating dataset.Number `json:"rating"`
	Votes  dataset.Number `json:"votes"`
	Genre  string         `json:"genre"`
}

// TopRated returns up to n rows ordered by Rating descending. Ties keep their
// original row order and rows with a missing rating are left out.
func TopRated(rows []dataset.Row, n int) []TopMovie {
	if n <= 0 {
		return []TopMovie{}
	}

	rated := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if row.Rating.Valid {
			rated = append(rated, row)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating.Value > rated[j].Rating.Value
	})

	if n > len(rated) {
		n = len(rated)
	}
	out := make([]TopMovie, 0, n)
	for _, row := range rated[:n] {
		out = append(out, TopMovie{
			ID:     row.ID,
			Name:   row.Name,
			Rating: row.Rating,
			Votes:  row.Votes,
			Genre:  row.Genre,
		})
	}
	return out
}
