package analysis

import (
	"sort"

	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// Filter mirrors the dashboard sidebar: a genre multi-select and a year range.
// Zero values disable each constraint.
type Filter struct {
	Genres   []string
	YearFrom *int
	YearTo   *int
}

// Apply returns the rows that pass every active constraint, in input order.
// Rows with no parsable year are dropped once either year bound is set.
func (f Filter) Apply(rows []dataset.Row) []dataset.Row {
	var genres map[string]struct{}
	if len(f.Genres) > 0 {
		genres = make(map[string]struct{}, len(f.Genres))
		for _, g := range f.Genres {
			genres[g] = struct{}{}
		}
	}

	out := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if genres != nil {
			if _, ok := genres[row.Genre]; !ok {
				continue
			}
		}
		if f.YearFrom != nil || f.YearTo != nil {
			if !row.ReleaseYear.Valid {
				continue
			}
			year := row.ReleaseYear.Int()
			if f.YearFrom != nil && year < *f.YearFrom {
				continue
			}
			if f.YearTo != nil && year > *f.YearTo {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

// YearBounds returns the smallest and largest parsable release year.
func YearBounds(rows []dataset.Row) (minYear, maxYear int, ok bool) {
	for _, row := range rows {
		if !row.ReleaseYear.Valid {
			continue
		}
		y := row.ReleaseYear.Int()
		if !ok || y < minYear {
			minYear = y
		}
		if !ok || y > maxYear {
			maxYear = y
		}
		ok = true
	}
	return minYear, maxYear, ok
}

// Genres lists the distinct non-blank genres, sorted.
func Genres(rows []dataset.Row) []string {
	counts := GenreCounts(rows, 0)
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Value)
	}
	sort.Strings(out)
	return out
}
