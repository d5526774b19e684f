package analysis

import (
	"sort"
	"strings"

	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// Count is one bucket of a frequency table.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// YearCount is one bucket of the per-year frequency table.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// GenreCounts groups rows by their Genre cell and orders the groups by size,
// largest first. Equal sizes keep first-appearance order. Blank genres are
// skipped. limit <= 0 returns every group.
func GenreCounts(rows []dataset.Row, limit int) []Count {
	index := make(map[string]int)
	var out []Count
	for _, row := range rows {
		genre := strings.TrimSpace(row.Genre)
		if genre == "" {
			continue
		}
		i, ok := index[genre]
		if !ok {
			i = len(out)
			index[genre] = i
			out = append(out, Count{Value: genre})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return truncate(out, limit)
}

// YearCounts groups rows by release year, largest group first. Rows without a
// parsable year are skipped.
func YearCounts(rows []dataset.Row, limit int) []YearCount {
	out := tallyYears(rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return truncate(out, limit)
}

// YearTimeline is the same tally ordered by year, oldest first.
func YearTimeline(rows []dataset.Row) []YearCount {
	out := tallyYears(rows)
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func tallyYears(rows []dataset.Row) []YearCount {
	index := make(map[int]int)
	out := []YearCount{}
	for _, row := range rows {
		if !row.ReleaseYear.Valid {
			continue
		}
		year := row.ReleaseYear.Int()
		i, ok := index[year]
		if !ok {
			i = len(out)
			index[year] = i
			out = append(out, YearCount{Year: year})
		}
		out[i].Count++
	}
	return out
}

func truncate[T any](items []T, limit int) []T {
	if items == nil {
		items = []T{}
	}
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
