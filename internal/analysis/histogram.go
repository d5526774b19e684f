package analysis

import (
	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// DefaultBins matches the rating distribution chart.
const DefaultBins = 20

// Bin counts ratings in [Lower, Upper); the last bin also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram splits the observed rating range into equal-width bins.
func Histogram(rows []dataset.Row, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultBins
	}

	var (
		values   []float64
		lo, hi float64
	)
	for _, row := range rows {
		if !row.Rating.Valid {
			continue
		}
		v := row.Rating.Value
		if len(values) == 0 || v < lo {
			lo = v
		}
		if len(values) == 0 || v > hi {
			hi = v
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return []Bin{}
	}
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}
