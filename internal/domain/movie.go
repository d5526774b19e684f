package domain

// Movie is the catalog record built for every dataset row.
type Movie struct {
	ID           int     `json:"id"`
	Key          string  `json:"key"`
	Title        string  `json:"title"`
	Genre        string  `json:"genre"`
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int     `json:"totalRatings"`
}
