package dataset

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/Clark-Hu/moviedash/internal/domain"
)

// Column names the loader requires in the CSV header.
const (
	ColName     = "Name"
	ColGenre    = "Genre"
	ColYear     = "Year"
	ColRating   = "Rating"
	ColVotes    = "Votes"
	ColDirector = "Director"
)

// RequiredColumns lists the header fields every dataset must carry.
var RequiredColumns = []string{ColName, ColGenre, ColYear, ColRating, ColVotes, ColDirector}

var movieNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Clark-Hu/moviedash/movies"))

// Row is one cleaned dataset row. ID is the row position in the file.
type Row struct {
	ID          int    `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Year        string `json:"year"`
	ReleaseYear Number `json:"releaseYear"`
	Genre       string `json:"genre"`
	Rating      Number `json:"rating"`
	Votes       Number `json:"votes"`
	Director    string `json:"director"`
}

// Table is the loaded, read-only dataset.
type Table struct {
	Columns  []string
	Encoding string
	rows     []Row
}

// NewTable assigns row ids and stable keys to rows in their given order.
func NewTable(columns []string, rows []Row) *Table {
	seen := make(map[string]int, len(rows))
	out := make([]Row, len(rows))
	for i, row := range rows {
		row.ID = i
		ident := row.Name + "\x00" + row.Year + "\x00" + row.Director
		row.Key = uuid.NewSHA1(movieNamespace, []byte(ident+"\x00"+strconv.Itoa(seen[ident]))).String()
		seen[ident]++
		out[i] = row
	}
	return &Table{Columns: append([]string(nil), columns...), rows: out}
}

// Len reports the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of the rows so callers can sort or filter freely.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return append([]Row(nil), t.rows...)
}

// Row returns the row at position id.
func (t *Table) Row(id int) (Row, bool) {
	if t == nil || id < 0 || id >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[id], true
}

// Movies builds the catalog records, one per row, with no ratings yet.
func (t *Table) Movies() []domain.Movie {
	if t == nil {
		return nil
	}
	movies := make([]domain.Movie, 0, len(t.rows))
	for _, row := range t.rows {
		movies = append(movies, domain.Movie{
			ID:    row.ID,
			Key:   row.Key,
			Title: row.Name,
			Genre: row.Genre,
		})
	}
	return movies
}
