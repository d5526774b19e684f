package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrUndecodable means no configured encoding could decode the file.
	ErrUndecodable = errors.New("dataset: undecodable under every attempted encoding")
	// ErrMissingColumn means a required header field is absent.
	ErrMissingColumn = errors.New("dataset: missing required column")
)

// LoadError is returned by Load for every failure.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options controls how a dataset is read.
type Options struct {
	Encodings []string
	Logger    *log.Logger
}

// Load reads the CSV at path, trying each encoding in order until one decodes,
// then coerces Rating and Votes. A file that decodes but does not parse fails
// immediately; later encodings are not tried.
func Load(path string, opts Options) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	names := opts.Encodings
	if len(names) == 0 {
		names = DefaultEncodings
	}
	encodings, err := resolveEncodings(names)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	raw = stripBOM(raw)

	var lastErr error
	for _, enc := range encodings {
		text, err := enc.decode(raw)
		if err != nil {
			logger.Printf("dataset: %v, trying next encoding", err)
			lastErr = err
			continue
		}
		table, err := parse(text)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		table.Encoding = enc.name
		logger.Printf("dataset: loaded %d rows from %s with %s encoding", table.Len(), path, enc.name)
		return table, nil
	}

	return nil, &LoadError{
		Path: path,
		Err:  fmt.Errorf("%w (tried %s): %w", ErrUndecodable, strings.Join(names, ", "), lastErr),
	}
}

func parse(text []byte) (*Table, error) {
	df := dataframe.ReadCSV(bytes.NewReader(text),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// gota refuses a frame without data rows; a bare header is still a
		// valid, empty dataset.
		if columns, ok := headerOnly(text); ok {
			if err := checkColumns(columns); err != nil {
				return nil, err
			}
			return NewTable(columns, nil), nil
		}
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	columns := df.Names()
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	name := cells(df.Col(ColName))
	genre := cells(df.Col(ColGenre))
	year := cells(df.Col(ColYear))
	rating := cells(df.Col(ColRating))
	votes := cells(df.Col(ColVotes))
	director := cells(df.Col(ColDirector))

	rows := make([]Row, df.Nrow())
	for i := range rows {
		rows[i] = Row{
			Name:        name[i],
			Year:        year[i],
			ReleaseYear: ParseYear(year[i]),
			Genre:       genre[i],
			Rating:      ParseNumber(rating[i]),
			Votes:       ParseVotes(votes[i]),
			Director:    director[i],
		}
	}
	return NewTable(columns, rows), nil
}

func checkColumns(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// headerOnly returns the header fields when text holds exactly one CSV record.
func headerOnly(text []byte) ([]string, bool) {
	r := csv.NewReader(bytes.NewReader(text))
	header, err := r.Read()
	if err != nil {
		return nil, false
	}
	if _, err := r.Read(); err != io.EOF {
		return nil, false
	}
	return header, true
}

// cells flattens a string series, turning NA elements into blanks.
func cells(s series.Series) []string {
	out := make([]string, s.Len())
	for i := range out {
		elem := s.Elem(i)
		if elem.IsNA() {
			continue
		}
		out[i] = strings.TrimSpace(elem.String())
	}
	return out
}
