package store

import (
	"context"
	"fmt"
	"log"

	"github.com/Clark-Hu/moviedash/internal/dataset"
	"github.com/Clark-Hu/moviedash/internal/ledger"
)

// Options controls how the dataset is loaded.
type Options struct {
	Encodings []string
	Logger    *log.Logger
}

// Store owns the loaded table and the rating ledger built from it, so higher
// layers work against one session object.
type Store struct {
	path   string
	table  *dataset.Table
	ledger *ledger.Ledger
	logger *log.Logger
}

// Stats summarises what the store holds.
type Stats struct {
	Path        string `json:"path"`
	Encoding    string `json:"encoding"`
	Rows        int    `json:"rows"`
	RatedMovies int    `json:"ratedMovies"`
	Ratings     int    `json:"ratings"`
}

// Open loads the dataset at path and builds the rating catalog.
func Open(path string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("store: loading dataset %s (encodings=%v)", path, opts.Encodings)

	table, err := dataset.Load(path, dataset.Options{Encodings: opts.Encodings, Logger: logger})
	if err != nil {
		return nil, err
	}
	return New(path, table, logger), nil
}

// New wraps an already loaded table.
func New(path string, table *dataset.Table, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		path:   path,
		table:  table,
		ledger: ledger.New(table.Movies()),
		logger: logger,
	}
}

// Table exposes the read-only dataset.
func (s *Store) Table() *dataset.Table {
	return s.table
}

// Ledger exposes the rating ledger.
func (s *Store) Ledger() *ledger.Ledger {
	return s.ledger
}

// HealthCheck verifies a dataset is loaded.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.table == nil || s.ledger == nil {
		return fmt.Errorf("store not initialized")
	}
	return nil
}

// Stats reports dataset and ledger sizes.
func (s *Store) Stats() Stats {
	if s == nil || s.table == nil {
		return Stats{}
	}
	st := Stats{
		Path:     s.path,
		Encoding: s.table.Encoding,
		Rows:     s.table.Len(),
	}
	for _, movie := range s.ledger.Movies() {
		if movie.TotalRatings > 0 {
			st.RatedMovies++
			st.Ratings += movie.TotalRatings
		}
	}
	return st
}
