package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/moviedash/internal/analysis"
	"github.com/Clark-Hu/moviedash/internal/dataset"
	"github.com/Clark-Hu/moviedash/internal/domain"
	"github.com/Clark-Hu/moviedash/internal/ledger"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

type movieResponse struct {
	domain.Movie
	Row dataset.Row `json:"row"`
}

type ratingRequest struct {
	Rating *float64 `json:"rating"`
}

type ratingResponse struct {
	MovieID      int     `json:"movieId"`
	MovieKey     string  `json:"movieKey"`
	MovieTitle   string  `json:"movieTitle"`
	RaterID      string  `json:"raterId"`
	Rating       float64 `json:"rating"`
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int     `json:"totalRatings"`
}

type ratingAggregateResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, analysis.Summarize(rows))
}

func (s *Server) handleTopMovies(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r.URL.Query(), "n", s.cfg.TopN)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse[analysis.TopMovie]{Items: analysis.TopRated(rows, n)})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit", s.cfg.GenreLimit)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse[analysis.Count]{Items: analysis.GenreCounts(rows, limit)})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := intParam(query, "limit", 0)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}

	var items []analysis.YearCount
	switch order := strings.TrimSpace(query.Get("order")); order {
	case "", "count":
		items = analysis.YearCounts(rows, limit)
	case "year":
		items = analysis.YearTimeline(rows)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
	default:
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "order must be count or year")
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse[analysis.YearCount]{Items: items})
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	bins, err := intParam(r.URL.Query(), "bins", s.cfg.HistogramBins)
	if err != nil || bins <= 0 {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid bins value")
		return
	}
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse[analysis.Bin]{Items: analysis.Histogram(rows, bins)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse[dataset.Row]{Items: analysis.Search(rows, r.URL.Query().Get("q"))})
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.resolveMovie(w, r)
	if !ok {
		return
	}
	row, _ := s.store.Table().Row(movie.ID)
	s.respondJSON(w, http.StatusOK, movieResponse{Movie: movie, Row: row})
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	raterID := strings.TrimSpace(r.Header.Get("X-Rater-Id"))
	if raterID == "" {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "X-Rater-Id header is required")
		return
	}

	movie, ok := s.resolveMovie(w, r)
	if !ok {
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if req.Rating == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating is required")
		return
	}

	updated, created, err := s.store.Ledger().Record(raterID, movie.ID, *req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidRating):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating must be between 1 and 5")
		case errors.Is(err, ledger.ErrUnknownMovie):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		default:
			s.logger.Printf("add rating error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process rating")
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, ratingResponse{
		MovieID:      updated.ID,
		MovieKey:     updated.Key,
		MovieTitle:   updated.Title,
		RaterID:      raterID,
		Rating:       *req.Rating,
		AvgRating:    updated.AvgRating,
		TotalRatings: updated.TotalRatings,
	})
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.resolveMovie(w, r)
	if !ok {
		return
	}

	agg, err := s.store.Ledger().Aggregate(movie.ID)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownMovie) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("aggregate rating error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch rating")
		return
	}
	s.respondJSON(w, http.StatusOK, ratingAggregateResponse{Average: agg.Average, Count: agg.Count})
}

// filteredRows applies the genre/year query filters to the loaded table and
// writes a 400 when they do not parse.
func (s *Server) filteredRows(w http.ResponseWriter, r *http.Request) ([]dataset.Row, bool) {
	filter, err := buildRowFilter(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return nil, false
	}
	return filter.Apply(s.store.Table().Rows()), true
}

func buildRowFilter(query url.Values) (analysis.Filter, error) {
	var filter analysis.Filter

	for _, genre := range query["genre"] {
		if genre = strings.TrimSpace(genre); genre != "" {
			filter.Genres = append(filter.Genres, genre)
		}
	}
	if val := strings.TrimSpace(query.Get("yearFrom")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filter, fmt.Errorf("invalid yearFrom value")
		}
		filter.YearFrom = &year
	}
	if val := strings.TrimSpace(query.Get("yearTo")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filter, fmt.Errorf("invalid yearTo value")
		}
		filter.YearTo = &year
	}
	if filter.YearFrom != nil && filter.YearTo != nil && *filter.YearFrom > *filter.YearTo {
		return filter, fmt.Errorf("yearFrom cannot exceed yearTo")
	}
	return filter, nil
}

func intParam(query url.Values, key string, fallback int) (int, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value", key)
	}
	return n, nil
}

// resolveMovie accepts either the row id or the stable movie key.
func (s *Server) resolveMovie(w http.ResponseWriter, r *http.Request) (domain.Movie, bool) {
	raw, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil || strings.TrimSpace(raw) == "" {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid movie id")
		return domain.Movie{}, false
	}

	book := s.store.Ledger()
	var movie domain.Movie
	if id, convErr := strconv.Atoi(raw); convErr == nil {
		movie, err = book.Movie(id)
	} else {
		movie, err = book.Lookup(raw)
	}
	if err != nil {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return domain.Movie{}, false
	}
	return movie, true
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}
