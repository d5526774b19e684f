package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/moviedash/internal/analysis"
	"github.com/Clark-Hu/moviedash/internal/dataset"
)

type filterFlags struct {
	genres   []string
	yearFrom int
	yearTo   int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "Only include these genres (repeatable)")
	cmd.Flags().IntVar(&f.yearFrom, "year-from", 0, "Earliest release year")
	cmd.Flags().IntVar(&f.yearTo, "year-to", 0, "Latest release year")
}

func (f *filterFlags) build(cmd *cobra.Command) (analysis.Filter, error) {
	filter := analysis.Filter{Genres: f.genres}
	if cmd.Flags().Changed("year-from") {
		v := f.yearFrom
		filter.YearFrom = &v
	}
	if cmd.Flags().Changed("year-to") {
		v := f.yearTo
		filter.YearTo = &v
	}
	if filter.YearFrom != nil && filter.YearTo != nil && *filter.YearFrom > *filter.YearTo {
		return filter, fmt.Errorf("--year-from cannot exceed --year-to")
	}
	return filter, nil
}

// rows loads the dataset and applies the filter flags.
func (f *filterFlags) rows(cmd *cobra.Command, ctx *commandContext) ([]dataset.Row, error) {
	filter, err := f.build(cmd)
	if err != nil {
		return nil, err
	}
	st, err := ctx.ensureStore()
	if err != nil {
		return nil, err
	}
	return filter.Apply(st.Table().Rows()), nil
}
