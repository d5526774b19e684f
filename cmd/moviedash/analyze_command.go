package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/moviedash/internal/analysis"
	"github.com/Clark-Hu/moviedash/internal/dataset"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var top int
	var groups int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print dataset statistics, top genres, busiest years and top-rated movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := filters.rows(cmd, ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				top = ctx.cfg.TopN
			}
			if top < 0 {
				return fmt.Errorf("--top must be non-negative")
			}
			if groups < 0 {
				return fmt.Errorf("--groups must be non-negative")
			}
			out := cmd.OutOrStdout()

			summary := analysis.Summarize(rows)
			printHeading(out, "Dataset Statistics")
			printMetric(out, "Total Movies", strconv.Itoa(summary.TotalMovies))
			printMetric(out, "Average Rating", formatRating(summary.AverageRating))
			printMetric(out, "Highest Rated", highlight(summary.HighestRated, formatRating(summary.HighestRating)))
			printMetric(out, "Most Votes", highlight(summary.MostVoted, formatVotes(summary.MostVotes)))

			printHeading(out, fmt.Sprintf("Top %d Genres", groups))
			fmt.Fprintln(out, genreTable(out, analysis.GenreCounts(rows, groups)))

			printHeading(out, fmt.Sprintf("Movies by Year (Top %d)", groups))
			fmt.Fprintln(out, yearTable(out, analysis.YearCounts(rows, groups)))

			printHeading(out, fmt.Sprintf("Top %d Rated Movies", top))
			fmt.Fprintln(out, topTable(out, analysis.TopRated(rows, top)))
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of top-rated movies to list")
	cmd.Flags().IntVar(&groups, "groups", 5, "Number of genres and years to list")
	return cmd
}

func highlight(name, value string) string {
	if name == "" {
		return value
	}
	return fmt.Sprintf("%s (%s)", name, value)
}

func topTable(out io.Writer, movies []analysis.TopMovie) string {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{strconv.Itoa(m.ID), m.Name, formatRating(m.Rating), formatVotes(m.Votes), m.Genre})
	}
	return renderTable(out, []string{"ID", "Name", "Rating", "Votes", "Genre"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft})
}

func genreTable(out io.Writer, counts []analysis.Count) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
	}
	return renderTable(out, []string{"Genre", "Movies"}, rows, []columnAlignment{alignLeft, alignRight})
}

func yearTable(out io.Writer, counts []analysis.YearCount) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{strconv.Itoa(c.Year), strconv.Itoa(c.Count)})
	}
	return renderTable(out, []string{"Year", "Movies"}, rows, []columnAlignment{alignRight, alignRight})
}

func searchTable(out io.Writer, found []dataset.Row) string {
	rows := make([][]string, 0, len(found))
	for _, r := range found {
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Name, r.Year, formatRating(r.Rating), r.Genre, r.Director})
	}
	return renderTable(out, []string{"ID", "Name", "Year", "Rating", "Genre", "Director"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft})
}
