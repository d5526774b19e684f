package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/moviedash/internal/analysis"
)

func newTopCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the top-rated movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := filters.rows(cmd, ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				n = ctx.cfg.TopN
			}
			if n < 0 {
				return fmt.Errorf("--count must be non-negative")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, topTable(out, analysis.TopRated(rows, n)))
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVarP(&n, "count", "n", 10, "Number of movies to list")
	return cmd
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Count movies per genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := filters.rows(cmd, ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = ctx.cfg.GenreLimit
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, genreTable(out, analysis.GenreCounts(rows, limit)))
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of genres to list (0 for all)")
	return cmd
}

func newYearsCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var limit int
	var timeline bool

	cmd := &cobra.Command{
		Use:   "years",
		Short: "Count movies per release year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := filters.rows(cmd, ctx)
			if err != nil {
				return err
			}
			counts := analysis.YearCounts(rows, limit)
			if timeline {
				counts = analysis.YearTimeline(rows)
				if limit > 0 && len(counts) > limit {
					counts = counts[:limit]
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, yearTable(out, counts))
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Number of years to list (0 for all)")
	cmd.Flags().BoolVar(&timeline, "timeline", false, "Order by year instead of count")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find movies by name or director",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := filters.rows(cmd, ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			found := analysis.Search(rows, strings.Join(args, " "))
			if len(found) == 0 {
				fmt.Fprintln(out, "No movies found matching your search.")
				return nil
			}
			fmt.Fprintln(out, searchTable(out, found))
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}
