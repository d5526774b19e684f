package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/moviedash/internal/domain"
)

type ratingArg struct {
	user   string
	movie  int
	rating float64
}

func parseRatingArg(raw string) (ratingArg, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return ratingArg{}, fmt.Errorf("rating %q must be user:movie:rating", raw)
	}
	user := strings.TrimSpace(parts[0])
	if user == "" {
		return ratingArg{}, fmt.Errorf("rating %q has an empty user", raw)
	}
	movie, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ratingArg{}, fmt.Errorf("rating %q: invalid movie id", raw)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return ratingArg{}, fmt.Errorf("rating %q: invalid rating", raw)
	}
	return ratingArg{user: user, movie: movie, rating: value}, nil
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <user:movie:rating>...",
		Short: "Apply ratings to the in-memory ledger and print the resulting averages",
		Long: "Ratings live only for the duration of the command. Each argument is\n" +
			"user:movie:rating where movie is the row id and rating is between 1 and 5.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]ratingArg, 0, len(args))
			for _, raw := range args {
				arg, err := parseRatingArg(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, arg)
			}

			st, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			book := st.Ledger()

			touched := make(map[int]domain.Movie)
			var order []int
			for _, arg := range parsed {
				movie, err := book.AddRating(arg.user, arg.movie, arg.rating)
				if err != nil {
					return fmt.Errorf("rate %s:%d:%g: %w", arg.user, arg.movie, arg.rating, err)
				}
				if _, seen := touched[movie.ID]; !seen {
					order = append(order, movie.ID)
				}
				touched[movie.ID] = movie
			}

			rows := make([][]string, 0, len(order))
			for _, id := range order {
				m := touched[id]
				rows = append(rows, []string{
					strconv.Itoa(m.ID),
					m.Title,
					strconv.FormatFloat(m.AvgRating, 'f', 2, 64),
					strconv.Itoa(m.TotalRatings),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"ID", "Title", "Avg Rating", "Ratings"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight}))
			return nil
		},
	}
}
