package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Clark-Hu/moviedash/internal/dataset"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6EC4F4"))
)

func printHeading(w io.Writer, title string) {
	if isTerminal(w) {
		title = headingStyle.Render(title)
	}
	fmt.Fprintf(w, "\n%s\n", title)
}

func printMetric(w io.Writer, label, value string) {
	if isTerminal(w) {
		label = labelStyle.Render(label)
	}
	fmt.Fprintf(w, "%s: %s\n", label, value)
}

func formatRating(n dataset.Number) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', 2, 64)
}

// formatVotes renders a vote count with thousands separators.
func formatVotes(n dataset.Number) string {
	if !n.Valid {
		return "-"
	}
	return humanize.Comma(int64(math.Round(n.Value)))
}
