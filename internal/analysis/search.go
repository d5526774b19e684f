package analysis

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Clark-Hu/moviedash/internal/dataset"
)

// Search returns rows whose Name or Director contains term, ignoring case.
// A blank term matches nothing.
func Search(rows []dataset.Row, term string) []dataset.Row {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	out := []dataset.Row{}
	if needle == "" {
		return out
	}
	for _, row := range rows {
		if strings.Contains(fold.String(row.Name), needle) || strings.Contains(fold.String(row.Director), needle) {
			out = append(out, row)
		}
	}
	return out
}
