package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Clark-Hu/moviedash/internal/dataset"
	"github.com/Clark-Hu/moviedash/internal/ledger"
)

const cliCSV = `Name,Year,Duration,Genre,Rating,Votes,Director
Lagaan,(2001),224 min,Drama,8.1,"1,10,000",Ashutosh Gowariker
Swades,(2004),210 min,Drama,8.2,"95,000",Ashutosh Gowariker
Andaz Apna Apna,(1994),160 min,Comedy,8.1,"58,000",Rajkumar Santoshi
Dil Se..,(1998),163 min,Drama,7.6,"23,000",Mani Ratnam
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(cliCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"DATASET_PATH", "DATASET_ENCODINGS", "TOP_N", "GENRE_LIMIT", "HISTOGRAM_BINS"} {
		t.Setenv(key, "")
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTopCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := runCommand(t, "--data", path, "top", "-n", "2")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if !strings.Contains(out, "Swades") || !strings.Contains(out, "Lagaan") {
		t.Fatalf("top output missing movies:\n%s", out)
	}
	if strings.Contains(out, "Andaz Apna Apna") {
		t.Fatalf("top -n 2 listed a third movie:\n%s", out)
	}
	if !strings.Contains(out, "110,000") {
		t.Fatalf("votes not formatted with separators:\n%s", out)
	}
	if strings.Index(out, "Swades") > strings.Index(out, "Lagaan") {
		t.Fatalf("top output not sorted by rating:\n%s", out)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := runCommand(t, "--data", path, "analyze")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"Dataset Statistics", "Total Movies: 4", "Swades (8.20)", "Lagaan (110,000)", "Top 5 Genres", "Drama"} {
		if !strings.Contains(out, want) {
			t.Fatalf("analyze output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeRejectsNegativeCounts(t *testing.T) {
	path := writeDataset(t)

	for _, flag := range []string{"--groups=-1", "--top=-1"} {
		out, err := runCommand(t, "--data", path, "analyze", flag)
		if err == nil {
			t.Fatalf("analyze %s: expected error", flag)
		}
		if strings.Contains(out, "Top -1") {
			t.Fatalf("analyze %s printed a negative heading:\n%s", flag, out)
		}
	}
}

func TestGenresYearsSearch(t *testing.T) {
	path := writeDataset(t)

	out, err := runCommand(t, "--data", path, "genres", "--limit", "1")
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	if !strings.Contains(out, "Drama") || strings.Contains(out, "Comedy") {
		t.Fatalf("genres output:\n%s", out)
	}

	out, err = runCommand(t, "--data", path, "years", "--timeline", "--year-from", "1995")
	if err != nil {
		t.Fatalf("years: %v", err)
	}
	if strings.Contains(out, "1994") || strings.Index(out, "1998") > strings.Index(out, "2004") {
		t.Fatalf("years output:\n%s", out)
	}

	out, err = runCommand(t, "--data", path, "search", "mani")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Dil Se..") {
		t.Fatalf("search output:\n%s", out)
	}

	out, err = runCommand(t, "--data", path, "search", "nothing-here")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No movies found") {
		t.Fatalf("empty search output:\n%s", out)
	}
}

func TestRateCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := runCommand(t, "--data", path, "rate", "u1:1:4", "u2:1:5", "u1:1:5")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if !strings.Contains(out, "Swades") || !strings.Contains(out, "5.00") {
		t.Fatalf("rate output:\n%s", out)
	}

	_, err = runCommand(t, "--data", path, "rate", "u1:1:6")
	if !errors.Is(err, ledger.ErrInvalidRating) {
		t.Fatalf("rate out of range error = %v", err)
	}
	_, err = runCommand(t, "--data", path, "rate", "u1:42:3")
	if !errors.Is(err, ledger.ErrUnknownMovie) {
		t.Fatalf("rate unknown movie error = %v", err)
	}
	if _, err = runCommand(t, "--data", path, "rate", "garbage"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMissingDataset(t *testing.T) {
	_, err := runCommand(t, "--data", filepath.Join(t.TempDir(), "none.csv"), "top")
	var loadErr *dataset.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *dataset.LoadError", err)
	}
}

func TestParseRatingArg(t *testing.T) {
	arg, err := parseRatingArg(" alice : 3 : 4.5 ")
	if err != nil {
		t.Fatalf("parseRatingArg: %v", err)
	}
	if arg.user != "alice" || arg.movie != 3 || arg.rating != 4.5 {
		t.Fatalf("parsed = %+v", arg)
	}
	for _, raw := range []string{"a:b", ":1:2", "a:x:2", "a:1:x"} {
		if _, err := parseRatingArg(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
