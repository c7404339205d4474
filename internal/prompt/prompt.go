// Package prompt asks the user to pick a match and to confirm a rename.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Nomadcxx/jellyrename/internal/tmdb"
	"github.com/Nomadcxx/jellyrename/internal/ui"
)

// OverviewLimit is how many characters of a synopsis are shown per candidate.
const OverviewLimit = 100

// ErrInputClosed is returned when the input ends before a valid answer.
var ErrInputClosed = errors.New("input closed")

// Prompter is the user-facing side of a rename run.
type Prompter interface {
	// Choose presents candidates and returns the 1-based index picked,
	// or 0 to skip. It blocks until it gets a valid answer.
	Choose(candidates []tmdb.Candidate) (int, error)
	// Confirm asks once whether oldName should become newName.
	Confirm(oldName, newName string) (bool, error)
}

// Select resolves the user's choice among candidates. It returns nil without
// prompting when there is nothing to choose from.
func Select(p Prompter, candidates []tmdb.Candidate) (*tmdb.Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	idx, err := p.Choose(candidates)
	if err != nil {
		return nil, err
	}
	if idx < 1 || idx > len(candidates) {
		return nil, nil
	}
	c := candidates[idx-1]
	return &c, nil
}

// ParseChoice interprets a selection answer. ok is false for anything that
// is neither "s" nor a number from 1 to n.
func ParseChoice(input string, n int) (idx int, ok bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "s" {
		return 0, true
	}
	if input == "" || strings.TrimLeft(input, "0123456789") != "" {
		return 0, false
	}
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx, true
}

// IsYes reports whether a confirmation answer accepts the rename.
func IsYes(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "y")
}

// FormatCandidate renders "1) Title (Year)".
func FormatCandidate(index int, c tmdb.Candidate) string {
	return fmt.Sprintf("%s %s %s",
		ui.Index(fmt.Sprintf("%d)", index)),
		ui.Title(c.Title),
		ui.Year("("+c.ReleaseYear+")"))
}

// FormatOverview shortens a synopsis to OverviewLimit characters.
func FormatOverview(overview string) string {
	return ui.Truncate(overview, OverviewLimit)
}
