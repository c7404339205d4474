package renamer

import (
	"time"

	"github.com/Nomadcxx/jellyrename/internal/scanner"
)

// Decision is the terminal state a file reaches.
type Decision int

const (
	AutoSkipCompliant Decision = iota
	AutoSkipAlreadyCorrect
	UserSkip
	Renamed
	DryRun
	BlockedExists
	BlockedLocked
	BlockedOSError
)

// Decisions lists every decision in report order.
var Decisions = []Decision{
	Renamed,
	DryRun,
	AutoSkipCompliant,
	AutoSkipAlreadyCorrect,
	UserSkip,
	BlockedExists,
	BlockedLocked,
	BlockedOSError,
}

func (d Decision) String() string {
	switch d {
	case AutoSkipCompliant:
		return "already canonical"
	case AutoSkipAlreadyCorrect:
		return "already correct"
	case UserSkip:
		return "skipped"
	case Renamed:
		return "renamed"
	case DryRun:
		return "dry run"
	case BlockedExists:
		return "target exists"
	case BlockedLocked:
		return "locked"
	case BlockedOSError:
		return "os error"
	default:
		return "unknown"
	}
}

// Blocked reports whether a confirmed rename could not be carried out.
func (d Decision) Blocked() bool {
	return d == BlockedExists || d == BlockedLocked || d == BlockedOSError
}

// Outcome records what happened to one file.
type Outcome struct {
	File     scanner.File
	Decision Decision
	Query    string
	NewName  string
	Err      error
}

// Summary counts outcomes for the closing report.
type Summary struct {
	Total    int
	Duration time.Duration
	counts   map[Decision]int
}

func (s *Summary) Add(d Decision) {
	if s.counts == nil {
		s.counts = make(map[Decision]int)
	}
	s.counts[d]++
	s.Total++
}

func (s Summary) Count(d Decision) int {
	return s.counts[d]
}
