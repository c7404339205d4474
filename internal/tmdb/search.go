package tmdb

import (
	"context"

	"github.com/Nomadcxx/jellyrename/internal/logging"
	"github.com/Nomadcxx/jellyrename/internal/naming"
)

const (
	// MaxCandidates is how many matches are offered to the user.
	MaxCandidates = 8
	// UnknownYear marks a candidate without a release date.
	UnknownYear = "????"
)

// Candidate is a possible match for a file.
type Candidate struct {
	ID          int64
	Title       string
	ReleaseYear string
	ReleaseDate string
	Overview    string
}

// Searcher turns a normalized query into candidates, retrying once without
// years when the first lookup comes back empty.
type Searcher struct {
	api MovieSearcher
	log *logging.Logger
}

func NewSearcher(api MovieSearcher, log *logging.Logger) *Searcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Searcher{api: api, log: log}
}

// Search never fails: lookup errors are logged and reported as no match.
func (s *Searcher) Search(ctx context.Context, query string) []Candidate {
	if query == "" {
		s.log.Debug("tmdb", "Empty query, skipping search")
		return nil
	}

	movies, err := s.api.SearchMovies(ctx, query)
	if err != nil {
		s.log.Error("tmdb", "Search failed", err, logging.F("query", query))
		return nil
	}

	if len(movies) == 0 && naming.HasDigit(query) {
		stripped := naming.StripYears(query)
		if stripped == "" {
			s.log.Debug("tmdb", "Nothing left after stripping digits", logging.F("query", query))
			return nil
		}
		s.log.Info("tmdb", "No results, retrying without year",
			logging.F("query", query),
			logging.F("retry", stripped))

		movies, err = s.api.SearchMovies(ctx, stripped)
		if err != nil {
			s.log.Error("tmdb", "Fallback search failed", err, logging.F("query", stripped))
			return nil
		}
	}

	if len(movies) > MaxCandidates {
		movies = movies[:MaxCandidates]
	}

	candidates := make([]Candidate, 0, len(movies))
	for _, m := range movies {
		candidates = append(candidates, toCandidate(m))
	}

	s.log.Debug("tmdb", "Search complete",
		logging.F("query", query),
		logging.F("candidates", len(candidates)))
	return candidates
}

func toCandidate(m Movie) Candidate {
	title := m.Title
	if title == "" {
		title = naming.UnknownTitle
	}
	year := UnknownYear
	if m.ReleaseDate != "" {
		year = firstRunes(m.ReleaseDate, 4)
	}
	return Candidate{
		ID:          m.ID,
		Title:       title,
		ReleaseYear: year,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
	}
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
