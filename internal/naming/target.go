package naming

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// UnknownYear is used when a match carries no usable release date.
	UnknownYear = "0000"
	// UnknownTitle replaces a title that sanitizes down to nothing.
	UnknownTitle = "Unknown"
)

var (
	// canonicalPattern is the "Title (Year).ext" form a file is renamed to.
	canonicalPattern = regexp.MustCompile(`^(.+)\s\((\d{4})\)\.[a-zA-Z0-9]+$`)
	yearPrefixRegex  = regexp.MustCompile(`^\d{4}`)
)

// TargetName is the canonical name a file will be renamed to.
type TargetName struct {
	Title string
	Year  string
	Ext   string
}

// String renders the name as "Title (Year).ext".
func (t TargetName) String() string {
	return fmt.Sprintf("%s (%s)%s", t.Title, t.Year, t.Ext)
}

// BuildTargetName converts a metadata match into a filesystem-safe canonical
// name. ext is used verbatim and must include its leading dot.
func BuildTargetName(title, releaseDate, ext string) TargetName {
	return TargetName{
		Title: SanitizeTitle(title),
		Year:  YearFromDate(releaseDate, UnknownYear),
		Ext:   ext,
	}
}

// SanitizeTitle replaces characters Windows forbids in filenames with spaces
// and collapses the whitespace left behind.
func SanitizeTitle(title string) string {
	title = windowsIllegalChars.ReplaceAllString(strings.TrimSpace(title), " ")
	// Fields also folds lone tabs and newlines, which have no place in a filename.
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return UnknownTitle
	}
	return title
}

// YearFromDate returns the year of a YYYY-MM-DD date, or fallback when the
// date does not start with four digits.
func YearFromDate(date, fallback string) string {
	if year := yearPrefixRegex.FindString(date); year != "" {
		return year
	}
	return fallback
}

// IsCanonicalFilename reports whether filename already follows "Title (Year).ext".
func IsCanonicalFilename(filename string) bool {
	return canonicalPattern.MatchString(filename)
}
