package naming

import (
	"regexp"
	"strings"
)

// junkPattern matches release-scene tokens that only add noise to a title search.
// The alternatives are disjoint whole words, so a single pass removes all of them.
var junkPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join([]string{
	`1080p`, `720p`, `2160p`, `4k`,
	`BluRay`, `BRRip`, `WEBRip`, `WEB`, `HDRip`,
	`H264`, `H265`, `X264`, `X265`,
	`DVDRip`, `DVD`, `CAM`, `TS`, `R5`,
	`YIFY`, `RARBG`, `REMASTERED`, `UNCUT`, `EXTENDED`,
	`DIRECTOR'?S?\s*CUT`,
	`LIMITED`, `REMUX`, `PROPER`, `REPACK`,
}, "|") + `)\b`)

var (
	parenGroupRegex     = regexp.MustCompile(`\(.*?\)`)
	parenYearRegex      = regexp.MustCompile(`^\(\d{4}\)$`)
	releaseGroupSuffix  = regexp.MustCompile(`-\s*\w+$`)
	trailingSeparators  = regexp.MustCompile(`[-_]+$`)
	repeatedWhitespace  = regexp.MustCompile(`\s{2,}`)
	fourDigitRunRegex   = regexp.MustCompile(`\d{4}`)
	anyDigitRunRegex    = regexp.MustCompile(`\d+`)
	windowsIllegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// Normalize turns a raw filename stem into a search query.
//
//	"The.Matrix.1999.1080p.BluRay.x264-GROUP" -> "The Matrix 1999"
//
// An empty stem yields an empty query.
func Normalize(stem string) string {
	title := strings.NewReplacer(".", " ", "_", " ").Replace(stem)

	title = junkPattern.ReplaceAllString(title, "")

	// "(Director's Cut)" goes, "(1999)" stays.
	title = parenGroupRegex.ReplaceAllStringFunc(title, func(group string) string {
		if parenYearRegex.MatchString(group) {
			return group
		}
		return ""
	})

	// Junk removal leaves trailing blanks behind, which would hide a "-GROUP" suffix.
	title = strings.TrimRightFunc(title, isSpace)
	title = releaseGroupSuffix.ReplaceAllString(title, "")
	title = trailingSeparators.ReplaceAllString(title, "")

	return CollapseSpaces(title)
}

// StripYears removes every 4-digit run from a query. When the query has no
// such run, all digit runs are removed instead ("Movie 2" -> "Movie").
func StripYears(query string) string {
	stripped := fourDigitRunRegex.ReplaceAllString(query, "")
	if stripped == query {
		stripped = anyDigitRunRegex.ReplaceAllString(query, "")
	}
	return CollapseSpaces(stripped)
}

// HasDigit reports whether s contains an ASCII digit.
func HasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// CollapseSpaces folds whitespace runs into a single space and trims the result.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(repeatedWhitespace.ReplaceAllString(s, " "))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
