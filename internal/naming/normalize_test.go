package naming

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Scene release with group suffix",
			input: "The.Matrix.1999.1080p.BluRay.x264-GROUP",
			want:  "The Matrix 1999",
		},
		{
			name:  "Junk token as release group",
			input: "Dune.Part.Two.2024.2160p.WEBRip.x265-RARBG",
			want:  "Dune Part Two 2024",
		},
		{
			name:  "Underscores and director's cut in parentheses",
			input: "Blade_Runner_(Director's_Cut)_1982_DVDRip",
			want:  "Blade Runner 1982",
		},
		{
			name:  "Parenthesized year is kept",
			input: "Alien (1979) (Remastered)",
			want:  "Alien (1979)",
		},
		{
			name:  "Non-year parentheses removed",
			input: "Heat (Special Edition) 1995",
			want:  "Heat 1995",
		},
		{
			name:  "Spaced hyphen before junk group",
			input: "Heat.1995.PROPER.REPACK.720p.HDRip - YIFY",
			want:  "Heat 1995",
		},
		{
			name:  "Trailing separators",
			input: "Movie_Name_-_",
			want:  "Movie Name",
		},
		{
			name:  "Scene markers",
			input: "Se7en 1995 EXTENDED UNCUT LIMITED",
			want:  "Se7en 1995",
		},
		{
			name:  "Lowercase tags",
			input: "the.matrix.1999.bluray.x264.yify",
			want:  "the matrix 1999",
		},
		{
			name:  "Source tags",
			input: "Amelie.2001.WEB.CAM.TS.R5",
			want:  "Amelie 2001",
		},
		{
			name:  "Group suffix hidden behind removed junk",
			input: "Movie - Group 1080p",
			want:  "Movie",
		},
		{
			name:  "Hyphenated title without trailing group",
			input: "Spider-Man.2002.1080p",
			want:  "Spider-Man 2002",
		},
		{
			name:  "Directors cut without apostrophe",
			input: "Kingdom.of.Heaven.2005.Directors.Cut.BRRip",
			want:  "Kingdom of Heaven 2005",
		},
		{
			name:  "Empty stem",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_RemovesEveryJunkToken(t *testing.T) {
	tokens := []string{
		"1080p", "720p", "2160p", "4k",
		"BluRay", "BRRip", "WEBRip", "WEB", "HDRip",
		"H264", "H265", "X264", "X265",
		"DVDRip", "DVD", "CAM", "TS", "R5",
		"YIFY", "RARBG", "REMASTERED", "UNCUT", "EXTENDED",
		"LIMITED", "REMUX", "PROPER", "REPACK",
	}

	for _, token := range tokens {
		for _, variant := range []string{token, strings.ToLower(token), strings.ToUpper(token)} {
			stem := "Some.Title.2001." + variant + ".Extra"
			got := Normalize(stem)

			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
			assert.False(t, re.MatchString(got), "Normalize(%q) = %q still contains %q", stem, got, token)
			assert.Equal(t, "Some Title 2001 Extra", got)
		}
	}
}

func TestNormalize_DirectorsCutVariants(t *testing.T) {
	for _, stem := range []string{
		"Aliens.1986.Directors.Cut",
		"Aliens.1986.Director's.Cut",
		"Aliens 1986 DIRECTORS CUT",
		"Aliens 1986 director cut",
		"Aliens 1986 (Director's Cut)",
	} {
		assert.Equal(t, "Aliens 1986", Normalize(stem), "stem %q", stem)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"The.Matrix.1999.1080p.BluRay.x264-GROUP",
		"Dune.Part.Two.2024.2160p.WEBRip.x265-RARBG",
		"Blade_Runner_(Director's_Cut)_1982_DVDRip",
		"Alien (1979) (Remastered)",
		"Heat.1995.PROPER.REPACK.720p.HDRip - YIFY",
		"Movie - Group 1080p",
		"Spider-Man.2002.1080p",
		"  lots   of    space  ",
		"__--__",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

// A title that itself ends in "-Word" loses that word on a second pass,
// because the release-group rule cannot tell "-Man" from "-RARBG".
func TestNormalize_HyphenatedTitleNotIdempotent(t *testing.T) {
	tests := []struct {
		input, once, twice string
	}{
		{"Spider-Man.1080p.BluRay.x264-RARBG", "Spider-Man", "Spider"},
		{"X-Men.REMUX-GRP", "X-Men", "X"},
	}

	for _, tt := range tests {
		once := Normalize(tt.input)
		assert.Equal(t, tt.once, once, "input %q", tt.input)
		assert.Equal(t, tt.twice, Normalize(once), "input %q", once)
	}
}

func TestStripYears(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Matrix 1999", "The Matrix"},
		{"Movie 2", "Movie"},
		{"Blade Runner 2049 1982", "Blade Runner"},
		{"Ocean's 11 2001", "Ocean's 11"},
		{"1917", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripYears(tt.input), "StripYears(%q)", tt.input)
	}
}

func TestHasDigit(t *testing.T) {
	assert.True(t, HasDigit("Movie 2"))
	assert.False(t, HasDigit("Movie"))
	assert.False(t, HasDigit(""))
}
