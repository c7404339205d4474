package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "Amé...", Truncate("Amélie", 3))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(-1))
	assert.Equal(t, "1.5 kB", FormatBytes(1500))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0m", FormatDuration(2*time.Minute))
}

func TestCompactTable(t *testing.T) {
	var buf bytes.Buffer
	CompactTable(&buf, []string{"Result", "Files"}, [][]string{
		{"renamed", "2"},
		{"target exists"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Result"))
	assert.Contains(t, lines[2], "renamed")
	assert.True(t, strings.HasPrefix(lines[3], "target exists"))

	buf.Reset()
	CompactTable(&buf, nil, nil)
	assert.Empty(t, buf.String())
}

func TestSectionPlain(t *testing.T) {
	DisableColors()
	var buf bytes.Buffer
	Section(&buf, "Summary")
	assert.Equal(t, "\nSUMMARY\n=============\n", buf.String())
}
