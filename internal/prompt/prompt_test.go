package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/jellyrename/internal/tmdb"
)

var testCandidates = []tmdb.Candidate{
	{Title: "The Matrix", ReleaseYear: "1999", ReleaseDate: "1999-03-30", Overview: strings.Repeat("x", 150)},
	{Title: "The Matrix Reloaded", ReleaseYear: "2003", ReleaseDate: "2003-05-15"},
	{Title: "The Matrix Revolutions", ReleaseYear: "2003", ReleaseDate: "2003-11-05", Overview: "short"},
}

type fixedPrompter struct {
	choice int
	calls  int
}

func (f *fixedPrompter) Choose([]tmdb.Candidate) (int, error) {
	f.calls++
	return f.choice, nil
}

func (f *fixedPrompter) Confirm(string, string) (bool, error) {
	return false, nil
}

func TestSelect(t *testing.T) {
	t.Run("empty does not prompt", func(t *testing.T) {
		p := &fixedPrompter{choice: 1}
		got, err := Select(p, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 0, p.calls)
	})

	t.Run("skip", func(t *testing.T) {
		got, err := Select(&fixedPrompter{choice: 0}, testCandidates)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("index is one-based", func(t *testing.T) {
		got, err := Select(&fixedPrompter{choice: 2}, testCandidates)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "The Matrix Reloaded", got.Title)
	})

	t.Run("out of range is a skip", func(t *testing.T) {
		got, err := Select(&fixedPrompter{choice: 9}, testCandidates)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input  string
		wantIx int
		wantOK bool
	}{
		{"s", 0, true},
		{" S ", 0, true},
		{"1", 1, true},
		{"3", 3, true},
		{"03", 3, true},
		{"0", 0, false},
		{"4", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"skip", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			idx, ok := ParseChoice(tt.input, 3)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIx, idx)
		})
	}
}

func TestIsYes(t *testing.T) {
	assert.True(t, IsYes("y"))
	assert.True(t, IsYes(" Y\n"))
	assert.False(t, IsYes("yes"))
	assert.False(t, IsYes(""))
	assert.False(t, IsYes("n"))
	assert.False(t, IsYes("s"))
}

func TestFormatCandidate(t *testing.T) {
	assert.Equal(t, "2) The Matrix Reloaded (2003)", FormatCandidate(2, testCandidates[1]))
	assert.Equal(t, "1) Unknown (????)", FormatCandidate(1, tmdb.Candidate{Title: "Unknown", ReleaseYear: "????"}))
}

func TestFormatOverview(t *testing.T) {
	assert.Equal(t, "short", FormatOverview("short"))
	assert.Equal(t, strings.Repeat("x", 100), FormatOverview(strings.Repeat("x", 100)))
	assert.Equal(t, strings.Repeat("x", 100)+"...", FormatOverview(strings.Repeat("x", 101)))
	assert.Equal(t, strings.Repeat("é", 100)+"...", FormatOverview(strings.Repeat("é", 120)))
}

func TestConsolePrompter_Choose(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("x\n0\n7\n2\n"), &out)

	idx, err := p.Choose(testCandidates)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	text := out.String()
	assert.Contains(t, text, "Possible matches:")
	assert.Contains(t, text, "1) The Matrix (1999)")
	assert.Contains(t, text, "    "+strings.Repeat("x", 100)+"...")
	assert.Contains(t, text, "3) The Matrix Revolutions (2003)")
	assert.Equal(t, 3, strings.Count(text, "Invalid choice. Try again."))
	assert.Equal(t, 4, strings.Count(text, "Select movie number or S to skip: "))
}

func TestConsolePrompter_ChooseSkip(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader("S\n"), &bytes.Buffer{})
	idx, err := p.Choose(testCandidates)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestConsolePrompter_ChooseEOF(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader("bogus\n"), &bytes.Buffer{})
	_, err := p.Choose(testCandidates)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestConsolePrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"yes\n", false},
		{"garbage\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewConsolePrompter(strings.NewReader(tt.input), &out)
			got, err := p.Confirm("a.mkv", "A (2000).mkv")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, strings.Count(out.String(), "Rename? [Y]es / [S]kip: "), "no re-prompt")
		})
	}
}

func TestConsolePrompter_SharedReader(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader("1\ny\n"), &bytes.Buffer{})

	idx, err := p.Choose(testCandidates)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	ok, err := p.Confirm("old", "new")
	require.NoError(t, err)
	assert.True(t, ok)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sendKeys(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestPickerModel(t *testing.T) {
	t.Run("arrows and enter", func(t *testing.T) {
		m := sendKeys(newPickerModel(testCandidates),
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyUp},
			tea.KeyMsg{Type: tea.KeyEnter},
		).(pickerModel)
		assert.True(t, m.done)
		assert.Equal(t, 2, m.choice)
	})

	t.Run("vim keys", func(t *testing.T) {
		m := sendKeys(newPickerModel(testCandidates), runeKey("k"), runeKey("j"), tea.KeyMsg{Type: tea.KeyEnter}).(pickerModel)
		assert.Equal(t, 2, m.choice)
	})

	t.Run("number picks directly", func(t *testing.T) {
		m, cmd := newPickerModel(testCandidates).Update(runeKey("3"))
		assert.Equal(t, 3, m.(pickerModel).choice)
		assert.NotNil(t, cmd)
	})

	t.Run("number out of range ignored", func(t *testing.T) {
		m := sendKeys(newPickerModel(testCandidates), runeKey("9")).(pickerModel)
		assert.False(t, m.done)
	})

	t.Run("skip", func(t *testing.T) {
		m := sendKeys(newPickerModel(testCandidates), tea.KeyMsg{Type: tea.KeyDown}, runeKey("s")).(pickerModel)
		assert.True(t, m.done)
		assert.Equal(t, 0, m.choice)
		assert.False(t, m.quit)
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		m := sendKeys(newPickerModel(testCandidates), tea.KeyMsg{Type: tea.KeyCtrlC}).(pickerModel)
		assert.True(t, m.quit)
	})

	t.Run("view", func(t *testing.T) {
		view := newPickerModel(testCandidates).View()
		assert.Contains(t, view, "> 1) The Matrix (1999)")
		assert.Contains(t, view, "2) The Matrix Reloaded (2003)")
		assert.Contains(t, view, strings.Repeat("x", 100)+"...")
		assert.Contains(t, view, "skip")
	})
}

func TestConfirmModel(t *testing.T) {
	m := sendKeys(confirmModel{oldName: "a", newName: "b"}, runeKey("y")).(confirmModel)
	assert.True(t, m.accepted)

	m = sendKeys(confirmModel{oldName: "a", newName: "b"}, runeKey("n")).(confirmModel)
	assert.False(t, m.accepted)
	assert.True(t, m.done)

	m = sendKeys(confirmModel{oldName: "a", newName: "b"}, tea.KeyMsg{Type: tea.KeyEnter}).(confirmModel)
	assert.False(t, m.accepted)

	m = sendKeys(confirmModel{}, tea.KeyMsg{Type: tea.KeyCtrlC}).(confirmModel)
	assert.True(t, m.quit)

	view := confirmModel{oldName: "a.mkv", newName: "A (2000).mkv"}.View()
	assert.Contains(t, view, "Old: a.mkv")
	assert.Contains(t, view, "New: A (2000).mkv")
}
