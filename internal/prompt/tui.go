package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nomadcxx/jellyrename/internal/tmdb"
	"github.com/Nomadcxx/jellyrename/internal/ui"
)

// ErrInterrupted is returned when the user quits the picker with ctrl+c.
var ErrInterrupted = errors.New("interrupted by user")

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Pick key.Binding
	Skip key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pick, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var pickerKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Pick: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter/1-8", "select"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s", "S", "esc"),
		key.WithHelp("s", "skip"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// pickerModel is the full-screen candidate list.
type pickerModel struct {
	candidates []tmdb.Candidate
	cursor     int
	choice     int
	done       bool
	quit       bool
	keys       keyMap
	help       help.Model
}

func newPickerModel(candidates []tmdb.Candidate) pickerModel {
	return pickerModel{
		candidates: candidates,
		keys:       pickerKeys,
		help:       help.New(),
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.choice = 0
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Pick):
			m.choice = m.cursor + 1
			m.done = true
			return m, tea.Quit
		default:
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.candidates) {
				m.choice = n
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("Possible matches:\n\n")
	for i, c := range m.candidates {
		marker := "  "
		if i == m.cursor {
			marker = ui.Cursor("> ")
		}
		b.WriteString(marker + FormatCandidate(i+1, c) + "\n")
		if i == m.cursor && c.Overview != "" {
			b.WriteString("     " + ui.Dim(FormatOverview(c.Overview)) + "\n")
		}
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// confirmModel asks a single y/anything-else question.
type confirmModel struct {
	oldName  string
	newName  string
	accepted bool
	done     bool
	quit     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, pickerKeys.Quit) {
		m.quit = true
	} else {
		m.accepted = IsYes(keyMsg.String())
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n%s %s\n\n%s\n",
		ui.Dim("Old:"), ui.Path(m.oldName),
		ui.Dim("New:"), ui.Path(m.newName),
		ui.Prompt("Rename? [y]es / any other key to skip"))
}

// TUIPrompter asks with an arrow-key picker. It needs a terminal on in.
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewTUIPrompter(in io.Reader, out io.Writer) *TUIPrompter {
	return &TUIPrompter{in: in, out: out}
}

func (p *TUIPrompter) Choose(candidates []tmdb.Candidate) (int, error) {
	final, err := p.run(newPickerModel(candidates))
	if err != nil {
		return 0, err
	}
	m := final.(pickerModel)
	if m.quit {
		return 0, ErrInterrupted
	}
	return m.choice, nil
}

func (p *TUIPrompter) Confirm(oldName, newName string) (bool, error) {
	final, err := p.run(confirmModel{oldName: oldName, newName: newName})
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.quit {
		return false, ErrInterrupted
	}
	return m.accepted, nil
}

func (p *TUIPrompter) run(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}
