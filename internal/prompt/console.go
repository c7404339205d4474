package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Nomadcxx/jellyrename/internal/tmdb"
	"github.com/Nomadcxx/jellyrename/internal/ui"
)

// ConsolePrompter asks with numbered lines on a plain terminal.
type ConsolePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *ConsolePrompter) Choose(candidates []tmdb.Candidate) (int, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Possible matches:")
	for i, c := range candidates {
		fmt.Fprintln(p.out, FormatCandidate(i+1, c))
		if c.Overview != "" {
			fmt.Fprintf(p.out, "    %s\n", ui.Dim(FormatOverview(c.Overview)))
		}
	}

	for {
		answer, err := p.ask("Select movie number or S to skip: ")
		if err != nil {
			return 0, err
		}
		if idx, ok := ParseChoice(answer, len(candidates)); ok {
			return idx, nil
		}
		fmt.Fprintln(p.out, ui.Warning("Invalid choice. Try again."))
	}
}

func (p *ConsolePrompter) Confirm(oldName, newName string) (bool, error) {
	answer, err := p.ask("Rename? [Y]es / [S]kip: ")
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// ask prints question and reads one line. A last line without a newline
// still counts as an answer.
func (p *ConsolePrompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, ui.Prompt(question))
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
