package sweep

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Answer is one interactive deletion decision.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerQuit
)

// Prompter collects interactive decisions. Ask drives the per-resource
// deletion walk; Confirm gates destructive bulk operations such as a
// non-empty bucket purge.
type Prompter interface {
	Ask(question string) Answer
	Confirm(question string) bool
}

// StdinPrompter reads answers line by line from standard input. An input
// error or EOF is treated as quit so an interrupted pipe cannot turn into
// an accidental "yes".
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdinPrompter() *StdinPrompter {
	return &StdinPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (p *StdinPrompter) Ask(question string) Answer {
	for {
		fmt.Fprint(p.out, question)
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return AnswerQuit
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return AnswerYes
		case "n", "no":
			return AnswerNo
		case "q", "quit":
			return AnswerQuit
		default:
			fmt.Fprintln(p.out, "  Please enter 'y', 'n', or 'q'.")
		}
	}
}

func (p *StdinPrompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "  %s [y/n]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
