package workflow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samzong/gitai/internal/errs"
	"github.com/samzong/gitai/internal/ui"
)

// Decision is the operator's answer to a presented message.
type Decision int

const (
	DecisionInvalid Decision = iota
	DecisionCommit
	DecisionEdit
	DecisionDiscard
)

func (d Decision) String() string {
	switch d {
	case DecisionCommit:
		return "commit"
	case DecisionEdit:
		return "edit"
	case DecisionDiscard:
		return "discard"
	default:
		return "invalid"
	}
}

// Resolution is the final result of a review: commit Message, or discard.
type Resolution struct {
	Decision Decision
	Message  string
}

// ParseDecision maps one line of input to a Decision. At most one trailing
// line terminator is removed; nothing else is trimmed.
func ParseDecision(line string) Decision {
	switch strings.ToLower(stripLineTerminator(line)) {
	case "c":
		return DecisionCommit
	case "e":
		return DecisionEdit
	case "d":
		return DecisionDiscard
	default:
		return DecisionInvalid
	}
}

func stripLineTerminator(s string) string {
	if trimmed, ok := strings.CutSuffix(s, "\r\n"); ok {
		return trimmed
	}
	if trimmed, ok := strings.CutSuffix(s, "\n"); ok {
		return trimmed
	}
	return s
}

// InteractiveReviewer presents the message on Out and reads one decision
// line from In. An edit is a single pass: the edited text is committed
// without being presented again.
type InteractiveReviewer struct {
	In     io.Reader
	Out    io.Writer
	Editor MessageEditor

	reader *bufio.Reader
}

func (r *InteractiveReviewer) Review(message string) (Resolution, error) {
	out := orDefaultWriter(r.Out, os.Stdout)

	if err := ui.Frame(out, "Commit message", message); err != nil {
		return Resolution{}, fmt.Errorf("failed to display commit message: %w", err)
	}
	fmt.Fprintln(out, "Proceed? (c)ommit, (e)dit, (d)iscard")

	line, err := r.readLine()
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to read user input: %w", err)
	}

	switch ParseDecision(line) {
	case DecisionCommit:
		return Resolution{Decision: DecisionCommit, Message: message}, nil
	case DecisionDiscard:
		return Resolution{Decision: DecisionDiscard}, nil
	case DecisionEdit:
		fmt.Fprintln(out, "Editing commit message")
		edited, err := r.editor().Edit(message)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Decision: DecisionCommit, Message: edited}, nil
	default:
		return Resolution{}, errs.New(errs.InvalidChoice,
			fmt.Sprintf("invalid option selected: %q", stripLineTerminator(line)), nil)
	}
}

// readLine returns one line including its terminator. EOF before a
// terminator yields whatever was read, which is then judged like any input.
func (r *InteractiveReviewer) readLine() (string, error) {
	if r.reader == nil {
		r.reader = bufio.NewReader(orDefault(r.In, os.Stdin))
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

func (r *InteractiveReviewer) editor() MessageEditor {
	if r.Editor == nil {
		return &ExternalEditor{}
	}
	return r.Editor
}
