package workflow

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/samzong/gitai/internal/config"
	"github.com/samzong/gitai/internal/errs"
)

// ExternalEditor edits a message in the operator's editor through a temp file.
type ExternalEditor struct {
	// Command is the editor to run, e.g. "vim" or "code --wait". It is split
	// on whitespace. Empty means config.DefaultEditor.
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	TempDir string
}

// Edit writes message to a fresh temp file, blocks on the editor and returns
// the file's contents verbatim. The temp file is removed on every path.
func (e *ExternalEditor) Edit(message string) (string, error) {
	tmpFile, err := os.CreateTemp(e.TempDir, "gitai-commit-*.txt")
	if err != nil {
		return "", errs.New(errs.SubprocessFailure, "failed to create temporary file", err)
	}

	tmpFileName := tmpFile.Name()
	defer os.Remove(tmpFileName)

	if _, err := tmpFile.WriteString(message); err != nil {
		tmpFile.Close()
		return "", errs.New(errs.SubprocessFailure, "failed to write to temporary file", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", errs.New(errs.SubprocessFailure, "failed to write to temporary file", err)
	}

	editor := e.command()
	args := strings.Fields(editor)
	if len(args) == 0 {
		return "", errs.New(errs.SubprocessFailure, "no editor configured", nil)
	}
	cmd := exec.Command(args[0], append(args[1:], tmpFileName)...)
	cmd.Stdin = orDefault(e.Stdin, os.Stdin)
	cmd.Stdout = orDefaultWriter(e.Stdout, os.Stdout)
	cmd.Stderr = orDefaultWriter(e.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		return "", errs.New(errs.SubprocessFailure, fmt.Sprintf("failed to run editor %q", editor), err)
	}

	edited, err := os.ReadFile(tmpFileName)
	if err != nil {
		return "", errs.New(errs.SubprocessFailure, "failed to read edited message", err)
	}
	return string(edited), nil
}

func (e *ExternalEditor) command() string {
	if strings.TrimSpace(e.Command) != "" {
		return e.Command
	}
	return config.DefaultEditor
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
