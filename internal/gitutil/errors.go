package gitutil

import (
	"strings"

	"github.com/samzong/gitai/internal/errs"
	"github.com/samzong/gitai/internal/gitcmd"
)

// WrapGitError builds a kinded error whose message prefers git's diagnostic output.
// git prints some failures (e.g. "nothing to commit") on stdout, so stdout is used
// when stderr is empty.
func WrapGitError(kind errs.Kind, action string, result gitcmd.Result, err error) error {
	msg := result.StderrString(true)
	if msg == "" {
		msg = result.StdoutString(true)
	}
	if msg != "" {
		return errs.New(kind, action+": "+firstLines(msg, 5), err)
	}
	return errs.New(kind, action, err)
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = append(lines[:n], "...")
	}
	return strings.Join(lines, "\n")
}
