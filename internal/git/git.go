// Package git wraps the git executable: availability and repository checks,
// staged diff retrieval and committing.
package git

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/samzong/gitai/internal/errs"
	"github.com/samzong/gitai/internal/gitcmd"
	"github.com/samzong/gitai/internal/gitutil"
)

// Options configures a Client.
type Options struct {
	// Binary overrides the git executable name. Defaults to "git".
	Binary string
	// Dir is the working directory commands run in. Defaults to the process cwd.
	Dir    string
	Logger *zerolog.Logger
}

// Client runs git subcommands through a gitcmd.Runner.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		runner: gitcmd.Runner{
			Binary: opts.Binary,
			Dir:    opts.Dir,
			Logger: logger,
		},
	}
}

// CheckInstalled verifies the git executable resolves on PATH.
func (c *Client) CheckInstalled() error {
	path, err := c.runner.LookPath()
	if err != nil {
		return errs.New(errs.ToolMissing, "git is not installed", err)
	}
	c.runner.Logger.Debug().Str("path", path).Msg("Found git executable")
	return nil
}

// CheckRepository verifies the working directory is inside a git repository.
func (c *Client) CheckRepository() error {
	result, err := c.runner.Run("status")
	if err != nil {
		return gitutil.WrapGitError(errs.NoRepository, "no git repository found", result, err)
	}
	return nil
}

// GetStagedDiff returns the unified diff of staged changes.
// An empty string with a nil error means nothing is staged.
func (c *Client) GetStagedDiff() (string, error) {
	result, err := c.runner.Run("diff", "--staged")
	if err != nil {
		return "", gitutil.WrapGitError(errs.SubprocessFailure, "git diff --staged failed", result, err)
	}
	if !utf8.Valid(result.Stdout) {
		return "", errs.New(errs.EncodingFailure, "staged diff is not valid UTF-8 text", nil)
	}
	return result.StdoutString(false), nil
}

// Commit records the staged changes with message passed as a single -m argument
// and returns git's stdout. Invalid UTF-8 in the output is replaced rather than
// reported, since the commit has already been recorded.
func (c *Client) Commit(message string) (string, error) {
	result, err := c.runner.Run("commit", "-m", message)
	if err != nil {
		return "", gitutil.WrapGitError(errs.SubprocessFailure, "git commit failed", result, err)
	}
	return strings.ToValidUTF8(result.StdoutString(false), "\uFFFD"), nil
}
