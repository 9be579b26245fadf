package workflow

import (
	"context"
	"errors"
)

type fakeGit struct {
	installedErr error
	repoErr      error
	diff         string
	diffErr      error
	commitOutput string
	commitErr    error

	calls     []string
	committed []string
}

func (g *fakeGit) CheckInstalled() error {
	g.calls = append(g.calls, "installed")
	return g.installedErr
}

func (g *fakeGit) CheckRepository() error {
	g.calls = append(g.calls, "repository")
	return g.repoErr
}

func (g *fakeGit) GetStagedDiff() (string, error) {
	g.calls = append(g.calls, "diff")
	return g.diff, g.diffErr
}

func (g *fakeGit) Commit(message string) (string, error) {
	g.calls = append(g.calls, "commit")
	g.committed = append(g.committed, message)
	return g.commitOutput, g.commitErr
}

type fakeLLM struct {
	message string
	err     error

	prompts []string
	models  []string
}

func (l *fakeLLM) GenerateCommitMessage(_ context.Context, prompt string, model string) (string, error) {
	l.prompts = append(l.prompts, prompt)
	l.models = append(l.models, model)
	return l.message, l.err
}

type fakeEditor struct {
	edited string
	err    error

	received []string
}

func (e *fakeEditor) Edit(message string) (string, error) {
	e.received = append(e.received, message)
	return e.edited, e.err
}

var errBoom = errors.New("boom")
