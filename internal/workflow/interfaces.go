// Package workflow provides the commit workflow orchestration logic.
package workflow

import "context"

// GitClient abstracts git operations for testability.
type GitClient interface {
	CheckInstalled() error
	CheckRepository() error
	GetStagedDiff() (string, error)
	Commit(message string) (string, error)
}

// LLMClient abstracts LLM operations for testability.
type LLMClient interface {
	GenerateCommitMessage(ctx context.Context, prompt string, model string) (string, error)
}

// Reviewer shows a generated message to the operator and resolves their decision.
type Reviewer interface {
	Review(message string) (Resolution, error)
}

// MessageEditor lets the operator rewrite a message.
type MessageEditor interface {
	Edit(message string) (string, error)
}
