package workflow

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/samzong/gitai/internal/formatter"
	"github.com/samzong/gitai/internal/ui"
)

// Outcome is how a successful run ended.
type Outcome int

const (
	OutcomeNoChanges Outcome = iota
	OutcomeDiscarded
	OutcomeDryRun
	OutcomeCommitted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChanges:
		return "no changes"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeDryRun:
		return "dry run"
	case OutcomeCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Result describes a finished run. Output is git's commit stdout, set only
// when a commit was made.
type Result struct {
	Outcome Outcome
	Message string
	Output  string
}

// CommitOptions is the read-only run configuration.
type CommitOptions struct {
	Endpoint string
	Model    string
	Provider string
	Editor   string
	Verbose  bool
	DryRun   bool

	In        io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
	Logger    *zerolog.Logger
}

// CommitFlow runs the staged-diff → prompt → generate → review → commit pipeline.
type CommitFlow struct {
	git      GitClient
	llm      LLMClient
	opts     CommitOptions
	reviewer Reviewer
	log      zerolog.Logger
}

func NewCommitFlow(git GitClient, llm LLMClient, opts CommitOptions) *CommitFlow {
	if opts.OutWriter == nil {
		opts.OutWriter = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &CommitFlow{
		log:  log,
		git:  git,
		llm:  llm,
		opts: opts,
		reviewer: &InteractiveReviewer{
			In:  opts.In,
			Out: opts.OutWriter,
			Editor: &ExternalEditor{
				Command: opts.Editor,
				Stdin:   opts.In,
				Stdout:  opts.OutWriter,
				Stderr:  opts.ErrWriter,
			},
		},
	}
}

func (f *CommitFlow) SetReviewer(r Reviewer) {
	f.reviewer = r
}

// Run executes the workflow once. It stops early with a nil error when nothing
// is staged or the operator discards the message; every other stop is an error.
func (f *CommitFlow) Run(ctx context.Context) (Result, error) {
	f.logConfiguration()

	if err := f.git.CheckInstalled(); err != nil {
		return Result{}, err
	}
	if err := f.git.CheckRepository(); err != nil {
		return Result{}, err
	}

	diff, err := f.git.GetStagedDiff()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get git diff: %w", err)
	}
	if diff == "" {
		fmt.Fprintln(f.opts.OutWriter, "Staging is empty")
		return Result{Outcome: OutcomeNoChanges}, nil
	}

	prompt := formatter.BuildPrompt(diff)
	f.log.Debug().Msgf("Prompt: %s", prompt)

	message, err := f.generateCommitMessage(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	resolution, err := f.reviewer.Review(message)
	if err != nil {
		return Result{}, err
	}
	if resolution.Decision == DecisionDiscard {
		fmt.Fprintln(f.opts.ErrWriter, "Commit discarded")
		return Result{Outcome: OutcomeDiscarded, Message: message}, nil
	}

	return f.performCommit(resolution.Message)
}

func (f *CommitFlow) logConfiguration() {
	f.log.Debug().
		Str("endpoint", f.opts.Endpoint).
		Str("model", f.opts.Model).
		Str("provider", f.opts.Provider).
		Bool("verbose", f.opts.Verbose).
		Bool("dry_run", f.opts.DryRun).
		Msg("Configuration")
}

func (f *CommitFlow) generateCommitMessage(ctx context.Context, prompt string) (string, error) {
	sp := ui.NewSpinner(f.opts.ErrWriter, "Generating commit message...")
	sp.Start()
	message, err := f.llm.GenerateCommitMessage(ctx, prompt, f.opts.Model)
	sp.Stop()

	if err != nil {
		return "", fmt.Errorf("failed to generate commit message: %w", err)
	}
	return message, nil
}

func (f *CommitFlow) performCommit(message string) (Result, error) {
	f.log.Debug().Msgf("Committing with message %s", message)

	if f.opts.DryRun {
		fmt.Fprintln(f.opts.ErrWriter, "Dry run mode, no actual commit")
		return Result{Outcome: OutcomeDryRun, Message: message}, nil
	}

	output, err := f.git.Commit(message)
	if err != nil {
		return Result{}, fmt.Errorf("failed to commit changes: %w", err)
	}

	fmt.Fprint(f.opts.OutWriter, output)
	return Result{Outcome: OutcomeCommitted, Message: message, Output: output}, nil
}
