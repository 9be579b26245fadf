package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samzong/gitai/internal/errs"
	"github.com/spf13/cobra"
)

const checkTimeout = 10 * time.Second

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that git, the repository and the model endpoint are usable",
	Long: `Run the preconditions of a commit without generating anything: git must be ` +
		`on PATH, the working directory must be inside a repository and the model ` +
		`endpoint must answer and serve the configured model.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gitClient, llmClient, _, err := newClients(cfg, checkTimeout)
	if err != nil {
		return err
	}

	out := outWriter()
	var firstErr error
	report := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(out, "%-10s FAIL  %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		fmt.Fprintf(out, "%-10s ok\n", name)
	}

	installedErr := gitClient.CheckInstalled()
	report("git", installedErr)
	if installedErr == nil {
		report("repository", gitClient.CheckRepository())
	}

	res, err := llmClient.Check(ctx, cfg.Model)
	if err != nil {
		report("endpoint", err)
		return firstErr
	}
	report("endpoint", nil)

	if !res.ModelPresent {
		report("model", errs.New(errs.GenerationFailure,
			fmt.Sprintf("model %q is not served by %s (available: %s)", cfg.Model, cfg.Endpoint, strings.Join(res.ModelNames, ", ")), nil))
		return firstErr
	}
	report("model", nil)
	return firstErr
}
