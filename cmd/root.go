package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/samzong/gitai/internal/config"
	"github.com/samzong/gitai/internal/errs"
	"github.com/samzong/gitai/internal/git"
	"github.com/samzong/gitai/internal/llm"
	"github.com/samzong/gitai/internal/logging"
	"github.com/samzong/gitai/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	endpoint  string
	model     string
	provider  string
	verbose   bool
	dryRun    bool
	configErr error
	rootCmd   = &cobra.Command{
		Use:   "gitai",
		Short: "gitai - AI-generated git commit messages",
		Long: `gitai reads the staged changes of the current git repository, asks a ` +
			`language model for a one-line commit message and lets you commit, edit or discard it.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd.Context(), cmd.InOrStdin())
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// ExecuteContext runs the root command with ctx, which is cancelled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RootCmd exposes the command tree for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Configuration file path (default is $XDG_CONFIG_HOME/gitai/config.yaml)")
	flags.StringVarP(&endpoint, "endpoint", "s", config.DefaultEndpoint, "Model server endpoint")
	flags.StringVarP(&model, "model", "m", config.DefaultModel, "Model used to generate the commit message")
	flags.StringVar(&provider, "provider", config.DefaultProvider, "Model server API (ollama or openai)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print configuration, prompt and git commands to stderr")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate and review the message, do not commit")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
	if configErr != nil {
		return
	}
	configErr = bindFlags(rootCmd)
}

func bindFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		config.KeyEndpoint: "endpoint",
		config.KeyModel:    "model",
		config.KeyProvider: "provider",
	}
	for key, name := range bindings {
		if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig returns the effective, validated configuration.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func newClients(cfg *config.Config, timeout time.Duration) (*git.Client, *llm.Client, *zerolog.Logger, error) {
	logger := logging.New(errWriter(), verbose)

	gitClient := git.NewClient(git.Options{Logger: &logger})
	llmClient, err := llm.NewClient(llm.Options{
		Provider: cfg.Provider,
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		Timeout:  timeout,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	return gitClient, llmClient, &logger, nil
}

func runCommit(ctx context.Context, in io.Reader) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gitClient, llmClient, logger, err := newClients(cfg, 0)
	if err != nil {
		return err
	}

	flow := workflow.NewCommitFlow(gitClient, llmClient, workflow.CommitOptions{
		Endpoint:  cfg.Endpoint,
		Model:     cfg.Model,
		Provider:  cfg.Provider,
		Editor:    cfg.Editor,
		Verbose:   verbose,
		DryRun:    dryRun,
		In:        in,
		OutWriter: outWriter(),
		ErrWriter: errWriter(),
		Logger:    logger,
	})

	if _, err := flow.Run(ctx); err != nil {
		logger.Debug().Str("kind", errs.KindOf(err).String()).Msg("Run failed")
		return err
	}
	return nil
}
