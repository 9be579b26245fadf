package cmd

import (
	"fmt"
	"strings"

	"github.com/samzong/gitai/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gitai configuration",
		Long: `Manage gitai configuration. Values are resolved from flags, GITAI_* ` +
			`environment variables, the config file and built-in defaults, in that order.`,
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigGet()
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Long: fmt.Sprintf("Persist a configuration value to the config file.\n\nKeys: %s",
			strings.Join(config.Keys(), ", ")),
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet() error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	view := *cfg
	view.APIKey = maskSecret(view.APIKey)
	data, err := yaml.Marshal(&view)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if path, err := config.ConfigFilePath(); err == nil {
		fmt.Fprintf(outWriter(), "# %s\n", path)
	}
	_, err = outWriter().Write(data)
	return err
}

func runConfigSet(key, value string) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}
	if !config.IsValidKey(key) {
		return fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(config.Keys(), ", "))
	}
	if err := validateValue(key, value); err != nil {
		return err
	}

	if err := config.SaveValue(key, value); err != nil {
		return err
	}

	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Fprintf(outWriter(), "Set %s in %s\n", key, path)
	return nil
}

// validateValue rejects values a later run could not use.
func validateValue(key, value string) error {
	probe := config.Config{Endpoint: config.DefaultEndpoint, Model: config.DefaultModel, Provider: config.DefaultProvider}
	switch key {
	case config.KeyEndpoint:
		probe.Endpoint = value
	case config.KeyModel:
		probe.Model = value
	case config.KeyProvider:
		probe.Provider = value
	default:
		return nil
	}
	return probe.Validate()
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "********"
	}
	return "****" + secret[len(secret)-4:]
}
