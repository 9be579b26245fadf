package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings of a gitai run. Values are resolved once at
// startup (flags > environment > config file > defaults) and never change
// during the run.
type Config struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string `mapstructure:"model" yaml:"model"`
	Provider string `mapstructure:"provider" yaml:"provider"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Editor   string `mapstructure:"editor" yaml:"editor"`
}

const (
	DefaultEndpoint   = "http://localhost:11434"
	DefaultModel      = "llama3.2"
	DefaultProvider   = ProviderOllama
	DefaultEditor     = "vi"
	DefaultConfigName = "config"
	DefaultConfigDir  = "gitai"
	EnvPrefix         = "GITAI"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

const (
	KeyEndpoint = "endpoint"
	KeyModel    = "model"
	KeyProvider = "provider"
	KeyAPIKey   = "api_key"
	KeyEditor   = "editor"
)

var (
	keys      = []string{KeyEndpoint, KeyModel, KeyProvider, KeyAPIKey, KeyEditor}
	providers = []string{ProviderOllama, ProviderOpenAI}
)

// InitConfig wires defaults, environment variables and the optional config
// file into viper. A missing config file is not an error.
func InitConfig(cfgFile string) error {
	viper.SetDefault(KeyEndpoint, DefaultEndpoint)
	viper.SetDefault(KeyModel, DefaultModel)
	viper.SetDefault(KeyProvider, DefaultProvider)
	viper.SetDefault(KeyAPIKey, "")
	viper.SetDefault(KeyEditor, DefaultEditor)

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	// GITAI_EDITOR takes precedence over the conventional EDITOR.
	if err := viper.BindEnv(KeyEditor, EnvPrefix+"_EDITOR", "EDITOR"); err != nil {
		return fmt.Errorf("failed to bind EDITOR: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// GetConfig returns the effective configuration.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used for a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint must not be empty")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model must not be empty")
	}
	if !IsValidProvider(c.Provider) {
		return fmt.Errorf("unknown provider %q (supported: %s)", c.Provider, strings.Join(providers, ", "))
	}
	return nil
}

// IsValidKey reports whether key can be persisted with SaveValue.
func IsValidKey(key string) bool {
	return slices.Contains(keys, key)
}

// Keys returns the configurable keys.
func Keys() []string {
	return slices.Clone(keys)
}

func IsValidProvider(provider string) bool {
	return slices.Contains(providers, provider)
}

// ConfigFilePath returns the config file in use, or the default location.
func ConfigFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigName+".yaml"), nil
}

// SaveValue persists a single key to the config file, leaving values that
// came from the environment or flags out of the file.
func SaveValue(key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(keys, ", "))
	}

	path, err := ConfigFilePath()
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	file.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}

	viper.Set(key, value)
	return nil
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, DefaultConfigDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", DefaultConfigDir), nil
}
