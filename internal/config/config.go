// Package config resolves settings from command-line flags, the environment,
// an optional YAML file and a .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. AI_PDF2DOCX_MODEL.
const EnvPrefix = "AI_PDF2DOCX"

// Defaults shared by the flag definitions and viper.
const (
	DefaultLocation  = "us-central1"
	DefaultModel     = "gemini-1.5-pro-001"
	DefaultBackend   = BackendVertex
	DefaultRetries   = 3
	MaxRetries       = 10
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Analyzer backends.
const (
	BackendVertex = "vertex"
	BackendGenAI  = "genai"
)

// Settings is the resolved configuration for one command run. Keys match the
// flag names.
type Settings struct {
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	ProjectID       string `mapstructure:"project_id"`
	Location        string `mapstructure:"location"`
	Model           string `mapstructure:"model"`
	Delay           int    `mapstructure:"delay"`
	Backend         string `mapstructure:"backend"`
	APIKey          string `mapstructure:"api_key"`
	CredentialsFile string `mapstructure:"credentials"`
	Retries         int    `mapstructure:"retries"`
	StrictPDF       bool   `mapstructure:"strict-pdf"`
	SkipPreflight   bool   `mapstructure:"skip-preflight"`

	Workers   int    `mapstructure:"workers"`
	Overwrite bool   `mapstructure:"overwrite"`
	DryRun    bool   `mapstructure:"dry-run"`
	Report    string `mapstructure:"report"`

	// ConfigFile is the file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// LoadDotEnv loads ./.env when present. Existing variables win. A missing
// file is not an error; an unreadable or malformed one is.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load resolves Settings for a command whose flags have been parsed.
// configFile, when non-empty, must exist; otherwise ai-pdf2docx.yaml is
// looked up in the working directory and in ~/.config/ai-pdf2docx.
func Load(flags *pflag.FlagSet, configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ai-pdf2docx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ai-pdf2docx"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}
	if err := v.BindEnv("project_id", EnvPrefix+"_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"); err != nil {
		return nil, fmt.Errorf("bind project env: %w", err)
	}
	if err := v.BindEnv("credentials", EnvPrefix+"_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		return nil, fmt.Errorf("bind credentials env: %w", err)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	s.ConfigFile = v.ConfigFileUsed()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("log-format", DefaultLogFormat)
	v.SetDefault("location", DefaultLocation)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("delay", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("overwrite", false)
	v.SetDefault("dry-run", false)
	v.SetDefault("strict-pdf", false)
	v.SetDefault("skip-preflight", false)
}

// Validate checks value ranges. Requirements that depend on the subcommand,
// such as the project ID, are left to the command.
func (s *Settings) Validate() error {
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", s.LogLevel)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", s.LogFormat)
	}
	if s.Backend != BackendVertex && s.Backend != BackendGenAI {
		return fmt.Errorf("invalid backend: %s (must be '%s' or '%s')", s.Backend, BackendVertex, BackendGenAI)
	}
	if s.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got: %d", s.Delay)
	}
	if s.Retries < 0 || s.Retries > MaxRetries {
		return fmt.Errorf("retries must be between 0 and %d, got: %d", MaxRetries, s.Retries)
	}
	if s.StrictPDF && s.SkipPreflight {
		return fmt.Errorf("strict-pdf and skip-preflight cannot be combined")
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got: %d", s.Workers)
	}
	return nil
}
