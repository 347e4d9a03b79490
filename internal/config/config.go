// Package config resolves settings from flags, the environment, a .env
// file and an optional examtrainer.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/prompts"
	"github.com/abhisek/examtrainer/internal/telemetry"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "EXAMTRAINER"

// Config is the resolved application configuration.
type Config struct {
	LLM       llm.Config
	Prompts   prompts.Config
	Telemetry telemetry.Config

	// EventsDB is the event log file; empty keeps the log in memory.
	EventsDB string

	LogFile   string
	LogLevel  string
	LogFormat string
}

// RegisterFlags adds the shared configuration flags to cmd.
func RegisterFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "", "Config file (default: examtrainer.yaml in ., $XDG_CONFIG_HOME/examtrainer)")
	f.String("provider", "", "LLM provider (gemini, openai, anthropic, openrouter, mock)")
	f.String("model", "", "Model name for the selected provider")
	f.String("gemini-api-key", "", "Gemini API key (or GEMINI_API_KEY)")
	f.String("openai-api-key", "", "OpenAI API key (or OPENAI_API_KEY)")
	f.String("openai-base-url", "", "Base URL for OpenAI-compatible APIs")
	f.String("anthropic-api-key", "", "Anthropic API key (or ANTHROPIC_API_KEY)")
	f.String("openrouter-api-key", "", "OpenRouter API key (or OPENROUTER_API_KEY)")
	f.Int("max-tokens", prompts.DefaultConfig().MaxTokens, "Maximum tokens per generation")
	f.String("events-db", "", "Write the LLM event log to this SQLite file (\"auto\" for the default location)")
	f.String("log-file", "", "Write logs to this file (default: discarded)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	f.Bool("telemetry-enabled", false, "Export traces over OTLP/HTTP")
	f.String("telemetry-endpoint", telemetry.DefaultConfig().Endpoint, "OTLP/HTTP collector endpoint")
}

// LoadDotEnv loads variables from a .env file in the working directory.
// Variables already set in the environment win. A missing file is fine.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("error reading .env", "error", err)
	}
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("examtrainer")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "examtrainer"))
		}
		v.AddConfigPath("$HOME/.config/examtrainer")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v, nil
}

// Load resolves the configuration for cmd. Provider keys found in the
// standard variables (GEMINI_API_KEY and friends) are used unless a flag,
// EXAMTRAINER_* variable or config entry overrides them.
func Load(cmd *cobra.Command, version string) (Config, error) {
	LoadDotEnv()
	v, err := viperForCmd(cmd)
	if err != nil {
		return Config{}, err
	}

	llmCfg := llm.DefaultConfig()
	if discovered, ok := llm.DiscoverConfig(); ok {
		llmCfg = discovered
	}
	if p := strings.ToLower(strings.TrimSpace(v.GetString("provider"))); p != "" {
		llmCfg.Provider = p
	}
	setIfNotEmpty(&llmCfg.Gemini.APIKey, v.GetString("gemini-api-key"))
	setIfNotEmpty(&llmCfg.OpenAI.APIKey, v.GetString("openai-api-key"))
	setIfNotEmpty(&llmCfg.OpenAI.BaseURL, v.GetString("openai-base-url"))
	setIfNotEmpty(&llmCfg.Anthropic.APIKey, v.GetString("anthropic-api-key"))
	setIfNotEmpty(&llmCfg.OpenRouter.APIKey, v.GetString("openrouter-api-key"))

	if model := v.GetString("model"); model != "" {
		switch llmCfg.Provider {
		case "gemini":
			llmCfg.Gemini.Model = model
		case "openai":
			llmCfg.OpenAI.Model = model
		case "anthropic":
			llmCfg.Anthropic.Model = model
		case "openrouter":
			llmCfg.OpenRouter.Model = model
		}
	}

	promptCfg := prompts.DefaultConfig()
	if n := v.GetInt("max-tokens"); n > 0 {
		promptCfg.MaxTokens = n
	}

	telCfg := telemetry.DefaultConfig()
	telCfg.Enabled = v.GetBool("telemetry-enabled")
	setIfNotEmpty(&telCfg.Endpoint, v.GetString("telemetry-endpoint"))
	setIfNotEmpty(&telCfg.Version, version)

	return Config{
		LLM:       llmCfg,
		Prompts:   promptCfg,
		Telemetry: telCfg,
		EventsDB:  v.GetString("events-db"),
		LogFile:   v.GetString("log-file"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}, nil
}

func setIfNotEmpty(dst *string, val string) {
	if val = strings.TrimSpace(val); val != "" {
		*dst = val
	}
}
