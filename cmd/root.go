package cmd

import (
	"errors"

	"github.com/abhisek/examtrainer/internal/config"
	"github.com/abhisek/examtrainer/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examtrainer",
	Short: "TOEFL reading and writing practice in the terminal",
	Long: `examtrainer generates TOEFL-style reading passages, comprehension
questions and writing tasks with an LLM, times each activity, scores the
answers and reviews submitted essays.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// errNoEventLog is returned by the llm commands when no log file is set.
var errNoEventLog = errors.New("no event log configured: pass --events-db <path|auto>")

// eventsDBPath maps the configured events-db value to a file path. The
// value "auto" selects the default XDG location; empty means the log is
// kept in memory and "" is returned.
func eventsDBPath(value string) (string, error) {
	switch value {
	case "":
		return "", nil
	case "auto":
		return store.DefaultDBPath()
	default:
		return value, store.EnsureDir(value)
	}
}

// resolveDBPath returns the event log file for the llm commands.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := config.Load(cmd, version)
	if err != nil {
		return "", err
	}
	p, err := eventsDBPath(cfg.EventsDB)
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", errNoEventLog
	}
	return p, nil
}
