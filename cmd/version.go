package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the bundled content catalog size",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "examtrainer %s%s\n", version, revision())
		if short, _ := cmd.Flags().GetBool("short"); short {
			return nil
		}
		fmt.Fprintf(out, "  reading topics:             %d\n", len(catalog.ReadingTopics()))
		fmt.Fprintf(out, "  integrated writing themes:  %d\n", len(catalog.WritingThemes(true)))
		fmt.Fprintf(out, "  independent writing themes: %d\n", len(catalog.WritingThemes(false)))
		return nil
	},
}

// revision returns " (<commit>)" from the embedded VCS stamp, if any.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return " (" + s.Value[:7] + ")"
		}
	}
	return ""
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version line")
}
