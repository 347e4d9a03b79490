package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the reading topics or writing themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		writing, _ := cmd.Flags().GetBool("writing")
		out := cmd.OutOrStdout()
		if !writing {
			printEntries(out, "Reading topics", catalog.ReadingTopics())
			return nil
		}
		printEntries(out, "Integrated writing themes", catalog.WritingThemes(true))
		fmt.Fprintln(out)
		printEntries(out, "Independent writing themes", catalog.WritingThemes(false))
		return nil
	},
}

func printEntries(out io.Writer, heading string, entries []catalog.Entry) {
	fmt.Fprintf(out, "%s (%d)\n", heading, len(entries))
	last := ""
	for _, e := range entries {
		if e.Category != last {
			fmt.Fprintf(out, "\n  %s\n", e.Category)
			last = e.Category
		}
		fmt.Fprintf(out, "    - %s\n", e.Topic)
	}
}

func init() {
	topicsCmd.Flags().Bool("writing", false, "List writing themes instead of reading topics")
}
