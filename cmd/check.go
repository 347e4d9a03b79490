package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM provider with one short request",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s\nModel:    %s\n", d.cfg.LLM.Provider, d.client.ModelID())
		if err := d.client.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}
