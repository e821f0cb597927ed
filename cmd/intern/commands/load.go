package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/intern/internal/app"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load PATH...",
		Short: "Intern every line of the given files and directories",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			workers, _ := cmd.Flags().GetInt("workers")
			hold, _ := cmd.Flags().GetBool("hold")

			report, err := c.app.Load(cmd.Context(), args, app.LoadOptions{
				Workers: workers,
				Hold:    hold,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "loaded %d lines from %d files (%d new)\n", report.Lines, report.Files, report.Inserted)
			writeStats(out, c.app.Stats())
			return nil
		},
	}
	cmd.Flags().IntP("workers", "w", 0, "Number of files read concurrently (0 uses the configured default)")
	cmd.Flags().Bool("hold", false, "Keep every loaded value referenced so collection cannot reclaim it")
	return cmd
}
