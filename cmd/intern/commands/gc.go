package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc [PATH...]",
		Short: "Force a collection pass, optionally after loading files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.preload(cmd, args); err != nil {
				return err
			}

			reclaimed := c.app.Collect(cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reclaimed %d entries, %d remain\n", reclaimed, c.app.Stats().Entries)
			return nil
		},
	}
}
