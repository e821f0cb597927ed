package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [PATH...]",
		Short: "Print every pooled value in byte order, optionally after loading files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.preload(cmd, args); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range c.app.Values() {
				_, _ = fmt.Fprintln(out, v)
			}
			return nil
		},
	}
}
