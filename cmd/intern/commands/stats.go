package commands

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.trai.ch/intern/internal/core/domain"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [PATH...]",
		Short: "Print pool statistics, optionally after loading files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.preload(cmd, args); err != nil {
				return err
			}

			stats := c.app.Stats()
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			writeStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print statistics as JSON")
	return cmd
}

func writeStats(w io.Writer, s domain.PoolStats) {
	_, _ = fmt.Fprintf(w, "entries:      %d\n", s.Entries)
	_, _ = fmt.Fprintf(w, "hits:         %d\n", s.Hits)
	_, _ = fmt.Fprintf(w, "misses:       %d\n", s.Misses)
	_, _ = fmt.Fprintf(w, "hit rate:     %.1f%%\n", s.HitRate()*100)
	_, _ = fmt.Fprintf(w, "collections:  %d\n", s.Collections)
	_, _ = fmt.Fprintf(w, "reclaimed:    %d\n", s.Reclaimed)
	_, _ = fmt.Fprintf(w, "digest:       %s\n", s.Digest)
}
