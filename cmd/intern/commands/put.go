package commands

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.trai.ch/intern/internal/core/domain"
)

// putResult is one line of `put --json` output. An empty handle encodes as null.
type putResult struct {
	Value *domain.InternedString `json:"value"`
	Refs  int64                  `json:"refs"`
}

func (c *CLI) newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put VALUE...",
		Short: "Intern values and print their holder counts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}

			handles, err := c.app.Put(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				results := make([]putResult, len(handles))
				for i, h := range handles {
					results[i] = putResult{Value: h, Refs: h.RefCount()}
				}
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			for _, h := range handles {
				if h.IsEmpty() {
					_, _ = fmt.Fprintln(out, "(empty)\t0")
					continue
				}
				_, _ = fmt.Fprintf(out, "%s\t%d\n", h, h.RefCount())
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print results as JSON")
	return cmd
}
