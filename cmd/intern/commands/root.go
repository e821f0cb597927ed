// Package commands implements the CLI commands for the intern tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/intern/internal/adapters/config"
	"go.trai.ch/intern/internal/app"
	"go.trai.ch/intern/internal/build"
	"go.trai.ch/intern/internal/core/domain"
)

// CLI represents the command line interface for intern.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Open(configPath string, jsonLogs bool) error
	Put(ctx context.Context, values []string) ([]*domain.InternedString, error)
	Load(ctx context.Context, paths []string, opts app.LoadOptions) (domain.LoadReport, error)
	Collect(ctx context.Context) int
	Stats() domain.PoolStats
	Values() []string
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "intern",
		Short:         "Inspect and exercise a reference-counted string pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to configuration file")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.open

	rootCmd.AddCommand(c.newPutCmd())
	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newGCCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newDumpCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) open(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	return c.app.Open(path, jsonLogs)
}

// preload interns the given files before a read-only command runs.
func (c *CLI) preload(cmd *cobra.Command, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := c.app.Load(cmd.Context(), paths, app.LoadOptions{})
	return err
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
