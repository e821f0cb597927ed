// Package main is the entry point for the intern tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/intern/cmd/intern/commands"
	"go.trai.ch/intern/internal/app"
	_ "go.trai.ch/intern/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// Close even when the command failed.
	err = cli.Execute(ctx)
	if closeErr := components.App.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
