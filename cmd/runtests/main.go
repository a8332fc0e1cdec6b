package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"runtests/internal/cli"
	"runtests/internal/cli/commands"
	"runtests/internal/config"
	"runtests/internal/logging"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second Ctrl-C gets the default handler and quits without waiting
		<-ctx.Done()
		stop()
	}()

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "runtests [-v|--verbose] [test-name...]",
		Short: "Run the Ascendia Django test suite",
		Long: `Run the Ascendia Django test suite inside the project's virtual environment.
With no test name every default module is run; a test name may be a module,
a test module, a class or a single test method.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()
	logger := logging.New(os.Stderr, false)

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies and register them
	cmds := commands.NewCommands(cfg, logger, os.Stdout, commands.DefaultInvoker)
	cmds.Register(rootCmd, &flags)

	err := commands.Execute(ctx, rootCmd, os.Args[1:])
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
