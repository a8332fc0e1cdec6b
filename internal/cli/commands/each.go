package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runtests/internal/config"
	"runtests/internal/domain"
	"runtests/internal/execution"
	"runtests/internal/ui"
)

// EachCommand runs every label as its own delegate invocation across a worker pool
type EachCommand struct {
	config    *config.Config
	session   *Session
	formatter *ui.Formatter
}

// NewEachCommand creates a new EachCommand
func NewEachCommand(cfg *config.Config, session *Session, formatter *ui.Formatter) *EachCommand {
	return &EachCommand{
		config:    cfg,
		session:   session,
		formatter: formatter,
	}
}

// Execute runs the command
func (ec *EachCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	invoker, err := ec.session.Invoker(ctx)
	if err != nil {
		return err
	}

	labels := ec.config.Labels(args)
	color.New(color.FgCyan).Fprintf(ec.session.out, "Running %d module(s) with %d worker(s)\n", len(labels), ec.config.Processors)

	pool := execution.NewWorkerPool(ec.config, invoker, ec.session.parser)
	pool.SetProgress(ui.NewProgressBar(len(labels), ec.session.out))

	results, duration, runErr := pool.Execute(ctx, labels, ec.config.Flags.FailFast)
	if runErr != nil {
		ec.session.logger.Warn("run interrupted", "error", runErr)
	}

	if ec.session.Record(results, duration, ec.config.Processors) {
		output, err := ec.session.storage.Load()
		if err != nil {
			ec.session.logger.Warn("failed to reload test results", "error", err)
		} else {
			ec.formatter.PrintMetaStats(output)
		}
	}

	code := domain.ExitCode(results)
	if code == 0 && runErr != nil {
		code = execution.ExitFailure
	}
	return exitWith(code)
}
