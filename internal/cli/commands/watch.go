package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/watch"
)

// WatchCommand re-runs the delegate whenever Python sources change
type WatchCommand struct {
	config  *config.Config
	session *Session
	scanner *discovery.Scanner
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, session *Session, scanner *discovery.Scanner) *WatchCommand {
	return &WatchCommand{
		config:  cfg,
		session: session,
		scanner: scanner,
	}
}

// Execute runs the command until the context is cancelled
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	invoker, err := wc.session.Invoker(ctx)
	if err != nil {
		return err
	}

	watcher, err := watch.New(wc.scanner.SkipDir, wc.config.WatchDebounce, wc.session.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.AddTree(wc.config.ProjectPath); err != nil {
		return err
	}

	run := func(ctx context.Context) {
		wc.session.RunOnce(ctx, invoker, args, true)
		color.New(color.FgCyan).Fprintln(wc.session.out, "Watching for changes (Ctrl+C to stop)...")
	}

	run(ctx)
	return watcher.Run(ctx, run)
}
