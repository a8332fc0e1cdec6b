package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	session   *Session
	scanner   *discovery.Scanner
	parser    *discovery.Parser
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	session *Session,
	scanner *discovery.Scanner,
	parser *discovery.Parser,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		session:   session,
		scanner:   scanner,
		parser:    parser,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	modules, err := discovery.Discover(lc.scanner, lc.parser, lc.config.ProjectPath)
	if err != nil {
		return err
	}

	modules = lc.filter.FilterModules(modules, lc.config.Flags.NameFilter)
	if len(modules) == 0 {
		color.New(color.FgYellow).Fprintln(lc.session.out, "No tests found")
		return nil
	}

	// Failure markers are best effort: there may be no previous run
	var failed map[string]struct{}
	if last, err := lc.session.storage.Load(); err == nil {
		failed = ui.FailedClasses(last.Details)
	} else {
		lc.session.logger.Debug("no previous results", "error", err)
	}

	lc.formatter.PrintTestList(modules, failed)
	return nil
}
