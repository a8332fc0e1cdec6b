package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"runtests/internal/config"
)

// RootCommand runs the delegate once for the default modules or the given labels
type RootCommand struct {
	config  *config.Config
	session *Session
}

// NewRootCommand creates a new RootCommand
func NewRootCommand(cfg *config.Config, session *Session) *RootCommand {
	return &RootCommand{
		config:  cfg,
		session: session,
	}
}

// Execute runs the command
func (rc *RootCommand) Execute(cmd *cobra.Command, args []string) error {
	invoker, err := rc.session.Invoker(cmd.Context())
	if err != nil {
		return err
	}
	return exitWith(rc.session.RunOnce(cmd.Context(), invoker, args, rc.config.SaveResults))
}

// knownTestsHelp lists the known test classes per module for the help text
func knownTestsHelp(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("\nDefault modules: " + strings.Join(cfg.DefaultModules, " ") + "\n")
	b.WriteString("\nKnown test classes:\n")
	for _, m := range cfg.KnownTestClasses {
		fmt.Fprintf(&b, "  %s\n", m.Module)
		for _, class := range m.Classes {
			fmt.Fprintf(&b, "    %s.%s\n", m.Module, class)
		}
	}
	b.WriteString("\nExamples:\n")
	b.WriteString("  runtests                                   run all default modules\n")
	b.WriteString("  runtests users                             run one module\n")
	b.WriteString("  runtests -v users.tests.LoginViewTests     run one class verbosely\n")
	b.WriteString("  runtests -- list                           run a label named like a subcommand\n")
	return b.String()
}
