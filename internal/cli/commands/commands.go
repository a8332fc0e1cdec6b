package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runtests/internal/cli"
	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/logging"
	"runtests/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	config   *config.Config
	logger   *log.Logger
	Root     *RootCommand
	Each     *EachCommand
	List     *ListCommand
	Failures *FailuresCommand
	Watch    *WatchCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger *log.Logger, out io.Writer, newInvoker InvokerFactory) *Commands {
	// Initialize dependencies
	session := NewSession(cfg, logger, out, newInvoker)
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	classParser := discovery.NewParser()
	filter := discovery.NewFilter()
	formatter := ui.NewFormatter(out)
	errorViewer := ui.NewErrorViewer(session.storage, out)

	return &Commands{
		config:   cfg,
		logger:   logger,
		Root:     NewRootCommand(cfg, session),
		Each:     NewEachCommand(cfg, session, formatter),
		List:     NewListCommand(cfg, session, scanner, classParser, filter, formatter),
		Failures: NewFailuresCommand(session, errorViewer),
		Watch:    NewWatchCommand(cfg, session, scanner),
	}
}

// Register wires the root behaviour and all subcommands into rootCmd
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.Args = cobra.ArbitraryArgs
	rootCmd.RunE = c.Root.Execute
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Annotations = map[string]string{labelsAnnotation: "true"}
	rootCmd.SetFlagErrorFunc(flagError)
	// Keep `runtests help` available as a label; -h/--help still show help
	rootCmd.SetHelpCommand(&cobra.Command{Use: "__help", Hidden: true})
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		c.config.Flags = flags.ToConfigFlags()
		if err := c.config.Load(); err != nil {
			return err
		}
		logging.SetDebug(c.logger, flags.Debug)
		if flags.NoColor {
			color.NoColor = true
		}
		c.logger.Debug("configuration loaded",
			"project", c.config.ProjectPath,
			"venv", c.config.VenvPath(),
			"manage_py", c.config.GetManagePyPath())
		return nil
	}

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if !cmd.HasParent() {
			fmt.Fprint(cmd.OutOrStdout(), knownTestsHelp(c.config))
		}
	})

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Run the tests with elevated verbosity")
	pf.StringVar(&flags.ProjectPath, "project-path", "", "Path to the Django project (default: current directory)")
	pf.StringVar(&flags.Venv, "venv", "", "Virtual environment directory, relative to the project (default: venv)")
	pf.BoolVar(&flags.Debug, "debug", false, "Log diagnostics to stderr")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&flags.Save, "save", false, "Store the results for the failures and list commands")

	// Each command
	eachCmd := &cobra.Command{
		Use:   "each [labels...]",
		Short: "Run each module as its own test invocation in parallel",
		Long:  "Run every default module (or the given labels) as a separate `manage.py test` invocation across a pool of workers",
		RunE:  c.Each.Execute,

		Annotations: map[string]string{labelsAnnotation: "true"},
	}
	eachCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of parallel workers (default 1)")
	eachCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Start no new module after the first failure")
	rootCmd.AddCommand(eachCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test classes",
		Long:  "Scan the project for Django test modules and list their test classes without running them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test classes by name pattern (supports wildcards, e.g., '*View*')")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:   "watch [labels...]",
		Short: "Re-run tests when Python files change",
		Long:  "Run the tests, then run them again every time a .py file in the project changes",
		RunE:  c.Watch.Execute,

		Annotations: map[string]string{labelsAnnotation: "true"},
	}
	watchCmd.Flags().DurationVar(&flags.Debounce, "debounce", 0, "Quiet period before re-running after a change (default 500ms)")
	rootCmd.AddCommand(watchCmd)
}
