package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"runtests/internal/cli"
	"runtests/internal/config"
	"runtests/internal/domain"
	"runtests/internal/environment"
	"runtests/internal/execution"
	"runtests/internal/parser"
	"runtests/internal/storage"
	"runtests/internal/ui"
)

// InvokerFactory builds the delegate invoker for an activated environment
type InvokerFactory func(cfg *config.Config, venv *environment.Env, env []string, logger *log.Logger) execution.Invoker

// DefaultInvoker runs the real `python manage.py test`
func DefaultInvoker(cfg *config.Config, venv *environment.Env, env []string, logger *log.Logger) execution.Invoker {
	return execution.NewRunner(cfg, venv.Python, env, logger)
}

// Session holds what every command needs to reach the delegate and record its results
type Session struct {
	config     *config.Config
	logger     *log.Logger
	out        io.Writer
	parser     parser.Parser
	storage    storage.Storage
	banner     *ui.Banner
	newInvoker InvokerFactory
}

// NewSession creates a Session writing user output to out
func NewSession(cfg *config.Config, logger *log.Logger, out io.Writer, newInvoker InvokerFactory) *Session {
	djangoParser := parser.NewDjangoParser()
	return &Session{
		config:     cfg,
		logger:     logger,
		out:        out,
		parser:     djangoParser,
		storage:    storage.NewJSONStorage(cfg, djangoParser),
		banner:     ui.NewBanner(out),
		newInvoker: newInvoker,
	}
}

// Invoker locates and activates the virtual environment. A missing environment
// prints the fixed error and becomes exit status 1.
func (s *Session) Invoker(ctx context.Context) (execution.Invoker, error) {
	venv, err := environment.Locate(s.config)
	if err != nil {
		if errors.Is(err, environment.ErrEnvironmentMissing) {
			s.banner.EnvironmentMissing(err)
			return nil, &cli.ExitError{Code: execution.ExitFailure, Err: err}
		}
		return nil, err
	}

	env := venv.Activate(ctx, os.Environ(), s.logger)
	s.logger.Debug("environment activated", "venv", venv.Path, "python", venv.Python)
	return s.newInvoker(s.config, venv, env, s.logger), nil
}

// Record parses failures out of results and stores the run. Storage problems
// are diagnostics only.
func (s *Session) Record(results []domain.TestResult, duration time.Duration, workers int) bool {
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, s.parser.ParseFailures(result)...)
		}
	}

	if err := s.storage.Save(results, failures, duration, workers); err != nil {
		s.logger.Warn("failed to save test results", "path", s.config.GetOutputPath(), "error", err)
		return false
	}
	return true
}

// RunOnce runs the delegate a single time for the given selectors and returns its
// exit code. The run is stored only when save is set.
func (s *Session) RunOnce(ctx context.Context, invoker execution.Invoker, selectors []string, save bool) int {
	inv := domain.Invocation{
		Labels:    s.config.Labels(selectors),
		Verbosity: s.config.Verbosity(),
	}
	s.banner.Running(inv.Labels, inv.Verbosity, len(selectors) == 0)

	result := invoker.Invoke(ctx, inv, s.out)
	if result.ExitCode == execution.ExitNotFound && result.Error != nil {
		s.logger.Error("could not start test runner", "error", result.Error)
	}

	if save {
		s.Record([]domain.TestResult{result}, result.Duration, 1)
	}
	s.banner.Result(result.ExitCode)
	return result.ExitCode
}

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &cli.ExitError{Code: code}
}
