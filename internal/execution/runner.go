package execution

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"runtests/internal/config"
	"runtests/internal/domain"
)

// waitDelay bounds how long a cancelled delegate gets to clean up its test database
const waitDelay = 10 * time.Second

// Runner executes `python manage.py test` inside the activated environment
type Runner struct {
	config *config.Config
	python string
	env    []string
	logger *log.Logger
}

// NewRunner creates a new Runner. env is the activated environment as KEY=VALUE pairs.
func NewRunner(cfg *config.Config, python string, env []string, logger *log.Logger) *Runner {
	return &Runner{
		config: cfg,
		python: python,
		env:    env,
		logger: logger,
	}
}

// BuildArgs returns the delegate arguments for an invocation, after the interpreter
func BuildArgs(managePy string, inv domain.Invocation, noInput bool) []string {
	args := []string{managePy, "test"}
	args = append(args, inv.Labels...)
	if inv.Verbosity > 0 {
		args = append(args, fmt.Sprintf("--verbosity=%d", inv.Verbosity))
	}
	if noInput {
		args = append(args, "--noinput")
	}
	return args
}

// Invoke runs the delegate for a single invocation
func (r *Runner) Invoke(ctx context.Context, inv domain.Invocation, out io.Writer) domain.TestResult {
	// Pool runs are unattended and must never block on a prompt
	noInput := inv.WorkerID > 0
	args := BuildArgs(r.config.GetManagePyPath(), inv, noInput)
	cmd := exec.CommandContext(ctx, r.python, args...)
	cmd.Env = r.environ(inv.WorkerID)
	cmd.Dir = r.config.ProjectPath
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = waitDelay

	var captured bytes.Buffer
	var w io.Writer = &captured
	if out != nil {
		w = io.MultiWriter(out, &captured)
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = w
	cmd.Stderr = w

	r.logger.Debug("running delegate", "cmd", r.python+" "+strings.Join(args, " "), "dir", cmd.Dir, "worker", inv.WorkerID)

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)
	code := ExitCode(err)

	r.logger.Debug("delegate finished", "exit_code", code, "duration", duration)

	return domain.TestResult{
		Labels:   inv.Labels,
		ExitCode: code,
		Success:  code == 0,
		Output:   captured.String(),
		Error:    err,
		Duration: duration,
	}
}

// environ merges the activated environment with .env values it doesn't already set
func (r *Runner) environ(workerID int) []string {
	env := append([]string(nil), r.env...)
	set := make(map[string]bool, len(env))
	for _, kv := range env {
		if k, _, ok := strings.Cut(kv, "="); ok {
			set[k] = true
		}
	}
	for k, v := range r.config.DotEnv {
		if !set[k] {
			env = append(env, k+"="+v)
		}
	}
	if workerID > 0 {
		env = append(env, fmt.Sprintf("%s=%d", config.WorkerEnvVar, workerID))
	}
	return env
}
