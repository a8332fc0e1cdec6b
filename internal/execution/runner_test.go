package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"runtests/internal/config"
	"runtests/internal/domain"
	"runtests/internal/logging"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		inv      domain.Invocation
		noInput  bool
		expected string
	}{
		{
			name:     "default modules at default verbosity",
			inv:      domain.Invocation{Labels: []string{"users", "notes", "workspace"}},
			expected: "manage.py test users notes workspace",
		},
		{
			name:     "selector at elevated verbosity",
			inv:      domain.Invocation{Labels: []string{"users.tests.LoginViewTests"}, Verbosity: 2},
			expected: "manage.py test users.tests.LoginViewTests --verbosity=2",
		},
		{
			name:     "unattended",
			inv:      domain.Invocation{Labels: []string{"notes"}},
			noInput:  true,
			expected: "manage.py test notes --noinput",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := strings.Join(BuildArgs("manage.py", tt.inv, tt.noInput), " ")
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		if code := ExitCode(nil); code != 0 {
			t.Errorf("expected 0, got %d", code)
		}
	})

	t.Run("missing interpreter", func(t *testing.T) {
		err := fmt.Errorf("start: %w", exec.ErrNotFound)
		if code := ExitCode(err); code != ExitNotFound {
			t.Errorf("expected %d, got %d", ExitNotFound, code)
		}
	})

	t.Run("other start error", func(t *testing.T) {
		if code := ExitCode(errors.New("boom")); code != ExitFailure {
			t.Errorf("expected %d, got %d", ExitFailure, code)
		}
	})

	t.Run("process exit status", func(t *testing.T) {
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}
		err := exec.Command("sh", "-c", "exit 3").Run()
		if code := ExitCode(err); code != 3 {
			t.Errorf("expected 3, got %d", code)
		}
	})
}

// fakePython writes a shell script standing in for the venv interpreter
func fakePython(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "python")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to write fake python: %v", err)
	}
	return path
}

func TestRunner_Invoke(t *testing.T) {
	python := fakePython(t, `echo "args: $*"
echo "worker=$ASCENDIA_TEST_WORKER secret=$SECRET_KEY home=$HOME"
exit 4
`)

	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.DotEnv = map[string]string{"SECRET_KEY": "from-dotenv", "HOME": "ignored"}
	env := []string{"PATH=/usr/bin:/bin", "HOME=/home/test"}
	runner := NewRunner(cfg, python, env, logging.Discard())

	t.Run("streams and captures", func(t *testing.T) {
		var out bytes.Buffer
		inv := domain.Invocation{Labels: []string{"users"}, Verbosity: 2}
		result := runner.Invoke(context.Background(), inv, &out)

		if result.ExitCode != 4 || result.Success {
			t.Errorf("expected exit code 4, got %d (success=%v)", result.ExitCode, result.Success)
		}
		if !strings.Contains(result.Output, "test users --verbosity=2") {
			t.Errorf("unexpected args in output: %q", result.Output)
		}
		if out.String() != result.Output {
			t.Errorf("streamed output %q differs from captured %q", out.String(), result.Output)
		}
		if !strings.Contains(result.Output, "secret=from-dotenv") {
			t.Errorf("expected .env value in delegate env: %q", result.Output)
		}
		if !strings.Contains(result.Output, "home=/home/test") {
			t.Errorf(".env must not override the activated env: %q", result.Output)
		}
	})

	t.Run("worker run", func(t *testing.T) {
		inv := domain.Invocation{Labels: []string{"notes"}, WorkerID: 2}
		result := runner.Invoke(context.Background(), inv, nil)

		if !strings.Contains(result.Output, "worker=2") {
			t.Errorf("expected worker env var: %q", result.Output)
		}
		if !strings.Contains(result.Output, "--noinput") {
			t.Errorf("expected --noinput for worker runs: %q", result.Output)
		}
	})
}

func TestRunner_InvokeMissingInterpreter(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	runner := NewRunner(cfg, filepath.Join(cfg.ProjectPath, "no-such-python"), nil, logging.Discard())

	result := runner.Invoke(context.Background(), domain.Invocation{Labels: []string{"users"}}, nil)
	if result.ExitCode != ExitNotFound {
		t.Errorf("expected exit code %d, got %d", ExitNotFound, result.ExitCode)
	}
	if result.Error == nil {
		t.Error("expected an error")
	}
}
