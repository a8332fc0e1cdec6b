// Package environment locates the project's Python virtual environment and
// produces the process environment a sourced bin/activate would leave behind.
package environment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"runtests/internal/config"
)

// ErrEnvironmentMissing is the sentinel wrapped by MissingError
var ErrEnvironmentMissing = errors.New("virtual environment not found")

// MissingError is returned when the virtual environment directory or its
// interpreter does not exist.
type MissingError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("Virtual environment not found at %s", e.Path)
}

// Unwrap returns ErrEnvironmentMissing so callers can use errors.Is.
func (e *MissingError) Unwrap() error { return ErrEnvironmentMissing }

// Env is a located virtual environment
type Env struct {
	Path   string // Environment root
	BinDir string // bin/ or Scripts/
	Python string // Interpreter path
}

// Locate checks that the configured virtual environment exists
func Locate(cfg *config.Config) (*Env, error) {
	path := cfg.VenvPath()
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, &MissingError{Path: path}
	}

	python := cfg.GetPythonPath()
	if _, err := os.Stat(python); err != nil {
		return nil, &MissingError{Path: path}
	}

	return &Env{
		Path:   path,
		BinDir: cfg.VenvBinDir(),
		Python: python,
	}, nil
}

// ActivateScript returns the POSIX activate script path
func (e *Env) ActivateScript() string {
	return filepath.Join(e.BinDir, "activate")
}

// Activate returns base with the environment activated, as KEY=VALUE pairs.
// bin/activate is sourced by a shell interpreter; external commands it calls are
// not run. When sourcing is not possible the variables activate sets are applied
// directly.
func (e *Env) Activate(ctx context.Context, base []string, logger *log.Logger) []string {
	env := toMap(base)

	if runtime.GOOS != "windows" {
		sourced, err := e.source(ctx, base)
		if err != nil {
			logger.Debug("could not source activate script, applying defaults", "script", e.ActivateScript(), "error", err)
		} else {
			env = sourced
		}
	}

	e.apply(env)
	return toList(env)
}

// source runs bin/activate and returns the exported variables it leaves behind
func (e *Env) source(ctx context.Context, base []string) (map[string]string, error) {
	script := e.ActivateScript()
	f, err := os.Open(script)
	if err != nil {
		return nil, fmt.Errorf("open activate script: %w", err)
	}
	defer f.Close()

	file, err := syntax.NewParser().Parse(f, script)
	if err != nil {
		return nil, fmt.Errorf("parse activate script: %w", err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(base...)),
		interp.StdIO(nil, io.Discard, io.Discard),
		interp.ExecHandlers(func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
			return func(ctx context.Context, args []string) error {
				// hash, uname and friends: report "not found" and carry on
				return interp.NewExitStatus(127)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create shell interpreter: %w", err)
	}

	if err := runner.Run(ctx, file); err != nil {
		if _, ok := interp.IsExitStatus(err); !ok {
			return nil, fmt.Errorf("source activate script: %w", err)
		}
	}

	env := toMap(base)
	for name, vr := range runner.Vars {
		if name == "PWD" || name == "OLDPWD" {
			continue
		}
		if !vr.IsSet() {
			delete(env, name)
			continue
		}
		if vr.Exported && vr.Kind == expand.String {
			env[name] = vr.Str
		}
	}
	return env, nil
}

// apply makes sure env carries what activate guarantees
func (e *Env) apply(env map[string]string) {
	env["VIRTUAL_ENV"] = e.Path
	delete(env, "PYTHONHOME")

	path := env["PATH"]
	if path == e.BinDir || strings.HasPrefix(path, e.BinDir+string(os.PathListSeparator)) {
		return
	}
	if path == "" {
		env["PATH"] = e.BinDir
		return
	}
	env["PATH"] = e.BinDir + string(os.PathListSeparator) + path
}

func toMap(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

func toList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}

// Lookup returns the value of key in a KEY=VALUE list
func Lookup(env []string, key string) (string, bool) {
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}
