package execution

import (
	"errors"
	"io/fs"
	"os/exec"
)

// Exit codes the wrapper produces itself
const (
	ExitFailure  = 1
	ExitNotFound = 127
)

// ExitCode maps the error from running the delegate to a process exit status.
// A delegate that ran reports its own status; one killed by a signal reports
// 128+signal where the platform exposes it; one that could not start reports
// 127 when the interpreter is missing and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		if code, ok := signalExitCode(exitErr); ok {
			return code
		}
		return ExitFailure
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	return ExitFailure
}
