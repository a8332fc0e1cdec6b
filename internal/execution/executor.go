package execution

import (
	"context"
	"io"

	"runtests/internal/domain"
)

// Invoker runs the delegate test runner once
type Invoker interface {
	// Invoke runs inv to completion. Output is streamed to out when it is
	// non-nil and is always captured in the result.
	Invoke(ctx context.Context, inv domain.Invocation, out io.Writer) domain.TestResult
}

// Progress receives updates while a WorkerPool runs
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}
