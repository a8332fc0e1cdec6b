package execution

import (
	"context"
	"io"
	"sync"
	"testing"

	"runtests/internal/config"
	"runtests/internal/domain"
)

// fakeInvoker returns a fixed exit code per label and records what it ran
type fakeInvoker struct {
	mu    sync.Mutex
	codes map[string]int
	calls []domain.Invocation
}

func (f *fakeInvoker) Invoke(ctx context.Context, inv domain.Invocation, out io.Writer) domain.TestResult {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()
	code := f.codes[inv.Labels[0]]
	return domain.TestResult{Labels: inv.Labels, ExitCode: code, Success: code == 0}
}

type recordingProgress struct {
	updates  int
	finished bool
	last     [3]int
}

func (p *recordingProgress) Update(completed, passed, failed int) {
	p.updates++
	p.last = [3]int{completed, passed, failed}
}

func (p *recordingProgress) Finish() { p.finished = true }

func TestWorkerPool_Execute(t *testing.T) {
	cfg := config.New()
	cfg.Processors = 3
	invoker := &fakeInvoker{codes: map[string]int{"notes": 1}}
	pool := NewWorkerPool(cfg, invoker, nil)
	progress := &recordingProgress{}
	pool.SetProgress(progress)

	labels := []string{"users", "notes", "workspace"}
	results, _, err := pool.Execute(context.Background(), labels, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Labels[0] != labels[i] {
			t.Errorf("result %d: expected label %s, got %s", i, labels[i], r.Labels[0])
		}
	}
	if results[1].Success {
		t.Error("expected notes to fail")
	}

	if progress.updates != 3 || !progress.finished {
		t.Errorf("expected 3 updates and finish, got %d updates finished=%v", progress.updates, progress.finished)
	}
	if progress.last != [3]int{3, 2, 1} {
		t.Errorf("unexpected final progress %v", progress.last)
	}

	seen := map[int]bool{}
	for _, c := range invoker.calls {
		if c.WorkerID < 1 || c.WorkerID > 3 {
			t.Errorf("worker id out of range: %d", c.WorkerID)
		}
		seen[c.WorkerID] = true
	}
	if len(seen) == 0 {
		t.Error("expected worker ids to be recorded")
	}
}

func TestWorkerPool_FailFast(t *testing.T) {
	cfg := config.New()
	cfg.Processors = 1
	invoker := &fakeInvoker{codes: map[string]int{"users": 1}}
	pool := NewWorkerPool(cfg, invoker, nil)

	results, _, err := pool.Execute(context.Background(), []string{"users", "notes", "workspace"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the failing label to run, got %d results", len(results))
	}
	if len(invoker.calls) != 1 {
		t.Errorf("expected 1 invocation, got %d", len(invoker.calls))
	}
}

func TestWorkerPool_Verbosity(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Verbose = true
	invoker := &fakeInvoker{codes: map[string]int{}}
	pool := NewWorkerPool(cfg, invoker, nil)

	if _, _, err := pool.Execute(context.Background(), []string{"users"}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoker.calls[0].Verbosity != cfg.VerboseLevel {
		t.Errorf("expected verbosity %d, got %d", cfg.VerboseLevel, invoker.calls[0].Verbosity)
	}
}

func TestWorkerPool_Empty(t *testing.T) {
	pool := NewWorkerPool(config.New(), &fakeInvoker{}, nil)
	results, d, err := pool.Execute(context.Background(), nil, false)
	if results != nil || d != 0 || err != nil {
		t.Errorf("expected empty run, got %v %v %v", results, d, err)
	}
}
