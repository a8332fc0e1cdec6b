package execution

import (
	"context"
	"sync"
	"time"

	"runtests/internal/config"
	"runtests/internal/domain"
)

// Counter extracts passed and failed test case counts from a result
type Counter interface {
	ParseTestCounts(result domain.TestResult) (passed, failed int)
}

// WorkerPool runs one delegate invocation per label across a pool of workers
type WorkerPool struct {
	config   *config.Config
	invoker  Invoker
	progress Progress
	counter  Counter
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, invoker Invoker, counter Counter) *WorkerPool {
	return &WorkerPool{
		config:  cfg,
		invoker: invoker,
		counter: counter,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

type job struct {
	index int
	label string
}

type jobResult struct {
	index  int
	result domain.TestResult
}

// Execute runs every label in parallel. With failFast no new label is started
// after the first failure; labels already running finish. Results come back
// in label order and only include labels that ran.
func (wp *WorkerPool) Execute(ctx context.Context, labels []string, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(labels) == 0 {
		return nil, 0, nil
	}

	// Cancelling dispatch stops handing out labels; ctx itself stops running delegates
	dispatch, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()

	queue := make(chan job)
	results := make(chan jobResult, len(labels))

	go func() {
		defer close(queue)
		for i, label := range labels {
			select {
			case <-dispatch.Done():
				return
			case queue <- job{index: i, label: label}:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passedCases, failedCases int
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(labels) {
		workerCount = len(labels)
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range queue {
				if dispatch.Err() != nil {
					continue
				}
				inv := domain.Invocation{
					Labels:    []string{j.label},
					Verbosity: wp.config.Verbosity(),
					WorkerID:  workerID,
				}
				result := wp.invoker.Invoke(ctx, inv, nil)
				results <- jobResult{index: j.index, result: result}

				mu.Lock()
				completed++
				p, f := wp.count(result)
				passedCases += p
				failedCases += f
				if wp.progress != nil {
					wp.progress.Update(completed, passedCases, failedCases)
				}
				if failFast && !result.Success {
					stopDispatch()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*domain.TestResult, len(labels))
	for r := range results {
		res := r.result
		ordered[r.index] = &res
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	var all []domain.TestResult
	for _, r := range ordered {
		if r != nil {
			all = append(all, *r)
		}
	}
	return all, time.Since(startTime), ctx.Err()
}

func (wp *WorkerPool) count(result domain.TestResult) (int, int) {
	if wp.counter != nil {
		return wp.counter.ParseTestCounts(result)
	}
	if result.Success {
		return 1, 0
	}
	return 0, 1
}
