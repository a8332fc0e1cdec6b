package domain

import (
	"strings"
	"time"
)

// TestResult represents the result of one delegate invocation
type TestResult struct {
	Labels   []string      // Labels the delegate was invoked with
	ExitCode int           // Delegate process exit status
	Success  bool          // ExitCode == 0
	Output   string        // Captured stdout+stderr
	Error    error         // Error if the delegate could not be run or exited non-zero
	Duration time.Duration // Time taken to execute
}

// Label joins the result's labels for display
func (r TestResult) Label() string {
	return strings.Join(r.Labels, " ")
}

// LabelResult is the persisted summary of a single invocation
type LabelResult struct {
	Label           string  `json:"label"`
	ExitCode        int     `json:"exit_code"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	Invocations     int     `json:"invocations"`
	PassedLabels    int     `json:"passed_labels"`
	FailedLabels    int     `json:"failed_labels"`
	FailedTestCases int     `json:"failed_test_cases"`
	ExitCode        int     `json:"exit_code"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Results []LabelResult   `json:"results"`
	Details []TestFailure   `json:"details"`
}

// ExitCode returns the exit code of the first failed result, or 0 when all passed
func ExitCode(results []TestResult) int {
	for _, r := range results {
		if r.ExitCode != 0 {
			return r.ExitCode
		}
	}
	return 0
}
