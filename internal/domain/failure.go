package domain

// Failure kinds reported by the Django test runner
const (
	KindFail  = "FAIL"
	KindError = "ERROR"
)

// TestFailure represents a failed or errored test case
type TestFailure struct {
	TestName  string   `json:"test_name"`
	Label     string   `json:"label"` // Dotted path of the failing test method
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Traceback []string `json:"traceback"`
	File      string   `json:"file"`
	Line      int      `json:"line"`
	Resolved  bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
