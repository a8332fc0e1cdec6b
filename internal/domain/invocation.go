package domain

// Invocation describes one call of the delegate test runner
type Invocation struct {
	Labels    []string // Test labels passed through to manage.py test
	Verbosity int      // 0 means the delegate's own default
	WorkerID  int      // Non-zero only for pool runs
}
