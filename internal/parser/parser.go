package parser

import "runtests/internal/domain"

// Parser parses test results and extracts failures
type Parser interface {
	ParseTestCounts(result domain.TestResult) (passed, failed int)
	ParseFailures(result domain.TestResult) []domain.TestFailure
}
