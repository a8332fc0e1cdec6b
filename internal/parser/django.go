package parser

import (
	"regexp"
	"strconv"
	"strings"

	"runtests/internal/domain"
)

var (
	ranPattern     = regexp.MustCompile(`(?m)^Ran (\d+) tests? in `)
	okPattern      = regexp.MustCompile(`(?m)^OK\b`)
	failedPattern  = regexp.MustCompile(`(?m)^FAILED \(([^)]*)\)`)
	headerPattern  = regexp.MustCompile(`^(FAIL|ERROR|UNEXPECTED SUCCESS): (\S+) \(([^)]+)\)`)
	framePattern   = regexp.MustCompile(`^\s*File "([^"]+)", line (\d+)`)
	doubleRule     = regexp.MustCompile(`^={20,}$`)
	singleRule     = regexp.MustCompile(`^-{20,}$`)
	tracebackStart = "Traceback (most recent call last):"
)

// DjangoParser parses the output of `manage.py test` (unittest's text runner)
type DjangoParser struct{}

// NewDjangoParser creates a new DjangoParser
func NewDjangoParser() *DjangoParser {
	return &DjangoParser{}
}

// ParseTestCounts extracts passed and failed test case counts from the runner's summary.
// If there is no summary, returns (1,0) for success or (0,1) for failure.
func (p *DjangoParser) ParseTestCounts(result domain.TestResult) (passed, failed int) {
	ranMatch := ranPattern.FindStringSubmatch(result.Output)
	if len(ranMatch) < 2 {
		if result.Success {
			return 1, 0
		}
		return 0, 1
	}
	total, _ := strconv.Atoi(ranMatch[1])

	if m := failedPattern.FindStringSubmatch(result.Output); len(m) >= 2 {
		counts := parseSummary(m[1])
		failed = counts["failures"] + counts["errors"] + counts["unexpected successes"]
	} else if !okPattern.MatchString(result.Output) && !result.Success {
		// Ran but died before printing OK/FAILED
		failed = 1
	}

	if total >= failed {
		passed = total - failed
	}
	return passed, failed
}

// parseSummary reads "failures=1, errors=2, skipped=3" into a map
func parseSummary(s string) map[string]int {
	counts := map[string]int{}
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		counts[strings.TrimSpace(key)] = n
	}
	return counts
}

// ParseFailures extracts every FAIL/ERROR block from the runner's output
func (p *DjangoParser) ParseFailures(result domain.TestResult) []domain.TestFailure {
	var failures []domain.TestFailure
	lines := strings.Split(strings.ReplaceAll(result.Output, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		if !doubleRule.MatchString(lines[i]) || i+1 >= len(lines) {
			continue
		}
		header := headerPattern.FindStringSubmatch(lines[i+1])
		if header == nil {
			continue
		}

		// Body starts after the dashed rule under the header (and the docstring line, if any)
		start := i + 2
		for k := i + 2; k < len(lines) && k <= i+3; k++ {
			if singleRule.MatchString(lines[k]) {
				start = k + 1
				break
			}
		}
		end := start
		for end < len(lines) && !doubleRule.MatchString(lines[end]) && !isSummaryRule(lines, end) {
			end++
		}

		failures = append(failures, p.parseBlock(header, lines[start:end]))
		i = end - 1
	}

	return failures
}

// isSummaryRule reports whether lines[i] is the dashed rule followed by "Ran N tests"
func isSummaryRule(lines []string, i int) bool {
	if !singleRule.MatchString(lines[i]) {
		return false
	}
	return i+1 < len(lines) && ranPattern.MatchString(lines[i+1])
}

func (p *DjangoParser) parseBlock(header []string, body []string) domain.TestFailure {
	kind := header[1]
	if kind == "UNEXPECTED SUCCESS" {
		kind = domain.KindFail
	}
	testName := header[2]
	label := header[3]
	// Python < 3.11 prints only the class: "test_x (app.tests.Class)"
	if !strings.HasSuffix(label, "."+testName) {
		label = label + "." + testName
	}

	failure := domain.TestFailure{
		TestName: testName,
		Label:    label,
		Kind:     kind,
	}

	// Trim trailing blank lines
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	failure.Traceback = append([]string(nil), body...)

	var projectFile, anyFile string
	var projectLine, anyLine int
	lastTraceback := -1
	for idx, line := range body {
		if strings.HasPrefix(line, tracebackStart) {
			lastTraceback = idx
		}
		m := framePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[2])
		anyFile, anyLine = m[1], n
		if !isLibraryFrame(m[1]) {
			projectFile, projectLine = m[1], n
		}
	}
	if projectFile != "" {
		failure.File, failure.Line = projectFile, projectLine
	} else {
		failure.File, failure.Line = anyFile, anyLine
	}

	failure.Message = exceptionMessage(body, lastTraceback)
	return failure
}

// exceptionMessage returns the exception text after the last traceback's frames
func exceptionMessage(body []string, from int) string {
	if from < 0 {
		return strings.TrimSpace(strings.Join(body, "\n"))
	}
	for idx := from + 1; idx < len(body); idx++ {
		line := body[idx]
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		return strings.TrimSpace(strings.Join(body[idx:], "\n"))
	}
	return ""
}

func isLibraryFrame(path string) bool {
	return strings.Contains(path, "site-packages") ||
		strings.Contains(path, "dist-packages") ||
		strings.Contains(path, "/lib/python")
}
