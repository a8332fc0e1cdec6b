package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// classPattern matches top-level class statements:
// - class NoteModelTest(TestCase):
// - class LoginViewTests(test.TestCase):
// - class Base(SimpleTestCase, SomeMixin):
var classPattern = regexp.MustCompile(`(?m)^class\s+(\w+)\s*\(([^)]*)\)\s*:`)

// Parser parses Python test modules to extract test classes
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestClasses returns the TestCase subclasses defined in a file, in file order.
// A class counts when one of its bases is a *TestCase or another test class
// defined earlier in the same file.
func (p *Parser) FindTestClasses(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	var classes []string
	seen := make(map[string]bool) // Use map to avoid duplicates

	for _, match := range classPattern.FindAllStringSubmatch(string(content), -1) {
		name, bases := match[1], match[2]
		if seen[name] || !isTestBase(bases, seen) {
			continue
		}
		seen[name] = true
		classes = append(classes, name)
	}

	return classes, nil
}

func isTestBase(bases string, known map[string]bool) bool {
	for _, base := range strings.Split(bases, ",") {
		base = strings.TrimSpace(base)
		if i := strings.LastIndex(base, "."); i >= 0 {
			base = base[i+1:]
		}
		if strings.HasSuffix(base, "TestCase") || known[base] {
			return true
		}
	}
	return false
}
