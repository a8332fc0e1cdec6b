package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// testFilePattern is the file pattern Django's test runner discovers by default
const testFilePattern = "test*.py"

// testsPackage holds test modules under any name (app/tests/views.py)
const testsPackage = "tests"

// Scanner scans for Python test modules in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// SkipDir reports whether a directory with this name is never scanned
func (s *Scanner) SkipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return s.skipDirs[name]
}

// Scan finds all test modules in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var testfiles []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if isTestFile(path, d.Name()) {
			testfiles = append(testfiles, path)
		}
		return nil
	})

	return testfiles, err
}

func isTestFile(path, name string) bool {
	if matched, _ := filepath.Match(testFilePattern, name); matched {
		return true
	}
	return filepath.Ext(name) == ".py" && name != "__init__.py" &&
		filepath.Base(filepath.Dir(path)) == testsPackage
}

// ModuleName converts a test file path to its dotted Python module name relative to root
func ModuleName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".py")
	rel = strings.TrimSuffix(rel, "/__init__")
	return strings.ReplaceAll(rel, "/", ".")
}
