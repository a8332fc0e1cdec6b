package discovery

import (
	"path/filepath"
	"strings"

	"runtests/internal/domain"
)

// Filter filters test classes by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name matches pattern.
// Supports patterns like "*ViewTests" or "*Permission*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If no wildcards, do a simple contains check
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// For patterns like "*Note*Test" check that the literal parts appear in order
	if strings.Contains(pattern, "?") {
		return false
	}
	rest := name
	hasNonEmptyPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasNonEmptyPart = true
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
	}
	return hasNonEmptyPart
}

// FilterModules keeps the classes whose name or label matches pattern and
// drops modules left empty.
func (f *Filter) FilterModules(modules []domain.TestModule, pattern string) []domain.TestModule {
	if pattern == "" {
		return modules
	}

	var filtered []domain.TestModule
	for _, m := range modules {
		var classes []domain.TestClass
		for _, c := range m.Classes {
			if f.Match(c.Name, pattern) || f.Match(c.Label(), pattern) {
				classes = append(classes, c)
			}
		}
		if len(classes) > 0 {
			m.Classes = classes
			filtered = append(filtered, m)
		}
	}
	return filtered
}
