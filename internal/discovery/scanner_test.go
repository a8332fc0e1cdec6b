package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

// writeProject lays out a small Django project under a temp dir
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for file, content := range files {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
	return tmpDir
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := writeProject(t, map[string]string{
		"users/tests.py":                               "",
		"notes/tests.py":                               "",
		"workspace/tests/test_views.py":                "",
		"workspace/tests/__init__.py":                  "",
		"workspace/tests/views.py":                     "",
		"core/views.py":                                "",
		"venv/lib/python3.12/site-packages/x/tests.py": "",
		".git/tests.py":                                "",
		"notes/migrations/test_0001.py":                "",
	})

	scanner := NewScanner([]string{"venv", "migrations"})

	t.Run("scans test files correctly", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// tests.py, test_*.py and any module inside a tests package,
		// but not __init__.py or anything in venv, .git or migrations
		if len(results) != 4 {
			t.Errorf("expected 4 test files, got %d: %v", len(results), results)
		}
		want := filepath.Join(tmpDir, "workspace", "tests", "views.py")
		found := false
		for _, r := range results {
			if r == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in %v", want, results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "core", "views.py"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "/p/users/tests.py", expected: "users.tests"},
		{path: "/p/workspace/tests/test_views.py", expected: "workspace.tests.test_views"},
		{path: "/p/notes/tests/__init__.py", expected: "notes.tests"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := ModuleName("/p", filepath.FromSlash(tt.path)); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	root := writeProject(t, map[string]string{
		"users/tests.py": "class ProfileModelTests(TestCase):\n    pass\n\nclass LoginViewTests(TestCase):\n    pass\n",
		"notes/tests.py": "class NoteModelTest(TestCase):\n    pass\n",
		"core/tests.py":  "# no tests yet\n",
	})

	modules, err := Discover(NewScanner(nil), NewParser(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d: %+v", len(modules), modules)
	}
	if modules[0].Module != "notes.tests" || modules[1].Module != "users.tests" {
		t.Errorf("expected sorted modules, got %s, %s", modules[0].Module, modules[1].Module)
	}
	if got := modules[1].Classes[1].Label(); got != "users.tests.LoginViewTests" {
		t.Errorf("unexpected label %s", got)
	}
}
