package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestClasses(t *testing.T) {
	parser := NewParser()

	testFile := filepath.Join(t.TempDir(), "tests.py")
	pyContent := `from django.test import TestCase, SimpleTestCase
from django import test


class NoteModelTest(TestCase):
    def test_str(self):
        pass


class LoginViewTests(test.TestCase):
    pass


class NoteHelpers:
    def make_note(self):
        pass


class NoteViewsTest(NoteModelTest):
    pass


class Formatting(NoteHelpers, SimpleTestCase):
    pass


def helper():
    class Inner(TestCase):
        pass
`
	if err := os.WriteFile(testFile, []byte(pyContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds test classes in file order", func(t *testing.T) {
		classes, err := parser.FindTestClasses(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"NoteModelTest", "LoginViewTests", "NoteViewsTest", "Formatting"}
		if len(classes) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, classes)
		}
		for i, name := range expected {
			if classes[i] != name {
				t.Errorf("expected %s at %d, got %s", name, i, classes[i])
			}
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestClasses("/non/existent/tests.py")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
