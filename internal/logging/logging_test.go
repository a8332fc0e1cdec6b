package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Run("warn by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, false)
		logger.Debug("hidden")
		logger.Warn("shown")
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("debug message should be filtered, got %q", out)
		}
		if !strings.Contains(out, "shown") {
			t.Errorf("warn message missing, got %q", out)
		}
	})

	t.Run("debug enabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, true)
		logger.Debug("visible", "labels", "users")
		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("debug message missing, got %q", buf.String())
		}
	})

	t.Run("prefix", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, false).Error("boom")
		if !strings.Contains(buf.String(), "runtests") {
			t.Errorf("expected prefix in %q", buf.String())
		}
	})
}
