package cli

import (
	"errors"
	"testing"
	"time"
)

func TestFlags_ToConfigFlags(t *testing.T) {
	f := Flags{
		ProjectPath: "/srv/ascendia",
		Venv:        ".venv",
		Verbose:     true,
		Processors:  3,
		FailFast:    true,
		NameFilter:  "*Login*",
		Debounce:    time.Second,
	}

	got := f.ToConfigFlags()
	if got.ProjectPath != f.ProjectPath || got.Venv != f.Venv || !got.Verbose {
		t.Errorf("paths or verbosity not copied: %+v", got)
	}
	if got.Processors != 3 || !got.FailFast || got.NameFilter != "*Login*" || got.Debounce != time.Second {
		t.Errorf("execution flags not copied: %+v", got)
	}
}

func TestExitError(t *testing.T) {
	sentinel := errors.New("boom")

	tests := []struct {
		name     string
		err      *ExitError
		expected string
	}{
		{name: "bare code", err: &ExitError{Code: 3}, expected: "exit status 3"},
		{name: "wrapped", err: &ExitError{Code: 1, Err: sentinel}, expected: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}

	var exitErr *ExitError
	if !errors.As(error(&ExitError{Code: 1, Err: sentinel}), &exitErr) || !errors.Is(exitErr, sentinel) {
		t.Error("ExitError should unwrap to its cause")
	}
}
