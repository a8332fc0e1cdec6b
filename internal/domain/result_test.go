package domain

import "testing"

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		results  []TestResult
		expected int
	}{
		{name: "no results", expected: 0},
		{name: "all passed", results: []TestResult{{ExitCode: 0}, {ExitCode: 0}}, expected: 0},
		{name: "first failure wins", results: []TestResult{{ExitCode: 0}, {ExitCode: 2}, {ExitCode: 1}}, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.results); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTestClass_Label(t *testing.T) {
	c := TestClass{Name: "LoginViewTests", Module: "users.tests"}
	if c.Label() != "users.tests.LoginViewTests" {
		t.Errorf("unexpected label %s", c.Label())
	}
	if (TestClass{Name: "Orphan"}).Label() != "Orphan" {
		t.Error("class without module should label as its name")
	}
}
