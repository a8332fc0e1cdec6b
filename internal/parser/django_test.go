package parser

import (
	"testing"

	"runtests/internal/domain"
)

const failingOutput = `Creating test database for alias 'default'...
System check identified no issues (0 silenced).
..F.E
======================================================================
ERROR: test_note_detail (notes.tests.NoteViewsTest.test_note_detail)
----------------------------------------------------------------------
Traceback (most recent call last):
  File "/app/notes/tests.py", line 200, in test_note_detail
    response = self.client.get(url)
  File "/app/venv/lib/python3.12/site-packages/django/test/client.py", line 927, in get
    raise ValueError("bad url")
ValueError: bad url

======================================================================
FAIL: test_login_redirect (users.tests.LoginViewTests)
----------------------------------------------------------------------
Traceback (most recent call last):
  File "/app/users/tests.py", line 380, in test_login_redirect
    self.assertEqual(response.status_code, 302)
AssertionError: 200 != 302

----------------------------------------------------------------------
Ran 5 tests in 0.123s

FAILED (failures=1, errors=1)
Destroying test database for alias 'default'...
`

const passingOutput = `Creating test database for alias 'default'...
.....
----------------------------------------------------------------------
Ran 5 tests in 0.050s

OK (skipped=1)
Destroying test database for alias 'default'...
`

func TestDjangoParser_ParseTestCounts(t *testing.T) {
	p := NewDjangoParser()

	tests := []struct {
		name           string
		result         domain.TestResult
		passed, failed int
	}{
		{
			name:   "failures and errors",
			result: domain.TestResult{Output: failingOutput, ExitCode: 1},
			passed: 3,
			failed: 2,
		},
		{
			name:   "all passed",
			result: domain.TestResult{Output: passingOutput, Success: true},
			passed: 5,
			failed: 0,
		},
		{
			name:   "no summary, success",
			result: domain.TestResult{Output: "nothing", Success: true},
			passed: 1,
			failed: 0,
		},
		{
			name:   "no summary, failure",
			result: domain.TestResult{Output: "ImportError: no module named users", ExitCode: 1},
			passed: 0,
			failed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, failed := p.ParseTestCounts(tt.result)
			if passed != tt.passed || failed != tt.failed {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.passed, tt.failed, passed, failed)
			}
		})
	}
}

func TestDjangoParser_ParseFailures(t *testing.T) {
	p := NewDjangoParser()
	failures := p.ParseFailures(domain.TestResult{Output: failingOutput, ExitCode: 1})

	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}

	errCase := failures[0]
	if errCase.Kind != domain.KindError {
		t.Errorf("expected ERROR, got %s", errCase.Kind)
	}
	if errCase.TestName != "test_note_detail" {
		t.Errorf("unexpected test name %s", errCase.TestName)
	}
	if errCase.Label != "notes.tests.NoteViewsTest.test_note_detail" {
		t.Errorf("unexpected label %s", errCase.Label)
	}
	if errCase.File != "/app/notes/tests.py" || errCase.Line != 200 {
		t.Errorf("expected project frame notes/tests.py:200, got %s:%d", errCase.File, errCase.Line)
	}
	if errCase.Message != "ValueError: bad url" {
		t.Errorf("unexpected message %q", errCase.Message)
	}
	if len(errCase.Traceback) != 6 {
		t.Errorf("expected 6 traceback lines, got %d: %v", len(errCase.Traceback), errCase.Traceback)
	}

	failCase := failures[1]
	if failCase.Kind != domain.KindFail {
		t.Errorf("expected FAIL, got %s", failCase.Kind)
	}
	if failCase.Label != "users.tests.LoginViewTests.test_login_redirect" {
		t.Errorf("old-style header should get the method appended, got %s", failCase.Label)
	}
	if failCase.Message != "AssertionError: 200 != 302" {
		t.Errorf("unexpected message %q", failCase.Message)
	}
	if failCase.Line != 380 {
		t.Errorf("expected line 380, got %d", failCase.Line)
	}
}

func TestDjangoParser_ParseFailuresNone(t *testing.T) {
	p := NewDjangoParser()
	if failures := p.ParseFailures(domain.TestResult{Output: passingOutput, Success: true}); len(failures) != 0 {
		t.Errorf("expected no failures, got %v", failures)
	}
}

const diffOutput = `F
======================================================================
FAIL: test_tag_list (notes.tests.TagViewsTest.test_tag_list)
----------------------------------------------------------------------
Traceback (most recent call last):
  File "/app/notes/tests.py", line 12, in test_tag_list
    self.assertEqual(names, ["work"])
AssertionError: Lists differ: ['home'] != ['work']

First differing element 0:
'home'
'work'

----------------------------------------------------------------------
Ran 1 test in 0.010s

FAILED (failures=1)
`

func TestDjangoParser_ParseFailuresMultiLineMessage(t *testing.T) {
	p := NewDjangoParser()
	failures := p.ParseFailures(domain.TestResult{Output: diffOutput, ExitCode: 1})

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}

	expected := "AssertionError: Lists differ: ['home'] != ['work']\n\nFirst differing element 0:\n'home'\n'work'"
	if failures[0].Message != expected {
		t.Errorf("expected the whole assertion diff, got %q", failures[0].Message)
	}
}
