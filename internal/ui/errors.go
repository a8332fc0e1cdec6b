package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"runtests/internal/domain"
	"runtests/internal/storage"
)

// maxTracebackLines caps how much of a traceback the details pane shows
const maxTracebackLines = 30

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	out     io.Writer
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage, out io.Writer) *ErrorViewer {
	return &ErrorViewer{
		storage: st,
		out:     out,
	}
}

// View displays test failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.New(color.FgGreen).Fprintln(ev.out, "✓ No test failures found!")
		return nil
	}

	b := newFailureBrowser(results, ev.storage)
	if err := b.app.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if b.saveErr != nil {
		return fmt.Errorf("failed to save resolved status: %w", b.saveErr)
	}
	return nil
}

// failureBrowser is the failure list on the left and the selected failure on the right
type failureBrowser struct {
	app     *tview.Application
	header  *tview.TextView
	list    *tview.List
	stats   *tview.TextView
	details *tview.TextView

	results *domain.TestResultsOutput
	storage storage.Storage
	saveErr error
}

func newFailureBrowser(results *domain.TestResultsOutput, st storage.Storage) *failureBrowser {
	b := &failureBrowser{
		app:     tview.NewApplication(),
		header:  tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true),
		list:    tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true),
		stats:   tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		details: tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true),
		results: results,
		storage: st,
	}

	b.list.SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	for i := range results.Details {
		b.list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
	}
	b.list.SetChangedFunc(func(int, string, string, rune) { b.showSelected() })
	b.list.SetInputCapture(b.onListKey)
	b.details.SetInputCapture(b.onDetailsKey)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.stats, 2, 0, false).
		AddItem(b.details, 0, 1, false)
	body := tview.NewFlex().
		AddItem(b.list, 0, 1, true).
		AddItem(right, 0, 2, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.header, 1, 0, false).
		AddItem(body, 0, 1, true)

	b.refreshHeader()
	b.showSelected()
	b.app.SetRoot(root, true).SetFocus(b.list)
	return b
}

func (b *failureBrowser) refreshHeader() {
	b.header.SetText(fmt.Sprintf(" %d failure(s), %d unresolved | ↑↓ select  [yellow]R[white] resolve  → details  ← back  Ctrl+C quit ",
		len(b.results.Details), countUnresolved(b.results.Details)))
}

func (b *failureBrowser) showSelected() {
	i := b.list.GetCurrentItem()
	if i < 0 || i >= len(b.results.Details) {
		return
	}
	failure := b.results.Details[i]
	b.stats.SetText(FormatFailureStats(failure, i+1))
	b.details.SetText(FormatFailureDetails(failure)).ScrollToBeginning()
}

// toggleResolved flips the selected failure and writes the results back
func (b *failureBrowser) toggleResolved() {
	i := b.list.GetCurrentItem()
	if i < 0 || i >= len(b.results.Details) {
		return
	}
	b.results.Details[i].Resolved = !b.results.Details[i].Resolved
	b.list.SetItemText(i, listItemText(b.results.Details[i], i), "")
	b.refreshHeader()
	b.showSelected()
	b.saveErr = b.storage.SaveOutput(b.results)
}

func (b *failureBrowser) onListKey(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEnter || event.Key() == tcell.KeyRight:
		b.app.SetFocus(b.details)
	case event.Key() == tcell.KeyCtrlC:
		b.app.Stop()
	case event.Key() == tcell.KeyRune && (event.Rune() == 'r' || event.Rune() == 'R'):
		b.toggleResolved()
	default:
		return event
	}
	return nil
}

func (b *failureBrowser) onDetailsKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEsc:
		b.app.SetFocus(b.list)
	case tcell.KeyCtrlC:
		b.app.Stop()
	default:
		return event
	}
	return nil
}

func listItemText(failure domain.TestFailure, index int) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ %s %s[white]", failure.Kind, tview.Escape(name))
	}
	return fmt.Sprintf("[red]%s[white] %s", failure.Kind, tview.Escape(name))
}

func countUnresolved(failures []domain.TestFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

// FormatFailureDetails formats a test failure using tview color tags
func FormatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	kindColor := "red"
	if failure.Kind == domain.KindError {
		kindColor = "orange"
	}
	fmt.Fprintf(&b, "[%s]✗ %s: %s[white]\n\n", kindColor, failure.Kind, tview.Escape(failure.TestName))
	fmt.Fprintf(&b, "[cyan]Label: %s[white]\n", tview.Escape(failure.Label))
	if failure.File != "" && failure.Line > 0 {
		fmt.Fprintf(&b, "[yellow]Location: %s:%d[white]\n", tview.Escape(failure.File), failure.Line)
	}
	b.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	if n := len(failure.Traceback); n > 0 {
		b.WriteString("[yellow]Traceback:[white]\n")
		shown := failure.Traceback
		if n > maxTracebackLines {
			shown = shown[:maxTracebackLines]
		}
		for _, line := range shown {
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
		if n > maxTracebackLines {
			fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", n-maxTracebackLines)
		}
	}
	return b.String()
}

// FormatFailureStats formats the one-line location header for a test failure
func FormatFailureStats(failure domain.TestFailure, number int) string {
	testCase := failure.TestName
	if testCase == "" {
		testCase = fmt.Sprintf("Test %d", number)
	}
	module, class := splitLabel(failure.Label)
	return fmt.Sprintf("[cyan]module[white] %s  [cyan]class[white] %s  [cyan]test[white] %s\n",
		tview.Escape(module), tview.Escape(class), tview.Escape(testCase))
}
