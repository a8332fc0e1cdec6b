package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"runtests/internal/domain"
)

// Formatter formats and displays results and test listings
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintMetaStats prints the per-label table and run statistics of a stored run
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	NewBanner(f.out).Header("Test Execution Statistics")

	table := tablewriter.NewWriter(f.out)
	table.SetHeader([]string{"Module", "Passed", "Failed", "Exit", "Duration"})
	table.SetAutoWrapText(false)
	for _, r := range output.Results {
		exit := color.GreenString("%d", r.ExitCode)
		if r.ExitCode != 0 {
			exit = color.RedString("%d", r.ExitCode)
		}
		table.Append([]string{
			r.Label,
			fmt.Sprintf("%d", r.Passed),
			fmt.Sprintf("%d", r.Failed),
			exit,
			fmt.Sprintf("%.2fs", r.DurationSeconds),
		})
	}
	table.Render()

	fmt.Fprintln(f.out)
	stats := tablewriter.NewWriter(f.out)
	stats.SetAutoWrapText(false)
	stats.SetAlignment(tablewriter.ALIGN_LEFT)
	stats.AppendBulk([][]string{
		{"Modules Run", fmt.Sprintf("%d", meta.Invocations)},
		{"Passed Modules", color.GreenString("%d", meta.PassedLabels)},
		{"Failed Modules", color.RedString("%d", meta.FailedLabels)},
		{"Failed Test Cases", color.RedString("%d", meta.FailedTestCases)},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Workers", fmt.Sprintf("%d", meta.Workers)},
		{"Timestamp", meta.Timestamp},
	})
	stats.Render()

	fmt.Fprintln(f.out)
	if meta.FailedLabels == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All tests passed!")
		return
	}
	color.New(color.FgRed).Fprintf(f.out, "✗ %d module(s) failed with %d test case failure(s)\n", meta.FailedLabels, meta.FailedTestCases)
	fmt.Fprintln(f.out)
	f.PrintFailedTestsTree(output.Details)
}

// PrintFailedTestsTree prints failures grouped by module and class
func (f *Formatter) PrintFailedTestsTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	// module -> class -> failures
	tree := make(map[string]map[string][]domain.TestFailure)
	for _, failure := range failures {
		module, class := splitLabel(failure.Label)
		if tree[module] == nil {
			tree[module] = make(map[string][]domain.TestFailure)
		}
		tree[module][class] = append(tree[module][class], failure)
	}

	modules := sortedKeys(tree)
	for i, module := range modules {
		lastModule := i == len(modules)-1
		color.New(color.FgCyan).Fprintf(f.out, "%s%s\n", branch(lastModule), module)

		classes := sortedKeys(tree[module])
		for j, class := range classes {
			lastClass := j == len(classes)-1
			color.New(color.FgYellow).Fprintf(f.out, "%s%s%s\n", indent(lastModule), branch(lastClass), class)

			cases := tree[module][class]
			for k, failure := range cases {
				prefix := indent(lastModule) + indent(lastClass) + branch(k == len(cases)-1)
				color.New(color.FgRed).Fprintf(f.out, "%s%s [%s]\n", prefix, failure.TestName, failure.Kind)
			}
		}
	}
}

// PrintTestList prints discovered test modules and their classes.
// failedClasses is optional; classes in this set are marked with [F] (from last run).
func (f *Formatter) PrintTestList(modules []domain.TestModule, failedClasses map[string]struct{}) {
	total := 0
	for _, m := range modules {
		total += len(m.Classes)
	}
	color.New(color.FgGreen).Fprintf(f.out, "Found %d test class(es) in %d module(s):\n\n", total, len(modules))

	for i, m := range modules {
		lastModule := i == len(modules)-1
		color.New(color.FgCyan).Fprintf(f.out, "%s%s\n", branch(lastModule), m.Module)

		for j, c := range m.Classes {
			failMarker := ""
			if _, ok := failedClasses[c.Label()]; ok {
				failMarker = " " + color.RedString("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s%s\n", indent(lastModule), branch(j == len(m.Classes)-1), color.YellowString(c.Name), failMarker)
		}
	}
}

// FailedClasses returns the class labels that have unresolved failures
func FailedClasses(failures []domain.TestFailure) map[string]struct{} {
	set := make(map[string]struct{})
	for _, failure := range failures {
		if failure.Resolved {
			continue
		}
		module, class := splitLabel(failure.Label)
		set[module+"."+class] = struct{}{}
	}
	return set
}

// splitLabel splits app.tests.Class.test_method into (app.tests, Class)
func splitLabel(label string) (module, class string) {
	parts := strings.Split(label, ".")
	if len(parts) < 3 {
		return label, ""
	}
	return strings.Join(parts[:len(parts)-2], "."), parts[len(parts)-2]
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
