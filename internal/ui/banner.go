package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const bannerWidth = 60

// Banner prints the status banners around a delegate run
type Banner struct {
	out io.Writer
}

// NewBanner creates a Banner writing to out
func NewBanner(out io.Writer) *Banner {
	return &Banner{out: out}
}

// Header prints a boxed title
func (b *Banner) Header(title string) {
	c := color.New(color.FgCyan)
	pad := bannerWidth - len([]rune(title))
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	c.Fprintln(b.out, "╔"+strings.Repeat("═", bannerWidth)+"╗")
	c.Fprintln(b.out, "║"+strings.Repeat(" ", left)+title+strings.Repeat(" ", pad-left)+"║")
	c.Fprintln(b.out, "╚"+strings.Repeat("═", bannerWidth)+"╝")
}

// Running announces what is about to run
func (b *Banner) Running(labels []string, verbosity int, defaults bool) {
	fmt.Fprintln(b.out)
	b.Header("Ascendia Test Suite")
	scope := strings.Join(labels, " ")
	if defaults {
		scope += " (all modules)"
	}
	fmt.Fprintf(b.out, "%s %s\n", color.WhiteString("Running:"), color.YellowString(scope))
	if verbosity > 0 {
		fmt.Fprintf(b.out, "%s %s\n", color.WhiteString("Verbosity:"), color.YellowString("%d", verbosity))
	}
	fmt.Fprintln(b.out)
}

// Result prints the pass/fail banner for a delegate exit code
func (b *Banner) Result(exitCode int) {
	fmt.Fprintln(b.out)
	if exitCode == 0 {
		color.New(color.FgGreen, color.Bold).Fprintln(b.out, "✓ All tests passed!")
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(b.out, "✗ Tests failed (exit code %d)\n", exitCode)
}

// EnvironmentMissing prints the fixed environment error
func (b *Banner) EnvironmentMissing(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(b.out, "✗ %v\n", err)
}
