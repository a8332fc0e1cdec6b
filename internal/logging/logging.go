// Package logging builds the diagnostic logger shared by all commands.
// User-facing banners go to stdout through the ui package; this logger
// writes to stderr and stays quiet unless something needs attention.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w. debug lowers the level from warn to debug.
func New(w io.Writer, debug bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "runtests",
	})
	SetDebug(logger, debug)
	return logger
}

// SetDebug switches an existing logger between warn and debug level
func SetDebug(logger *log.Logger, debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
		return
	}
	logger.SetLevel(log.WarnLevel)
	logger.SetReportTimestamp(false)
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
