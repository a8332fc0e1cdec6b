package commands

import (
	"errors"
	"io/fs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runtests/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	session *Session
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(session *Session, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		session: session,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.session.storage.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			color.New(color.FgYellow).Fprintln(fc.session.out, "No stored test results yet. Run the tests first.")
			return nil
		}
		return err
	}

	return fc.viewer.View(results)
}
