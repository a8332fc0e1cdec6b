package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// labelsAnnotation marks commands whose positional arguments are test labels
const labelsAnnotation = "runtests/labels"

// labelFlagError is an unknown flag on a command that takes labels. The token
// is retried as a label, since Django labels and unittest options may start
// with a dash.
type labelFlagError struct {
	cmd *cobra.Command
	err error
}

func (e *labelFlagError) Error() string { return e.err.Error() }

func (e *labelFlagError) Unwrap() error { return e.err }

func flagError(cmd *cobra.Command, err error) error {
	if cmd.Annotations[labelsAnnotation] == "" {
		return err
	}
	return &labelFlagError{cmd: cmd, err: err}
}

// Execute runs rootCmd with args. When a labels command rejects an unknown
// flag, it runs again with `--` before that token so it is passed on as a label.
func Execute(ctx context.Context, rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	var flagErr *labelFlagError
	if !errors.As(err, &flagErr) {
		return err
	}
	retry, ok := separateLabels(flagErr.cmd.Flags(), args)
	if !ok {
		return err
	}
	rootCmd.SetArgs(retry)
	return rootCmd.ExecuteContext(ctx)
}

// separateLabels inserts `--` before the first dash-prefixed token that is not
// a flag of flags. It reports false when there is no such token.
func separateLabels(flags *pflag.FlagSet, args []string) ([]string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return nil, false
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		known, takesValue := lookupFlag(flags, arg)
		if !known {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...), true
		}
		if takesValue {
			i++
		}
	}
	return nil, false
}

// lookupFlag reports whether arg is made of known flags and whether the next
// token is its value
func lookupFlag(flags *pflag.FlagSet, arg string) (known, takesValue bool) {
	if strings.HasPrefix(arg, "--") {
		name, _, hasValue := strings.Cut(arg[2:], "=")
		f := flags.Lookup(name)
		if f == nil {
			return false, false
		}
		return true, !hasValue && f.NoOptDefVal == ""
	}

	// Shorthands may be grouped (-vp 2, -p2)
	shorthands := arg[1:]
	for j := 0; j < len(shorthands); j++ {
		f := flags.ShorthandLookup(shorthands[j : j+1])
		if f == nil {
			return false, false
		}
		if f.NoOptDefVal == "" {
			rest := shorthands[j+1:]
			return true, rest == "" || rest == "="
		}
	}
	return true, false
}
