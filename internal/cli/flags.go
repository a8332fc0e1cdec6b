package cli

import (
	"time"

	"runtests/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	Venv        string
	Debug       bool
	NoColor     bool
	Verbose     bool
	Processors  int
	FailFast    bool
	NameFilter  string
	Debounce    time.Duration
	Save        bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		Venv:        f.Venv,
		Debug:       f.Debug,
		NoColor:     f.NoColor,
		Verbose:     f.Verbose,
		Processors:  f.Processors,
		FailFast:    f.FailFast,
		NameFilter:  f.NameFilter,
		Debounce:    f.Debounce,
		Save:        f.Save,
	}
}
