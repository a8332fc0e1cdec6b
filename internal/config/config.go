package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	VenvDir     string
	ManagePy    string

	// Delegate settings
	DefaultModules   []string
	KnownTestClasses []KnownModule
	VerboseLevel     int

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors    int
	WatchDebounce time.Duration

	// SaveResults makes single runs store their results for failures and list
	SaveResults bool

	// Paths to ignore when scanning
	PathsToIgnore []string

	// DotEnv holds the values read from the project's .env file
	DotEnv map[string]string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		VenvDir:        DefaultVenvDir,
		ManagePy:       DefaultManagePy,
		VerboseLevel:   DefaultVerboseLevel,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		WatchDebounce:  DefaultWatchDebounce,
		DotEnv:         map[string]string{},
	}
	// Copy defaults so callers can't mutate the package-level slices
	cfg.DefaultModules = append([]string(nil), DefaultModules...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	cfg.KnownTestClasses = make([]KnownModule, len(DefaultKnownTestClasses))
	for i, m := range DefaultKnownTestClasses {
		cfg.KnownTestClasses[i] = KnownModule{Module: m.Module, Classes: append([]string(nil), m.Classes...)}
	}
	return cfg
}

// Load layers runtests.toml, .env and the process environment over the defaults,
// then applies the command flags.
func (c *Config) Load() error {
	if c.Flags.ProjectPath != "" {
		c.ProjectPath = c.Flags.ProjectPath
	}

	if err := c.LoadFile(filepath.Join(c.ProjectPath, FileName)); err != nil {
		return err
	}
	if err := c.LoadDotEnv(filepath.Join(c.ProjectPath, DotEnvFileName)); err != nil {
		return err
	}
	if err := c.applyEnv(); err != nil {
		return err
	}

	c.ApplyFlags()
	return c.resolveProjectPath()
}

// resolveProjectPath makes ProjectPath absolute. The delegate runs with the
// project as its working directory, so every derived path must not depend on
// the wrapper's own.
func (c *Config) resolveProjectPath() error {
	abs, err := filepath.Abs(c.ProjectPath)
	if err != nil {
		return fmt.Errorf("resolve project path %q: %w", c.ProjectPath, err)
	}
	c.ProjectPath = abs
	return nil
}

// ApplyFlags copies flag overrides onto the config
func (c *Config) ApplyFlags() {
	if c.Flags.ProjectPath != "" {
		c.ProjectPath = c.Flags.ProjectPath
	}
	if c.Flags.Venv != "" {
		c.VenvDir = c.Flags.Venv
	}
	if c.Flags.Processors > 0 {
		c.Processors = c.Flags.Processors
	}
	if c.Flags.Debounce > 0 {
		c.WatchDebounce = c.Flags.Debounce
	}
	if c.Flags.Save {
		c.SaveResults = true
	}
}

// applyEnv applies ASCENDIA_* overrides. The process environment wins over .env.
func (c *Config) applyEnv() error {
	if v, ok := c.LookupEnv(EnvVenv); ok && v != "" {
		c.VenvDir = v
	}
	if v, ok := c.LookupEnv(EnvManagePy); ok && v != "" {
		c.ManagePy = v
	}
	if v, ok := c.LookupEnv(EnvVerboseLevel); ok && v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerboseLevel, v, err)
		}
		c.VerboseLevel = level
	}
	if v, ok := c.LookupEnv(EnvDefaultModules); ok && v != "" {
		c.DefaultModules = strings.Fields(strings.ReplaceAll(v, ",", " "))
	}
	return nil
}

// LookupEnv looks a key up in the process environment, then in .env
func (c *Config) LookupEnv(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := c.DotEnv[key]
	return v, ok
}

// Labels returns the labels to pass to the delegate: the given selectors, or the
// default module list when none were given.
func (c *Config) Labels(selectors []string) []string {
	if len(selectors) > 0 {
		return append([]string(nil), selectors...)
	}
	return append([]string(nil), c.DefaultModules...)
}

// Verbosity returns the --verbosity level for the delegate; 0 leaves the delegate's default.
func (c *Config) Verbosity() int {
	if c.Flags.Verbose {
		return c.VerboseLevel
	}
	return 0
}

// VenvPath returns the virtual environment directory, relative to the project unless absolute
func (c *Config) VenvPath() string {
	if filepath.IsAbs(c.VenvDir) {
		return c.VenvDir
	}
	return filepath.Join(c.ProjectPath, c.VenvDir)
}

// VenvBinDir returns the directory holding the environment's executables
func (c *Config) VenvBinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(c.VenvPath(), "Scripts")
	}
	return filepath.Join(c.VenvPath(), "bin")
}

// GetPythonPath returns the path to the environment's interpreter
func (c *Config) GetPythonPath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(c.VenvBinDir(), "python.exe")
	}
	return filepath.Join(c.VenvBinDir(), "python")
}

// GetManagePyPath returns the path to manage.py
func (c *Config) GetManagePyPath() string {
	if filepath.IsAbs(c.ManagePy) {
		return c.ManagePy
	}
	return filepath.Join(c.ProjectPath, c.ManagePy)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so every command reads/writes the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
