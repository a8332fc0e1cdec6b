package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors runtests.toml. Zero values leave the current setting alone.
type fileConfig struct {
	Venv           string              `toml:"venv"`
	ManagePy       string              `toml:"manage_py"`
	DefaultModules []string            `toml:"default_modules"`
	VerboseLevel   int                 `toml:"verbose_level"`
	Processors     int                 `toml:"processors"`
	Ignore         []string            `toml:"ignore"`
	WatchDebounce  string              `toml:"watch_debounce"`
	SaveResults    bool                `toml:"save_results"`
	KnownTests     map[string][]string `toml:"known_tests"`
}

// LoadFile applies a runtests.toml file. A missing file is not an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Venv != "" {
		c.VenvDir = fc.Venv
	}
	if fc.ManagePy != "" {
		c.ManagePy = fc.ManagePy
	}
	if len(fc.DefaultModules) > 0 {
		c.DefaultModules = fc.DefaultModules
	}
	if fc.VerboseLevel > 0 {
		c.VerboseLevel = fc.VerboseLevel
	}
	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if len(fc.Ignore) > 0 {
		c.PathsToIgnore = append(c.PathsToIgnore, fc.Ignore...)
	}
	if fc.SaveResults {
		c.SaveResults = true
	}
	if fc.WatchDebounce != "" {
		d, err := time.ParseDuration(fc.WatchDebounce)
		if err != nil {
			return fmt.Errorf("invalid watch_debounce %q: %w", fc.WatchDebounce, err)
		}
		c.WatchDebounce = d
	}
	if len(fc.KnownTests) > 0 {
		modules := make([]string, 0, len(fc.KnownTests))
		for m := range fc.KnownTests {
			modules = append(modules, m)
		}
		sort.Strings(modules)
		c.KnownTestClasses = c.KnownTestClasses[:0]
		for _, m := range modules {
			c.KnownTestClasses = append(c.KnownTestClasses, KnownModule{Module: m, Classes: fc.KnownTests[m]})
		}
	}
	return nil
}

// LoadDotEnv reads the project's .env file into DotEnv without touching the
// process environment. A missing file is not an error.
func (c *Config) LoadDotEnv(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.DotEnv = values
	return nil
}
