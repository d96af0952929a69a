// Package config loads cairolint.toml.
//
// Файл ищется вверх от цели: первая найденная директория с
// cairolint.toml становится корнем проекта, пути exclude считаются от неё.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"cairolint/internal/lint"
)

// FileName is the configuration file looked up by Find.
const FileName = "cairolint.toml"

// ErrNotFound is returned by Find when no cairolint.toml exists up to the
// filesystem root.
var ErrNotFound = errors.New(FileName + " not found")

// Config mirrors cairolint.toml.
type Config struct {
	Lint   LintConfig   `toml:"lint"`
	Run    RunConfig    `toml:"run"`
	Output OutputConfig `toml:"output"`

	// Path is the file the config was read from, empty for Default().
	Path string `toml:"-"`
	// Root is the directory exclude globs are relative to.
	Root string `toml:"-"`
}

type LintConfig struct {
	Enable  []string `toml:"enable"` // пусто - все правила
	Disable []string `toml:"disable"`
}

type RunConfig struct {
	Jobs           int      `toml:"jobs"` // 0 - GOMAXPROCS
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Exclude        []string `toml:"exclude"`
	Cache          *bool    `toml:"cache"`
	CacheDir       string   `toml:"cache_dir"`
}

type OutputConfig struct {
	Format   string `toml:"format"`
	PathMode string `toml:"path_mode"`
	Fixes    bool   `toml:"show_fixes"`
	Context  int    `toml:"context"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Run: RunConfig{MaxDiagnostics: 0},
	}
}

// CacheEnabled reports whether the diagnostics cache is on. Кэш включён,
// пока явно не выключен.
func (c Config) CacheEnabled() bool {
	return c.Run.Cache == nil || *c.Run.Cache
}

// Find walks up from startDir to locate cairolint.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Load reads and validates one config file. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the config for startDir. Без файла возвращает
// Default() с Root = startDir.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		cfg := Default()
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return Config{}, absErr
		}
		if info, statErr := os.Stat(root); statErr == nil && !info.IsDir() {
			root = filepath.Dir(root)
		}
		cfg.Root = root
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// Validate checks selectors, globs and numeric limits.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Selection(); err != nil {
		errs = append(errs, err)
	}
	for _, pat := range c.Run.Exclude {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("run.exclude: bad glob %q", pat))
		}
	}
	if c.Run.Jobs < 0 {
		errs = append(errs, fmt.Errorf("run.jobs must be >= 0, got %d", c.Run.Jobs))
	}
	if c.Run.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("run.max_diagnostics must be >= 0, got %d", c.Run.MaxDiagnostics))
	}
	if c.Output.Context < 0 || c.Output.Context > 10 {
		errs = append(errs, fmt.Errorf("output.context must be in 0..10, got %d", c.Output.Context))
	}
	return errors.Join(errs...)
}

// Selection builds the lint selection from [lint].
func (c Config) Selection() (lint.Selection, error) {
	return lint.NewSelection(c.Lint.Enable, c.Lint.Disable)
}

// Excluded reports whether path matches one of the exclude globs. path may be
// absolute or relative to Root.
func (c Config) Excluded(path string) bool {
	if len(c.Run.Exclude) == 0 {
		return false
	}
	rel := path
	if filepath.IsAbs(path) && c.Root != "" {
		r, err := filepath.Rel(c.Root, path)
		if err != nil {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Run.Exclude {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Merge overlays non-zero CLI values on top of the file config.
func (c Config) Merge(o Overrides) Config {
	if o.Jobs != nil {
		c.Run.Jobs = *o.Jobs
	}
	if o.MaxDiagnostics != nil {
		c.Run.MaxDiagnostics = *o.MaxDiagnostics
	}
	if o.NoCache {
		off := false
		c.Run.Cache = &off
	}
	if len(o.Enable) > 0 {
		c.Lint.Enable = o.Enable
	}
	c.Lint.Disable = append(append([]string(nil), c.Lint.Disable...), o.Disable...)
	c.Run.Exclude = append(append([]string(nil), c.Run.Exclude...), o.Exclude...)
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	return c
}

// Overrides are the command-line values that win over cairolint.toml.
type Overrides struct {
	Jobs           *int
	MaxDiagnostics *int
	NoCache        bool
	Enable         []string
	Disable        []string
	Exclude        []string
	Format         string
}
