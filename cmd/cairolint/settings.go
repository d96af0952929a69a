package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"cairolint/internal/config"
	"cairolint/internal/driver"
	"cairolint/internal/metrics"
	"cairolint/internal/observ"
)

// runSettings - всё, что нужно diag и fix после слияния cairolint.toml с флагами.
type runSettings struct {
	cfg         config.Config
	paths       []string
	opts        driver.Options
	errOut      io.Writer
	quiet       bool
	timings     bool
	metricsPath string
}

// addRunFlags registers the flags diag and fix share.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0=unlimited)")
	cmd.Flags().StringSlice("enable", nil, "only run these lints (codes, rule or category names)")
	cmd.Flags().StringSlice("disable", nil, "skip these lints")
	cmd.Flags().StringSlice("exclude", nil, "glob of paths to skip, relative to the config root")
	cmd.Flags().Bool("no-cache", false, "do not read or write the diagnostics cache")
	cmd.Flags().String("metrics", "", "write Prometheus metrics of the run to FILE")
}

func loadSettings(cmd *cobra.Command, args []string) (*runSettings, error) {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := loadConfig(cmd, paths[0])
	if err != nil {
		return nil, usageError(err)
	}

	var o config.Overrides
	if cmd.Flags().Changed("jobs") {
		jobs, _ := cmd.Flags().GetInt("jobs")
		o.Jobs = &jobs
	}
	if cmd.Flags().Changed("max-diagnostics") {
		maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")
		o.MaxDiagnostics = &maxDiags
	}
	if o.Enable, err = cmd.Flags().GetStringSlice("enable"); err != nil {
		return nil, fmt.Errorf("failed to get enable flag: %w", err)
	}
	if o.Disable, err = cmd.Flags().GetStringSlice("disable"); err != nil {
		return nil, fmt.Errorf("failed to get disable flag: %w", err)
	}
	if o.Exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
		return nil, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	if o.NoCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		o.Format = f.Value.String()
	}
	cfg = cfg.Merge(o)
	if err := cfg.Validate(); err != nil {
		return nil, usageError(err)
	}
	sel, err := cfg.Selection()
	if err != nil {
		return nil, usageError(err)
	}

	s := &runSettings{cfg: cfg, paths: paths, errOut: cmd.ErrOrStderr()}
	if s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.metricsPath, err = cmd.Flags().GetString("metrics"); err != nil {
		return nil, fmt.Errorf("failed to get metrics flag: %w", err)
	}

	s.opts = driver.Options{
		Jobs:           cfg.Run.Jobs,
		MaxDiagnostics: cfg.Run.MaxDiagnostics,
		Selection:      sel,
		BaseDir:        cfg.Root,
		Exclude: func(path string) bool {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			return cfg.Excluded(path)
		},
	}
	if s.timings {
		s.opts.Timer = observ.NewTimer()
	}
	if s.metricsPath != "" {
		s.opts.Metrics = metrics.New()
	}
	if cfg.CacheEnabled() {
		cache, cacheErr := openCache(cfg)
		if cacheErr != nil {
			// без кэша просто медленнее
			s.warnf("cache disabled: %v", cacheErr)
		} else {
			s.opts.Cache = cache
		}
	}
	return s, nil
}

func loadConfig(cmd *cobra.Command, firstPath string) (config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	return config.Discover(firstPath)
}

func openCache(cfg config.Config) (*driver.DiskCache, error) {
	if dir := cfg.Run.CacheDir; dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.Root, dir)
		}
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("cairolint")
}

func (s *runSettings) warnf(format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.errOut, "warning: "+format+"\n", args...)
}

// finish prints timings and writes metrics. Ошибки здесь только
// предупреждения, код выхода не меняется.
func (s *runSettings) finish() {
	if s.timings && !s.quiet {
		fmt.Fprint(s.errOut, s.opts.Timer.Summary())
	}
	if s.metricsPath != "" {
		if err := s.opts.Metrics.WriteTextfile(s.metricsPath); err != nil {
			s.warnf("metrics: %v", err)
		}
	}
}

// diagnose runs the driver. Missing paths, empty directories and
// cancellation all end with exit code 2.
func (s *runSettings) diagnose(ctx context.Context) (*driver.Result, error) {
	res, err := driver.Diagnose(ctx, s.paths, s.opts)
	if err != nil {
		return nil, &exitError{code: exitFailure, err: err}
	}
	return res, nil
}
