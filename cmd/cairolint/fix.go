package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cairolint/internal/fix"
	"cairolint/internal/lint"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.cairo|directory]...",
	Short: "Apply available fixes to Cairo source files",
	Long: `Run the lints, then apply the fixes they offer according to the chosen strategy.
Overlapping fixes are skipped; running fix again picks them up.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply every fix of one lint (code or rule name)")
	fixCmd.Flags().Bool("diff", false, "print a unified diff instead of writing files")
	addRunFlags(fixCmd)
}

func readApplyOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	dryRun, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return fix.ApplyOptions{}, err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, usageError(fmt.Errorf("--id cannot be combined with --all or --once"))
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, usageError(fmt.Errorf("--all and --once are mutually exclusive"))
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, DryRun: dryRun}
	switch {
	case targetID != "":
		codes, err := lint.Resolve(targetID)
		if err != nil {
			return fix.ApplyOptions{}, usageError(err)
		}
		if len(codes) != 1 {
			return fix.ApplyOptions{}, usageError(fmt.Errorf("--id %q names %d lints, pick one", targetID, len(codes)))
		}
		opts.Mode = fix.ApplyModeID
		opts.TargetID = codes[0].ID()
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}
	return opts, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	applyOpts, err := readApplyOptions(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	res, err := s.diagnose(cmd.Context())
	if err != nil {
		return err
	}

	var (
		applied  *fix.ApplyResult
		applyErr error
	)
	s.opts.Timer.Measure("fix", func() {
		applied, applyErr = fix.Apply(res.FileSet, res.Diagnostics(), applyOpts)
	})
	if applied != nil {
		s.opts.Metrics.FixApplied(len(applied.Applied))
		for _, skip := range applied.Skipped {
			s.opts.Metrics.FixSkipped(skip.Reason)
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case errors.Is(applyErr, fix.ErrNoFixes):
		if !s.quiet {
			fmt.Fprintln(out, "No applicable fixes.")
		}
		if applied != nil {
			if err := printSkipped(out, applied); err != nil {
				return err
			}
		}
	case applyErr != nil:
		return &exitError{code: exitFailure, err: fmt.Errorf("fix: %w", applyErr)}
	case applyOpts.DryRun:
		if err := printDiffs(out, applied); err != nil {
			return &exitError{code: exitFailure, err: err}
		}
	default:
		if err := handleApplyResult(out, applied); err != nil {
			return err
		}
	}
	s.finish()

	if res.HasErrors() {
		return errFindings
	}
	return nil
}

func printDiffs(out io.Writer, res *fix.ApplyResult) error {
	for _, change := range res.FileChanges {
		diff, err := change.Diff()
		if err != nil {
			return fmt.Errorf("diff %s: %w", change.Path, err)
		}
		if _, err := io.WriteString(out, diff); err != nil {
			return err
		}
	}
	return nil
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult) error {
	var printErr error

	if len(res.Applied) > 0 {
		_, printErr = fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		if printErr != nil {
			return printErr
		}
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			_, printErr = fmt.Fprintf(out, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.FileChanges) > 0 {
		_, printErr = fmt.Fprintln(out, "Updated files:")
		if printErr != nil {
			return printErr
		}
		for _, change := range res.FileChanges {
			_, printErr = fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			if printErr != nil {
				return printErr
			}
		}
	}
	return printSkipped(out, res)
}

func printSkipped(out io.Writer, res *fix.ApplyResult) error {
	if len(res.Skipped) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, "Skipped fixes:"); err != nil {
		return err
	}
	for _, skip := range res.Skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		var err error
		if skip.Title != "" {
			_, err = fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
		} else {
			_, err = fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
