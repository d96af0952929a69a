package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cairolint/internal/diag"
	"cairolint/internal/diagfmt"
	"cairolint/internal/driver"
	"cairolint/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.cairo|directory|-]...",
	Short: "Run lints on Cairo source files or directories",
	Long: `Run lints on the given files and on all *.cairo files within the given directories.
Without arguments the current directory is checked; "-" reads a single file from stdin.`,
	RunE: runDiagnose,
}

// init registers CLI flags for the diag command used by runDiagnose.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagCmd.Flags().String("ui", "off", "interactive progress view (auto|on|off)")
	diagCmd.Flags().String("path-mode", "", "how to print paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("show-fixes", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("preview", false, "preview fix edits as before/after lines")
	diagCmd.Flags().Int("context", 0, "lines of source context around each diagnostic (0..10)")
	diagCmd.Flags().String("stdin-name", "<stdin>", "file name reported for input read from stdin")
	addRunFlags(diagCmd)
}

type diagOutput struct {
	format    diagfmt.Format
	pathMode  diagfmt.PathMode
	showFixes bool
	showNotes bool
	preview   bool
	context   int
}

func readDiagOutput(cmd *cobra.Command, s *runSettings) (diagOutput, error) {
	var out diagOutput
	format, err := diagfmt.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return out, usageError(err)
	}
	out.format = format

	pathMode := s.cfg.Output.PathMode
	if cmd.Flags().Changed("path-mode") {
		pathMode, _ = cmd.Flags().GetString("path-mode")
	}
	if out.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return out, usageError(err)
	}

	out.showFixes, _ = cmd.Flags().GetBool("show-fixes")
	out.showFixes = out.showFixes || s.cfg.Output.Fixes
	out.showNotes, _ = cmd.Flags().GetBool("with-notes")
	out.preview, _ = cmd.Flags().GetBool("preview")
	if out.preview {
		out.showFixes = true
	}
	out.context = s.cfg.Output.Context
	if cmd.Flags().Changed("context") {
		out.context, _ = cmd.Flags().GetInt("context")
	}
	if out.context < 0 || out.context > 10 {
		return out, usageError(fmt.Errorf("--context must be in 0..10, got %d", out.context))
	}
	return out, nil
}

// runDiagnose executes the "diag" command: it runs the lints over the given
// paths, prints the diagnostics in the chosen format and exits with 1 when
// any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	out, err := readDiagOutput(cmd, s)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode("ui", uiValue)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var res *driver.Result
	switch {
	case len(args) == 1 && args[0] == "-":
		name, _ := cmd.Flags().GetString("stdin-name")
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return &exitError{code: exitFailure, err: fmt.Errorf("read stdin: %w", readErr)}
		}
		res = driver.DiagnoseBytes(ctx, name, content, s.opts)
	case !s.quiet && modeEnabled(mode, os.Stderr):
		res, err = runDiagnoseWithUI(ctx, "cairolint diag", s, cmd.ErrOrStderr())
	default:
		res, err = s.diagnose(ctx)
	}
	if err != nil {
		return err
	}

	bag := res.Bag()
	if err := writeDiagnostics(cmd.OutOrStdout(), bag, res, out, args); err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	if out.format == diagfmt.FormatPretty && !s.quiet {
		printSummary(cmd.ErrOrStderr(), bag, res)
	}
	s.finish()

	if res.HasErrors() {
		return errFindings
	}
	return nil
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, res *driver.Result, out diagOutput, args []string) error {
	switch out.format {
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         out.pathMode,
			IncludeNotes:     out.showNotes,
			IncludeFixes:     out.showFixes,
			IncludePreviews:  out.preview,
		})
	case diagfmt.FormatSARIF:
		return diagfmt.Sarif(w, bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "cairolint",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"diag"}, args...),
		})
	case diagfmt.FormatShort:
		return diagfmt.Short(w, bag, res.FileSet)
	default:
		diagfmt.Pretty(w, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       colorEnabled(),
			Context:     int8(out.context), // #nosec G115 -- проверено в readDiagOutput
			PathMode:    out.pathMode,
			ShowNotes:   out.showNotes,
			ShowFixes:   out.showFixes,
			ShowPreview: out.preview,
		})
		return nil
	}
}

func printSummary(w io.Writer, bag *diag.Bag, res *driver.Result) {
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s), %d info in %d file(s)", errs, warns, infos, len(res.Files))
	if cached := res.CachedCount(); cached > 0 {
		fmt.Fprintf(w, ", %d cached", cached)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, ", %d dropped by --max-diagnostics", dropped)
	}
	fmt.Fprintln(w)
}
