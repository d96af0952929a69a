package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret, fix, added, removed *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		code:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgMagenta, color.Bold),
		fix:     color.New(color.FgGreen),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret, p.fix, p.added, p.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	start, _ := fs.Resolve(d.Primary)
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, fs, d.Primary, opts, pal)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"),
				formatPath(fs, note.Span.File, opts.PathMode), ns.Line, ns.Col, note.Msg)
		}
	}
	if opts.ShowFixes && len(d.Fixes) > 0 {
		writeFixes(w, fs, d.Fixes, opts, pal)
	}
}

// writeSnippet печатает строку(и) с основным спаном и каретку под ним.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, pal palette) {
	file := fs.Get(span.File)
	if len(file.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- int8 >= 0
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	last = min(last, file.LineCount())

	gutterWidth := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", gutterWidth)
	for ln := first; ln <= last; ln++ {
		text := file.Line(ln)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, ln), pal.gutter.Sprint("|"), text)
		if ln != start.Line {
			continue
		}
		pad, width := caretGeometry(file.Line(ln), start, end)
		fmt.Fprintf(w, " %s %s %s%s\n", blank, pal.gutter.Sprint("|"), pad,
			pal.caret.Sprint("^"+strings.Repeat("~", max(width-1, 0))))
	}
}

// caretGeometry returns the padding before the caret and its width in
// terminal cells. Tabs in the prefix are kept so the caret lines up.
func caretGeometry(line string, start, end source.LineCol) (string, int) {
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	to = max(to, from)

	var pad strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String(), max(runewidth.StringWidth(line[from:to]), 1)
}

func writeFixes(w io.Writer, fs *source.FileSet, fixes []diag.Fix, opts PrettyOpts, pal palette) {
	ctx := diag.FixBuildContext{FileSet: fs}
	for i, f := range sortedFixes(fixes) {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(w, "  %s %s (unavailable: %v)\n", pal.fix.Sprintf("fix #%d:", i+1), f.Title, err)
			continue
		}
		meta := []string{resolved.Kind.String(), resolved.Applicability.String()}
		if resolved.IsPreferred {
			meta = append(meta, "preferred")
		}
		line := fmt.Sprintf("  %s %s [%s]", pal.fix.Sprintf("fix #%d:", i+1), resolved.Title, strings.Join(meta, ", "))
		if resolved.ID != "" {
			line += " id=" + resolved.ID
		}
		fmt.Fprintln(w, line)
		for _, edit := range resolved.Edits {
			fmt.Fprintf(w, "      edit %s apply=%q\n", spanText(edit.Span, fs), edit.NewText)
			if !opts.ShowPreview {
				continue
			}
			preview, err := previewEdit(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "      preview:")
			for _, l := range preview.before {
				fmt.Fprintln(w, "        "+pal.removed.Sprint("- "+l))
			}
			for _, l := range preview.after {
				fmt.Fprintln(w, "        "+pal.added.Sprint("+ "+l))
			}
		}
	}
}

// sortedFixes orders fixes for display: preferred first, then safer ones.
func sortedFixes(fixes []diag.Fix) []diag.Fix {
	out := append([]diag.Fix(nil), fixes...)
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := out[i], out[j]
		if fi.IsPreferred != fj.IsPreferred {
			return fi.IsPreferred
		}
		if fi.Applicability != fj.Applicability {
			return fi.Applicability < fj.Applicability
		}
		if fi.Kind != fj.Kind {
			return fi.Kind < fj.Kind
		}
		if fi.Title != fj.Title {
			return fi.Title < fj.Title
		}
		return fi.ID < fj.ID
	})
	return out
}
