package version

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Version information for the cairolint CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored раскрашивает major.minor.patch по компонентам; суффикс
// (-dev, +build) остаётся как есть. Несемантическую строку не трогает.
func Colored(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// Banner пишет блок `cairolint version` в w.
func Banner(w io.Writer, colored bool) error {
	v := Version
	if colored {
		v = Colored(v)
	}
	if _, err := fmt.Fprintf(w, "cairolint %s\n", v); err != nil {
		return err
	}
	if GitCommit != "" {
		line := "commit: " + GitCommit
		if GitMessage != "" {
			line += " (" + GitMessage + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if BuildDate != "" {
		if _, err := fmt.Fprintln(w, "built:  "+BuildDate); err != nil {
			return err
		}
	}
	return nil
}
