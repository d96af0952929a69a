package diagfmt

import (
	"fmt"

	"cairolint/internal/source"
)

// Format selects the diagnostics output format.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
	FormatSARIF  Format = "sarif"
)

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPretty, FormatShort, FormatJSON, FormatSARIF:
		return f, nil
	case "":
		return FormatPretty, nil
	}
	return "", fmt.Errorf("unknown format %q (want pretty|short|json|sarif)", s)
}

// PathMode is the --path-mode flag: how file paths are printed.
type PathMode uint8

const (
	// PathModeAuto prints paths relative to the base dir, shortened when long.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// pathModes индексируется PathMode.
var pathModes = [...]struct {
	name  string
	style source.PathStyle
}{
	PathModeAuto:     {"auto", source.PathShort},
	PathModeAbsolute: {"absolute", source.PathAbsolute},
	PathModeRelative: {"relative", source.PathRelative},
	PathModeBasename: {"basename", source.PathBase},
}

func (m PathMode) String() string {
	if int(m) >= len(pathModes) {
		return pathModes[PathModeAuto].name
	}
	return pathModes[m].name
}

func (m PathMode) style() source.PathStyle {
	if int(m) >= len(pathModes) {
		return source.PathShort
	}
	return pathModes[m].style
}

// ParsePathMode parses a --path-mode flag value; empty means auto.
func ParsePathMode(s string) (PathMode, error) {
	if s == "" {
		return PathModeAuto, nil
	}
	for m, pm := range pathModes {
		if pm.name == s {
			return PathMode(m), nil // #nosec G115 -- таблица короче 256
		}
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста до и после основной
	PathMode    PathMode
	Width       uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}
