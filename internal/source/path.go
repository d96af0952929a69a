package source

import (
	"os"
	"path/filepath"
)

// PathStyle selects how DisplayPath prints a file name.
type PathStyle uint8

const (
	PathAsLoaded PathStyle = iota
	// PathShort keeps short or relative paths and cuts long absolute ones to
	// the base name.
	PathShort
	PathAbsolute
	PathRelative // относительно BaseDir
	PathBase
)

// shortPathLimit - длина, после которой абсолютный путь в PathShort режется.
const shortPathLimit = 40

// DisplayPath renders the path of id in the given style. When a conversion
// fails the path is returned as loaded.
func (fileSet *FileSet) DisplayPath(id FileID, style PathStyle) string {
	p := fileSet.files[id].Path
	switch style {
	case PathShort:
		if len(p) >= shortPathLimit && filepath.IsAbs(p) {
			return filepath.Base(p)
		}
	case PathAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathRelative:
		if rel, err := relativePath(p, fileSet.BaseDir()); err == nil {
			return rel
		}
	case PathBase:
		return filepath.Base(p)
	}
	return p
}

func relativePath(path, base string) (string, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = wd
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// normalizePath даёт единый вид пути в кэше, дифах и отчётах.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
