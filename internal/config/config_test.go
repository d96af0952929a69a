package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cairolint/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[lint]
disable = ["unused_import"]

[run]
jobs = 2
exclude = ["target/**"]
`)
	nested := filepath.Join(root, "src", "deep")
	writeFile(t, filepath.Join(nested, "lib.cairo"), "fn f() {}\n")

	cfg, err := Discover(filepath.Join(nested, "lib.cairo"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != root {
		t.Fatalf("root = %q, want %q", cfg.Root, root)
	}
	if cfg.Run.Jobs != 2 || !cfg.CacheEnabled() {
		t.Fatalf("run = %+v", cfg.Run)
	}
	sel, err := cfg.Selection()
	if err != nil {
		t.Fatal(err)
	}
	if sel.Enabled(diag.LintUnusedImport) || !sel.Enabled(diag.LintDoubleParens) {
		t.Fatal("selection does not follow [lint]")
	}
	if !cfg.Excluded(filepath.Join(root, "target", "dev", "x.cairo")) {
		t.Fatal("target/** must be excluded")
	}
	if cfg.Excluded(filepath.Join(root, "src", "lib.cairo")) {
		t.Fatal("src must not be excluded")
	}
}

func TestFindNotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); !errors.Is(err, ErrNotFound) {
		// выше t.TempDir() может оказаться чужой cairolint.toml
		if err == nil {
			t.Skip("a cairolint.toml exists above the temp dir")
		}
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown_key", "[lint]\nenabel = []\n", "unknown keys: lint.enabel"},
		{"unknown_rule", "[lint]\nenable = [\"no_such_lint\"]\n", "unknown lint"},
		{"bad_glob", "[run]\nexclude = [\"[\"]\n", "bad glob"},
		{"negative_jobs", "[run]\njobs = -1\n", "run.jobs"},
		{"syntax", "[lint\n", "failed to parse TOML"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tc.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	cfg.Lint.Disable = []string{"unused_import"}
	jobs := 4
	merged := cfg.Merge(Overrides{Jobs: &jobs, NoCache: true, Disable: []string{"CL0003"}, Format: "json"})

	if merged.Run.Jobs != 4 || merged.CacheEnabled() || merged.Output.Format != "json" {
		t.Fatalf("merged = %+v", merged)
	}
	if len(merged.Lint.Disable) != 2 || len(cfg.Lint.Disable) != 1 {
		t.Fatalf("disable lists: merged=%v original=%v", merged.Lint.Disable, cfg.Lint.Disable)
	}
}
