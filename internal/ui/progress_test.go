package ui

import (
	"strings"
	"testing"

	"cairolint/internal/driver"
)

func TestApplyTalliesFirstTerminalEvent(t *testing.T) {
	m := NewModel("lint", 3, nil)

	m.apply(driver.Event{File: "a.cairo", Stage: driver.StageLoad, Status: driver.StatusQueued})
	m.apply(driver.Event{File: "a.cairo", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.stages["a.cairo"]; got != driver.StageParse {
		t.Fatalf("stage = %q, want parse", got)
	}
	m.apply(driver.Event{File: "a.cairo", Stage: driver.StageLint, Status: driver.StatusDone, Diagnostics: 3})
	m.apply(driver.Event{File: "b.cairo", Stage: driver.StageLint, Status: driver.StatusCached, Diagnostics: 1})
	// повторное завершение не удваивает счётчик
	m.apply(driver.Event{File: "b.cairo", Stage: driver.StageLint, Status: driver.StatusDone, Diagnostics: 1})
	m.apply(driver.Event{File: "c.cairo", Stage: driver.StageLoad, Status: driver.StatusError, Diagnostics: 1})
	m.apply(driver.Event{Stage: driver.StageLint, Status: driver.StatusDone, Diagnostics: 9})

	want := tally{finished: 3, cached: 1, failed: 1, findings: 5}
	if m.tally != want {
		t.Fatalf("tally = %+v, want %+v", m.tally, want)
	}
	if len(m.order) != 0 || len(m.stages) != 0 {
		t.Fatalf("active window not drained: %v", m.order)
	}
	if p := m.percent(); p != 1.0 {
		t.Fatalf("percent = %v, want 1", p)
	}
}

func TestPercentCountsStagesInFlight(t *testing.T) {
	m := NewModel("lint", 2, nil)
	m.apply(driver.Event{File: "a.cairo", Stage: driver.StageSema, Status: driver.StatusWorking})
	if p := m.percent(); p != 0.25 {
		t.Fatalf("percent = %v, want 0.25", p)
	}
	if p := NewModel("lint", 0, nil).percent(); p != 0 {
		t.Fatalf("empty run percent = %v", p)
	}
}

func TestViewShowsActiveWindow(t *testing.T) {
	m := NewModel("lint", maxActive+3, nil)
	for i := range maxActive + 2 {
		m.apply(driver.Event{File: string(rune('a'+i)) + ".cairo", Stage: driver.StageLint, Status: driver.StatusWorking})
	}
	m.apply(driver.Event{File: "z.cairo", Stage: driver.StageLoad, Status: driver.StatusError, Diagnostics: 1})

	view := m.View()
	for _, want := range []string{"lint: 1/11 files, 1 finding(s)", "1 unreadable", "linting", "a.cairo", "... and 2 more in flight"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "j.cairo") {
		t.Errorf("file beyond the window is listed:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cairo", 20, "short.cairo"},
		{"very/long/path/file.cairo", 10, "...e.cairo"},
		{"abcdef", 3, "def"},
		{"abc", 0, "abc"},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
