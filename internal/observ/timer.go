// Package observ collects per-phase timings for `--timings`.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// stat - агрегат одной фазы. Фазы, идущие по файлу в воркерах (parse,
// sema, lint), складываются, поэтому total может превышать время прогона.
type stat struct {
	total   time.Duration
	count   int
	slowest time.Duration
}

// Timer aggregates phase durations reported by driver workers. The zero
// value is not usable; a nil *Timer ignores everything.
type Timer struct {
	mu    sync.Mutex
	order []string
	stats map[string]*stat
}

func NewTimer() *Timer {
	return &Timer{stats: make(map[string]*stat)}
}

// Add records one sample of the named phase.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.stats[name]
	if !ok {
		s = &stat{}
		t.stats[name] = s
		t.order = append(t.order, name)
	}
	s.total += d
	s.count++
	s.slowest = max(s.slowest, d)
}

// Measure runs fn and records its wall time under name.
func (t *Timer) Measure(name string, fn func()) {
	start := time.Now()
	fn()
	t.Add(name, time.Since(start))
}

// PhaseReport is the serialisable form of one phase.
type PhaseReport struct {
	Name      string  `json:"name"`
	TotalMS   float64 `json:"total_ms"`
	Count     int     `json:"count"`
	SlowestMS float64 `json:"slowest_ms"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists phases in the order they were first seen.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var rep Report
	var total time.Duration
	for _, name := range t.order {
		s := t.stats[name]
		total += s.total
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:      name,
			TotalMS:   millis(s.total),
			Count:     s.count,
			SlowestMS: millis(s.slowest),
		})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report as a small table for stderr:
//
//	phase          total ms   runs   slowest ms
//	parse             12.40      8         3.10
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %10s %6s %12s\n", "phase", "total ms", "runs", "slowest ms")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "%-12s %10.2f %6d %12.2f\n", p.Name, p.TotalMS, p.Count, p.SlowestMS)
	}
	fmt.Fprintf(&b, "%-12s %10.2f\n", "total", rep.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
