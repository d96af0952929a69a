package observ

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimerAggregatesConcurrentAdds(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
			tm.Add("lint", time.Duration(i+1)*time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	byName := map[string]PhaseReport{}
	for _, p := range r.Phases {
		byName[p.Name] = p
	}
	want := map[string]PhaseReport{
		"parse": {Name: "parse", TotalMS: 8, Count: 8, SlowestMS: 1},
		"lint":  {Name: "lint", TotalMS: 36, Count: 8, SlowestMS: 8},
	}
	if diff := cmp.Diff(want, byName); diff != "" {
		t.Fatalf("phases (-want +got):\n%s", diff)
	}
	if r.TotalMS != 44 {
		t.Fatalf("total = %v, want 44", r.TotalMS)
	}
}

func TestTimerKeepsFirstSeenOrder(t *testing.T) {
	tm := NewTimer()
	tm.Add("load", time.Millisecond)
	tm.Measure("parse", func() {})
	tm.Add("load", time.Millisecond)

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "load" || r.Phases[1].Name != "parse" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	sum := tm.Summary()
	lines := strings.Split(strings.TrimSpace(sum), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "phase") || !strings.HasPrefix(lines[3], "total") {
		t.Fatalf("summary:\n%s", sum)
	}
	if !strings.Contains(lines[1], "load") || !strings.Contains(lines[1], "2.00") {
		t.Fatalf("load row = %q", lines[1])
	}
}

func TestTimerNilIsSafe(t *testing.T) {
	var tm *Timer
	tm.Add("x", time.Second)
	tm.Measure("y", func() {})
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}
