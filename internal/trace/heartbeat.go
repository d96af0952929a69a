package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/petermattis/goid"
)

// StartHeartbeat emits a heartbeat every interval until stop is called.
// A run whose trace shows heartbeats with no end events in between is stuck
// on one file. stop is idempotent and waits for the goroutine.
func StartHeartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			select {
			case <-ticker.C:
				t.Emit(Event{
					At:     time.Now(),
					Seq:    seqCounter.Add(1),
					Kind:   KindHeartbeat,
					Scope:  ScopeRun,
					GID:    goid.Get(),
					Name:   "heartbeat",
					Detail: fmt.Sprintf("#%d", n),
				})
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
