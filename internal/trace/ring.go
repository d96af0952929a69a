package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N accepted events. Built by New in ring mode it
// writes them out on Close; built directly it is only read via Snapshot.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
	level  Level

	out    io.Writer
	closer io.Closer
	enc    encoding
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev Event) {
	if !t.level.Accepts(&ev) {
		return
	}
	t.mu.Lock()
	t.events[t.next] = ev
	t.next++
	if t.next == len(t.events) {
		t.next, t.full = 0, true
	}
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

func (t *RingTracer) Level() Level { return t.level }

// Close writes the snapshot to the configured output, if any.
func (t *RingTracer) Close() error {
	if t.out == nil {
		return nil
	}
	var err error
	for _, ev := range t.Snapshot() {
		if _, err = t.out.Write(enc(t.enc, &ev)); err != nil {
			break
		}
	}
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	t.out, t.closer = nil, nil
	return err
}
