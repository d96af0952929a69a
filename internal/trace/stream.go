package trace

import (
	"bufio"
	"io"
	"sync"
)

// streamTracer пишет события сразу, под мьютексом, через bufio.
type streamTracer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	level  Level
	enc    encoding
}

func newStream(w io.Writer, closer io.Closer, level Level, enc encoding) *streamTracer {
	return &streamTracer{w: bufio.NewWriter(w), closer: closer, level: level, enc: enc}
}

func (t *streamTracer) Emit(ev Event) {
	if !t.level.Accepts(&ev) {
		return
	}
	line := enc(t.enc, &ev)
	t.mu.Lock()
	// трассировка не должна ронять прогон линтера
	_, _ = t.w.Write(line)
	// ошибки пишем сразу: после них процесс может упасть
	if ev.Kind == KindError {
		_ = t.w.Flush()
	}
	t.mu.Unlock()
}

func (t *streamTracer) Level() Level { return t.level }

func (t *streamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.w.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}
