package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use;
// the driver emits from every worker goroutine.
type Tracer interface {
	Emit(ev Event)
	Level() Level
	// Close writes whatever is still buffered and releases the output.
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(Event)   {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop drops everything.
var Nop Tracer = nopTracer{}

// Mode selects the sink.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // write each event immediately
	ModeRing                   // keep the last RingSize events, write on Close
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	default:
		return 0, fmt.Errorf("%q (expected: stream|ring)", s)
	}
}

// Config describes the tracer built by New.
type Config struct {
	Level    Level
	Mode     Mode
	Output   string    // file path, "" or "-" for stderr
	Writer   io.Writer // overrides Output
	RingSize int       // default 4096
}

const defaultRingSize = 4096

// New builds a tracer for cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w, closer, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	enc := encodingFor(cfg.Output)
	switch cfg.Mode {
	case ModeStream, 0:
		return newStream(w, closer, cfg.Level, enc), nil
	case ModeRing:
		ring := NewRingTracer(cfg.RingSize, cfg.Level)
		ring.out, ring.closer, ring.enc = w, closer, enc
		return ring, nil
	default:
		return nil, fmt.Errorf("unknown trace mode %d", cfg.Mode)
	}
}

func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	if cfg.Writer != nil {
		return cfg.Writer, nil, nil
	}
	if cfg.Output == "" || cfg.Output == "-" {
		return os.Stderr, nil, nil
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, f, nil
}

type ctxKey struct{}

// WithTracer attaches t to ctx; a nil t detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tracer of ctx or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}
