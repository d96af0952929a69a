package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindBegin     Kind = iota + 1 // span start
	KindEnd                       // span end, carries Dur
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal
	KindError                     // failure, kept at every level above off
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // one command: diag, fix
	ScopePhase                  // load, cache, apply
	ScopeFile                   // one source file
	ScopeNode                   // one syntax node (fix computation)
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Attr is an ordered key/value pair; order is kept in the output.
type Attr struct {
	Key   string
	Value string
}

// Event is one trace record.
type Event struct {
	At     time.Time
	Seq    uint64
	Kind   Kind
	Scope  Scope
	Span   uint64 // 0 for events outside spans
	Parent uint64
	GID    int64
	Name   string
	Detail string
	Dur    time.Duration
	Attrs  []Attr
}
