package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // error events only
	LevelPhase               // run and phase boundaries
	LevelDetail              // plus per-file events
	LevelDebug               // plus per-node fix events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("%q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope recorded at l; 0 records no scope.
func (l Level) maxScope() Scope {
	switch l {
	case LevelPhase:
		return ScopePhase
	case LevelDetail:
		return ScopeFile
	case LevelDebug:
		return ScopeNode
	default:
		return 0
	}
}

// Admits reports whether begin, end and point events of scope are recorded.
func (l Level) Admits(scope Scope) bool {
	return scope <= l.maxScope()
}

// Accepts reports whether ev is recorded. Errors and heartbeats pass every
// level except off.
func (l Level) Accepts(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	if ev.Kind == KindError || ev.Kind == KindHeartbeat {
		return true
	}
	return l.Admits(ev.Scope)
}
