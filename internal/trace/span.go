package trace

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// Span is an open span. A nil *Span is valid and records nothing, so callers
// never check whether tracing is on.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	attrs  []Attr
}

type spanKey struct{}

func spanFrom(ctx context.Context) *Span {
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Begin opens a span under the span of ctx and returns a context carrying
// it. When the level does not admit scope, ctx is returned as is.
func Begin(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().Admits(scope) {
		return ctx, nil
	}
	s := &Span{
		tracer: t,
		id:     spanCounter.Add(1),
		scope:  scope,
		name:   name,
		start:  time.Now(),
	}
	if p := spanFrom(ctx); p != nil {
		s.parent = p.id
	}
	t.Emit(s.event(KindBegin, ""))
	return context.WithValue(ctx, spanKey{}, s), s
}

// Attr adds a key/value pair printed with the end event.
func (s *Span) Attr(key, value string) *Span {
	if s != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End closes the span.
func (s *Span) End(detail string) {
	if s == nil {
		return
	}
	ev := s.event(KindEnd, detail)
	ev.Dur = time.Since(s.start)
	ev.Attrs = s.attrs
	s.tracer.Emit(ev)
}

func (s *Span) event(kind Kind, detail string) Event {
	return Event{
		At:     time.Now(),
		Seq:    seqCounter.Add(1),
		Kind:   kind,
		Scope:  s.scope,
		Span:   s.id,
		Parent: s.parent,
		GID:    goid.Get(),
		Name:   s.name,
		Detail: detail,
	}
}

func emitLoose(ctx context.Context, kind Kind, scope Scope, name, detail string) {
	t := FromContext(ctx)
	ev := Event{
		At:     time.Now(),
		Kind:   kind,
		Scope:  scope,
		GID:    goid.Get(),
		Name:   name,
		Detail: detail,
	}
	if !t.Level().Accepts(&ev) {
		return
	}
	if p := spanFrom(ctx); p != nil {
		ev.Parent = p.id
	}
	ev.Seq = seqCounter.Add(1)
	t.Emit(ev)
}

// Point records an instant event inside the current span.
func Point(ctx context.Context, scope Scope, name, detail string) {
	emitLoose(ctx, KindPoint, scope, name, detail)
}

// Error records err; nil errors are ignored.
func Error(ctx context.Context, scope Scope, name string, err error) {
	if err == nil {
		return
	}
	emitLoose(ctx, KindError, scope, name, err.Error())
}
