package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span tracks one begin/end pair. A span from a disabled tracer is inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

var inert = &Span{tracer: Nop}

// Begin starts a span under parent (0 for a root span) and emits its begin
// event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return inert
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

func (s *Span) live() bool {
	return s != nil && s.id != 0
}

// End emits the end event with the extras collected so far and returns the
// span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	dur := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Dur:      dur,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra adds a key to the end event. Not safe for concurrent use on one
// span.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Point emits an instant event under s at the span's own scope.
func (s *Span) Point(name, detail string) {
	if !s.live() {
		return
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    s.scope,
		ParentID: s.id,
		Name:     name,
		Detail:   detail,
	})
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Child starts a span nested under s on the same tracer.
func (s *Span) Child(scope Scope, name string) *Span {
	if !s.live() {
		return inert
	}
	return Begin(s.tracer, scope, name, s.id)
}
