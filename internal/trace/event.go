package trace

import "time"

// Kind says whether an event opens a span, closes it, or stands alone.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole command invocation.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one phase over all files (parse, verify, encode).
	ScopePass
	// ScopeFile covers one file inside a phase.
	ScopeFile
	ScopeNode // single syntax node, debug only
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Tracers that keep events get their own copy.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // zero for points
	ParentID uint64 // zero for root spans
	Name     string // e.g. "parse_files", "file:main.vd"
	Detail   string
	// Dur is set on span end events.
	Dur   time.Duration
	Extra map[string]string
}
