package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopeFile                    // one file of a batch
	ScopePhase                   // lex, parse, attach, directives
	ScopeNode                    // parser recovery points
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopePhase:
		return "phase"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time         `msgpack:"t"`
	Seq      uint64            `msgpack:"q"`
	Kind     Kind              `msgpack:"k"`
	Scope    Scope             `msgpack:"s"`
	SpanID   uint64            `msgpack:"id"`
	ParentID uint64            `msgpack:"p,omitempty"`
	Name     string            `msgpack:"n"`
	Detail   string            `msgpack:"d,omitempty"`
	Extra    map[string]string `msgpack:"x,omitempty"`
}
