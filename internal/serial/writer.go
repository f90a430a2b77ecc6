package serial

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"verdant/internal/green"
	"verdant/internal/kind"
)

// writer keeps the first error and turns later calls into no-ops.
type writer struct {
	enc *msgpack.Encoder
	err error
}

func (w *writer) uint(v uint64) {
	if w.err == nil {
		w.err = w.enc.EncodeUint(v)
	}
}

func (w *writer) int(v int64) {
	if w.err == nil {
		w.err = w.enc.EncodeInt(v)
	}
}

func (w *writer) bool(v bool) {
	if w.err == nil {
		w.err = w.enc.EncodeBool(v)
	}
}

func (w *writer) float(v float64) {
	if w.err == nil {
		w.err = w.enc.EncodeFloat64(v)
	}
}

func (w *writer) str(s string) {
	if w.err == nil {
		w.err = w.enc.EncodeString(s)
	}
}

func (w *writer) kind(k kind.Kind) { w.uint(uint64(k)) }

func contextBits(c green.Context) uint64 {
	var b uint64
	if c.IsInAsync {
		b |= 1
	}
	if c.IsInQuery {
		b |= 2
	}
	if c.IsInFieldKeywordContext {
		b |= 4
	}
	return b
}

func (w *writer) node(n green.Node) {
	if w.err != nil {
		return
	}
	switch x := n.(type) {
	case nil:
		w.uint(uint64(tagNil))
		return
	case green.Token:
		w.uint(uint64(tagToken))
		w.token(x)
	case *green.Trivia:
		w.uint(uint64(tagTrivia))
		w.kind(x.Kind())
		w.str(x.Text())
	case *green.DirectiveNode:
		w.uint(uint64(tagDirective))
		w.kind(x.Kind())
		w.uint(contextBits(green.ContextOf(x)))
		w.uint(uint64(x.State()))
		w.slots(x)
	default:
		switch {
		case green.IsSeparatedList(n):
			w.uint(uint64(tagSeparatedList))
		case green.IsList(n):
			w.uint(uint64(tagList))
		default:
			w.uint(uint64(tagBranch))
			w.kind(n.Kind())
		}
		w.uint(contextBits(green.ContextOf(n)))
		w.slots(n)
	}
	w.payload(n)
}

func (w *writer) slots(n green.Node) {
	w.uint(uint64(n.SlotCount()))
	for i := range n.SlotCount() {
		w.node(n.Slot(i))
	}
}

func (w *writer) token(t green.Token) {
	k := t.Kind()
	w.kind(k)
	w.node(t.LeadingTrivia())
	w.node(t.TrailingTrivia())
	switch {
	case t.IsMissing():
		w.uint(uint64(shapeMissing))
	case k.IsWellKnownText():
		w.uint(uint64(shapeWellKnown))
	case k == kind.IdentifierToken:
		w.uint(uint64(shapeIdentifier))
		w.kind(t.ContextualKind())
		w.str(t.Text())
		w.str(t.ValueText())
	case k == kind.BadToken:
		w.uint(uint64(shapeBad))
		w.str(t.Text())
	default:
		w.uint(uint64(shapeLiteral))
		w.str(t.Text())
		w.value(t.Value())
	}
}

func (w *writer) value(v any) {
	switch x := v.(type) {
	case nil:
		w.uint(uint64(valNil))
	case bool:
		w.uint(uint64(valBool))
		w.bool(x)
	case int:
		w.uint(uint64(valInt))
		w.int(int64(x))
	case int64:
		w.uint(uint64(valInt64))
		w.int(x)
	case uint64:
		w.uint(uint64(valUint64))
		w.uint(x)
	case float64:
		w.uint(uint64(valFloat64))
		w.float(x)
	case string:
		w.uint(uint64(valString))
		w.str(x)
	case rune:
		w.uint(uint64(valRune))
		w.int(int64(x))
	default:
		if w.err == nil {
			w.err = fmt.Errorf("%w: %T", ErrValueType, v)
		}
	}
}

// payload writes diagnostics then annotations. Annotations are written with
// their identity so that one annotation on several nodes stays one after
// reading.
func (w *writer) payload(n green.Node) {
	ds := n.Diagnostics()
	w.uint(uint64(len(ds)))
	for _, d := range ds {
		w.uint(uint64(d.Severity))
		w.uint(uint64(d.Code))
		w.int(int64(d.Offset))
		w.int(int64(d.Width))
		w.str(d.Message)
	}
	as := n.Annotations()
	w.uint(uint64(len(as)))
	for _, a := range as {
		w.bool(a == green.ElasticAnnotation)
		w.uint(a.ID())
		w.str(a.Kind)
		w.str(a.Data)
	}
}
