package green

import (
	"verdant/internal/diag"
	"verdant/internal/kind"
)

// LargeListThreshold is the arity at which a list precomputes its slot offsets.
const LargeListThreshold = 10

func listFlags(ctx Flags, children []Node) Flags {
	return inherit(children...) | ctx&cacheKeyMask
}

type listTwo struct {
	header
	a, b Node
}

func newListTwo(ctx Flags, a, b Node, ds []diag.Diagnostic, as []Annotation) *listTwo {
	children := []Node{a, b}
	return &listTwo{
		header: newHeader(kind.List, listFlags(ctx, children), sumWidth(children), ds, as),
		a:      a,
		b:      b,
	}
}

func (l *listTwo) SlotCount() int { return 2 }

func (l *listTwo) Slot(i int) Node {
	switch i {
	case 0:
		return l.a
	case 1:
		return l.b
	}
	checkSlot(l, i)
	return nil
}

func (l *listTwo) SlotOffset(i int) int {
	checkSlot(l, i)
	if i == 0 {
		return 0
	}
	return l.a.FullWidth()
}

func (l *listTwo) childFlags() Flags                         { return inherit(l.a, l.b) }
func (l *listTwo) withHeader(h header) Node                  { return &listTwo{header: h, a: l.a, b: l.b} }
func (l *listTwo) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(l, ds) }
func (l *listTwo) WithAnnotations(as []Annotation) Node      { return withAnnotations(l, as) }

type listThree struct {
	header
	a, b, c Node
}

func newListThree(ctx Flags, a, b, c Node, ds []diag.Diagnostic, as []Annotation) *listThree {
	children := []Node{a, b, c}
	return &listThree{
		header: newHeader(kind.List, listFlags(ctx, children), sumWidth(children), ds, as),
		a:      a,
		b:      b,
		c:      c,
	}
}

func (l *listThree) SlotCount() int { return 3 }

func (l *listThree) Slot(i int) Node {
	switch i {
	case 0:
		return l.a
	case 1:
		return l.b
	case 2:
		return l.c
	}
	checkSlot(l, i)
	return nil
}

func (l *listThree) SlotOffset(i int) int {
	checkSlot(l, i)
	switch i {
	case 0:
		return 0
	case 1:
		return l.a.FullWidth()
	default:
		return l.a.FullWidth() + l.b.FullWidth()
	}
}

func (l *listThree) childFlags() Flags { return inherit(l.a, l.b, l.c) }
func (l *listThree) withHeader(h header) Node {
	return &listThree{header: h, a: l.a, b: l.b, c: l.c}
}
func (l *listThree) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(l, ds) }
func (l *listThree) WithAnnotations(as []Annotation) Node      { return withAnnotations(l, as) }

// listMany backs lists with 4..LargeListThreshold-1 children.
type listMany struct {
	header
	children []Node
}

func newListMany(ctx Flags, children []Node, ds []diag.Diagnostic, as []Annotation) *listMany {
	for _, c := range children {
		if c == nil {
			panic("green: nil element in list")
		}
	}
	return &listMany{
		header:   newHeader(kind.List, listFlags(ctx, children), sumWidth(children), ds, as),
		children: children,
	}
}

func (l *listMany) SlotCount() int { return len(l.children) }

func (l *listMany) Slot(i int) Node {
	checkSlot(l, i)
	return l.children[i]
}

func (l *listMany) SlotOffset(i int) int { return slotOffset(l, i) }

func (l *listMany) childFlags() Flags { return inherit(l.children...) }
func (l *listMany) withHeader(h header) Node {
	return &listMany{header: h, children: l.children}
}
func (l *listMany) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(l, ds) }
func (l *listMany) WithAnnotations(as []Annotation) Node      { return withAnnotations(l, as) }

// listLots is listMany with cumulative offsets, so SlotOffset is O(1).
type listLots struct {
	listMany
	offsets []int
}

func newListLots(ctx Flags, children []Node, ds []diag.Diagnostic, as []Annotation) *listLots {
	l := &listLots{listMany: *newListMany(ctx, children, ds, as)}
	l.offsets = make([]int, len(children))
	off := 0
	for i, c := range children {
		l.offsets[i] = off
		off += c.FullWidth()
	}
	return l
}

func (l *listLots) SlotOffset(i int) int {
	checkSlot(l, i)
	return l.offsets[i]
}

func (l *listLots) withHeader(h header) Node {
	return &listLots{listMany: listMany{header: h, children: l.children}, offsets: l.offsets}
}
func (l *listLots) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(l, ds) }
func (l *listLots) WithAnnotations(as []Annotation) Node      { return withAnnotations(l, as) }

// IsSeparatedList reports whether n was built as a separated list: even slots
// are elements and odd slots are separators. The shape of the slots alone
// does not make a list separated.
func IsSeparatedList(n Node) bool {
	return IsList(n) && n.Flags()&IsSeparated != 0
}

// Children returns the slots of a list, or the node itself when n is not a
// list. nil yields nothing.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	if !IsList(n) {
		return []Node{n}
	}
	out := make([]Node, n.SlotCount())
	for i := range out {
		out[i] = n.Slot(i)
	}
	return out
}
