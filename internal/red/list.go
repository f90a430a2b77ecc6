package red

import (
	"iter"

	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/source"
)

// NodeOrToken is one child of a node: exactly one of Node and Token is set,
// or neither for an empty slot.
type NodeOrToken struct {
	Node  *Node
	Token Token
}

func (x NodeOrToken) IsZero() bool  { return x.Node == nil && x.Token.IsZero() }
func (x NodeOrToken) IsToken() bool { return x.Node == nil && !x.Token.IsZero() }

func (x NodeOrToken) Kind() kind.Kind {
	switch {
	case x.Node != nil:
		return x.Node.Kind()
	case !x.Token.IsZero():
		return x.Token.Kind()
	}
	return kind.None
}

func (x NodeOrToken) FullSpan() source.Span {
	if x.Node != nil {
		return x.Node.FullSpan()
	}
	return x.Token.FullSpan()
}

func (x NodeOrToken) FullWidth() int {
	switch {
	case x.Node != nil:
		return x.Node.FullWidth()
	case !x.Token.IsZero():
		return x.Token.FullWidth()
	}
	return 0
}

func (x NodeOrToken) position() int {
	if x.Node != nil {
		return x.Node.pos
	}
	return x.Token.pos
}

// List is a view over one slot of a node that holds a list. A slot holding a
// single node or token is a one-element list; an empty slot is empty.
type List struct {
	owner *Node
	slot  int
}

// ListAt returns the list view of slot i.
func (n *Node) ListAt(i int) List {
	n.checkSlot(i)
	return List{owner: n, slot: i}
}

func (l List) Count() int {
	g := l.owner.green.Slot(l.slot)
	switch {
	case g == nil:
		return 0
	case green.IsList(g):
		return g.SlotCount()
	}
	return 1
}

// Node returns the red list node, or nil when the slot is not a list.
func (l List) Node() *Node {
	if !green.IsList(l.owner.green.Slot(l.slot)) {
		return nil
	}
	return l.owner.ChildNode(l.slot)
}

// At returns element i.
func (l List) At(i int) NodeOrToken {
	if ln := l.Node(); ln != nil {
		return ln.Child(i)
	}
	if i != 0 || l.Count() == 0 {
		panic("red: list index out of range")
	}
	return l.owner.Child(l.slot)
}

func (l List) All() iter.Seq2[int, NodeOrToken] {
	return func(yield func(int, NodeOrToken) bool) {
		for i := range l.Count() {
			if !yield(i, l.At(i)) {
				return
			}
		}
	}
}

// SeparatedList views a list as elements with their trailing separators.
type SeparatedList struct {
	List
}

// SeparatedListAt returns the separated-list view of slot i.
func (n *Node) SeparatedListAt(i int) SeparatedList {
	return SeparatedList{n.ListAt(i)}
}

// Count is the number of elements.
func (s SeparatedList) Count() int { return (s.List.Count() + 1) / 2 }

// SeparatorCount is the number of separators, one less than Count unless
// there is a trailing separator.
func (s SeparatedList) SeparatorCount() int { return s.List.Count() / 2 }

// Element returns element i.
func (s SeparatedList) Element(i int) NodeOrToken { return s.List.At(2 * i) }

// Separator returns the separator following element i.
func (s SeparatedList) Separator(i int) (Token, bool) {
	if 2*i+1 >= s.List.Count() {
		return Token{}, false
	}
	x := s.List.At(2*i + 1)
	return x.Token, x.IsToken()
}

func (s SeparatedList) Elements() iter.Seq[NodeOrToken] {
	return func(yield func(NodeOrToken) bool) {
		for i := range s.Count() {
			if !yield(s.Element(i)) {
				return
			}
		}
	}
}
