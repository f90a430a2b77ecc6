package red

import (
	"fmt"
	"sync/atomic"
	"weak"

	"fortio.org/safecast"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/source"
)

// Tree ties a green root to a file for span reporting.
type Tree struct {
	file source.FileID
	root *Node
}

// NewTree wraps green root g. g must be a structural node.
func NewTree(file source.FileID, g green.Node) *Tree {
	if g == nil {
		panic("red: nil root")
	}
	if _, ok := g.(green.Token); ok {
		panic("red: a token cannot be a root")
	}
	t := &Tree{file: file}
	t.root = newNode(t, g, nil, 0, 0)
	return t
}

// NewRoot wraps g in a tree with file id 0.
func NewRoot(g green.Node) *Node { return NewTree(0, g).root }

func (t *Tree) Root() *Node          { return t.root }
func (t *Tree) File() source.FileID  { return t.file }
func (t *Tree) ToFullString() string { return green.ToFullString(t.root.green) }

// Node is the position-aware view of a green node. It is created on first
// access from its parent and cached there, so navigating to the same slot
// twice yields the same *Node.
//
// List nodes are transparent: the elements of a list report the list's
// parent as their Parent.
type Node struct {
	green     green.Node
	tree      *Tree
	container *Node // parent, or the list holding this node
	pos       int
	index     int // slot in container
	separated bool

	slots []atomic.Pointer[Node]
	weak  []atomic.Pointer[weak.Pointer[Node]]

	structureOf *Trivia
}

func newNode(tree *Tree, g green.Node, container *Node, pos, index int) *Node {
	n := &Node{green: g, tree: tree, container: container, pos: pos, index: index}
	count := g.SlotCount()
	if count == 0 {
		return n
	}
	if green.IsList(g) {
		n.separated = green.IsSeparatedList(g)
		if count >= green.LargeListThreshold && container != nil && container.Kind() == kind.Block {
			n.weak = make([]atomic.Pointer[weak.Pointer[Node]], count)
			return n
		}
	}
	n.slots = make([]atomic.Pointer[Node], count)
	return n
}

func (n *Node) Green() green.Node    { return n.green }
func (n *Node) Kind() kind.Kind      { return n.green.Kind() }
func (n *Node) Tree() *Tree          { return n.tree }
func (n *Node) Position() int        { return n.pos }
func (n *Node) FullWidth() int       { return n.green.FullWidth() }
func (n *Node) SlotCount() int       { return n.green.SlotCount() }
func (n *Node) IsMissing() bool      { return n.green.IsMissing() }
func (n *Node) IsList() bool         { return green.IsList(n.green) }
func (n *Node) ToFullString() string { return green.ToFullString(n.green) }
func (n *Node) String() string       { return green.ToString(n.green) }

// IsSeparatedList reports whether this list was built as a separated list,
// elements at even slots and separators at odd ones.
func (n *Node) IsSeparatedList() bool { return n.separated }

// IsStructure reports whether n is the root of structured trivia.
func (n *Node) IsStructure() bool { return n.structureOf != nil }

// Parent returns the enclosing node, skipping list nodes. Structured trivia
// roots have no parent; see ParentTrivia.
func (n *Node) Parent() *Node {
	p := n.container
	if p != nil && p.IsList() {
		return p.container
	}
	return p
}

// ParentTrivia returns the trivia that owns a structured trivia root.
func (n *Node) ParentTrivia() (Trivia, bool) {
	if n.structureOf == nil {
		return Trivia{}, false
	}
	return *n.structureOf, true
}

func toSpan(file source.FileID, start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: file, Start: s, End: e}
}

// FullSpan covers the node including its leading and trailing trivia.
func (n *Node) FullSpan() source.Span {
	return toSpan(n.tree.file, n.pos, n.pos+n.green.FullWidth())
}

// Span excludes the leading trivia of the first token and the trailing trivia
// of the last.
func (n *Node) Span() source.Span {
	start := n.pos + green.LeadingTriviaWidth(n.green)
	end := n.pos + n.green.FullWidth() - green.TrailingTriviaWidth(n.green)
	if end < start {
		end = start
	}
	return toSpan(n.tree.file, start, end)
}

// Diagnostics returns every diagnostic under n with absolute offsets.
func (n *Node) Diagnostics() []diag.Diagnostic {
	ds := green.CollectDiagnostics(n.green)
	for i := range ds {
		ds[i] = ds[i].Shift(n.pos)
	}
	return ds
}

// ContainsDiagnostics and friends read the green summary flags.
func (n *Node) ContainsDiagnostics() bool { return n.green.Flags()&green.ContainsDiagnostics != 0 }
func (n *Node) ContainsDirectives() bool  { return n.green.Flags()&green.ContainsDirectives != 0 }
func (n *Node) ContainsSkippedText() bool { return n.green.Flags()&green.ContainsSkippedText != 0 }
func (n *Node) ContainsAnnotations() bool { return n.green.Flags()&green.ContainsAnnotations != 0 }
func (n *Node) HasStructuredTrivia() bool {
	return n.green.Flags()&green.ContainsStructuredTrivia != 0
}

// IsEquivalentTo compares the underlying green trees.
func (n *Node) IsEquivalentTo(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return green.Equivalent(n.green, other.green)
}

func (n *Node) checkSlot(i int) {
	if i < 0 || i >= n.green.SlotCount() {
		panic(fmt.Sprintf("red: slot %d out of range [0,%d) for %v", i, n.green.SlotCount(), n.Kind()))
	}
}

// ChildNode returns the node in slot i, materializing it on first use. It
// returns nil for an empty slot or a token slot.
func (n *Node) ChildNode(i int) *Node {
	n.checkSlot(i)
	g := n.green.Slot(i)
	if g == nil {
		return nil
	}
	if _, ok := g.(green.Token); ok {
		return nil
	}
	if n.weak != nil {
		return n.weakChild(i, g)
	}
	if c := n.slots[i].Load(); c != nil {
		return c
	}
	c := newNode(n.tree, g, n, n.pos+n.green.SlotOffset(i), i)
	if n.slots[i].CompareAndSwap(nil, c) {
		return c
	}
	return n.slots[i].Load()
}

// weakChild caches children without keeping them alive: long statement
// lists would otherwise pin every statement ever visited.
func (n *Node) weakChild(i int, g green.Node) *Node {
	for {
		cur := n.weak[i].Load()
		if cur != nil {
			if c := cur.Value(); c != nil {
				return c
			}
		}
		c := newNode(n.tree, g, n, n.pos+n.green.SlotOffset(i), i)
		wp := weak.Make(c)
		if n.weak[i].CompareAndSwap(cur, &wp) {
			return c
		}
	}
}

// ChildToken returns the token in slot i.
func (n *Node) ChildToken(i int) (Token, bool) {
	n.checkSlot(i)
	t, ok := n.green.Slot(i).(green.Token)
	if !ok {
		return Token{}, false
	}
	return Token{container: n, green: t, pos: n.pos + n.green.SlotOffset(i), index: i}, true
}

// Child returns slot i as a node or token; the zero value for an empty slot.
func (n *Node) Child(i int) NodeOrToken {
	if t, ok := n.ChildToken(i); ok {
		return NodeOrToken{Token: t}
	}
	return NodeOrToken{Node: n.ChildNode(i)}
}
