package green

import (
	"fmt"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// Context is the parser state that changes what a node means. Every bit is
// part of the cache key, so a node built in one context is never handed out
// in another.
type Context struct {
	IsInAsync               bool
	IsInQuery               bool
	IsInFieldKeywordContext bool
}

// Flags returns the factory-context bits for c.
func (c Context) Flags() Flags {
	var f Flags
	if c.IsInAsync {
		f |= FactoryContextIsInAsync
	}
	if c.IsInQuery {
		f |= FactoryContextIsInQuery
	}
	if c.IsInFieldKeywordContext {
		f |= FactoryContextIsInFieldKeywordContext
	}
	return f
}

// ContextOf recovers the factory context a node was built under.
func ContextOf(n Node) Context {
	if n == nil {
		return Context{}
	}
	f := n.Flags()
	return Context{
		IsInAsync:               f&FactoryContextIsInAsync != 0,
		IsInQuery:               f&FactoryContextIsInQuery != 0,
		IsInFieldKeywordContext: f&FactoryContextIsInFieldKeywordContext != 0,
	}
}

// Factory builds structural nodes and lists, consulting a node cache. It is a
// small value; WithContext returns a copy.
type Factory struct {
	cache *Cache
	ctx   Context
}

// NewFactory returns a factory over cache; nil means Disabled.
func NewFactory(cache *Cache) Factory {
	if cache == nil {
		cache = Disabled
	}
	return Factory{cache: cache}
}

// Default builds through the Shared cache with an empty context.
var Default = NewFactory(Shared)

func (f Factory) Cache() *Cache    { return f.cache }
func (f Factory) Context() Context { return f.ctx }

func (f Factory) WithContext(ctx Context) Factory {
	f.ctx = ctx
	return f
}

// Node builds a branch of kind k. Up to three slots the cache is consulted
// first.
func (f Factory) Node(k kind.Kind, slots ...Node) Node {
	checkBranchKind(k, len(slots))
	ctx := f.ctx.Flags()
	if k.IsStructuredTrivia() {
		return newBranch(k, ctx, append([]Node(nil), slots...), nil, nil)
	}
	cached, hash := f.cache.TryGet(k, ctx, slots...)
	if cached != nil {
		return cached
	}
	n := newBranch(k, ctx, append([]Node(nil), slots...), nil, nil)
	f.cache.Add(n, hash)
	return n
}

// Directive builds the structured trivia of one preprocessor directive.
func (f Factory) Directive(k kind.Kind, state DirectiveState, slots ...Node) *DirectiveNode {
	return newDirective(k, f.ctx.Flags(), state, append([]Node(nil), slots...), nil, nil)
}

// List builds a list. List() is nil and List(a) is a itself.
func (f Factory) List(children ...Node) Node {
	return f.list(0, children)
}

// list builds a plain list (shape 0) or a separated one (shape IsSeparated).
func (f Factory) list(shape Flags, children []Node) Node {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	case 2:
		return f.list2(shape, children[0], children[1])
	case 3:
		return f.list3(shape, children[0], children[1], children[2])
	}
	cp := append([]Node(nil), children...)
	if len(cp) < LargeListThreshold {
		return newListMany(f.ctx.Flags()|shape, cp, nil, nil)
	}
	return newListLots(f.ctx.Flags()|shape, cp, nil, nil)
}

func (f Factory) List2(a, b Node) Node    { return f.list2(0, a, b) }
func (f Factory) List3(a, b, c Node) Node { return f.list3(0, a, b, c) }

func (f Factory) list2(shape Flags, a, b Node) Node {
	if a == nil || b == nil {
		panic("green: nil element in list")
	}
	ctx := f.ctx.Flags() | shape
	cached, hash := f.cache.TryGet(kind.List, ctx, a, b)
	if cached != nil {
		return cached
	}
	n := newListTwo(ctx, a, b, nil, nil)
	f.cache.Add(n, hash)
	return n
}

func (f Factory) list3(shape Flags, a, b, c Node) Node {
	if a == nil || b == nil || c == nil {
		panic("green: nil element in list")
	}
	ctx := f.ctx.Flags() | shape
	cached, hash := f.cache.TryGet(kind.List, ctx, a, b, c)
	if cached != nil {
		return cached
	}
	n := newListThree(ctx, a, b, c, nil, nil)
	f.cache.Add(n, hash)
	return n
}

// SeparatedList interleaves elements and separators: e0 s0 e1 s1 ... .
// len(separators) must be len(elements)-1 or len(elements) (trailing
// separator); no elements take no separators. The result is marked
// IsSeparated, so rewriting and navigation treat odd slots as separators.
func (f Factory) SeparatedList(elements, separators []Node) Node {
	n, s := len(elements), len(separators)
	if s != n && s != n-1 || n == 0 && s != 0 {
		panic(fmt.Sprintf("green: %d elements cannot take %d separators", n, s))
	}
	slots := make([]Node, 0, len(elements)+len(separators))
	for i, e := range elements {
		slots = append(slots, e)
		if i < len(separators) {
			slots = append(slots, separators[i])
		}
	}
	return f.list(IsSeparated, slots)
}

// Concat joins two lists or single nodes into one flat list. nil is the
// empty list.
func (f Factory) Concat(left, right Node) Node {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}
	var out []Node
	switch {
	case IsList(left) && IsList(right):
		out = make([]Node, 0, left.SlotCount()+right.SlotCount())
		out = appendSlots(out, left)
		out = appendSlots(out, right)
	case IsList(left):
		out = make([]Node, 0, left.SlotCount()+1)
		out = appendSlots(out, left)
		out = append(out, right)
	case IsList(right):
		out = make([]Node, 0, right.SlotCount()+1)
		out = append(out, left)
		out = appendSlots(out, right)
	default:
		return f.List2(left, right)
	}
	return f.List(out...)
}

func appendSlots(dst []Node, list Node) []Node {
	for i := range list.SlotCount() {
		dst = append(dst, list.Slot(i))
	}
	return dst
}

// Rebuild returns a node of n's category and kind over new slots, keeping n's
// factory context, separatedness and payload. A list may collapse: zero slots
// give nil and one slot gives the slot itself.
func (f Factory) Rebuild(n Node, slots []Node) Node {
	ctxFactory := f.WithContext(ContextOf(n))
	ds, as := n.Diagnostics(), n.Annotations()
	var out Node
	switch x := n.(type) {
	case *DirectiveNode:
		return newDirective(x.kind, x.flags, x.state, slots, ds, as)
	case *Branch:
		if len(ds) == 0 && len(as) == 0 {
			return ctxFactory.Node(x.kind, slots...)
		}
		return newBranch(x.kind, x.flags, slots, ds, as)
	default:
		if !IsList(n) {
			panic(fmt.Sprintf("green: cannot rebuild %v", n.Kind()))
		}
		out = ctxFactory.list(n.Flags()&IsSeparated, slots)
	}
	if IsList(out) && (len(ds) > 0 || len(as) > 0) {
		out = withPayload(out, ds, as)
	}
	return out
}

func withPayload(n Node, ds []diag.Diagnostic, as []Annotation) Node {
	return n.withHeader(rehead(n, ds, as))
}

// List builds a list with the Default factory.
func List(children ...Node) Node { return Default.List(children...) }

// Concat joins with the Default factory.
func Concat(left, right Node) Node { return Default.Concat(left, right) }

// Rebuild rebuilds with the Default factory.
func Rebuild(n Node, slots []Node) Node { return Default.Rebuild(n, slots) }
