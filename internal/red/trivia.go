package red

import (
	"runtime"
	"sync"
	"weak"

	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/source"
)

// Trivia is a positioned piece of trivia attached to a token.
type Trivia struct {
	token   Token
	green   green.Node
	pos     int
	index   int
	leading bool
}

func (tr Trivia) IsZero() bool       { return tr.green == nil }
func (tr Trivia) Green() green.Node  { return tr.green }
func (tr Trivia) Kind() kind.Kind    { return tr.green.Kind() }
func (tr Trivia) Token() Token       { return tr.token }
func (tr Trivia) Position() int      { return tr.pos }
func (tr Trivia) FullWidth() int     { return tr.green.FullWidth() }
func (tr Trivia) IsLeading() bool    { return tr.leading }
func (tr Trivia) Text() string       { return green.ToFullString(tr.green) }
func (tr Trivia) IsDirective() bool  { return tr.green.Kind().IsDirective() }
func (tr Trivia) HasStructure() bool { return tr.green.Kind().IsStructuredTrivia() }

func (tr Trivia) Span() source.Span {
	return toSpan(tr.token.file(), tr.pos, tr.pos+tr.green.FullWidth())
}

type structureKey struct {
	green green.Node
	pos   int
}

type structureBucket struct {
	mu      sync.Mutex
	entries map[structureKey]weak.Pointer[Node]
}

// structures maps the node that holds a token to the structured trivia already
// materialized under it. Keys and values are weak; a bucket is dropped when its
// node is collected.
var structures sync.Map // weak.Pointer[Node] -> *structureBucket

func bucketFor(owner *Node) *structureBucket {
	key := weak.Make(owner)
	if b, ok := structures.Load(key); ok {
		return b.(*structureBucket)
	}
	fresh := &structureBucket{entries: make(map[structureKey]weak.Pointer[Node])}
	b, loaded := structures.LoadOrStore(key, fresh)
	if !loaded {
		runtime.AddCleanup(owner, func(k weak.Pointer[Node]) { structures.Delete(k) }, key)
	}
	return b.(*structureBucket)
}

// Structure returns the syntax tree of structured trivia (a directive,
// skipped tokens) or nil for plain trivia. Repeated calls return the same
// *Node while someone holds it. The returned node has no Parent; use
// ParentTrivia to get back.
func (tr Trivia) Structure() *Node {
	if !tr.HasStructure() {
		return nil
	}
	owner := tr.token.container
	b := bucketFor(owner)
	key := structureKey{green: tr.green, pos: tr.pos}

	b.mu.Lock()
	defer b.mu.Unlock()
	if wp, ok := b.entries[key]; ok {
		if n := wp.Value(); n != nil {
			return n
		}
	}
	n := newNode(owner.tree, tr.green, nil, tr.pos, 0)
	owned := tr
	n.structureOf = &owned
	b.entries[key] = weak.Make(n)
	return n
}
