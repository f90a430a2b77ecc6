package green

import (
	"fmt"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// Node is an immutable, position-free syntax node. Implementations are the
// branch, directive, list, token and trivia types of this package; the
// interface is sealed by the unexported hdr method.
type Node interface {
	Kind() kind.Kind
	Flags() Flags
	// FullWidth is the length of the node's text including all trivia.
	FullWidth() int
	SlotCount() int
	// Slot returns the child at i; nil marks an absent optional slot.
	// Panics when i is outside [0, SlotCount()).
	Slot(i int) Node
	// SlotOffset is the sum of FullWidth over slots [0, i).
	SlotOffset(i int) int
	Diagnostics() []diag.Diagnostic
	Annotations() []Annotation
	IsMissing() bool
	// WithDiagnostics returns a copy carrying ds; width and children are unchanged.
	WithDiagnostics(ds []diag.Diagnostic) Node
	// WithAnnotations returns a copy carrying as; width and children are unchanged.
	WithAnnotations(as []Annotation) Node

	hdr() *header
	childFlags() Flags
	withHeader(h header) Node
}

// sideTable holds the rarely present payload so that ordinary nodes pay one
// pointer for it.
type sideTable struct {
	diags []diag.Diagnostic
	anns  []Annotation
}

type header struct {
	kind      kind.Kind
	flags     Flags
	fullWidth int
	side      *sideTable
}

func newHeader(k kind.Kind, flags Flags, fullWidth int, ds []diag.Diagnostic, as []Annotation) header {
	h := header{kind: k, flags: flags, fullWidth: fullWidth}
	if len(ds) > 0 || len(as) > 0 {
		h.side = &sideTable{diags: ds, anns: as}
	}
	if len(ds) > 0 {
		h.flags |= ContainsDiagnostics
	}
	if len(as) > 0 {
		h.flags |= ContainsAnnotations
	}
	return h
}

func (h *header) hdr() *header              { return h }
func (h *header) Kind() kind.Kind           { return h.kind }
func (h *header) Flags() Flags              { return h.flags }
func (h *header) FullWidth() int            { return h.fullWidth }
func (h *header) IsMissing() bool           { return h.flags&IsNotMissing == 0 }
func (h *header) ContainsDiagnostics() bool { return h.flags&ContainsDiagnostics != 0 }
func (h *header) ContainsDirectives() bool  { return h.flags&ContainsDirectives != 0 }

func (h *header) Diagnostics() []diag.Diagnostic {
	if h.side == nil {
		return nil
	}
	return h.side.diags
}

func (h *header) Annotations() []Annotation {
	if h.side == nil {
		return nil
	}
	return h.side.anns
}

// HasAnnotation reports whether n carries a.
func HasAnnotation(n Node, a Annotation) bool {
	return n != nil && hasAnnotation(n.Annotations(), a)
}

// rehead recomputes the payload-dependent bits of n's header for a new side
// table. Bits inherited from children are preserved.
func rehead(n Node, ds []diag.Diagnostic, as []Annotation) header {
	old := n.hdr()
	base := old.flags &^ (ContainsDiagnostics | ContainsAnnotations)
	base |= n.childFlags() & (ContainsDiagnostics | ContainsAnnotations)
	return newHeader(old.kind, base, old.fullWidth, ds, as)
}

func withDiagnostics(n Node, ds []diag.Diagnostic) Node {
	return n.withHeader(rehead(n, ds, n.Annotations()))
}

func withAnnotations(n Node, as []Annotation) Node {
	return n.withHeader(rehead(n, n.Diagnostics(), as))
}

// AddAnnotations returns n with as appended to its annotations.
func AddAnnotations(n Node, as ...Annotation) Node {
	if len(as) == 0 {
		return n
	}
	merged := make([]Annotation, 0, len(n.Annotations())+len(as))
	merged = append(merged, n.Annotations()...)
	for _, a := range as {
		if !hasAnnotation(merged, a) {
			merged = append(merged, a)
		}
	}
	return n.WithAnnotations(merged)
}

// AddDiagnostics returns n with ds appended to its diagnostics.
func AddDiagnostics(n Node, ds ...diag.Diagnostic) Node {
	if len(ds) == 0 {
		return n
	}
	merged := make([]diag.Diagnostic, 0, len(n.Diagnostics())+len(ds))
	merged = append(merged, n.Diagnostics()...)
	merged = append(merged, ds...)
	return n.WithDiagnostics(merged)
}

func inherit(children ...Node) Flags {
	var f Flags
	for _, c := range children {
		if c != nil {
			f |= c.Flags() & InheritMask
		}
	}
	return f
}

func sumWidth(children []Node) int {
	w := 0
	for _, c := range children {
		if c != nil {
			w += c.FullWidth()
		}
	}
	return w
}

func slotOffset(n Node, i int) int {
	checkSlot(n, i)
	off := 0
	for j := 0; j < i; j++ {
		if c := n.Slot(j); c != nil {
			off += c.FullWidth()
		}
	}
	return off
}

func checkSlot(n Node, i int) {
	if i < 0 || i >= n.SlotCount() {
		panic(fmt.Sprintf("green: slot %d out of range [0,%d) for %v", i, n.SlotCount(), n.Kind()))
	}
}

// leaf provides the slot contract shared by tokens and trivia.
type leaf struct{}

func (leaf) SlotCount() int { return 0 }

func (leaf) Slot(i int) Node {
	panic(fmt.Sprintf("green: terminal nodes have no slots (requested %d)", i))
}

func (leaf) SlotOffset(i int) int {
	panic(fmt.Sprintf("green: terminal nodes have no slots (requested %d)", i))
}

// IsList reports whether n is a list node.
func IsList(n Node) bool { return n != nil && n.Kind() == kind.List }

// IsStructuredTrivia reports whether n is trivia with its own subtree.
func IsStructuredTrivia(n Node) bool { return n != nil && n.Kind().IsStructuredTrivia() }

// AsToken returns n as a Token when it is one.
func AsToken(n Node) (Token, bool) {
	t, ok := n.(Token)
	return t, ok
}
