package green

import (
	"fmt"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// MaxBranchSlots caps the arity of non-list nodes. SlotOffset on a branch is a
// linear scan, so variable-length content belongs in a list.
const MaxBranchSlots = 11

// Branch is a structural node (or structured trivia) with a fixed set of slots.
type Branch struct {
	header
	slots []Node
}

func kindFlags(k kind.Kind) Flags {
	var f Flags
	if k.IsStructuredTrivia() {
		f |= ContainsStructuredTrivia
	}
	if k.IsDirective() {
		f |= ContainsDirectives
	}
	if k == kind.SkippedTokensTrivia {
		f |= ContainsSkippedText
	}
	return f
}

func checkBranchKind(k kind.Kind, n int) {
	if !(k.IsNode() && k != kind.List) && !k.IsStructuredTrivia() {
		panic(fmt.Sprintf("green: %v is not a node kind", k))
	}
	if n > MaxBranchSlots {
		panic(fmt.Sprintf("green: %v has %d slots, limit is %d", k, n, MaxBranchSlots))
	}
}

func newBranch(k kind.Kind, ctx Flags, slots []Node, ds []diag.Diagnostic, as []Annotation) *Branch {
	checkBranchKind(k, len(slots))
	flags := inherit(slots...) | kindFlags(k) | ctx&FactoryContextMask
	return &Branch{
		header: newHeader(k, flags, sumWidth(slots), ds, as),
		slots:  slots,
	}
}

func (b *Branch) SlotCount() int { return len(b.slots) }

func (b *Branch) Slot(i int) Node {
	checkSlot(b, i)
	return b.slots[i]
}

func (b *Branch) SlotOffset(i int) int { return slotOffset(b, i) }

func (b *Branch) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(b, ds) }
func (b *Branch) WithAnnotations(as []Annotation) Node      { return withAnnotations(b, as) }

func (b *Branch) childFlags() Flags { return inherit(b.slots...) }

func (b *Branch) withHeader(h header) Node {
	return &Branch{header: h, slots: b.slots}
}

// DirectiveState records how the lexer evaluated a directive.
type DirectiveState uint8

const (
	// DirectiveActive: the directive sits in enabled text.
	DirectiveActive DirectiveState = 1 << iota
	// DirectiveBranchTaken: the #if/#elif/#else branch it opens is enabled.
	DirectiveBranchTaken
	// DirectiveConditionValue: the condition evaluated to true.
	DirectiveConditionValue
)

// DirectiveNode is the structured trivia of one preprocessor directive.
// Slot 0 is the '#' token, slot 1 the directive keyword, the last slot the
// end-of-directive token. #define/#undef carry the name token in slot 2,
// #if/#elif carry the condition (a token list) in slot 2.
type DirectiveNode struct {
	Branch
	state DirectiveState
}

func newDirective(k kind.Kind, ctx Flags, state DirectiveState, slots []Node, ds []diag.Diagnostic, as []Annotation) *DirectiveNode {
	if !k.IsDirective() {
		panic(fmt.Sprintf("green: %v is not a directive kind", k))
	}
	return &DirectiveNode{Branch: *newBranch(k, ctx, slots, ds, as), state: state}
}

func (d *DirectiveNode) State() DirectiveState { return d.state }
func (d *DirectiveNode) IsActive() bool        { return d.state&DirectiveActive != 0 }
func (d *DirectiveNode) BranchTaken() bool     { return d.state&DirectiveBranchTaken != 0 }
func (d *DirectiveNode) ConditionValue() bool  { return d.state&DirectiveConditionValue != 0 }

// Name returns the symbol of a #define or #undef, "" otherwise.
func (d *DirectiveNode) Name() string {
	if d.kind != kind.DefineDirectiveTrivia && d.kind != kind.UndefDirectiveTrivia || len(d.slots) < 3 {
		return ""
	}
	if t, ok := d.slots[2].(Token); ok {
		return t.ValueText()
	}
	return ""
}

// Condition returns the condition slot of #if/#elif, nil otherwise.
func (d *DirectiveNode) Condition() Node {
	if d.kind != kind.IfDirectiveTrivia && d.kind != kind.ElifDirectiveTrivia || len(d.slots) < 4 {
		return nil
	}
	return d.slots[2]
}

func (d *DirectiveNode) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(d, ds) }
func (d *DirectiveNode) WithAnnotations(as []Annotation) Node      { return withAnnotations(d, as) }

func (d *DirectiveNode) withHeader(h header) Node {
	return &DirectiveNode{Branch: Branch{header: h, slots: d.slots}, state: d.state}
}
