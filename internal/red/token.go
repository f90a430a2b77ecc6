package red

import (
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/source"
)

// Token is a positioned green token. It is a small value: tokens are never
// cached, two Tokens are the same token when Equal reports so.
type Token struct {
	container *Node
	green     green.Token
	pos       int
	index     int
}

// IsZero reports whether t is the zero Token (no token).
func (t Token) IsZero() bool { return t.green == nil }

func (t Token) Green() green.Token        { return t.green }
func (t Token) Kind() kind.Kind           { return t.green.Kind() }
func (t Token) ContextualKind() kind.Kind { return t.green.ContextualKind() }
func (t Token) Text() string              { return t.green.Text() }
func (t Token) ValueText() string         { return t.green.ValueText() }
func (t Token) Value() any                { return t.green.Value() }
func (t Token) IsMissing() bool           { return t.green.IsMissing() }
func (t Token) Position() int             { return t.pos }
func (t Token) Width() int                { return len(t.green.Text()) }
func (t Token) FullWidth() int            { return t.green.FullWidth() }
func (t Token) Index() int                { return t.index }

// Equal reports whether t and u are the same token of the same tree.
func (t Token) Equal(u Token) bool {
	return t.container == u.container && t.index == u.index && t.green == u.green
}

// Parent returns the node containing the token, skipping list nodes.
func (t Token) Parent() *Node {
	c := t.container
	if c != nil && c.IsList() {
		return c.container
	}
	return c
}

func (t Token) file() source.FileID {
	if t.container == nil {
		return 0
	}
	return t.container.tree.file
}

func (t Token) leadingWidth() int {
	if l := t.green.LeadingTrivia(); l != nil {
		return l.FullWidth()
	}
	return 0
}

func (t Token) Span() source.Span {
	start := t.pos + t.leadingWidth()
	return toSpan(t.file(), start, start+t.Width())
}

func (t Token) FullSpan() source.Span {
	return toSpan(t.file(), t.pos, t.pos+t.green.FullWidth())
}

// Diagnostics returns the token's diagnostics, including those on its trivia,
// with absolute offsets.
func (t Token) Diagnostics() []diag.Diagnostic {
	ds := green.CollectDiagnostics(t.green)
	for i := range ds {
		ds[i] = ds[i].Shift(t.pos)
	}
	return ds
}

// LeadingTrivia returns the positioned trivia before the token text.
func (t Token) LeadingTrivia() []Trivia {
	return t.triviaList(t.green.LeadingTrivia(), t.pos, true)
}

// TrailingTrivia returns the positioned trivia after the token text.
func (t Token) TrailingTrivia() []Trivia {
	return t.triviaList(t.green.TrailingTrivia(), t.pos+t.leadingWidth()+t.Width(), false)
}

func (t Token) triviaList(g green.Node, pos int, leading bool) []Trivia {
	if g == nil {
		return nil
	}
	items := green.Children(g)
	out := make([]Trivia, 0, len(items))
	for i, tr := range items {
		out = append(out, Trivia{token: t, green: tr, pos: pos, index: i, leading: leading})
		pos += tr.FullWidth()
	}
	return out
}

// IsEquivalentTo compares the green tokens.
func (t Token) IsEquivalentTo(u Token) bool {
	return green.Equivalent(t.green, u.green)
}

func (t Token) String() string { return t.green.Text() }
