package green

import (
	"fmt"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// Token is a terminal node. Variants differ only in which fields they store:
// a token never pays for trivia, contextual kind or a typed value it lacks.
type Token interface {
	Node
	// Text is the source spelling; its length is the token's own width.
	Text() string
	// ValueText is the semantic text: the identifier with escapes resolved,
	// the unquoted string, the formatted literal value.
	ValueText() string
	Value() any
	// ContextualKind is the second interpretation of an identifier, or Kind()
	// when there is none.
	ContextualKind() kind.Kind
	LeadingTrivia() Node
	TrailingTrivia() Node
	// WithLeadingTrivia and WithTrailingTrivia return the least general variant
	// able to hold the requested trivia.
	WithLeadingTrivia(trivia Node) Token
	WithTrailingTrivia(trivia Node) Token
}

func tokenFlags(leading, trailing Node) Flags {
	return inherit(leading, trailing) | IsNotMissing
}

func triviaWidth(n Node) int {
	if n == nil {
		return 0
	}
	return n.FullWidth()
}

// tokenBase holds what every variant shares.
type tokenBase struct {
	header
	leaf
}

func (t *tokenBase) ContextualKind() kind.Kind { return t.kind }
func (t *tokenBase) LeadingTrivia() Node       { return nil }
func (t *tokenBase) TrailingTrivia() Node      { return nil }
func (t *tokenBase) childFlags() Flags         { return 0 }

func keywordValue(k kind.Kind, text string) any {
	switch k {
	case kind.TrueKeyword:
		return true
	case kind.FalseKeyword:
		return false
	case kind.NullKeyword:
		return nil
	}
	return text
}

// wellKnownToken has no trivia; its text is the fixed spelling of its kind.
type wellKnownToken struct{ tokenBase }

func newWellKnown(k kind.Kind) *wellKnownToken {
	return &wellKnownToken{tokenBase{header: newHeader(k, IsNotMissing, len(k.Text()), nil, nil)}}
}

func (t *wellKnownToken) Text() string      { return t.kind.Text() }
func (t *wellKnownToken) ValueText() string { return t.kind.Text() }
func (t *wellKnownToken) Value() any        { return keywordValue(t.kind, t.kind.Text()) }

func (t *wellKnownToken) WithLeadingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newWellKnownWithTrivia(t.kind, trivia, nil, t.Diagnostics(), t.Annotations())
}

func (t *wellKnownToken) WithTrailingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newWellKnownWithTrivia(t.kind, nil, trivia, t.Diagnostics(), t.Annotations())
}

func (t *wellKnownToken) withHeader(h header) Node                  { return &wellKnownToken{tokenBase{header: h}} }
func (t *wellKnownToken) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(t, ds) }
func (t *wellKnownToken) WithAnnotations(as []Annotation) Node      { return withAnnotations(t, as) }

type wellKnownTokenWithTrivia struct {
	wellKnownToken
	leading, trailing Node
}

func newWellKnownWithTrivia(k kind.Kind, leading, trailing Node, ds []diag.Diagnostic, as []Annotation) *wellKnownTokenWithTrivia {
	w := len(k.Text()) + triviaWidth(leading) + triviaWidth(trailing)
	return &wellKnownTokenWithTrivia{
		wellKnownToken: wellKnownToken{tokenBase{header: newHeader(k, tokenFlags(leading, trailing), w, ds, as)}},
		leading:        leading,
		trailing:       trailing,
	}
}

func (t *wellKnownTokenWithTrivia) LeadingTrivia() Node  { return t.leading }
func (t *wellKnownTokenWithTrivia) TrailingTrivia() Node { return t.trailing }
func (t *wellKnownTokenWithTrivia) childFlags() Flags    { return inherit(t.leading, t.trailing) }

func (t *wellKnownTokenWithTrivia) WithLeadingTrivia(trivia Node) Token {
	return newWellKnownWithTrivia(t.kind, trivia, t.trailing, t.Diagnostics(), t.Annotations())
}

func (t *wellKnownTokenWithTrivia) WithTrailingTrivia(trivia Node) Token {
	return newWellKnownWithTrivia(t.kind, t.leading, trivia, t.Diagnostics(), t.Annotations())
}

func (t *wellKnownTokenWithTrivia) withHeader(h header) Node {
	return &wellKnownTokenWithTrivia{wellKnownToken: wellKnownToken{tokenBase{header: h}}, leading: t.leading, trailing: t.trailing}
}
func (t *wellKnownTokenWithTrivia) WithDiagnostics(ds []diag.Diagnostic) Node {
	return withDiagnostics(t, ds)
}
func (t *wellKnownTokenWithTrivia) WithAnnotations(as []Annotation) Node {
	return withAnnotations(t, as)
}

// missingToken stands in for a required token that is absent from the source.
// Its own text is empty; it may still carry trivia.
type missingToken struct {
	tokenBase
	leading, trailing Node
}

func newMissing(k kind.Kind, leading, trailing Node, ds []diag.Diagnostic, as []Annotation) *missingToken {
	flags := inherit(leading, trailing) &^ IsNotMissing
	return &missingToken{
		tokenBase: tokenBase{header: newHeader(k, flags, triviaWidth(leading)+triviaWidth(trailing), ds, as)},
		leading:   leading,
		trailing:  trailing,
	}
}

func (t *missingToken) Text() string         { return "" }
func (t *missingToken) ValueText() string    { return "" }
func (t *missingToken) LeadingTrivia() Node  { return t.leading }
func (t *missingToken) TrailingTrivia() Node { return t.trailing }
func (t *missingToken) childFlags() Flags    { return inherit(t.leading, t.trailing) &^ IsNotMissing }

func (t *missingToken) Value() any {
	if t.kind == kind.IdentifierToken {
		return ""
	}
	return nil
}

func (t *missingToken) WithLeadingTrivia(trivia Node) Token {
	return newMissing(t.kind, trivia, t.trailing, t.Diagnostics(), t.Annotations())
}

func (t *missingToken) WithTrailingTrivia(trivia Node) Token {
	return newMissing(t.kind, t.leading, trivia, t.Diagnostics(), t.Annotations())
}

func (t *missingToken) withHeader(h header) Node {
	return &missingToken{tokenBase: tokenBase{header: h}, leading: t.leading, trailing: t.trailing}
}
func (t *missingToken) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(t, ds) }
func (t *missingToken) WithAnnotations(as []Annotation) Node      { return withAnnotations(t, as) }

// identifierToken is a token whose text comes from the source and has no
// trivia. BadToken uses it too.
type identifierToken struct {
	tokenBase
	text string
}

func newIdentifier(k kind.Kind, text string, ds []diag.Diagnostic, as []Annotation) *identifierToken {
	return &identifierToken{tokenBase: tokenBase{header: newHeader(k, IsNotMissing, len(text), ds, as)}, text: text}
}

func (t *identifierToken) Text() string      { return t.text }
func (t *identifierToken) ValueText() string { return t.text }
func (t *identifierToken) Value() any        { return t.text }

func (t *identifierToken) WithLeadingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newIdentifierWithTrivia(t.kind, t.text, trivia, nil, t.Diagnostics(), t.Annotations())
}

func (t *identifierToken) WithTrailingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newIdentifierWithTrailing(t.kind, t.text, trivia, t.Diagnostics(), t.Annotations())
}

func (t *identifierToken) withHeader(h header) Node {
	return &identifierToken{tokenBase: tokenBase{header: h}, text: t.text}
}
func (t *identifierToken) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(t, ds) }
func (t *identifierToken) WithAnnotations(as []Annotation) Node      { return withAnnotations(t, as) }

type identifierWithTrailingTrivia struct {
	identifierToken
	trailing Node
}

func newIdentifierWithTrailing(k kind.Kind, text string, trailing Node, ds []diag.Diagnostic, as []Annotation) *identifierWithTrailingTrivia {
	return &identifierWithTrailingTrivia{
		identifierToken: identifierToken{
			tokenBase: tokenBase{header: newHeader(k, tokenFlags(nil, trailing), len(text)+triviaWidth(trailing), ds, as)},
			text:      text,
		},
		trailing: trailing,
	}
}

func (t *identifierWithTrailingTrivia) TrailingTrivia() Node { return t.trailing }
func (t *identifierWithTrailingTrivia) childFlags() Flags    { return inherit(t.trailing) }

func (t *identifierWithTrailingTrivia) WithLeadingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newIdentifierWithTrivia(t.kind, t.text, trivia, t.trailing, t.Diagnostics(), t.Annotations())
}

func (t *identifierWithTrailingTrivia) WithTrailingTrivia(trivia Node) Token {
	if trivia == nil {
		return newIdentifier(t.kind, t.text, t.Diagnostics(), t.Annotations())
	}
	return newIdentifierWithTrailing(t.kind, t.text, trivia, t.Diagnostics(), t.Annotations())
}

func (t *identifierWithTrailingTrivia) withHeader(h header) Node {
	return &identifierWithTrailingTrivia{identifierToken: identifierToken{tokenBase: tokenBase{header: h}, text: t.text}, trailing: t.trailing}
}
func (t *identifierWithTrailingTrivia) WithDiagnostics(ds []diag.Diagnostic) Node {
	return withDiagnostics(t, ds)
}
func (t *identifierWithTrailingTrivia) WithAnnotations(as []Annotation) Node {
	return withAnnotations(t, as)
}

type identifierWithTrivia struct {
	identifierToken
	leading, trailing Node
}

func newIdentifierWithTrivia(k kind.Kind, text string, leading, trailing Node, ds []diag.Diagnostic, as []Annotation) *identifierWithTrivia {
	w := len(text) + triviaWidth(leading) + triviaWidth(trailing)
	return &identifierWithTrivia{
		identifierToken: identifierToken{
			tokenBase: tokenBase{header: newHeader(k, tokenFlags(leading, trailing), w, ds, as)},
			text:      text,
		},
		leading:  leading,
		trailing: trailing,
	}
}

func (t *identifierWithTrivia) LeadingTrivia() Node  { return t.leading }
func (t *identifierWithTrivia) TrailingTrivia() Node { return t.trailing }
func (t *identifierWithTrivia) childFlags() Flags    { return inherit(t.leading, t.trailing) }

func (t *identifierWithTrivia) WithLeadingTrivia(trivia Node) Token {
	return newIdentifierWithTrivia(t.kind, t.text, trivia, t.trailing, t.Diagnostics(), t.Annotations())
}

func (t *identifierWithTrivia) WithTrailingTrivia(trivia Node) Token {
	return newIdentifierWithTrivia(t.kind, t.text, t.leading, trivia, t.Diagnostics(), t.Annotations())
}

func (t *identifierWithTrivia) withHeader(h header) Node {
	return &identifierWithTrivia{identifierToken: identifierToken{tokenBase: tokenBase{header: h}, text: t.text}, leading: t.leading, trailing: t.trailing}
}
func (t *identifierWithTrivia) WithDiagnostics(ds []diag.Diagnostic) Node {
	return withDiagnostics(t, ds)
}
func (t *identifierWithTrivia) WithAnnotations(as []Annotation) Node { return withAnnotations(t, as) }

// contextualIdentifier is an identifier that doubles as a contextual keyword,
// or whose value text differs from its spelling.
type contextualIdentifier struct {
	identifierToken
	contextual kind.Kind
	valueText  string
}

func newContextual(ck kind.Kind, text, valueText string, ds []diag.Diagnostic, as []Annotation) *contextualIdentifier {
	return &contextualIdentifier{
		identifierToken: *newIdentifier(kind.IdentifierToken, text, ds, as),
		contextual:      ck,
		valueText:       valueText,
	}
}

func (t *contextualIdentifier) ContextualKind() kind.Kind { return t.contextual }
func (t *contextualIdentifier) ValueText() string         { return t.valueText }
func (t *contextualIdentifier) Value() any                { return t.valueText }

func (t *contextualIdentifier) WithLeadingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newContextualWithTrivia(t.contextual, t.text, t.valueText, trivia, nil, t.Diagnostics(), t.Annotations())
}

func (t *contextualIdentifier) WithTrailingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newContextualWithTrivia(t.contextual, t.text, t.valueText, nil, trivia, t.Diagnostics(), t.Annotations())
}

func (t *contextualIdentifier) withHeader(h header) Node {
	return &contextualIdentifier{
		identifierToken: identifierToken{tokenBase: tokenBase{header: h}, text: t.text},
		contextual:      t.contextual,
		valueText:       t.valueText,
	}
}
func (t *contextualIdentifier) WithDiagnostics(ds []diag.Diagnostic) Node {
	return withDiagnostics(t, ds)
}
func (t *contextualIdentifier) WithAnnotations(as []Annotation) Node { return withAnnotations(t, as) }

type contextualIdentifierWithTrivia struct {
	contextualIdentifier
	leading, trailing Node
}

func newContextualWithTrivia(ck kind.Kind, text, valueText string, leading, trailing Node, ds []diag.Diagnostic, as []Annotation) *contextualIdentifierWithTrivia {
	w := len(text) + triviaWidth(leading) + triviaWidth(trailing)
	return &contextualIdentifierWithTrivia{
		contextualIdentifier: contextualIdentifier{
			identifierToken: identifierToken{
				tokenBase: tokenBase{header: newHeader(kind.IdentifierToken, tokenFlags(leading, trailing), w, ds, as)},
				text:      text,
			},
			contextual: ck,
			valueText:  valueText,
		},
		leading:  leading,
		trailing: trailing,
	}
}

func (t *contextualIdentifierWithTrivia) LeadingTrivia() Node  { return t.leading }
func (t *contextualIdentifierWithTrivia) TrailingTrivia() Node { return t.trailing }
func (t *contextualIdentifierWithTrivia) childFlags() Flags    { return inherit(t.leading, t.trailing) }

func (t *contextualIdentifierWithTrivia) WithLeadingTrivia(trivia Node) Token {
	return newContextualWithTrivia(t.contextual, t.text, t.valueText, trivia, t.trailing, t.Diagnostics(), t.Annotations())
}

func (t *contextualIdentifierWithTrivia) WithTrailingTrivia(trivia Node) Token {
	return newContextualWithTrivia(t.contextual, t.text, t.valueText, t.leading, trivia, t.Diagnostics(), t.Annotations())
}

func (t *contextualIdentifierWithTrivia) withHeader(h header) Node {
	c := *t
	c.header = h
	return &c
}
func (t *contextualIdentifierWithTrivia) WithDiagnostics(ds []diag.Diagnostic) Node {
	return withDiagnostics(t, ds)
}
func (t *contextualIdentifierWithTrivia) WithAnnotations(as []Annotation) Node {
	return withAnnotations(t, as)
}

// valueToken is a literal whose semantic value is distinct from its spelling,
// e.g. text "0x10" with value 16.
type valueToken[T any] struct {
	tokenBase
	text  string
	value T
}

func newValueToken[T any](k kind.Kind, text string, value T, ds []diag.Diagnostic, as []Annotation) *valueToken[T] {
	return &valueToken[T]{
		tokenBase: tokenBase{header: newHeader(k, IsNotMissing, len(text), ds, as)},
		text:      text,
		value:     value,
	}
}

func (t *valueToken[T]) Text() string      { return t.text }
func (t *valueToken[T]) ValueText() string { return fmt.Sprint(t.value) }
func (t *valueToken[T]) Value() any        { return t.value }

// TypedValue returns the literal value without boxing.
func (t *valueToken[T]) TypedValue() T { return t.value }

func (t *valueToken[T]) WithLeadingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newValueTokenWithTrivia(t.kind, t.text, t.value, trivia, nil, t.Diagnostics(), t.Annotations())
}

func (t *valueToken[T]) WithTrailingTrivia(trivia Node) Token {
	if trivia == nil {
		return t
	}
	return newValueTokenWithTrivia(t.kind, t.text, t.value, nil, trivia, t.Diagnostics(), t.Annotations())
}

func (t *valueToken[T]) withHeader(h header) Node {
	return &valueToken[T]{tokenBase: tokenBase{header: h}, text: t.text, value: t.value}
}
func (t *valueToken[T]) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(t, ds) }
func (t *valueToken[T]) WithAnnotations(as []Annotation) Node      { return withAnnotations(t, as) }

type valueTokenWithTrivia[T any] struct {
	valueToken[T]
	leading, trailing Node
}

func newValueTokenWithTrivia[T any](k kind.Kind, text string, value T, leading, trailing Node, ds []diag.Diagnostic, as []Annotation) *valueTokenWithTrivia[T] {
	w := len(text) + triviaWidth(leading) + triviaWidth(trailing)
	return &valueTokenWithTrivia[T]{
		valueToken: valueToken[T]{
			tokenBase: tokenBase{header: newHeader(k, tokenFlags(leading, trailing), w, ds, as)},
			text:      text,
			value:     value,
		},
		leading:  leading,
		trailing: trailing,
	}
}

func (t *valueTokenWithTrivia[T]) LeadingTrivia() Node  { return t.leading }
func (t *valueTokenWithTrivia[T]) TrailingTrivia() Node { return t.trailing }
func (t *valueTokenWithTrivia[T]) childFlags() Flags    { return inherit(t.leading, t.trailing) }

func (t *valueTokenWithTrivia[T]) WithLeadingTrivia(trivia Node) Token {
	return newValueTokenWithTrivia(t.kind, t.text, t.value, trivia, t.trailing, t.Diagnostics(), t.Annotations())
}

func (t *valueTokenWithTrivia[T]) WithTrailingTrivia(trivia Node) Token {
	return newValueTokenWithTrivia(t.kind, t.text, t.value, t.leading, trivia, t.Diagnostics(), t.Annotations())
}

func (t *valueTokenWithTrivia[T]) withHeader(h header) Node {
	c := *t
	c.header = h
	return &c
}
func (t *valueTokenWithTrivia[T]) WithDiagnostics(ds []diag.Diagnostic) Node {
	return withDiagnostics(t, ds)
}
func (t *valueTokenWithTrivia[T]) WithAnnotations(as []Annotation) Node {
	return withAnnotations(t, as)
}
