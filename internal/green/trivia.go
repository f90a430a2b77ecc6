package green

import (
	"fmt"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// Trivia is unstructured trivia: whitespace, line breaks, comments, disabled
// text and directive messages. Structured trivia is a Branch or DirectiveNode.
type Trivia struct {
	header
	leaf
	text string
}

// NewTrivia builds trivia of kind k. It panics when k is not an unstructured
// trivia kind.
func NewTrivia(k kind.Kind, text string) *Trivia {
	return newTrivia(k, text, nil)
}

func newTrivia(k kind.Kind, text string, as []Annotation) *Trivia {
	if !k.IsTrivia() || k.IsStructuredTrivia() {
		panic(fmt.Sprintf("green: %v is not an unstructured trivia kind", k))
	}
	return &Trivia{header: newHeader(k, IsNotMissing, len(text), nil, as), text: text}
}

func (t *Trivia) Text() string { return t.text }

func (t *Trivia) childFlags() Flags { return 0 }

func (t *Trivia) withHeader(h header) Node {
	return &Trivia{header: h, text: t.text}
}

func (t *Trivia) WithDiagnostics(ds []diag.Diagnostic) Node { return withDiagnostics(t, ds) }
func (t *Trivia) WithAnnotations(as []Annotation) Node      { return withAnnotations(t, as) }

// Canonical trivia. Token singleton tables match trivia shape by identity with
// these values.
var (
	Space                  = NewTrivia(kind.WhitespaceTrivia, " ")
	Tab                    = NewTrivia(kind.WhitespaceTrivia, "\t")
	LineFeed               = NewTrivia(kind.EndOfLineTrivia, "\n")
	CarriageReturn         = NewTrivia(kind.EndOfLineTrivia, "\r")
	CarriageReturnLineFeed = NewTrivia(kind.EndOfLineTrivia, "\r\n")

	// ElasticZeroSpace is an empty elastic marker: a formatter may insert
	// whitespace here.
	ElasticZeroSpace = newTrivia(kind.WhitespaceTrivia, "", []Annotation{ElasticAnnotation})
	ElasticSpace     = newTrivia(kind.WhitespaceTrivia, " ", []Annotation{ElasticAnnotation})
)

// Whitespace returns a whitespace trivia, reusing the canonical values.
func Whitespace(text string) *Trivia {
	switch text {
	case " ":
		return Space
	case "\t":
		return Tab
	}
	return NewTrivia(kind.WhitespaceTrivia, text)
}

// EndOfLine returns an end-of-line trivia, reusing the canonical values.
func EndOfLine(text string) *Trivia {
	switch text {
	case "\n":
		return LineFeed
	case "\r\n":
		return CarriageReturnLineFeed
	case "\r":
		return CarriageReturn
	}
	return NewTrivia(kind.EndOfLineTrivia, text)
}

func Comment(text string) *Trivia {
	if len(text) >= 2 && text[:2] == "/*" {
		return NewTrivia(kind.MultiLineCommentTrivia, text)
	}
	return NewTrivia(kind.SingleLineCommentTrivia, text)
}

func DocComment(text string) *Trivia   { return NewTrivia(kind.DocCommentTrivia, text) }
func DisabledText(text string) *Trivia { return NewTrivia(kind.DisabledTextTrivia, text) }

func PreprocessingMessage(text string) *Trivia {
	return NewTrivia(kind.PreprocessingMessageTrivia, text)
}

// IsElastic reports whether trivia n carries the elastic annotation.
func IsElastic(n Node) bool {
	return n != nil && hasAnnotation(n.Annotations(), ElasticAnnotation)
}
