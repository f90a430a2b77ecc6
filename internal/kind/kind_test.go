package kind_test

import (
	"testing"

	"verdant/internal/kind"
)

func TestRanges(t *testing.T) {
	tokens := []kind.Kind{kind.CommaToken, kind.IfKeyword, kind.AsyncKeyword, kind.EndOfFileToken, kind.IdentifierToken, kind.BadToken}
	for _, k := range tokens {
		if !k.IsToken() {
			t.Fatalf("%v should be a token kind", k)
		}
		if k.IsTrivia() || k.IsNode() {
			t.Fatalf("%v must not be trivia or node", k)
		}
	}
	trivia := []kind.Kind{kind.WhitespaceTrivia, kind.EndOfLineTrivia, kind.SkippedTokensTrivia, kind.IfDirectiveTrivia}
	for _, k := range trivia {
		if !k.IsTrivia() {
			t.Fatalf("%v should be trivia", k)
		}
	}
	if kind.WhitespaceTrivia.IsStructuredTrivia() {
		t.Fatalf("whitespace must not be structured")
	}
	if !kind.SkippedTokensTrivia.IsStructuredTrivia() || kind.SkippedTokensTrivia.IsDirective() {
		t.Fatalf("skipped tokens are structured but not a directive")
	}
	if !kind.EndIfDirectiveTrivia.IsDirective() {
		t.Fatalf("endif should be a directive")
	}
	if !kind.List.IsNode() || !kind.BinaryExpression.IsNode() {
		t.Fatalf("list and binary expression are nodes")
	}
}

func TestWellKnownText(t *testing.T) {
	cases := map[kind.Kind]string{
		kind.CommaToken:            ",",
		kind.AmpersandAmpersandToken: "&&",
		kind.MinusGreaterThanToken: "->",
		kind.TrueKeyword:           "true",
		kind.EndRegionKeyword:      "endregion",
		kind.FieldKeyword:          "field",
		kind.EndOfFileToken:        "",
	}
	for k, want := range cases {
		if !k.IsWellKnownText() {
			t.Fatalf("%v should have well-known text", k)
		}
		if got := k.Text(); got != want {
			t.Fatalf("%v.Text() = %q, want %q", k, got, want)
		}
	}
	for _, k := range []kind.Kind{kind.IdentifierToken, kind.NumericLiteralToken, kind.BadToken} {
		if k.IsWellKnownText() {
			t.Fatalf("%v must not have well-known text", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]kind.Kind{
		"true":   kind.TrueKeyword,
		"null":   kind.NullKeyword,
		"return": kind.ReturnKeyword,
		"fn":     kind.FnKeyword,
	}
	for lexeme, want := range cases {
		got, ok := kind.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"True", "async", "define", "identifier"} {
		if _, ok := kind.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
	if k, ok := kind.LookupContextual("async"); !ok || k != kind.AsyncKeyword {
		t.Fatalf("async should be contextual")
	}
	if k, ok := kind.LookupPreprocessor("endif"); !ok || k != kind.EndIfKeyword {
		t.Fatalf("endif should be a preprocessor keyword")
	}
	if k, ok := kind.LookupPreprocessor("if"); !ok || k != kind.IfKeyword {
		t.Fatalf("if should be accepted inside directives")
	}
}

func TestStringAndParse(t *testing.T) {
	for k := kind.None; int(k) < kind.Count; k++ {
		name := k.String()
		if name == "" {
			t.Fatalf("kind %d has no name", k)
		}
		back, ok := kind.Parse(name)
		if !ok || back != k {
			t.Fatalf("Parse(%q) = %v,%v want %v", name, back, ok, k)
		}
	}
	if got := kind.Kind(9999).String(); got != "Kind(9999)" {
		t.Fatalf("unexpected out-of-range name %q", got)
	}
}
