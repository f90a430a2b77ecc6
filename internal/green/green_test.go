package green_test

import (
	"strings"
	"testing"

	"go.uber.org/goleak"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// binary builds `a + b` the way a parser would.
func binary(f green.Factory) green.Node {
	a := green.IdentifierWithTrivia(nil, "a", green.Space)
	plus := green.TokenWithTrivia(nil, kind.PlusToken, green.Space)
	b := green.Identifier("b")
	return f.Node(kind.BinaryExpression,
		f.Node(kind.IdentifierName, a),
		plus,
		f.Node(kind.IdentifierName, b),
	)
}

func TestBinaryExpressionWidthAndText(t *testing.T) {
	n := binary(green.NewFactory(green.NewCache(64)))
	if n.FullWidth() != 5 {
		t.Fatalf("FullWidth = %d, want 5", n.FullWidth())
	}
	if got := green.ToFullString(n); got != "a + b" {
		t.Fatalf("ToFullString = %q", got)
	}
	if got := green.ToString(n); got != "a + b" {
		t.Fatalf("ToString = %q", got)
	}
	assertWidths(t, n)
}

func assertWidths(t *testing.T, n green.Node) {
	t.Helper()
	if n == nil {
		return
	}
	if tok, ok := n.(green.Token); ok {
		lead, trail := 0, 0
		if l := tok.LeadingTrivia(); l != nil {
			lead = l.FullWidth()
			assertWidths(t, l)
		}
		if r := tok.TrailingTrivia(); r != nil {
			trail = r.FullWidth()
			assertWidths(t, r)
		}
		if tok.FullWidth() != lead+len(tok.Text())+trail {
			t.Fatalf("%v: FullWidth %d != %d+%d+%d", tok.Kind(), tok.FullWidth(), lead, len(tok.Text()), trail)
		}
		return
	}
	sum := 0
	for i := range n.SlotCount() {
		if c := n.Slot(i); c != nil {
			sum += c.FullWidth()
			assertWidths(t, c)
		}
	}
	if n.SlotCount() > 0 && sum != n.FullWidth() {
		t.Fatalf("%v: FullWidth %d, children sum %d", n.Kind(), n.FullWidth(), sum)
	}
}

func TestBoundaryTokensSkipEmptySubtrees(t *testing.T) {
	f := green.NewFactory(nil)
	empty := f.Node(kind.Statement)
	lead := f.Node(kind.Sequence, empty, green.IdentifierWithTrivia(green.Space, "a", nil))
	if got := green.ToString(lead); got != "a" {
		t.Fatalf("ToString = %q, want %q", got, "a")
	}
	if w := green.LeadingTriviaWidth(lead); w != 1 {
		t.Fatalf("leading trivia width = %d, want 1", w)
	}
	if tok := green.FirstToken(lead); tok == nil || tok.Text() != "a" {
		t.Fatalf("first token should be a")
	}

	trail := f.Node(kind.Sequence, green.IdentifierWithTrivia(nil, "b", green.Space), empty)
	if w := green.TrailingTriviaWidth(trail); w != 1 {
		t.Fatalf("trailing trivia width = %d, want 1", w)
	}
	if w := green.Width(trail); w != 1 {
		t.Fatalf("width = %d, want 1", w)
	}
	if green.FirstToken(empty) != nil || green.LastToken(empty) != nil {
		t.Fatalf("a node without tokens has no boundary tokens")
	}
}

func TestRoundTripConcatenatesTokens(t *testing.T) {
	f := green.NewFactory(nil)
	comment := green.Comment("// lead")
	lead := f.List(comment, green.LineFeed)
	open := green.TokenWithTrivia(lead, kind.OpenParenToken, nil)
	x := green.IdentifierWithTrivia(nil, "x", nil)
	comma := green.TokenWithTrivia(nil, kind.CommaToken, green.Space)
	y := green.Literal(nil, kind.NumericLiteralToken, "0x10", int64(16), nil)
	cl := green.TokenWithTrivia(green.Whitespace("  "), kind.CloseParenToken, green.CarriageReturnLineFeed)
	args := f.SeparatedList(
		[]green.Node{f.Node(kind.IdentifierName, x), f.Node(kind.LiteralExpression, y)},
		[]green.Node{comma},
	)
	group := f.Node(kind.ParenthesizedGroup, open, args, cl)

	want := "// lead\n(x, 0x10  )\r\n"
	if got := green.ToFullString(group); got != want {
		t.Fatalf("ToFullString = %q, want %q", got, want)
	}
	if got := green.ToString(group); got != "(x, 0x10  )" {
		t.Fatalf("ToString = %q", got)
	}
	if group.FullWidth() != len(want) {
		t.Fatalf("FullWidth = %d, want %d", group.FullWidth(), len(want))
	}
	var sb strings.Builder
	n, err := green.WriteTo(&sb, group)
	if err != nil || int(n) != len(want) || sb.String() != want {
		t.Fatalf("WriteTo = %d, %v, %q", n, err, sb.String())
	}
	if !green.IsSeparatedList(args) {
		t.Fatalf("args should be a separated list")
	}
	assertWidths(t, group)
}

func TestWellKnownTokenSingletons(t *testing.T) {
	c1 := green.NewToken(kind.CommaToken)
	c2 := green.NewToken(kind.CommaToken)
	if c1 != c2 {
		t.Fatalf("comma without trivia must be a singleton")
	}
	if green.TokenWithTrivia(nil, kind.CommaToken, green.Space) != green.TokenWithTrivia(nil, kind.CommaToken, green.Space) {
		t.Fatalf("comma with one trailing space must be a singleton")
	}
	if green.TokenWithTrivia(nil, kind.SemicolonToken, green.CarriageReturnLineFeed) != green.TokenWithTrivia(nil, kind.SemicolonToken, green.CarriageReturnLineFeed) {
		t.Fatalf("trailing CRLF must be a singleton")
	}
	if green.TokenWithTrivia(green.ElasticZeroSpace, kind.DotToken, green.ElasticZeroSpace) != green.TokenWithTrivia(green.ElasticZeroSpace, kind.DotToken, green.ElasticZeroSpace) {
		t.Fatalf("elastic token must be a singleton")
	}

	lead := green.TokenWithTrivia(green.Space, kind.CommaToken, nil)
	if lead == c1 || lead == green.TokenWithTrivia(green.Space, kind.CommaToken, nil) {
		t.Fatalf("leading space is not a canonical shape and must allocate")
	}
	if lead.Text() != "," {
		t.Fatalf("Text = %q", lead.Text())
	}
	if green.ToFullString(lead.LeadingTrivia()) != " " || lead.TrailingTrivia() != nil {
		t.Fatalf("unexpected trivia on %q", green.ToFullString(lead))
	}
	if lead.FullWidth() != 2 || green.Width(lead) != 1 {
		t.Fatalf("widths = %d/%d", lead.FullWidth(), green.Width(lead))
	}
	// A fresh space with the same text is not the canonical one.
	other := green.NewTrivia(kind.WhitespaceTrivia, " ")
	if green.TokenWithTrivia(nil, kind.CommaToken, other) == green.TokenWithTrivia(nil, kind.CommaToken, green.Space) {
		t.Fatalf("trivia shape must match by identity")
	}
}

func TestTokenFactoryRejectsNodeKinds(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "this factory only creates tokens") {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	green.NewToken(kind.Block)
}

func TestNonWellKnownKindIsMissing(t *testing.T) {
	tok := green.NewToken(kind.IdentifierToken)
	if !tok.IsMissing() || tok.Text() != "" {
		t.Fatalf("identifier by kind alone must be missing, got %q", tok.Text())
	}
}

func TestMissingToken(t *testing.T) {
	m := green.MissingToken(nil, kind.IdentifierToken, nil)
	if m.Text() != "" || m.Value() != "" || m.FullWidth() != 0 {
		t.Fatalf("missing identifier: text %q value %v width %d", m.Text(), m.Value(), m.FullWidth())
	}
	if m.Flags().Has(green.IsNotMissing) || !m.IsMissing() {
		t.Fatalf("missing token must clear IsNotMissing: %v", m.Flags())
	}
	if v := green.MissingToken(nil, kind.CloseParenToken, nil).Value(); v != nil {
		t.Fatalf("missing punctuation value = %v, want nil", v)
	}
	f := green.NewFactory(nil)
	stmt := f.Node(kind.Statement, f.Node(kind.IdentifierName, m), green.NewToken(kind.SemicolonToken))
	if stmt.IsMissing() || stmt.FullWidth() != 1 || green.ToFullString(stmt) != ";" {
		t.Fatalf("statement with missing name: %q missing=%v", green.ToFullString(stmt), stmt.IsMissing())
	}
	// Trivia on a missing token does not make it present.
	withTrivia := m.WithTrailingTrivia(green.Space)
	if !withTrivia.IsMissing() || withTrivia.FullWidth() != 1 {
		t.Fatalf("missing token with trivia: missing=%v width=%d", withTrivia.IsMissing(), withTrivia.FullWidth())
	}
	if green.FirstToken(stmt) != m {
		t.Fatalf("FirstToken should reach the zero-width token")
	}
}

func TestTokenValues(t *testing.T) {
	cases := []struct {
		tok  green.Token
		want any
	}{
		{green.NewToken(kind.TrueKeyword), true},
		{green.NewToken(kind.FalseKeyword), false},
		{green.NewToken(kind.NullKeyword), nil},
		{green.NewToken(kind.CommaToken), ","},
		{green.Identifier("abc"), "abc"},
		{green.Literal(nil, kind.NumericLiteralToken, "0x10", int64(16), nil), int64(16)},
		{green.Literal(nil, kind.StringLiteralToken, `"a\n"`, "a\n", green.Space), "a\n"},
	}
	for _, c := range cases {
		if got := c.tok.Value(); got != c.want {
			t.Fatalf("%v %q: Value = %v, want %v", c.tok.Kind(), c.tok.Text(), got, c.want)
		}
	}
	lit := green.Literal(nil, kind.NumericLiteralToken, "0x10", int64(16), nil)
	if v, ok := green.TypedValue[int64](lit); !ok || v != 16 {
		t.Fatalf("TypedValue = %d, %v", v, ok)
	}
	if lit.ValueText() != "16" || lit.Text() != "0x10" {
		t.Fatalf("ValueText %q Text %q", lit.ValueText(), lit.Text())
	}
}

func TestIdentifierPromotion(t *testing.T) {
	id := green.Identifier("name")
	if id.WithTrailingTrivia(nil) != id || id.WithLeadingTrivia(nil) != id {
		t.Fatalf("nil trivia must not allocate")
	}
	d := diag.NewError(diag.SynUnexpectedToken, 0, 4, "unexpected")
	withDiag := id.WithDiagnostics([]diag.Diagnostic{d}).(green.Token)

	trailing := withDiag.WithTrailingTrivia(green.Space)
	if trailing.LeadingTrivia() != nil || trailing.TrailingTrivia() != green.Node(green.Space) {
		t.Fatalf("trailing promotion lost trivia")
	}
	both := trailing.WithLeadingTrivia(green.Tab)
	if green.ToFullString(both) != "\tname " || both.FullWidth() != 6 {
		t.Fatalf("full promotion: %q", green.ToFullString(both))
	}
	if len(both.Diagnostics()) != 1 || !both.Flags().Has(green.ContainsDiagnostics) {
		t.Fatalf("promotion must keep diagnostics")
	}
	if withDiag.FullWidth() != id.FullWidth() {
		t.Fatalf("WithDiagnostics changed the width")
	}
	if id.Flags().Has(green.ContainsDiagnostics) {
		t.Fatalf("WithDiagnostics mutated the receiver")
	}
}

func TestContextualIdentifier(t *testing.T) {
	plain := green.ContextualIdentifier(kind.IdentifierToken, nil, "x", "x", nil)
	if plain.ContextualKind() != kind.IdentifierToken {
		t.Fatalf("plain path expected")
	}
	async := green.ContextualIdentifier(kind.AsyncKeyword, nil, "async", "async", green.Space)
	if async.Kind() != kind.IdentifierToken || async.ContextualKind() != kind.AsyncKeyword {
		t.Fatalf("kind %v contextual %v", async.Kind(), async.ContextualKind())
	}
	escaped := green.ContextualIdentifier(kind.IdentifierToken, nil, `@if`, "if", nil)
	if escaped.Text() != "@if" || escaped.ValueText() != "if" {
		t.Fatalf("text %q value %q", escaped.Text(), escaped.ValueText())
	}
	if got := escaped.WithLeadingTrivia(green.Space).ValueText(); got != "if" {
		t.Fatalf("promotion lost value text: %q", got)
	}
}

func TestSlotContracts(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}
	f := green.NewFactory(nil)
	n := binary(f)
	mustPanic("slot out of range", func() { n.Slot(3) })
	mustPanic("negative slot", func() { n.Slot(-1) })
	mustPanic("token slot", func() { green.Identifier("x").Slot(0) })
	mustPanic("nil in list", func() {
		f.List(green.Identifier("a"), nil, green.Identifier("b"), green.Identifier("c"))
	})
	mustPanic("too many slots", func() {
		slots := make([]green.Node, green.MaxBranchSlots+1)
		f.Node(kind.Sequence, slots...)
	})
}

func TestDiagnosticsAreRelative(t *testing.T) {
	f := green.NewFactory(nil)
	bad := green.BadToken(nil, "$", nil).WithDiagnostics([]diag.Diagnostic{
		diag.NewError(diag.LexUnknownChar, 0, 1, "unknown character"),
	})
	stmt := f.Node(kind.Sequence,
		green.IdentifierWithTrivia(nil, "ab", green.Space),
		bad,
	)
	ds := green.CollectDiagnostics(stmt)
	if len(ds) != 1 || ds[0].Offset != 3 || ds[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v", ds)
	}
	if !stmt.Flags().Has(green.ContainsDiagnostics) {
		t.Fatalf("flag not inherited")
	}
	clean := f.Node(kind.Sequence, green.Identifier("ab"))
	if green.CollectDiagnostics(clean) != nil {
		t.Fatalf("clean subtree reported diagnostics")
	}
}

func TestAnnotations(t *testing.T) {
	f := green.NewFactory(nil)
	mark := green.NewAnnotation("rename", "x")
	id := green.AddAnnotations(green.Identifier("x"), mark)
	other := green.NewAnnotation("rename", "x")
	if !green.HasAnnotation(id, mark) || green.HasAnnotation(id, other) {
		t.Fatalf("annotation identity broken")
	}
	tree := f.Node(kind.Sequence, f.Node(kind.IdentifierName, id), green.Identifier("y"))
	if got := green.NodesWithAnnotation(tree, mark); len(got) != 1 || got[0] != id {
		t.Fatalf("NodesWithAnnotation = %v", got)
	}
	if got := green.AnnotatedNodes(tree, "rename"); len(got) != 1 {
		t.Fatalf("AnnotatedNodes = %d", len(got))
	}
	if !green.IsElastic(green.ElasticSpace) || green.IsElastic(green.Space) {
		t.Fatalf("elastic marker")
	}
}

func TestEquivalent(t *testing.T) {
	f := green.NewFactory(nil)
	a := binary(f)
	b := binary(green.NewFactory(green.NewCache(16)))
	if !green.Equivalent(a, b) {
		t.Fatalf("same construction should be equivalent")
	}
	c := f.Node(kind.BinaryExpression,
		f.Node(kind.IdentifierName, green.IdentifierWithTrivia(nil, "a", green.Space)),
		green.TokenWithTrivia(nil, kind.MinusToken, green.Space),
		f.Node(kind.IdentifierName, green.Identifier("b")),
	)
	if green.Equivalent(a, c) {
		t.Fatalf("different operator must not be equivalent")
	}
	x1 := green.TokenWithTrivia(green.Space, kind.CommaToken, nil)
	x2 := green.TokenWithTrivia(green.Whitespace(" "), kind.CommaToken, nil)
	if !green.Equivalent(x1, x2) {
		t.Fatalf("tokens with equivalent trivia should be equivalent")
	}
	if green.Equivalent(x1, green.NewToken(kind.CommaToken)) {
		t.Fatalf("present vs absent trivia must differ")
	}
}

type counter struct {
	tokens, trivia, lists, structured, branches int
}

func (c *counter) VisitToken(green.Token) int           { c.tokens++; return 0 }
func (c *counter) VisitTrivia(*green.Trivia) int        { c.trivia++; return 0 }
func (c *counter) VisitList(green.Node) int             { c.lists++; return 0 }
func (c *counter) VisitStructuredTrivia(green.Node) int { c.structured++; return 0 }
func (c *counter) VisitBranch(*green.Branch) int        { c.branches++; return 0 }

func TestAcceptDispatch(t *testing.T) {
	f := green.NewFactory(nil)
	c := &counter{}
	green.Accept[int](green.Identifier("x"), c)
	green.Accept[int](green.Space, c)
	green.Accept[int](f.List(green.Identifier("x"), green.Identifier("y")), c)
	green.Accept[int](f.Node(kind.SkippedTokensTrivia, green.Identifier("x")), c)
	green.Accept[int](binary(f), c)
	if *c != (counter{1, 1, 1, 1, 1}) {
		t.Fatalf("dispatch counts %+v", *c)
	}

	kv := &green.KindVisitor[string]{
		Kinds: map[kind.Kind]func(green.Node) string{
			kind.BinaryExpression: func(n green.Node) string { return "binary " + green.ToString(n) },
		},
		Default: func(n green.Node) string { return n.Kind().String() },
	}
	if got := green.Accept[string](binary(f), kv); got != "binary a + b" {
		t.Fatalf("KindVisitor = %q", got)
	}
	if got := green.Accept[string](green.Identifier("x"), kv); got != "IdentifierToken" {
		t.Fatalf("KindVisitor default = %q", got)
	}
}
