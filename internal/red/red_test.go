package red_test

import (
	"runtime"
	"slices"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/red"
)

var f = green.NewFactory(nil)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stmt(name string) green.Node {
	return f.Node(kind.Statement,
		f.Node(kind.IdentifierName, green.IdentifierWithTrivia(nil, name, nil)),
		green.TokenWithTrivia(nil, kind.SemicolonToken, green.LineFeed),
	)
}

// unit builds "a + b;\nc;\n" as a compilation unit.
func unit() green.Node {
	bin := f.Node(kind.BinaryExpression,
		f.Node(kind.IdentifierName, green.IdentifierWithTrivia(nil, "a", green.Space)),
		green.TokenWithTrivia(nil, kind.PlusToken, green.Space),
		f.Node(kind.IdentifierName, green.Identifier("b")),
	)
	first := f.Node(kind.Statement, bin, green.TokenWithTrivia(nil, kind.SemicolonToken, green.LineFeed))
	return f.Node(kind.CompilationUnit, f.List(first, stmt("c")), green.NewToken(kind.EndOfFileToken))
}

func texts(seq func(func(red.Token) bool)) []string {
	var out []string
	for t := range seq {
		out = append(out, t.Text())
	}
	return out
}

func TestIdentityAndPositions(t *testing.T) {
	root := red.NewRoot(unit())
	list := root.ChildNode(0)
	if list == nil || !list.IsList() || root.ChildNode(0) != list {
		t.Fatalf("list slot must be materialized once")
	}
	second := list.ChildNode(1)
	if second != list.ChildNode(1) {
		t.Fatalf("re-requesting a slot must return the same node")
	}
	if second.Position() != len("a + b;\n") {
		t.Fatalf("second statement at %d", second.Position())
	}
	if second.Parent() != root {
		t.Fatalf("list elements must report the list owner as parent")
	}
	if sp := second.Span(); sp.Start != 7 || sp.End != 9 {
		t.Fatalf("span = %v", sp)
	}
	if sp := second.FullSpan(); sp.Start != 7 || sp.End != 10 {
		t.Fatalf("full span = %v", sp)
	}
	if root.ToFullString() != "a + b;\nc;\n" {
		t.Fatalf("text = %q", root.ToFullString())
	}
	for n := range root.DescendantNodes() {
		p := n.Parent()
		if p == nil {
			t.Fatalf("%v: descendant without parent", n.Kind())
		}
		if n.Position() < p.Position() || n.Position()+n.FullWidth() > p.Position()+p.FullWidth() {
			t.Fatalf("%v at %d escapes its parent %v", n.Kind(), n.Position(), p.Kind())
		}
	}
}

func TestSlotContract(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("out-of-range slot must panic")
		}
	}()
	red.NewRoot(unit()).ChildNode(5)
}

func TestConcurrentMaterializationConverges(t *testing.T) {
	for range 20 {
		root := red.NewRoot(unit())
		const workers = 8
		got := make([]*red.Node, workers)
		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got[w] = root.ChildNode(0).ChildNode(0).ChildNode(0)
			}()
		}
		wg.Wait()
		for _, n := range got {
			if n != got[0] {
				t.Fatalf("racing materializations returned different nodes")
			}
		}
	}
}

func TestTokenNavigation(t *testing.T) {
	root := red.NewRoot(unit())
	if got := texts(root.DescendantTokens()); !slices.Equal(got, []string{"a", "+", "b", ";", "c", ";", ""}) {
		t.Fatalf("tokens = %q", got)
	}
	first, ok := root.FirstToken(false)
	if !ok || first.Text() != "a" {
		t.Fatalf("first = %q", first.Text())
	}
	last, _ := root.LastToken(false)
	if last.Text() != ";" || last.Position() != 8 {
		t.Fatalf("last non-empty token %q at %d", last.Text(), last.Position())
	}
	eof, _ := root.LastToken(true)
	if eof.Kind() != kind.EndOfFileToken {
		t.Fatalf("last token including zero width = %v", eof.Kind())
	}

	var forward []string
	for tok, ok := first, true; ok; tok, ok = tok.NextToken(false) {
		forward = append(forward, tok.Text())
	}
	if !slices.Equal(forward, []string{"a", "+", "b", ";", "c", ";"}) {
		t.Fatalf("NextToken walk = %q", forward)
	}
	var backward []string
	for tok, ok := eof, true; ok; tok, ok = tok.PreviousToken(true) {
		backward = append(backward, tok.Text())
	}
	if !slices.Equal(backward, []string{"", ";", "c", ";", "b", "+", "a"}) {
		t.Fatalf("PreviousToken walk = %q", backward)
	}

	cases := map[int]string{0: "a", 1: "a", 2: "+", 4: "b", 6: ";", 7: "c", 9: ";", 10: ""}
	for pos, want := range cases {
		tok, ok := root.FindToken(pos)
		if !ok || tok.Text() != want {
			t.Fatalf("FindToken(%d) = %q, want %q", pos, tok.Text(), want)
		}
	}
	if _, ok := root.FindToken(11); ok {
		t.Fatalf("FindToken past the end should fail")
	}
	plus, _ := root.FindToken(2)
	if plus.Parent().Kind() != kind.BinaryExpression {
		t.Fatalf("plus parent = %v", plus.Parent().Kind())
	}
	var kinds []kind.Kind
	for a := range plus.Parent().AncestorsAndSelf() {
		kinds = append(kinds, a.Kind())
	}
	if !slices.Equal(kinds, []kind.Kind{kind.BinaryExpression, kind.Statement, kind.CompilationUnit}) {
		t.Fatalf("ancestors = %v", kinds)
	}
}

func TestMissingTokensAreZeroWidth(t *testing.T) {
	g := f.Node(kind.Statement,
		f.Node(kind.IdentifierName, green.MissingToken(nil, kind.IdentifierToken, nil)),
		green.NewToken(kind.SemicolonToken),
	)
	root := red.NewRoot(g)
	first, _ := root.FirstToken(false)
	if first.Kind() != kind.SemicolonToken {
		t.Fatalf("FirstToken(false) = %v", first.Kind())
	}
	missing, _ := root.FirstToken(true)
	if !missing.IsMissing() || missing.Text() != "" || missing.Width() != 0 {
		t.Fatalf("FirstToken(true) should be the missing identifier")
	}
}

func TestStructuredTriviaIdentity(t *testing.T) {
	dir := f.Directive(kind.RegionDirectiveTrivia, green.DirectiveActive,
		green.NewToken(kind.HashToken),
		green.NewToken(kind.RegionKeyword),
		green.TokenWithTrivia(green.PreprocessingMessage(" top"), kind.EndOfDirectiveToken, green.LineFeed),
	)
	x := green.IdentifierWithTrivia(f.List(green.Space, dir), "x", nil)
	g := f.Node(kind.Statement, f.Node(kind.IdentifierName, x), green.NewToken(kind.SemicolonToken))
	root := red.NewRoot(g)
	if root.ToFullString() != " #region top\nx;" {
		t.Fatalf("text = %q", root.ToFullString())
	}

	tok, _ := root.FirstToken(false)
	lead := tok.LeadingTrivia()
	if len(lead) != 2 || lead[0].Structure() != nil || !lead[1].HasStructure() {
		t.Fatalf("unexpected leading trivia")
	}
	s1 := lead[1].Structure()
	s2 := tok.LeadingTrivia()[1].Structure()
	if s1 == nil || s1 != s2 {
		t.Fatalf("structure identity is not stable")
	}
	if s1.Parent() != nil || !s1.IsStructure() {
		t.Fatalf("structure root must have no parent")
	}
	owner, ok := s1.ParentTrivia()
	if !ok || !owner.Token().Equal(tok) || owner.Position() != 1 {
		t.Fatalf("ParentTrivia should lead back to the token")
	}
	if s1.Position() != 1 || s1.Kind() != kind.RegionDirectiveTrivia {
		t.Fatalf("structure at %d kind %v", s1.Position(), s1.Kind())
	}
	if ds := root.Directives(); len(ds) != 1 || ds[0] != s1 {
		t.Fatalf("Directives = %v", ds)
	}

	var kinds []kind.Kind
	for tr := range root.DescendantTrivia(true) {
		kinds = append(kinds, tr.Kind())
	}
	want := []kind.Kind{kind.WhitespaceTrivia, kind.RegionDirectiveTrivia, kind.PreprocessingMessageTrivia, kind.EndOfLineTrivia}
	if !slices.Equal(kinds, want) {
		t.Fatalf("DescendantTrivia(true) = %v", kinds)
	}
	runtime.KeepAlive(s1)
}

func TestConcurrentStructureLookup(t *testing.T) {
	skipped := f.Node(kind.SkippedTokensTrivia, green.TokenWithTrivia(nil, kind.CloseParenToken, green.Space))
	g := f.Node(kind.Statement, f.Node(kind.IdentifierName, green.IdentifierWithTrivia(skipped, "x", nil)))
	root := red.NewRoot(g)
	tok, _ := root.FirstToken(false)
	tr := tok.LeadingTrivia()[0]

	got := make([]*red.Node, 8)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = tr.Structure()
		}()
	}
	wg.Wait()
	for _, n := range got {
		if n != got[0] {
			t.Fatalf("concurrent Structure calls returned different nodes")
		}
	}
	if !root.ContainsSkippedText() {
		t.Fatalf("skipped text flag missing")
	}
}

func TestSeparatedListView(t *testing.T) {
	comma := green.TokenWithTrivia(nil, kind.CommaToken, green.Space)
	arg := func(s string) green.Node { return f.Node(kind.IdentifierName, green.Identifier(s)) }
	args := f.SeparatedList([]green.Node{arg("x"), arg("y"), arg("z")}, []green.Node{comma, comma})
	g := f.Node(kind.ArgumentList, green.NewToken(kind.OpenParenToken), args, green.NewToken(kind.CloseParenToken))
	root := red.NewRoot(g)

	if !root.ChildNode(1).IsSeparatedList() {
		t.Fatalf("args should be detected as a separated list")
	}
	sl := root.SeparatedListAt(1)
	if sl.Count() != 3 || sl.SeparatorCount() != 2 {
		t.Fatalf("count %d separators %d", sl.Count(), sl.SeparatorCount())
	}
	if e := sl.Element(1); e.Node == nil || e.Node.String() != "y" || e.Node.Position() != 4 {
		t.Fatalf("element 1 wrong")
	}
	sep, ok := sl.Separator(0)
	if !ok || sep.Position() != 2 || sep.Text() != "," {
		t.Fatalf("separator 0 at %d", sep.Position())
	}
	if _, ok := sl.Separator(2); ok {
		t.Fatalf("no trailing separator expected")
	}
	n := 0
	for range sl.Elements() {
		n++
	}
	if n != 3 {
		t.Fatalf("Elements yielded %d", n)
	}
	if single := red.NewRoot(f.Node(kind.ArgumentList, green.NewToken(kind.OpenParenToken), arg("q"), green.NewToken(kind.CloseParenToken))); single.ListAt(1).Count() != 1 {
		t.Fatalf("a single element slot is a one-element list")
	}
}

func TestPlainListIsNotSeparated(t *testing.T) {
	items := f.List(
		f.Node(kind.IdentifierName, green.IdentifierWithTrivia(nil, "x", green.Space)),
		green.TokenWithTrivia(nil, kind.ReturnKeyword, green.Space),
		f.Node(kind.IdentifierName, green.Identifier("y")),
	)
	root := red.NewRoot(f.Node(kind.Sequence, items))
	list := root.ChildNode(0)
	if list == nil || !list.IsList() {
		t.Fatalf("slot 0 should be a list")
	}
	if list.IsSeparatedList() {
		t.Fatalf("a list built with List must not be separated, whatever its slots look like")
	}
}

func TestSpanSkipsEmptyLeadingNode(t *testing.T) {
	g := f.Node(kind.Sequence, f.Node(kind.Statement), green.IdentifierWithTrivia(green.Space, "a", nil))
	if sp := red.NewRoot(g).Span(); sp.Start != 1 || sp.End != 2 {
		t.Fatalf("span = %d..%d, want 1..2", sp.Start, sp.End)
	}
}

func TestDiagnosticsAreAbsolute(t *testing.T) {
	bad := green.BadToken(nil, "$", nil).WithDiagnostics([]diag.Diagnostic{
		diag.NewError(diag.LexUnknownChar, 0, 1, "unexpected character"),
	}).(green.Token)
	g := f.Node(kind.CompilationUnit, f.List(stmt("a"), f.Node(kind.Statement, bad)), green.NewToken(kind.EndOfFileToken))
	root := red.NewRoot(g)
	ds := root.Diagnostics()
	if len(ds) != 1 || ds[0].Offset != 3 {
		t.Fatalf("diagnostics = %v", ds)
	}
	second := root.ChildNode(0).ChildNode(1)
	if ds := second.Diagnostics(); len(ds) != 1 || ds[0].Offset != 3 {
		t.Fatalf("node diagnostics = %v", ds)
	}
	tok, _ := second.FirstToken(false)
	if ds := tok.Diagnostics(); len(ds) != 1 || ds[0].Offset != 3 {
		t.Fatalf("token diagnostics = %v", ds)
	}
}

func TestLargeListUnderBlock(t *testing.T) {
	var stmts []green.Node
	for i := range 12 {
		stmts = append(stmts, stmt(string(rune('a'+i))))
	}
	block := f.Node(kind.Block, green.NewToken(kind.OpenBraceToken), f.List(stmts...), green.NewToken(kind.CloseBraceToken))
	root := red.NewRoot(block)
	list := root.ChildNode(1)
	held := list.ChildNode(5)
	if list.ChildNode(5) != held {
		t.Fatalf("weakly cached child must be stable while held")
	}
	if held.Position() != 1+5*3 || held.String() != "f;" {
		t.Fatalf("element 5 at %d: %q", held.Position(), held.String())
	}
	runtime.KeepAlive(held)
	var count int
	for range root.ChildNodes() {
		count++
	}
	if count != 12 {
		t.Fatalf("ChildNodes through the list = %d", count)
	}
}
