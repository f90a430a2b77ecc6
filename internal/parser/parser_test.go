package parser_test

import (
	"strings"
	"testing"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/parser"
)

func parse(src string) parser.Result {
	return parser.ParseText(src, parser.Options{})
}

// find returns the first node of kind k under n in document order.
func find(n green.Node, k kind.Kind) green.Node {
	if n == nil {
		return nil
	}
	if _, isToken := n.(green.Token); isToken {
		return nil
	}
	if n.Kind() == k {
		return n
	}
	for i := range n.SlotCount() {
		if found := find(n.Slot(i), k); found != nil {
			return found
		}
	}
	return nil
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestRoundTripPreservesText(t *testing.T) {
	inputs := []string{
		"",
		"a;",
		"fn main() {\n    return f(x, y) + 1;\n}\n",
		"f(x",
		"a) b ] c }",
		"{ a; { b; } ",
		"(a ] b)",
		"[1, 2, 3,]",
		"x = y ?? z => w;",
		"#if DEBUG\nlog(x);\n#endif\nrun();\n",
		"async f(await x); from a select b;",
		"// only a comment",
		"a.b::c->d(e)(f);",
		"- - x; !y; ~z; +w",
	}
	for _, in := range inputs {
		r := parse(in)
		if got := green.ToFullString(r.Root); got != in {
			t.Fatalf("round trip of %q gave %q", in, got)
		}
		if r.Root.Kind() != kind.CompilationUnit || r.Root.FullWidth() != len(in) {
			t.Fatalf("%q: root %v width %d", in, r.Root.Kind(), r.Root.FullWidth())
		}
	}
}

func TestInvocationShape(t *testing.T) {
	r := parse("f(x, y);")
	stmt := r.Root.Slot(0)
	if stmt.Kind() != kind.Statement || stmt.Slot(1).Kind() != kind.SemicolonToken {
		t.Fatalf("statement: %v", stmt.Kind())
	}
	call := stmt.Slot(0)
	if call.Kind() != kind.InvocationExpression || call.Slot(0).Kind() != kind.IdentifierName {
		t.Fatalf("call: %v", call.Kind())
	}
	args := call.Slot(1)
	if args.Kind() != kind.ArgumentList || args.SlotCount() != 3 {
		t.Fatalf("args: %v", args.Kind())
	}
	list := args.Slot(1)
	if !green.IsSeparatedList(list) || list.SlotCount() != 3 {
		t.Fatalf("argument list is not separated: %v", green.ToString(list))
	}
	if r.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(r.Bag))
	}
}

func TestBinaryPrecedence(t *testing.T) {
	r := parse("a = b + c * d;")
	assign := r.Root.Slot(0).Slot(0)
	if assign.Kind() != kind.BinaryExpression || assign.Slot(1).Kind() != kind.EqualsToken {
		t.Fatalf("top: %v", green.ToString(assign))
	}
	sum := assign.Slot(2)
	if sum.Slot(1).Kind() != kind.PlusToken || green.ToString(sum) != "b + c * d" {
		t.Fatalf("sum: %q", green.ToString(sum))
	}
	product := sum.Slot(2)
	if product.Kind() != kind.BinaryExpression || product.Slot(1).Kind() != kind.AsteriskToken {
		t.Fatalf("product: %q", green.ToString(product))
	}

	// right associative
	r = parse("a = b = c;")
	if inner := r.Root.Slot(0).Slot(0).Slot(2); inner.Kind() != kind.BinaryExpression {
		t.Fatalf("a = (b = c) expected, got %q", green.ToString(inner))
	}
}

func TestPrefixAndMissingOperand(t *testing.T) {
	r := parse("-x;")
	if u := r.Root.Slot(0).Slot(0); u.Kind() != kind.PrefixUnaryExpression {
		t.Fatalf("got %v", u.Kind())
	}

	r = parse("a + ;")
	bin := r.Root.Slot(0).Slot(0)
	right := bin.Slot(2)
	if right.Kind() != kind.IdentifierName || !right.IsMissing() {
		t.Fatalf("missing operand: %v missing=%v", right.Kind(), right.IsMissing())
	}
	if r.Bag.Len() != 1 || r.Bag.Items()[0].Code != diag.SynUnexpectedToken {
		t.Fatalf("diagnostics: %v", codes(r.Bag))
	}
}

func TestKeywordsStayTokens(t *testing.T) {
	r := parse("fn main() { return 1; }")
	stmt := r.Root.Slot(0)
	seq := stmt.Slot(0)
	if seq.Kind() != kind.Sequence {
		t.Fatalf("got %v", seq.Kind())
	}
	items := green.Children(seq.Slot(0))
	if len(items) != 3 || items[0].Kind() != kind.FnKeyword ||
		items[1].Kind() != kind.InvocationExpression || items[2].Kind() != kind.Block {
		t.Fatalf("items: %d", len(items))
	}
	if stmt.Slot(1) != nil {
		t.Fatalf("a block ends the statement without ';'")
	}
}

func TestMissingCloser(t *testing.T) {
	r := parse("f(x")
	args := find(r.Root, kind.ArgumentList)
	closer := args.Slot(2)
	if closer.Kind() != kind.CloseParenToken || !closer.IsMissing() {
		t.Fatalf("closer: %v missing=%v", closer.Kind(), closer.IsMissing())
	}
	items := r.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynUnclosedDelimiter || items[0].Offset != 3 {
		t.Fatalf("diagnostics: %+v", items)
	}
}

func TestStrayClosersAreSkipped(t *testing.T) {
	r := parse("a) b")
	skipped := green.SkippedTokens(r.Root)
	if len(skipped) != 1 || skipped[0].Kind() != kind.CloseParenToken {
		t.Fatalf("skipped: %v", skipped)
	}
	items := r.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynUnexpectedCloser || items[0].Offset != 1 || items[0].Width != 1 {
		t.Fatalf("diagnostics: %+v", items)
	}
	if r.Root.Flags()&green.ContainsSkippedText == 0 {
		t.Fatalf("root must report skipped text")
	}

	// a closer of an outer group ends the inner one
	r = parse("(a ] b)")
	group := find(r.Root, kind.ParenthesizedGroup)
	if group.Slot(2).IsMissing() {
		t.Fatalf("')' should close the group")
	}
	if !green.IsSeparatedList(group.Slot(1)) || !group.Slot(1).Slot(1).IsMissing() {
		t.Fatalf("elements split by a skipped closer get a missing comma")
	}
}

func TestContextualKeywordsSetContext(t *testing.T) {
	r := parse("async f(await x);")
	call := find(r.Root, kind.InvocationExpression)
	if !green.ContextOf(call).IsInAsync {
		t.Fatalf("invocation after async must be built in async context")
	}
	if find(call, kind.PrefixUnaryExpression) == nil {
		t.Fatalf("await in async context is an operator")
	}

	r = parse("f(await x);")
	call = find(r.Root, kind.InvocationExpression)
	if green.ContextOf(call).IsInAsync || find(call, kind.PrefixUnaryExpression) != nil {
		t.Fatalf("await outside async is an identifier")
	}

	r = parse("from a; b;")
	first, second := r.Root.Slot(0).Slot(0), r.Root.Slot(0).Slot(1)
	if seq := find(first, kind.Sequence); seq == nil || !green.ContextOf(green.Children(seq.Slot(0))[1]).IsInQuery {
		t.Fatalf("from opens a query context")
	}
	if green.ContextOf(find(second, kind.IdentifierName)).IsInQuery {
		t.Fatalf("context must not leak into the next statement")
	}

	r = parse("get { field; }")
	if !green.ContextOf(find(r.Root, kind.Block)).IsInFieldKeywordContext {
		t.Fatalf("get opens the field keyword context")
	}
}

func TestLongStatementList(t *testing.T) {
	src := "{" + strings.Repeat(" a;", 12) + " }"
	r := parse(src)
	block := find(r.Root, kind.Block)
	stmts := block.Slot(1)
	if !green.IsList(stmts) || stmts.SlotCount() != 12 {
		t.Fatalf("statements: %v", stmts.Kind())
	}
	if got := stmts.SlotOffset(11); got != 3*11 {
		t.Fatalf("offset of last statement = %d", got)
	}
}

func TestMaxErrors(t *testing.T) {
	r := parser.ParseText("((((", parser.Options{MaxErrors: 2})
	if r.Bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %v", codes(r.Bag))
	}
	r = parse("((((")
	if r.Bag.Len() != 4 {
		t.Fatalf("want 4 diagnostics, got %v", codes(r.Bag))
	}
}

func TestDirectivesFlowThrough(t *testing.T) {
	r := parser.ParseText("#if DEBUG\nlog(x);\n#endif\nrun();\n", parser.Options{})
	if find(r.Root, kind.InvocationExpression) == nil {
		t.Fatalf("run() missing")
	}
	if green.ToString(r.Root.Slot(0)) != "run();" {
		t.Fatalf("disabled code must not parse: %q", green.ToString(r.Root.Slot(0)))
	}
	if len(green.Directives(r.Root)) != 2 || r.Directives.HasUnfinishedIf() {
		t.Fatalf("directives: %v", green.Directives(r.Root))
	}
}

func TestSharedFactory(t *testing.T) {
	f := green.NewFactory(green.NewCache(1024))
	opts := parser.Options{}
	opts.Lexer.Factory = f
	a := parser.ParseText("();", opts)
	b := parser.ParseText("();", opts)
	ga, gb := find(a.Root, kind.ParenthesizedGroup), find(b.Root, kind.ParenthesizedGroup)
	if ga != gb {
		t.Fatalf("identical trivia-free groups should come from the cache")
	}
}
