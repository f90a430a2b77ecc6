package serial_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/serial"
)

var mark = green.NewAnnotation("tool", "mark")

// sample covers every node category the writer knows about.
func sample() green.Node {
	f := green.NewFactory(nil)
	async := f.WithContext(green.Context{IsInAsync: true})

	define := f.Directive(kind.DefineDirectiveTrivia, green.DirectiveActive,
		green.NewToken(kind.HashToken),
		green.TokenWithTrivia(nil, kind.DefineKeyword, green.Space),
		green.Identifier("DEBUG"),
		green.TokenWithTrivia(nil, kind.EndOfDirectiveToken, green.LineFeed),
	)
	skipped := f.Node(kind.SkippedTokensTrivia, green.TokenWithTrivia(nil, kind.CloseParenToken, green.Space))

	await := green.ContextualIdentifier(kind.AwaitKeyword, f.List(define, skipped), "await", "await", green.Space)
	num := green.Literal[int64](nil, kind.NumericLiteralToken, "0x10", 16, nil)
	str := green.Literal(green.ElasticZeroSpace, kind.StringLiteralToken, `"hi"`, "hi", green.Comment("// c"))
	ch := green.Literal[rune](nil, kind.CharacterLiteralToken, "'x'", 'x', nil)
	bad := green.BadToken(nil, "$", green.Tab)
	missing := green.MissingToken(nil, kind.CloseParenToken, nil).WithDiagnostics([]diag.Diagnostic{
		diag.NewError(diag.SynUnclosedDelimiter, 0, 0, "expected )"),
	})

	call := async.Node(kind.InvocationExpression,
		green.AddAnnotations(async.Node(kind.IdentifierName, await), mark),
		async.Node(kind.ArgumentList,
			green.NewToken(kind.OpenParenToken),
			f.SeparatedList(
				[]green.Node{
					f.Node(kind.LiteralExpression, num),
					green.AddAnnotations(f.Node(kind.LiteralExpression, str), mark),
					f.Node(kind.LiteralExpression, ch),
				},
				[]green.Node{
					green.TokenWithTrivia(nil, kind.CommaToken, green.Space),
					green.TokenWithTrivia(nil, kind.CommaToken, green.Space),
				},
			),
			missing,
		),
	)
	stmt := green.AddDiagnostics(
		f.Node(kind.Statement, call, bad, green.TokenWithTrivia(nil, kind.SemicolonToken, green.CarriageReturnLineFeed)),
		diag.NewWarning(diag.LexUnknownChar, 3, 1, "odd"),
	)
	return f.Node(kind.CompilationUnit, f.List(stmt, f.Node(kind.Statement, green.NewToken(kind.SemicolonToken))), green.NewToken(kind.EndOfFileToken))
}

func roundTrip(t *testing.T, n green.Node, f green.Factory) green.Node {
	t.Helper()
	data, err := serial.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := serial.Unmarshal(data, f)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func find(n green.Node, pred func(green.Node) bool) green.Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	if tok, ok := n.(green.Token); ok {
		if x := find(tok.LeadingTrivia(), pred); x != nil {
			return x
		}
		return find(tok.TrailingTrivia(), pred)
	}
	for i := range n.SlotCount() {
		if x := find(n.Slot(i), pred); x != nil {
			return x
		}
	}
	return nil
}

func ofKind(k kind.Kind) func(green.Node) bool {
	return func(n green.Node) bool { return n.Kind() == k }
}

func TestRoundTripPreservesTree(t *testing.T) {
	in := sample()
	out := roundTrip(t, in, green.NewFactory(nil))
	if green.ToFullString(out) != green.ToFullString(in) {
		t.Fatalf("text %q != %q", green.ToFullString(out), green.ToFullString(in))
	}
	if out.FullWidth() != in.FullWidth() || out.Flags() != in.Flags() {
		t.Fatalf("width or flags differ: %d/%v vs %d/%v", out.FullWidth(), out.Flags(), in.FullWidth(), in.Flags())
	}
	if !green.Equivalent(in, out) {
		t.Fatalf("decoded tree is not equivalent")
	}
	if ds := green.CollectDiagnostics(out); len(ds) != 2 {
		t.Fatalf("diagnostics = %v", ds)
	}

	call := find(out, ofKind(kind.InvocationExpression))
	if !green.ContextOf(call).IsInAsync {
		t.Fatalf("factory context lost")
	}
	num := find(out, ofKind(kind.NumericLiteralToken)).(green.Token)
	if v, ok := green.TypedValue[int64](num); !ok || v != 16 {
		t.Fatalf("numeric value = %v, %v", v, ok)
	}
	ch := find(out, ofKind(kind.CharacterLiteralToken)).(green.Token)
	if v, ok := green.TypedValue[rune](ch); !ok || v != 'x' {
		t.Fatalf("char value = %v, %v", v, ok)
	}
	id := find(out, ofKind(kind.IdentifierToken)).(green.Token)
	if id.ContextualKind() != kind.AwaitKeyword {
		t.Fatalf("contextual kind = %v", id.ContextualKind())
	}
	if find(out, func(n green.Node) bool { return n.IsMissing() && n.Kind() == kind.CloseParenToken }) == nil {
		t.Fatalf("missing token lost")
	}
	dir, ok := find(out, ofKind(kind.DefineDirectiveTrivia)).(*green.DirectiveNode)
	if !ok || !dir.IsActive() || dir.Name() != "DEBUG" {
		t.Fatalf("directive not restored")
	}
}

func TestRoundTripRestoresSharedValues(t *testing.T) {
	out := roundTrip(t, sample(), green.NewFactory(nil))
	comma := find(out, ofKind(kind.CommaToken))
	if comma != green.Node(green.TokenWithTrivia(nil, kind.CommaToken, green.Space)) {
		t.Fatalf("comma with a trailing space should be the shared singleton")
	}
	str := find(out, ofKind(kind.StringLiteralToken)).(green.Token)
	if str.LeadingTrivia() != green.Node(green.ElasticZeroSpace) {
		t.Fatalf("elastic trivia should be the canonical value")
	}

	marked := green.AnnotatedNodes(out, "tool")
	if len(marked) != 2 {
		t.Fatalf("annotated nodes = %d", len(marked))
	}
	a0, a1 := marked[0].Annotations(), marked[1].Annotations()
	if a0[0] != a1[0] {
		t.Fatalf("one annotation on two nodes must decode to one identity")
	}
	if a0[0] == mark {
		t.Fatalf("identities are per process and must not be reused from the stream")
	}
}

func TestRoundTripKeepsListShape(t *testing.T) {
	f := green.NewFactory(nil)
	x := f.Node(kind.IdentifierName, green.Identifier("x"))
	y := f.Node(kind.IdentifierName, green.Identifier("y"))
	ret := green.TokenWithTrivia(nil, kind.ReturnKeyword, green.Space)
	comma := green.NewToken(kind.CommaToken)

	plain := f.Node(kind.Sequence, f.List(x, ret, y))
	out := roundTrip(t, plain, green.NewFactory(nil))
	if green.IsSeparatedList(out.Slot(0)) {
		t.Fatalf("plain list decoded as separated")
	}

	sep := f.Node(kind.Sequence, f.SeparatedList([]green.Node{x, y}, []green.Node{comma, comma}))
	out = roundTrip(t, sep, green.NewFactory(nil))
	list := out.Slot(0)
	if !green.IsSeparatedList(list) || list.SlotCount() != 4 {
		t.Fatalf("separated list decoded as %v with %d slots", list.Flags(), list.SlotCount())
	}
	if green.ToFullString(out) != "x,y," {
		t.Fatalf("text = %q", green.ToFullString(out))
	}
}

func TestDecodeThroughCacheShares(t *testing.T) {
	f := green.NewFactory(green.NewCache(1024))
	group := f.Node(kind.ParenthesizedGroup, green.NewToken(kind.OpenParenToken), green.NewToken(kind.CloseParenToken))
	data, err := serial.Marshal(group)
	if err != nil {
		t.Fatal(err)
	}
	a, err := serial.Unmarshal(data, f)
	if err != nil {
		t.Fatal(err)
	}
	b, err := serial.Unmarshal(data, f)
	if err != nil {
		t.Fatal(err)
	}
	if a != group || b != group {
		t.Fatalf("decoding through the cache should return the interned node")
	}
}

func TestErrors(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	_ = enc.EncodeArrayLen(3)
	_ = enc.EncodeString("VRDT")
	_ = enc.EncodeUint(99)
	if _, err := serial.Unmarshal(buf.Bytes(), green.Default); !errors.Is(err, serial.ErrVersion) {
		t.Fatalf("version: %v", err)
	}

	buf.Reset()
	_ = enc.EncodeArrayLen(3)
	_ = enc.EncodeString("NOPE")
	if _, err := serial.Unmarshal(buf.Bytes(), green.Default); !errors.Is(err, serial.ErrBadTag) {
		t.Fatalf("magic: %v", err)
	}

	buf.Reset()
	_ = enc.EncodeArrayLen(3)
	_ = enc.EncodeString("VRDT")
	_ = enc.EncodeUint(uint64(serial.Version))
	_ = enc.EncodeUint(200)
	if _, err := serial.Unmarshal(buf.Bytes(), green.Default); !errors.Is(err, serial.ErrBadTag) {
		t.Fatalf("tag: %v", err)
	}

	type opaque struct{ X int }
	lit := green.Literal(nil, kind.NumericLiteralToken, "1", opaque{1}, nil)
	if _, err := serial.Marshal(lit); !errors.Is(err, serial.ErrValueType) {
		t.Fatalf("value type: %v", err)
	}

	data, err := serial.Marshal(sample())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := serial.Unmarshal(data[:len(data)/2], green.Default); err == nil {
		t.Fatalf("truncated stream should fail")
	}
}

func TestTreeInsideStruct(t *testing.T) {
	type record struct {
		Name string
		Tree serial.Tree
	}
	in := record{Name: "a.vd", Tree: serial.Tree{Root: sample()}}
	data, err := msgpack.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out record
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Name != in.Name || green.ToFullString(out.Tree.Root) != green.ToFullString(in.Tree.Root) {
		t.Fatalf("record did not survive")
	}
}
