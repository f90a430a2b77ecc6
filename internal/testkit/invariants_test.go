package testkit_test

import (
	"strings"
	"testing"

	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/parser"
	"verdant/internal/testkit"
)

var inputs = []string{
	"",
	"x;",
	"f(a, b, c);\n",
	"  // lead\nlet x = 1 + 2 * 3; // tail\n",
	"{ a; { b; } }",
	"g(a b, , ) ) ;",
	"((((",
	"#define A\n#if A && !B\nyes;\n#else\nno;\n#endif\n",
	"#if X\n  skipped text\n#endif\nafter;",
	"async f() { await g(); }",
	"x = y ?? z => w;\r\n",
	"\"unterminated\n'c' 0x1F 1.5e3 /* open",
	"<<<<<<< HEAD\na;\n=======\nb;\n>>>>>>> other\n",
}

func TestParsedTreesHold(t *testing.T) {
	for _, src := range inputs {
		res := parser.ParseText(src, parser.Options{})
		if err := testkit.CheckTree(src, res.Tree(1)); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestLongFile(t *testing.T) {
	src := strings.Repeat("call(a, b);\n", 200)
	res := parser.ParseText(src, parser.Options{})
	if err := testkit.CheckTree(src, res.Tree(1)); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRoundTripReportsFirstDifference(t *testing.T) {
	g := green.Identifier("abc")
	err := testkit.CheckRoundTrip("abd", g)
	if err == nil {
		t.Fatalf("expected mismatch")
	}
	if !strings.Contains(err.Error(), "byte 2") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestHandBuiltTree(t *testing.T) {
	f := green.Default
	a := green.Identifier("a")
	b := green.Identifier("b")
	comma := green.TokenWithTrivia(nil, kind.CommaToken, green.Space)
	list := f.SeparatedList([]green.Node{f.Node(kind.IdentifierName, a), f.Node(kind.IdentifierName, b)}, []green.Node{comma})
	if err := testkit.CheckLists(list); err != nil {
		t.Fatalf("%v", err)
	}
	if err := testkit.CheckWidths(list); err != nil {
		t.Fatalf("%v", err)
	}
	if err := testkit.CheckFlags(list); err != nil {
		t.Fatalf("%v", err)
	}
}
