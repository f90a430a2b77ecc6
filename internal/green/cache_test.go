package green_test

import (
	"sync"
	"testing"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

func TestCacheInternsTwoCommaList(t *testing.T) {
	f := green.NewFactory(green.NewCache(1024))
	comma := green.NewToken(kind.CommaToken)
	first := f.List(comma, comma)
	second := f.List(comma, comma)
	if first != second {
		t.Fatalf("second (comma, comma) list should be the cached instance")
	}
	if first.SlotCount() != 2 || first.Slot(0) != comma || first.Slot(1) != comma {
		t.Fatalf("unexpected list shape")
	}
	st := f.Cache().Stats()
	if st.Hits != 1 || st.Adds != 1 || st.Lookups != 2 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestCacheKeyIncludesContext(t *testing.T) {
	cache := green.NewCache(1024)
	plain := green.NewFactory(cache)
	async := plain.WithContext(green.Context{IsInAsync: true})
	query := plain.WithContext(green.Context{IsInQuery: true})
	field := plain.WithContext(green.Context{IsInFieldKeywordContext: true})

	id := green.Identifier("x")
	semi := green.NewToken(kind.SemicolonToken)
	nodes := []green.Node{
		plain.Node(kind.Statement, id, semi),
		async.Node(kind.Statement, id, semi),
		query.Node(kind.Statement, id, semi),
		field.Node(kind.Statement, id, semi),
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i] == nodes[j] {
				t.Fatalf("nodes %d and %d built in different contexts were shared", i, j)
			}
		}
	}
	if got := green.ContextOf(nodes[1]); !got.IsInAsync || got.IsInQuery {
		t.Fatalf("context not stamped: %+v", got)
	}
	if async.Node(kind.Statement, id, semi) != nodes[1] {
		t.Fatalf("same context should hit")
	}
}

func TestCacheSkipsPayloadAndMissing(t *testing.T) {
	f := green.NewFactory(green.NewCache(1024))
	bad := green.BadToken(nil, "$", nil).WithDiagnostics([]diag.Diagnostic{
		diag.NewError(diag.LexUnknownChar, 0, 1, "unknown"),
	})
	if f.Node(kind.Sequence, bad) == f.Node(kind.Sequence, bad) {
		t.Fatalf("nodes carrying diagnostics must not be cached")
	}
	m := green.MissingToken(nil, kind.IdentifierToken, nil)
	if f.Node(kind.IdentifierName, m) == f.Node(kind.IdentifierName, m) {
		t.Fatalf("missing-only nodes must not be cached")
	}
	a, b, c, d := green.Identifier("a"), green.Identifier("b"), green.Identifier("c"), green.Identifier("d")
	if f.Node(kind.Sequence, a, b, c, d) == f.Node(kind.Sequence, a, b, c, d) {
		t.Fatalf("four-slot nodes must not be cached")
	}
	if _, h := f.Cache().TryGet(kind.Sequence, 0, a, b, c, d); h >= 0 {
		t.Fatalf("TryGet should report uncacheable with a negative hash")
	}
}

func TestCacheIsCorrectnessNeutral(t *testing.T) {
	build := func(f green.Factory) green.Node {
		var stmts []green.Node
		for i := 0; i < 12; i++ {
			stmts = append(stmts, f.Node(kind.Statement,
				binary(f),
				green.TokenWithTrivia(nil, kind.SemicolonToken, green.LineFeed),
			))
		}
		comma := green.TokenWithTrivia(nil, kind.CommaToken, green.Space)
		args := f.List(f.Node(kind.IdentifierName, green.Identifier("x")), comma, f.Node(kind.IdentifierName, green.Identifier("y")))
		return f.Node(kind.CompilationUnit, f.List(stmts...), args, green.NewToken(kind.EndOfFileToken))
	}
	cached := build(green.NewFactory(green.NewCache(256)))
	uncached := build(green.NewFactory(green.Disabled))

	var compare func(a, b green.Node)
	compare = func(a, b green.Node) {
		t.Helper()
		if (a == nil) != (b == nil) {
			t.Fatalf("nil mismatch")
		}
		if a == nil {
			return
		}
		if a.Kind() != b.Kind() || a.FullWidth() != b.FullWidth() || a.SlotCount() != b.SlotCount() || a.Flags() != b.Flags() {
			t.Fatalf("%v/%v differ: width %d/%d flags %v/%v", a.Kind(), b.Kind(), a.FullWidth(), b.FullWidth(), a.Flags(), b.Flags())
		}
		if green.ToFullString(a) != green.ToFullString(b) {
			t.Fatalf("text differs")
		}
		for i := range a.SlotCount() {
			compare(a.Slot(i), b.Slot(i))
		}
	}
	compare(cached, uncached)
	if !green.Equivalent(cached, uncached) {
		t.Fatalf("trees should be equivalent")
	}
}

func TestCacheDisabled(t *testing.T) {
	f := green.NewFactory(green.Disabled)
	comma := green.NewToken(kind.CommaToken)
	if f.List(comma, comma) == f.List(comma, comma) {
		t.Fatalf("disabled cache must not share")
	}
	if green.Disabled.Enabled() || green.Disabled.Stats().Lookups != 0 {
		t.Fatalf("disabled cache recorded lookups")
	}
}

func TestCacheConcurrentUse(t *testing.T) {
	f := green.NewFactory(green.NewCache(64))
	comma := green.NewToken(kind.CommaToken)
	ids := make([]green.Token, 16)
	for i := range ids {
		ids[i] = green.Identifier(string(rune('a' + i)))
	}

	var wg sync.WaitGroup
	results := make([][]green.Node, 8)
	for w := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				a, b := ids[i%len(ids)], ids[(i*7)%len(ids)]
				results[w] = append(results[w], f.List(a, comma, b))
			}
		}()
	}
	wg.Wait()

	for w := range results {
		for i, n := range results[w] {
			a, b := ids[i%len(ids)], ids[(i*7)%len(ids)]
			if n.SlotCount() != 3 || n.Slot(0) != a || n.Slot(1) != comma || n.Slot(2) != b {
				t.Fatalf("worker %d item %d: wrong node returned", w, i)
			}
		}
	}
}
