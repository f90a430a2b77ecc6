// Package testkit holds structural checks shared by the lexer, parser and
// driver tests. Each check walks a tree and reports the first broken rule.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"verdant/internal/green"
	"verdant/internal/red"
)

// CheckTree runs every check on a parsed tree and the text it came from.
func CheckTree(src string, tree *red.Tree) error {
	if tree == nil {
		return errors.New("nil tree")
	}
	root := tree.Root()
	return errors.Join(
		CheckRoundTrip(src, root.Green()),
		CheckWidths(root.Green()),
		CheckFlags(root.Green()),
		CheckLists(root.Green()),
		CheckPositions(root),
	)
}

// CheckRoundTrip verifies that the tree prints back to src byte for byte.
func CheckRoundTrip(src string, g green.Node) error {
	got := green.ToFullString(g)
	if got == src {
		return nil
	}
	i := 0
	for i < len(got) && i < len(src) && got[i] == src[i] {
		i++
	}
	return fmt.Errorf("round trip differs at byte %d: got %q, want %q", i, clip(got, i), clip(src, i))
}

func clip(s string, at int) string {
	end := min(at+16, len(s))
	return s[at:end]
}

// CheckWidths verifies that every node is exactly as wide as its slots and
// that SlotOffset is the running sum of slot widths.
func CheckWidths(g green.Node) error {
	return walkGreen(g, func(n green.Node) error {
		if t, ok := n.(green.Token); ok {
			want := len(t.Text()) + width(t.LeadingTrivia()) + width(t.TrailingTrivia())
			if t.FullWidth() != want {
				return fmt.Errorf("%v token %q: full width %d, want %d", t.Kind(), t.Text(), t.FullWidth(), want)
			}
			return nil
		}
		sum := 0
		for i := range n.SlotCount() {
			if off := n.SlotOffset(i); off != sum {
				return fmt.Errorf("%v slot %d: offset %d, want %d", n.Kind(), i, off, sum)
			}
			sum += width(n.Slot(i))
		}
		if n.FullWidth() != sum {
			return fmt.Errorf("%v: full width %d, slots sum to %d", n.Kind(), n.FullWidth(), sum)
		}
		return nil
	})
}

func width(n green.Node) int {
	if n == nil {
		return 0
	}
	return n.FullWidth()
}

// CheckFlags verifies that every node carries the inheritable flags of its
// children.
func CheckFlags(g green.Node) error {
	return walkGreen(g, func(n green.Node) error {
		var want green.Flags
		if t, ok := n.(green.Token); ok {
			for _, tr := range []green.Node{t.LeadingTrivia(), t.TrailingTrivia()} {
				if tr != nil {
					want |= tr.Flags() & green.InheritMask &^ green.IsNotMissing
				}
			}
		} else {
			for i := range n.SlotCount() {
				if c := n.Slot(i); c != nil {
					want |= c.Flags() & green.InheritMask
				}
			}
		}
		if missing := want &^ n.Flags(); missing != 0 {
			return fmt.Errorf("%v: flags %v lack %v", n.Kind(), n.Flags(), missing)
		}
		if len(n.Diagnostics()) > 0 && n.Flags()&green.ContainsDiagnostics == 0 {
			return fmt.Errorf("%v: has diagnostics without the flag", n.Kind())
		}
		return nil
	})
}

// CheckLists verifies list normalization: no list holds fewer than two
// elements, lists never nest, and separated lists alternate elements with
// tokens of one kind.
func CheckLists(g green.Node) error {
	return walkGreen(g, func(n green.Node) error {
		if !green.IsList(n) {
			return nil
		}
		if n.SlotCount() < 2 {
			return fmt.Errorf("list with %d elements", n.SlotCount())
		}
		for i := range n.SlotCount() {
			c := n.Slot(i)
			if c == nil {
				return fmt.Errorf("list element %d is empty", i)
			}
			if green.IsList(c) {
				return fmt.Errorf("list element %d is itself a list", i)
			}
		}
		if !green.IsSeparatedList(n) {
			return nil
		}
		sep := n.Slot(1).Kind()
		for i := 1; i < n.SlotCount(); i += 2 {
			if _, ok := n.Slot(i).(green.Token); !ok {
				return fmt.Errorf("separator %d is a %v node, not a token", i/2, n.Slot(i).Kind())
			}
			if k := n.Slot(i).Kind(); k != sep {
				return fmt.Errorf("separator %d is %v, want %v", i/2, k, sep)
			}
		}
		return nil
	})
}

// walkGreen visits n and its slots depth first, trivia included.
func walkGreen(n green.Node, visit func(green.Node) error) error {
	if n == nil {
		return nil
	}
	if err := visit(n); err != nil {
		return err
	}
	if t, ok := n.(green.Token); ok {
		for _, tr := range []green.Node{t.LeadingTrivia(), t.TrailingTrivia()} {
			for _, piece := range green.Children(tr) {
				if err := walkGreen(piece, visit); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for i := range n.SlotCount() {
		if err := walkGreen(n.Slot(i), visit); err != nil {
			return err
		}
	}
	return nil
}

// CheckPositions verifies the red view: children start where the previous
// sibling ends, parents are the enclosing non-list node, and tokens tile the
// text without gaps.
func CheckPositions(root *red.Node) error {
	if err := checkChildren(root); err != nil {
		return err
	}
	next := root.Position()
	for tok := range root.DescendantTokens() {
		if tok.Position() != next {
			return fmt.Errorf("token %q at %d, want %d", tok.Text(), tok.Position(), next)
		}
		next += tok.FullWidth()
	}
	if end := root.Position() + root.FullWidth(); next != end {
		return fmt.Errorf("tokens end at %d, node ends at %d", next, end)
	}
	return nil
}

func checkChildren(n *red.Node) error {
	span := n.FullSpan()
	start, err := safecast.Conv[uint32](n.Position())
	if err != nil {
		return fmt.Errorf("%v: position: %w", n.Kind(), err)
	}
	if span.Start != start || int(span.Len()) != n.FullWidth() {
		return fmt.Errorf("%v: span %v does not match position %d width %d", n.Kind(), span, n.Position(), n.FullWidth())
	}
	pos := n.Position()
	for c := range n.ChildNodesAndTokens() {
		var at int
		var parent *red.Node
		if c.IsToken() {
			at, parent = c.Token.Position(), c.Token.Parent()
		} else {
			at, parent = c.Node.Position(), c.Node.Parent()
		}
		if at != pos {
			return fmt.Errorf("%v child %v at %d, want %d", n.Kind(), c.Kind(), at, pos)
		}
		if parent != n {
			return fmt.Errorf("%v child %v reports a different parent", n.Kind(), c.Kind())
		}
		pos += c.FullWidth()
		if c.Node != nil {
			if err := checkChildren(c.Node); err != nil {
				return err
			}
		}
	}
	if end := n.Position() + n.FullWidth(); pos != end {
		return fmt.Errorf("%v: children end at %d, node ends at %d", n.Kind(), pos, end)
	}
	return nil
}
