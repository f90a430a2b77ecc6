package red

import (
	"iter"

	"verdant/internal/green"
)

// ChildNodesAndTokens yields the children of n in order. The elements of list
// slots are yielded in place of the list.
func (n *Node) ChildNodesAndTokens() iter.Seq[NodeOrToken] {
	return func(yield func(NodeOrToken) bool) {
		n.eachChild(yield)
	}
}

func (n *Node) eachChild(yield func(NodeOrToken) bool) bool {
	for i := range n.green.SlotCount() {
		g := n.green.Slot(i)
		if g == nil {
			continue
		}
		if green.IsList(g) && !n.IsList() {
			if !n.ChildNode(i).eachChild(yield) {
				return false
			}
			continue
		}
		if !yield(n.Child(i)) {
			return false
		}
	}
	return true
}

// ChildNodes yields only the node children of n.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := range n.ChildNodesAndTokens() {
			if c.Node != nil && !yield(c.Node) {
				return
			}
		}
	}
}

// DescendantNodesAndTokens yields every node and token under n in document
// order, n excluded.
func (n *Node) DescendantNodesAndTokens() iter.Seq[NodeOrToken] {
	return func(yield func(NodeOrToken) bool) {
		n.descend(nil, yield)
	}
}

// descend walks children depth first. into, when set, decides whether to
// enter a node.
func (n *Node) descend(into func(*Node) bool, yield func(NodeOrToken) bool) bool {
	for c := range n.ChildNodesAndTokens() {
		if !yield(c) {
			return false
		}
		if c.Node != nil && (into == nil || into(c.Node)) {
			if !c.Node.descend(into, yield) {
				return false
			}
		}
	}
	return true
}

func (n *Node) DescendantNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := range n.DescendantNodesAndTokens() {
			if c.Node != nil && !yield(c.Node) {
				return
			}
		}
	}
}

func (n *Node) DescendantTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for c := range n.DescendantNodesAndTokens() {
			if c.IsToken() && !yield(c.Token) {
				return
			}
		}
	}
}

// DescendantTrivia yields the trivia of every token under n. With
// intoStructure set, the trivia inside structured trivia follows its owner.
func (n *Node) DescendantTrivia(intoStructure bool) iter.Seq[Trivia] {
	return func(yield func(Trivia) bool) {
		n.eachTrivia(intoStructure, yield)
	}
}

func (n *Node) eachTrivia(intoStructure bool, yield func(Trivia) bool) bool {
	emit := func(list []Trivia) bool {
		for _, tr := range list {
			if !yield(tr) {
				return false
			}
			if intoStructure && tr.HasStructure() {
				if !tr.Structure().eachTrivia(true, yield) {
					return false
				}
			}
		}
		return true
	}
	for t := range n.DescendantTokens() {
		if !emit(t.LeadingTrivia()) || !emit(t.TrailingTrivia()) {
			return false
		}
	}
	return true
}

// Ancestors yields Parent, its parent, and so on.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// AncestorsAndSelf yields n followed by Ancestors.
func (n *Node) AncestorsAndSelf() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if !yield(n) {
			return
		}
		for p := range n.Ancestors() {
			if !yield(p) {
				return
			}
		}
	}
}

func acceptToken(t Token, includeZeroWidth bool) bool {
	return includeZeroWidth || t.Width() > 0
}

// FirstToken returns the first token under n. Zero-width tokens (missing
// tokens, end of file) are skipped unless includeZeroWidth is set.
func (n *Node) FirstToken(includeZeroWidth bool) (Token, bool) {
	for c := range n.ChildNodesAndTokens() {
		if c.IsToken() {
			if acceptToken(c.Token, includeZeroWidth) {
				return c.Token, true
			}
			continue
		}
		if t, ok := c.Node.FirstToken(includeZeroWidth); ok {
			return t, true
		}
	}
	return Token{}, false
}

// LastToken returns the last token under n.
func (n *Node) LastToken(includeZeroWidth bool) (Token, bool) {
	for i := n.green.SlotCount() - 1; i >= 0; i-- {
		x := n.Child(i)
		switch {
		case x.IsZero():
			continue
		case x.IsToken():
			if acceptToken(x.Token, includeZeroWidth) {
				return x.Token, true
			}
		default:
			if t, ok := x.Node.LastToken(includeZeroWidth); ok {
				return t, true
			}
		}
	}
	return Token{}, false
}

// NextToken returns the token after t in document order.
func (t Token) NextToken(includeZeroWidth bool) (Token, bool) {
	c, i := t.container, t.index
	for c != nil {
		for j := i + 1; j < c.green.SlotCount(); j++ {
			x := c.Child(j)
			switch {
			case x.IsZero():
			case x.IsToken():
				if acceptToken(x.Token, includeZeroWidth) {
					return x.Token, true
				}
			default:
				if nt, ok := x.Node.FirstToken(includeZeroWidth); ok {
					return nt, true
				}
			}
		}
		i = c.index
		c = c.container
	}
	return Token{}, false
}

// PreviousToken returns the token before t in document order.
func (t Token) PreviousToken(includeZeroWidth bool) (Token, bool) {
	c, i := t.container, t.index
	for c != nil {
		for j := i - 1; j >= 0; j-- {
			x := c.Child(j)
			switch {
			case x.IsZero():
			case x.IsToken():
				if acceptToken(x.Token, includeZeroWidth) {
					return x.Token, true
				}
			default:
				if pt, ok := x.Node.LastToken(includeZeroWidth); ok {
					return pt, true
				}
			}
		}
		i = c.index
		c = c.container
	}
	return Token{}, false
}

// FindToken returns the token whose full span contains position. The end of
// the node maps to its last token.
func (n *Node) FindToken(position int) (Token, bool) {
	end := n.pos + n.green.FullWidth()
	if position < n.pos || position > end {
		return Token{}, false
	}
	if position == end {
		return n.LastToken(true)
	}
	cur := n
	for {
		var next *Node
		for i := range cur.green.SlotCount() {
			g := cur.green.Slot(i)
			if g == nil {
				continue
			}
			start := cur.pos + cur.green.SlotOffset(i)
			if position < start || position >= start+g.FullWidth() {
				continue
			}
			x := cur.Child(i)
			if x.IsToken() {
				return x.Token, true
			}
			next = x.Node
			break
		}
		if next == nil {
			return Token{}, false
		}
		cur = next
	}
}

// Directives returns the directive trivia roots under n in document order.
// Subtrees without directives are not entered.
func (n *Node) Directives() []*Node {
	if !n.ContainsDirectives() {
		return nil
	}
	var out []*Node
	withDirectives := func(c *Node) bool { return c.ContainsDirectives() }
	n.descend(withDirectives, func(c NodeOrToken) bool {
		if !c.IsToken() || c.Token.green.Flags()&green.ContainsDirectives == 0 {
			return true
		}
		for _, list := range [][]Trivia{c.Token.LeadingTrivia(), c.Token.TrailingTrivia()} {
			for _, tr := range list {
				if tr.IsDirective() {
					out = append(out, tr.Structure())
				}
			}
		}
		return true
	})
	return out
}
