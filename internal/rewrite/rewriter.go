// Package rewrite rebuilds green trees bottom-up, allocating only along the
// paths that change.
package rewrite

import (
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/red"
)

// Rewriter walks a green tree depth first and rebuilds only the paths that
// changed. Every hook receives a node whose children were already rewritten
// and returns its replacement; returning the argument means "no change".
//
// Inside a list, a nil result removes the element. A nil result anywhere else
// is a contract violation.
type Rewriter struct {
	Token  func(green.Token) green.Node
	Trivia func(*green.Trivia) green.Node
	// Node is called for branches and entered structured trivia that have no
	// ByKind entry.
	Node   func(green.Node) green.Node
	ByKind map[kind.Kind]func(green.Node) green.Node

	// VisitIntoStructuredTrivia enters directives and skipped tokens.
	// Otherwise they are returned as they are.
	VisitIntoStructuredTrivia bool

	// Factory rebuilds changed nodes. The zero value means green.Default.
	Factory green.Factory
}

func (r *Rewriter) factory() green.Factory {
	if r.Factory.Cache() == nil {
		return green.Default
	}
	return r.Factory
}

// Rewrite returns the rewritten n, or n itself when nothing changed.
func (r *Rewriter) Rewrite(n green.Node) green.Node {
	switch x := n.(type) {
	case nil:
		return nil
	case green.Token:
		return r.token(x)
	case *green.Trivia:
		if r.Trivia != nil {
			return r.Trivia(x)
		}
		return x
	}
	if green.IsList(n) {
		if green.IsSeparatedList(n) {
			return r.separated(n)
		}
		return r.list(n)
	}
	if green.IsStructuredTrivia(n) && !r.VisitIntoStructuredTrivia {
		return n
	}
	return r.branch(n)
}

func (r *Rewriter) token(t green.Token) green.Node {
	out := t
	if lead := t.LeadingTrivia(); lead != nil {
		if nl := r.Rewrite(lead); nl != lead {
			out = out.WithLeadingTrivia(nl)
		}
	}
	if trail := t.TrailingTrivia(); trail != nil {
		if nt := r.Rewrite(trail); nt != trail {
			out = out.WithTrailingTrivia(nt)
		}
	}
	if r.Token != nil {
		return r.Token(out)
	}
	return out
}

// prefix copies the first i slots of n into a fresh slice with room for all.
func prefix(n green.Node, i int) []green.Node {
	out := make([]green.Node, 0, n.SlotCount())
	for j := range i {
		out = append(out, n.Slot(j))
	}
	return out
}

func (r *Rewriter) list(n green.Node) green.Node {
	var out []green.Node
	changed := false
	for i := range n.SlotCount() {
		c := n.Slot(i)
		v := r.Rewrite(c)
		if !changed {
			if v == c {
				continue
			}
			changed = true
			out = prefix(n, i)
		}
		if v != nil {
			out = append(out, v)
		}
	}
	if !changed {
		return n
	}
	return r.factory().Rebuild(n, out)
}

// separated rewrites e0 s0 e1 s1 ... . Removing an element drops the separator
// that follows it, or the one before it when it was the last element.
func (r *Rewriter) separated(n green.Node) green.Node {
	count := n.SlotCount()
	var out []green.Node
	changed := false
	for i := 0; i < count; i += 2 {
		e := n.Slot(i)
		ne := r.Rewrite(e)
		var sep, nsep green.Node
		if i+1 < count {
			sep = n.Slot(i + 1)
			nsep = r.Rewrite(sep)
			if nsep == nil && ne != nil && i+2 < count {
				panic("rewrite removed a required slot")
			}
		}
		if !changed {
			if ne == e && nsep == sep {
				continue
			}
			changed = true
			out = prefix(n, i)
		}
		if ne == nil {
			if sep == nil && len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, ne)
		if nsep != nil {
			out = append(out, nsep)
		}
	}
	if !changed {
		return n
	}
	return r.factory().Rebuild(n, out)
}

func (r *Rewriter) branch(n green.Node) green.Node {
	var out []green.Node
	changed := false
	for i := range n.SlotCount() {
		c := n.Slot(i)
		v := r.Rewrite(c)
		if v == nil && c != nil && !green.IsList(c) {
			panic("rewrite removed a required slot")
		}
		if !changed {
			if v == c {
				continue
			}
			changed = true
			out = prefix(n, i)
		}
		out = append(out, v)
	}
	res := n
	if changed {
		res = r.factory().Rebuild(n, out)
	}
	if fn, ok := r.ByKind[res.Kind()]; ok {
		return fn(res)
	}
	if r.Node != nil {
		return r.Node(res)
	}
	return res
}

// Tree rewrites the green tree under root. It returns root itself when
// nothing changed, and otherwise the root of a new red tree over the same
// file.
func Tree(root *red.Node, r *Rewriter) *red.Node {
	g := r.Rewrite(root.Green())
	if g == root.Green() {
		return root
	}
	return red.NewTree(root.Tree().File(), g).Root()
}
