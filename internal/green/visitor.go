package green

import "verdant/internal/kind"

// Visitor receives one call per node category from Accept.
type Visitor[R any] interface {
	VisitToken(t Token) R
	VisitTrivia(t *Trivia) R
	VisitList(n Node) R
	VisitStructuredTrivia(n Node) R
	VisitBranch(b *Branch) R
}

// Accept dispatches n to the matching Visitor method by tag.
func Accept[R any](n Node, v Visitor[R]) R {
	switch x := n.(type) {
	case Token:
		return v.VisitToken(x)
	case *Trivia:
		return v.VisitTrivia(x)
	case *DirectiveNode:
		return v.VisitStructuredTrivia(x)
	case *Branch:
		if x.kind.IsStructuredTrivia() {
			return v.VisitStructuredTrivia(x)
		}
		return v.VisitBranch(x)
	}
	if IsList(n) {
		return v.VisitList(n)
	}
	var zero R
	return zero
}

// KindVisitor routes branches by kind. Unset funcs fall back to Default, and a
// nil Default yields the zero R.
type KindVisitor[R any] struct {
	Token   func(Token) R
	Trivia  func(*Trivia) R
	List    func(Node) R
	Kinds   map[kind.Kind]func(Node) R
	Default func(Node) R
}

func (v *KindVisitor[R]) fallback(n Node) R {
	if f, ok := v.Kinds[n.Kind()]; ok {
		return f(n)
	}
	if v.Default != nil {
		return v.Default(n)
	}
	var zero R
	return zero
}

func (v *KindVisitor[R]) VisitToken(t Token) R {
	if v.Token != nil {
		return v.Token(t)
	}
	return v.fallback(t)
}

func (v *KindVisitor[R]) VisitTrivia(t *Trivia) R {
	if v.Trivia != nil {
		return v.Trivia(t)
	}
	return v.fallback(t)
}

func (v *KindVisitor[R]) VisitList(n Node) R {
	if v.List != nil {
		return v.List(n)
	}
	return v.fallback(n)
}

func (v *KindVisitor[R]) VisitStructuredTrivia(n Node) R { return v.fallback(n) }
func (v *KindVisitor[R]) VisitBranch(b *Branch) R        { return v.fallback(b) }
