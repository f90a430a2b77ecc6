package green

import (
	"io"
	"strings"
)

type textItem struct {
	node Node
	text string
}

// WriteTo writes the full text of n (every token's leading trivia, text and
// trailing trivia, depth first) to w. The walk uses an explicit stack so deep
// trees do not grow the goroutine stack.
func WriteTo(w io.Writer, n Node) (int64, error) {
	if n == nil {
		return 0, nil
	}
	sw, ok := w.(io.StringWriter)
	if !ok {
		sw = stringWriter{w}
	}
	var total int64
	stack := []textItem{{node: n}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.node == nil {
			if it.text == "" {
				continue
			}
			m, err := sw.WriteString(it.text)
			total += int64(m)
			if err != nil {
				return total, err
			}
			continue
		}
		switch x := it.node.(type) {
		case Token:
			if t := x.TrailingTrivia(); t != nil {
				stack = append(stack, textItem{node: t})
			}
			stack = append(stack, textItem{text: x.Text()})
			if l := x.LeadingTrivia(); l != nil {
				stack = append(stack, textItem{node: l})
			}
		case *Trivia:
			stack = append(stack, textItem{text: x.text})
		default:
			for i := x.SlotCount() - 1; i >= 0; i-- {
				if c := x.Slot(i); c != nil {
					stack = append(stack, textItem{node: c})
				}
			}
		}
	}
	return total, nil
}

type stringWriter struct{ w io.Writer }

func (s stringWriter) WriteString(str string) (int, error) { return io.WriteString(s.w, str) }

// ToFullString returns the exact text n was built from.
func ToFullString(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(n.FullWidth())
	_, _ = WriteTo(&b, n)
	return b.String()
}

// ToString is ToFullString without the first token's leading trivia and the
// last token's trailing trivia.
func ToString(n Node) string {
	if n == nil {
		return ""
	}
	full := ToFullString(n)
	lead := LeadingTriviaWidth(n)
	return full[lead : len(full)-TrailingTriviaWidth(n)]
}

// FirstToken returns the first terminal under n in document order. Slots
// whose subtrees hold no token are skipped. Zero-width tokens count.
func FirstToken(n Node) Token {
	if n == nil {
		return nil
	}
	if t, ok := n.(Token); ok {
		return t
	}
	for i := range n.SlotCount() {
		if t := FirstToken(n.Slot(i)); t != nil {
			return t
		}
	}
	return nil
}

// LastToken mirrors FirstToken from the end.
func LastToken(n Node) Token {
	if n == nil {
		return nil
	}
	if t, ok := n.(Token); ok {
		return t
	}
	for i := n.SlotCount() - 1; i >= 0; i-- {
		if t := LastToken(n.Slot(i)); t != nil {
			return t
		}
	}
	return nil
}

// LeadingTrivia of a structural node is the leading trivia of its first token.
func LeadingTrivia(n Node) Node {
	if t := FirstToken(n); t != nil {
		return t.LeadingTrivia()
	}
	return nil
}

// TrailingTrivia of a structural node is the trailing trivia of its last token.
func TrailingTrivia(n Node) Node {
	if t := LastToken(n); t != nil {
		return t.TrailingTrivia()
	}
	return nil
}

func LeadingTriviaWidth(n Node) int  { return triviaWidth(LeadingTrivia(n)) }
func TrailingTriviaWidth(n Node) int { return triviaWidth(TrailingTrivia(n)) }

// Width is the full width minus the outer trivia.
func Width(n Node) int {
	if n == nil {
		return 0
	}
	if t, ok := n.(Token); ok {
		return len(t.Text())
	}
	if _, ok := n.(*Trivia); ok {
		return n.FullWidth()
	}
	return n.FullWidth() - LeadingTriviaWidth(n) - TrailingTriviaWidth(n)
}
