package green

import (
	"verdant/internal/diag"
	"verdant/internal/kind"
)

// walk visits n and its descendants (token trivia included) in document order,
// skipping every subtree whose flags lack gate. offset is the start of each
// visited node relative to the start of the root. visit returns false to stop
// descending into the current node.
func walk(n Node, gate Flags, visit func(n Node, offset int) bool) {
	walkAt(n, 0, gate, visit)
}

func walkAt(n Node, offset int, gate Flags, visit func(Node, int) bool) {
	if n == nil || n.Flags()&gate == 0 {
		return
	}
	if !visit(n, offset) {
		return
	}
	if t, ok := n.(Token); ok {
		lead := t.LeadingTrivia()
		walkAt(lead, offset, gate, visit)
		if trail := t.TrailingTrivia(); trail != nil {
			walkAt(trail, offset+triviaWidth(lead)+len(t.Text()), gate, visit)
		}
		return
	}
	off := offset
	for i := range n.SlotCount() {
		c := n.Slot(i)
		if c == nil {
			continue
		}
		walkAt(c, off, gate, visit)
		off += c.FullWidth()
	}
}

// Directives returns the directive trivia under n in document order. Subtrees
// without ContainsDirectives are skipped in O(1).
func Directives(n Node) []*DirectiveNode {
	var out []*DirectiveNode
	walk(n, ContainsDirectives, func(x Node, _ int) bool {
		if d, ok := x.(*DirectiveNode); ok {
			out = append(out, d)
			return false
		}
		return true
	})
	return out
}

// CollectDiagnostics returns every diagnostic under n, offsets relative to the
// start of n's full span.
func CollectDiagnostics(n Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	walk(n, ContainsDiagnostics, func(x Node, offset int) bool {
		for _, d := range x.Diagnostics() {
			out = append(out, d.Shift(offset))
		}
		return true
	})
	return out
}

// AnnotatedNodes returns the nodes under n carrying an annotation of the given
// kind; "" matches any annotation.
func AnnotatedNodes(n Node, annotationKind string) []Node {
	var out []Node
	walk(n, ContainsAnnotations, func(x Node, _ int) bool {
		as := x.Annotations()
		if len(as) > 0 && (annotationKind == "" || hasAnnotationKind(as, annotationKind)) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// NodesWithAnnotation returns the nodes under n carrying a.
func NodesWithAnnotation(n Node, a Annotation) []Node {
	var out []Node
	walk(n, ContainsAnnotations, func(x Node, _ int) bool {
		if hasAnnotation(x.Annotations(), a) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// SkippedTokens returns the tokens held in skipped-tokens trivia under n.
func SkippedTokens(n Node) []Token {
	var out []Token
	walk(n, ContainsSkippedText, func(x Node, _ int) bool {
		if x.Kind() == kind.SkippedTokensTrivia {
			for i := range x.SlotCount() {
				for _, c := range Children(x.Slot(i)) {
					if t, ok := c.(Token); ok {
						out = append(out, t)
					}
				}
			}
			return false
		}
		return true
	})
	return out
}

// StructuredTrivia returns the structured trivia nodes under n, outermost only.
func StructuredTrivia(n Node) []Node {
	var out []Node
	walk(n, ContainsStructuredTrivia, func(x Node, _ int) bool {
		if x.Kind().IsStructuredTrivia() {
			out = append(out, x)
			return false
		}
		return true
	})
	return out
}
