package green

import "verdant/internal/diag"

// Equivalent reports whether a and b describe the same syntax: same kinds,
// same text, same trivia, same diagnostics modulo position, recursively.
// Annotations and factory context do not participate.
//
// For tokens this is the classic rule: same kind and text, and each trivia
// side either absent on both or present on both and equivalent.
func Equivalent(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() || a.FullWidth() != b.FullWidth() || a.IsMissing() != b.IsMissing() {
		return false
	}
	switch x := a.(type) {
	case Token:
		y, ok := b.(Token)
		if !ok || x.Text() != y.Text() || x.ContextualKind() != y.ContextualKind() {
			return false
		}
		return Equivalent(x.LeadingTrivia(), y.LeadingTrivia()) &&
			Equivalent(x.TrailingTrivia(), y.TrailingTrivia())
	case *Trivia:
		y, ok := b.(*Trivia)
		return ok && x.text == y.text
	}
	if a.SlotCount() != b.SlotCount() {
		return false
	}
	if !diag.EqualModuloPosition(a.Diagnostics(), b.Diagnostics()) {
		return false
	}
	if da, ok := a.(*DirectiveNode); ok {
		db, ok := b.(*DirectiveNode)
		if !ok || da.state != db.state {
			return false
		}
	}
	for i := range a.SlotCount() {
		if !Equivalent(a.Slot(i), b.Slot(i)) {
			return false
		}
	}
	return true
}
