package green

import "verdant/internal/kind"

// DirectiveStack is the persistent preprocessor state threaded through a file:
// open #if chains, open #regions and active #define/#undef. Add never mutates
// the receiver, so a saved stack stays valid, which is what incremental
// relexing needs.
type DirectiveStack struct {
	head *directiveEntry
}

type directiveEntry struct {
	d    *DirectiveNode
	next *directiveEntry
}

// EmptyDirectives is the state at the start of a file.
var EmptyDirectives = DirectiveStack{}

func (s DirectiveStack) IsEmpty() bool { return s.head == nil }

func (s DirectiveStack) push(d *DirectiveNode) DirectiveStack {
	return DirectiveStack{head: &directiveEntry{d: d, next: s.head}}
}

// Add returns the state after d. #endif folds the chain back to its #if,
// keeping the defines of the branch that was taken; #endregion folds back to
// its #region.
func (s DirectiveStack) Add(d *DirectiveNode) DirectiveStack {
	switch d.Kind() {
	case kind.EndIfDirectiveTrivia:
		prev, ok, _ := completeIf(s.head)
		if !ok {
			return s.push(d)
		}
		return DirectiveStack{head: prev}
	case kind.EndRegionDirectiveTrivia:
		prev, ok := completeRegion(s.head)
		if !ok {
			return s.push(d)
		}
		return DirectiveStack{head: prev}
	case kind.BadDirectiveTrivia:
		return s
	}
	return s.push(d)
}

func completeIf(e *directiveEntry) (*directiveEntry, bool, bool) {
	if e == nil {
		return nil, false, false
	}
	if e.d.Kind() == kind.IfDirectiveTrivia {
		return e.next, true, e.d.BranchTaken()
	}
	rest, ok, include := completeIf(e.next)
	if !ok {
		return nil, false, false
	}
	switch e.d.Kind() {
	case kind.ElifDirectiveTrivia, kind.ElseDirectiveTrivia:
		return rest, true, e.d.BranchTaken()
	case kind.RegionDirectiveTrivia, kind.EndRegionDirectiveTrivia:
		return &directiveEntry{d: e.d, next: rest}, true, include
	default:
		if include {
			return &directiveEntry{d: e.d, next: rest}, true, include
		}
		return rest, true, include
	}
}

func completeRegion(e *directiveEntry) (*directiveEntry, bool) {
	if e == nil {
		return nil, false
	}
	if e.d.Kind() == kind.RegionDirectiveTrivia {
		return e.next, true
	}
	rest, ok := completeRegion(e.next)
	if !ok {
		return nil, false
	}
	return &directiveEntry{d: e.d, next: rest}, true
}

// IsDefined reports whether name is defined by the nearest active #define or
// #undef.
func (s DirectiveStack) IsDefined(name string) bool {
	for e := s.head; e != nil; e = e.next {
		if !e.d.IsActive() {
			continue
		}
		switch e.d.Kind() {
		case kind.DefineDirectiveTrivia:
			if e.d.Name() == name {
				return true
			}
		case kind.UndefDirectiveTrivia:
			if e.d.Name() == name {
				return false
			}
		}
	}
	return false
}

func isIfLike(k kind.Kind) bool {
	return k == kind.IfDirectiveTrivia || k == kind.ElifDirectiveTrivia || k == kind.ElseDirectiveTrivia
}

// HasUnfinishedIf reports whether an #if chain is open.
func (s DirectiveStack) HasUnfinishedIf() bool {
	for e := s.head; e != nil; e = e.next {
		if isIfLike(e.d.Kind()) {
			return true
		}
	}
	return false
}

// HasUnfinishedRegion reports whether a #region is open.
func (s DirectiveStack) HasUnfinishedRegion() bool {
	for e := s.head; e != nil; e = e.next {
		if e.d.Kind() == kind.RegionDirectiveTrivia {
			return true
		}
	}
	return false
}

// HasPreviousIfOrElif reports whether the innermost open chain can take an
// #elif or #else, i.e. it does not end with #else already.
func (s DirectiveStack) HasPreviousIfOrElif() bool {
	for e := s.head; e != nil; e = e.next {
		switch e.d.Kind() {
		case kind.IfDirectiveTrivia, kind.ElifDirectiveTrivia:
			return true
		case kind.ElseDirectiveTrivia:
			return false
		}
	}
	return false
}

// PreviousBranchTaken reports whether some branch of the innermost open chain
// was already taken.
func (s DirectiveStack) PreviousBranchTaken() bool {
	for e := s.head; e != nil; e = e.next {
		if !isIfLike(e.d.Kind()) {
			continue
		}
		if e.d.BranchTaken() {
			return true
		}
		if e.d.Kind() == kind.IfDirectiveTrivia {
			return false
		}
	}
	return false
}

// IsActive reports whether text at this point is enabled: true outside any
// #if chain, otherwise whether the innermost branch was taken.
func (s DirectiveStack) IsActive() bool {
	for e := s.head; e != nil; e = e.next {
		if isIfLike(e.d.Kind()) {
			return e.d.BranchTaken()
		}
	}
	return true
}

// EnclosingActive reports whether the text around the innermost open #if
// chain is enabled. Outside any chain it is IsActive.
func (s DirectiveStack) EnclosingActive() bool {
	for e := s.head; e != nil; e = e.next {
		if e.d.Kind() == kind.IfDirectiveTrivia {
			return DirectiveStack{head: e.next}.IsActive()
		}
	}
	return true
}

// Directives lists the stack from innermost to outermost.
func (s DirectiveStack) Directives() []*DirectiveNode {
	var out []*DirectiveNode
	for e := s.head; e != nil; e = e.next {
		out = append(out, e.d)
	}
	return out
}

// ApplyDirectives threads stack through the directives under n. Subtrees
// without ContainsDirectives are skipped without being entered.
func ApplyDirectives(n Node, stack DirectiveStack) DirectiveStack {
	for _, d := range Directives(n) {
		stack = stack.Add(d)
	}
	return stack
}
