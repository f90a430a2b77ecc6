package driver

import (
	"verdant/internal/green"
	"verdant/internal/kind"
)

// Stats counts what a tree is made of.
type Stats struct {
	Nodes       int `json:"nodes"`
	Lists       int `json:"lists"`
	Tokens      int `json:"tokens"`
	Missing     int `json:"missing"`
	Trivia      int `json:"trivia"`
	Directives  int `json:"directives"`
	Skipped     int `json:"skipped"`
	Diagnostics int `json:"diagnostics"`
	Bytes       int `json:"bytes"`
	// Distinct counts green nodes by identity; the gap to Nodes+Lists+Tokens
	// is what the cache and the token singletons saved.
	Distinct int `json:"distinct"`
}

// Add accumulates o into s. Distinct is summed, so shared nodes across files
// are counted once per file.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.Lists += o.Lists
	s.Tokens += o.Tokens
	s.Missing += o.Missing
	s.Trivia += o.Trivia
	s.Directives += o.Directives
	s.Skipped += o.Skipped
	s.Diagnostics += o.Diagnostics
	s.Bytes += o.Bytes
	s.Distinct += o.Distinct
}

// Collect walks root. With intoStructure set, the insides of directives and
// skipped-token trivia are counted too.
func Collect(root green.Node, intoStructure bool) Stats {
	s := Stats{}
	if root == nil {
		return s
	}
	seen := make(map[green.Node]struct{})
	var walk func(n green.Node)
	walkTrivia := func(list green.Node) {
		for _, tr := range green.Children(list) {
			s.Trivia++
			s.Diagnostics += len(tr.Diagnostics())
			switch {
			case tr.Kind().IsDirective():
				s.Directives++
			case tr.Kind() == kind.SkippedTokensTrivia:
				s.Skipped++
			}
			if intoStructure && tr.Kind().IsStructuredTrivia() {
				for i := range tr.SlotCount() {
					walk(tr.Slot(i))
				}
			}
		}
	}
	walk = func(n green.Node) {
		if n == nil {
			return
		}
		seen[n] = struct{}{}
		s.Diagnostics += len(n.Diagnostics())
		if t, ok := n.(green.Token); ok {
			s.Tokens++
			if t.IsMissing() {
				s.Missing++
			}
			walkTrivia(t.LeadingTrivia())
			walkTrivia(t.TrailingTrivia())
			return
		}
		if green.IsList(n) {
			s.Lists++
		} else {
			s.Nodes++
		}
		for i := range n.SlotCount() {
			walk(n.Slot(i))
		}
	}
	walk(root)
	s.Bytes = root.FullWidth()
	s.Distinct = len(seen)
	return s
}
