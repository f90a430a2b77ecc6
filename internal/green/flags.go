package green

import "strings"

// Flags is the per-node summary bitset. The Contains* bits and IsNotMissing are
// inherited from children, so a walk looking for, say, directives can skip any
// subtree whose ContainsDirectives bit is clear.
type Flags uint16

const (
	ContainsDiagnostics Flags = 1 << iota
	ContainsAnnotations
	ContainsDirectives
	ContainsSkippedText
	ContainsStructuredTrivia
	IsNotMissing
	FactoryContextIsInAsync
	FactoryContextIsInQuery
	FactoryContextIsInFieldKeywordContext
	// IsSeparated marks a list built by Factory.SeparatedList. It is set
	// once at construction and never inherited.
	IsSeparated
)

const (
	// InheritMask is the set of bits a parent takes from its children.
	InheritMask = ContainsDiagnostics | ContainsAnnotations | ContainsDirectives |
		ContainsSkippedText | ContainsStructuredTrivia | IsNotMissing
	// FactoryContextMask is the set of bits stamped from the factory context.
	FactoryContextMask = FactoryContextIsInAsync | FactoryContextIsInQuery | FactoryContextIsInFieldKeywordContext
	// cacheKeyMask is the part of a node's own flags the cache keys on.
	cacheKeyMask = FactoryContextMask | IsSeparated
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

var flagNames = [...]string{
	"ContainsDiagnostics",
	"ContainsAnnotations",
	"ContainsDirectives",
	"ContainsSkippedText",
	"ContainsStructuredTrivia",
	"IsNotMissing",
	"InAsync",
	"InQuery",
	"InFieldKeywordContext",
	"IsSeparated",
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	parts := make([]string, 0, 4)
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
