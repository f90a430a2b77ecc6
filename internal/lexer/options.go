package lexer

import (
	"verdant/internal/green"
	"verdant/internal/source"
)

type Options struct {
	// Factory builds trivia lists and directive nodes. The zero value means
	// green.Default.
	Factory green.Factory
	// Names, when set, dedupes identifier text across files.
	Names *source.Interner
	// Defines are symbols defined before the first line.
	Defines []string
}
