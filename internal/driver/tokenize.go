package driver

import (
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/lexer"
	"verdant/internal/source"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []green.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file from disk. Diagnostics on the tokens and their
// trivia are collected with offsets from the start of the file.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	tokens := lexer.Tokenize(file, lexerOptions(opts.factory(), nil, opts.Defines))

	bag := diag.NewBag(0)
	off := 0
	for _, tok := range tokens {
		for _, d := range green.CollectDiagnostics(tok) {
			bag.Add(d.Shift(off))
		}
		off += tok.FullWidth()
	}
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

func lexerOptions(f green.Factory, names *source.Interner, defines []string) lexer.Options {
	return lexer.Options{Factory: f, Names: names, Defines: defines}
}
