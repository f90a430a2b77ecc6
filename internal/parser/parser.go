// Package parser builds green trees from tokens without committing to a
// grammar. It recognises delimiters, statements and operator expressions,
// which is enough to exercise every shape of the tree: separated lists,
// long statement lists, missing tokens and skipped text.
package parser

import (
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/lexer"
	"verdant/internal/red"
	"verdant/internal/source"
)

type Options struct {
	Lexer lexer.Options
	// MaxErrors caps the diagnostics the parser attaches; 0 means no cap.
	// Lexer diagnostics are not counted.
	MaxErrors     uint
	CurrentErrors uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	// Root is a CompilationUnit: a list of statements and the end-of-file token.
	Root green.Node
	// Directives is the preprocessor state at the end of the file.
	Directives green.DirectiveStack
	// Bag holds every diagnostic in Root with offsets from the start of the file.
	Bag *diag.Bag
}

// Tree wraps Root for positioned navigation.
func (r Result) Tree(file source.FileID) *red.Tree {
	return red.NewTree(file, r.Root)
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer
	f    green.Factory // structural nodes, carries the current context
	tf   green.Factory // trivia lists, context free
	opts Options

	closers []kind.Kind  // open delimiters, innermost last
	skipped []green.Node // trivia waiting to lead the next token
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, opts Options) Result {
	f := opts.Lexer.Factory
	if f.Cache() == nil {
		f = green.Default
	}
	opts.Lexer.Factory = f
	p := Parser{
		lx:   lexer.New(file, opts.Lexer),
		f:    f,
		tf:   f.WithContext(green.Context{}),
		opts: opts,
	}
	root := p.parseCompilationUnit()

	bag := diag.NewBag(0)
	bag.AddAll(green.CollectDiagnostics(root))
	bag.Sort()
	return Result{Root: root, Directives: p.lx.Directives(), Bag: bag}
}

// ParseText parses src as a virtual file.
func ParseText(src string, opts Options) Result {
	fs := source.NewFileSet()
	return ParseFile(fs.Get(fs.AddVirtual("input.vd", []byte(src))), opts)
}

func (p *Parser) parseCompilationUnit() green.Node {
	stmts := p.parseStatements()
	eof := p.advance()
	return p.f.Node(kind.CompilationUnit, p.f.List(stmts...), eof)
}
