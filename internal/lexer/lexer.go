// Package lexer turns source bytes into green tokens.
//
// Every byte of the input ends up in exactly one token or trivia, so the
// tokens of a file print back to the file. Trailing trivia runs up to and
// including the first line break; everything after it leads the next token.
// Preprocessor directives become structured trivia and the text of disabled
// branches becomes DisabledText trivia.
package lexer

import (
	"fmt"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/source"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	f      green.Factory

	directives green.DirectiveStack
	look       green.Token
	// atLineStart is set while only whitespace was seen on the current line.
	atLineStart bool
}

func New(file *source.File, opts Options) *Lexer {
	f := opts.Factory
	if f.Cache() == nil {
		f = green.Default
	}
	lx := &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		f:           f,
		directives:  Predefined(f, opts.Defines),
		atLineStart: true,
	}
	return lx
}

// Predefined is the directive state before the first line of a file lexed
// with defines.
func Predefined(f green.Factory, defines []string) green.DirectiveStack {
	stack := green.EmptyDirectives
	for _, name := range defines {
		stack = stack.Add(predefined(f, name))
	}
	return stack
}

// predefined builds the #define a command-line symbol stands for. It is never
// part of a tree.
func predefined(f green.Factory, name string) *green.DirectiveNode {
	return f.Directive(kind.DefineDirectiveTrivia, green.DirectiveActive,
		green.NewToken(kind.HashToken),
		green.NewToken(kind.DefineKeyword),
		green.Identifier(name),
		green.NewToken(kind.EndOfDirectiveToken),
	)
}

// Tokenize lexes the whole file. The last token is always EndOfFileToken.
func Tokenize(file *source.File, opts Options) []green.Token {
	lx := New(file, opts)
	var out []green.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind() == kind.EndOfFileToken {
			return out
		}
	}
}

// Next returns the next token with its trivia. After EOF it keeps returning
// an empty end-of-file token.
func (lx *Lexer) Next() green.Token {
	if lx.look != nil {
		tok := lx.look
		lx.look = nil
		return tok
	}

	start := lx.cursor.Off
	leading := lx.scanLeadingTrivia()
	leadWidth := int(lx.cursor.Off - start)

	if lx.cursor.EOF() {
		return lx.endOfFile(leading, leadWidth)
	}

	sc := lx.scanToken()
	lx.atLineStart = false
	trailing := lx.scanTrailingTrivia()

	tok := lx.build(leading, sc, trailing)
	if len(sc.diags) == 0 {
		return tok
	}
	ds := make([]diag.Diagnostic, len(sc.diags))
	for i, d := range sc.diags {
		ds[i] = d.Shift(leadWidth)
	}
	return tok.WithDiagnostics(ds).(green.Token)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() green.Token {
	if lx.look == nil {
		lx.look = lx.Next()
	}
	return lx.look
}

// Directives is the preprocessor state after the last token returned.
func (lx *Lexer) Directives() green.DirectiveStack { return lx.directives }

// Offset is the byte offset of the next unread byte.
func (lx *Lexer) Offset() int { return int(lx.cursor.Off) }

// Seek restarts lexing at off, which must be a token boundary at the start of
// a line, under the directive state saved for that point.
func (lx *Lexer) Seek(off int, directives green.DirectiveStack) {
	if off < 0 || off > int(lx.cursor.Limit) {
		panic(fmt.Sprintf("lexer: seek to %d outside [0, %d]", off, lx.cursor.Limit))
	}
	lx.cursor.Off = uint32(off)
	lx.directives = directives
	lx.look = nil
	lx.atLineStart = true
}

func (lx *Lexer) endOfFile(leading []green.Node, leadWidth int) green.Token {
	tok := green.TokenWithTrivia(lx.f.List(leading...), kind.EndOfFileToken, nil)
	var ds []diag.Diagnostic
	if lx.directives.HasUnfinishedIf() {
		ds = append(ds, diag.NewError(diag.PPMissingEndIf, leadWidth, 0, "#endif directive expected"))
	}
	if lx.directives.HasUnfinishedRegion() {
		ds = append(ds, diag.NewError(diag.PPMissingEndRegion, leadWidth, 0, "#endregion directive expected"))
	}
	if len(ds) > 0 {
		tok = tok.WithDiagnostics(ds).(green.Token)
	}
	return tok
}

// scanned is one token before trivia is attached. Diagnostics are relative
// to the token text.
type scanned struct {
	kind       kind.Kind
	contextual kind.Kind
	text       string
	valueText  string
	value      any
	diags      []diag.Diagnostic
}

func (sc *scanned) errorf(code diag.Code, offset, width int, format string, args ...any) {
	sc.diags = append(sc.diags, diag.NewError(code, offset, width, fmt.Sprintf(format, args...)))
}

func (lx *Lexer) build(leading []green.Node, sc scanned, trailing []green.Node) green.Token {
	lead, trail := lx.f.List(leading...), lx.f.List(trailing...)
	switch {
	case sc.kind.IsWellKnownText():
		return green.TokenWithTrivia(lead, sc.kind, trail)
	case sc.kind == kind.IdentifierToken:
		return green.ContextualIdentifier(sc.contextual, lead, sc.text, sc.valueText, trail)
	case sc.kind == kind.BadToken:
		return green.BadToken(lead, sc.text, trail)
	}
	return literal(lead, sc, trail)
}

func literal(lead green.Node, sc scanned, trail green.Node) green.Token {
	switch v := sc.value.(type) {
	case int64:
		return green.Literal(lead, sc.kind, sc.text, v, trail)
	case uint64:
		return green.Literal(lead, sc.kind, sc.text, v, trail)
	case float64:
		return green.Literal(lead, sc.kind, sc.text, v, trail)
	case string:
		return green.Literal(lead, sc.kind, sc.text, v, trail)
	case rune:
		return green.Literal(lead, sc.kind, sc.text, v, trail)
	}
	return green.Literal[any](lead, sc.kind, sc.text, nil, trail)
}

func (lx *Lexer) scanToken() scanned {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		if r, _ := lx.peekRune(); isIdentStartRune(r) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanBad()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	}
	return lx.scanOperatorOrPunct()
}

// scanBad consumes one rune that starts no token.
func (lx *Lexer) scanBad() scanned {
	start := lx.cursor.Mark()
	lx.bumpRune()
	text := lx.cursor.TextFrom(start)
	sc := scanned{kind: kind.BadToken, text: text}
	sc.errorf(diag.LexUnknownChar, 0, len(text), "unknown character %q", text)
	return sc
}
