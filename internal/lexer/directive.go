package lexer

import (
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

// directiveScan collects the pieces of one directive line. Diagnostic
// offsets are relative to the '#'.
type directiveScan struct {
	lx    *Lexer
	start uint32
	diags []diag.Diagnostic
}

func (ds *directiveScan) errorf(code diag.Code, width int, msg string) {
	off := int(ds.lx.cursor.Off - ds.start)
	ds.diags = append(ds.diags, diag.NewError(code, off, width, msg))
}

// directiveSpace reads the blanks after a directive token.
func (lx *Lexer) directiveSpace() green.Node {
	if !isSpace(lx.cursor.Peek()) {
		return nil
	}
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return green.Whitespace(lx.cursor.TextFrom(start))
}

func (lx *Lexer) atLineEnd() bool {
	b := lx.cursor.Peek()
	return lx.cursor.EOF() || b == '\n' || b == '\r'
}

func (lx *Lexer) scanWord() string {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.cursor.TextFrom(start)
}

// scanDirective reads one directive line starting at '#', including its line
// break, and folds it into the directive state.
func (lx *Lexer) scanDirective() green.Node {
	ds := &directiveScan{lx: lx, start: lx.cursor.Off}
	lx.cursor.Bump() // '#'
	hash := green.TokenWithTrivia(nil, kind.HashToken, lx.directiveSpace())

	var (
		k       kind.Kind
		keyword green.Token
	)
	if isIdentStartByte(lx.cursor.Peek()) {
		wordStart := int(lx.cursor.Off - ds.start)
		word := lx.scanWord()
		if kw, ok := kind.LookupPreprocessor(word); ok {
			k = directiveKind(kw)
			keyword = green.TokenWithTrivia(nil, kw, lx.directiveSpace())
		} else {
			ds.diags = append(ds.diags, diag.NewError(diag.PPUnknownDirective, wordStart, len(word), "unknown preprocessor directive"))
			keyword = green.IdentifierWithTrivia(nil, word, lx.directiveSpace())
		}
	}
	if keyword == nil {
		ds.errorf(diag.PPUnknownDirective, 0, "preprocessor directive expected")
		keyword = green.MissingToken(nil, kind.IdentifierToken, nil)
	}
	if k == kind.None {
		d := lx.f.Directive(kind.BadDirectiveTrivia, lx.activeState(), hash, keyword, ds.endOfDirective(true))
		return ds.finish(d)
	}

	active := lx.directives.IsActive()
	var state green.DirectiveState
	if active {
		state = green.DirectiveActive
	}
	slots := []green.Node{hash, keyword}

	switch k {
	case kind.DefineDirectiveTrivia, kind.UndefDirectiveTrivia:
		slots = append(slots, ds.name())
	case kind.IfDirectiveTrivia:
		cond, value := ds.condition()
		slots = append(slots, cond)
		if value {
			state |= green.DirectiveConditionValue
		}
		if active && value {
			state |= green.DirectiveBranchTaken
		}
	case kind.ElifDirectiveTrivia:
		cond, value := ds.condition()
		slots = append(slots, cond)
		if !lx.directives.HasPreviousIfOrElif() {
			k = kind.BadDirectiveTrivia
			break
		}
		state = lx.branchState(value)
	case kind.ElseDirectiveTrivia:
		if !lx.directives.HasPreviousIfOrElif() {
			k = kind.BadDirectiveTrivia
			break
		}
		state = lx.branchState(true)
	case kind.EndIfDirectiveTrivia:
		if !lx.directives.HasUnfinishedIf() {
			k = kind.BadDirectiveTrivia
		}
	case kind.EndRegionDirectiveTrivia:
		if !lx.directives.HasUnfinishedRegion() {
			k = kind.BadDirectiveTrivia
		}
	}
	if k == kind.BadDirectiveTrivia {
		ds.diags = append(ds.diags, diag.NewError(diag.PPUnexpectedDirective, 0, 1+keyword.FullWidth(), "unexpected preprocessor directive"))
	}

	message := k == kind.RegionDirectiveTrivia || k == kind.EndRegionDirectiveTrivia
	slots = append(slots, ds.endOfDirective(!message))
	return ds.finish(lx.f.Directive(k, state, slots...))
}

func directiveKind(keyword kind.Kind) kind.Kind {
	switch keyword {
	case kind.DefineKeyword:
		return kind.DefineDirectiveTrivia
	case kind.UndefKeyword:
		return kind.UndefDirectiveTrivia
	case kind.IfKeyword:
		return kind.IfDirectiveTrivia
	case kind.ElifKeyword:
		return kind.ElifDirectiveTrivia
	case kind.ElseKeyword:
		return kind.ElseDirectiveTrivia
	case kind.EndIfKeyword:
		return kind.EndIfDirectiveTrivia
	case kind.RegionKeyword:
		return kind.RegionDirectiveTrivia
	case kind.EndRegionKeyword:
		return kind.EndRegionDirectiveTrivia
	}
	return kind.None
}

func (lx *Lexer) activeState() green.DirectiveState {
	if lx.directives.IsActive() {
		return green.DirectiveActive
	}
	return 0
}

// branchState is the state of an #elif or #else: it sits in the text around
// the chain and is taken when nothing before it was.
func (lx *Lexer) branchState(cond bool) green.DirectiveState {
	var state green.DirectiveState
	outer := lx.directives.EnclosingActive()
	if outer {
		state |= green.DirectiveActive
	}
	if cond {
		state |= green.DirectiveConditionValue
	}
	if outer && cond && !lx.directives.PreviousBranchTaken() {
		state |= green.DirectiveBranchTaken
	}
	return state
}

func (ds *directiveScan) finish(d *green.DirectiveNode) green.Node {
	if len(ds.diags) > 0 {
		d = d.WithDiagnostics(ds.diags).(*green.DirectiveNode)
	}
	ds.lx.directives = ds.lx.directives.Add(d)
	return d
}

func (ds *directiveScan) name() green.Token {
	lx := ds.lx
	if !isIdentStartByte(lx.cursor.Peek()) {
		ds.errorf(diag.PPExpectedName, 0, "identifier expected")
		return green.MissingToken(nil, kind.IdentifierToken, nil)
	}
	word := lx.scanWord()
	return green.IdentifierWithTrivia(nil, word, lx.directiveSpace())
}

// endOfDirective builds the token that closes the line. Whatever is left
// before the line break goes into its leading trivia: a comment, the message
// of a #region, or skipped text when strict is set.
func (ds *directiveScan) endOfDirective(strict bool) green.Token {
	lx := ds.lx
	var lead []green.Node
	if !lx.atLineEnd() {
		switch {
		case lx.cursor.Peek() == '/' && lx.isCommentStart() && lx.cursor.PeekAt(1) == '/':
			lead = append(lead, lx.scanComment())
		case strict:
			ds.errorf(diag.PPEndOfDirective, 0, "single-line comment or end-of-line expected")
			start := lx.cursor.Mark()
			lx.skipToEndOfLine()
			bad := green.BadToken(nil, lx.cursor.TextFrom(start), nil)
			lead = append(lead, lx.f.Node(kind.SkippedTokensTrivia, bad))
		default:
			start := lx.cursor.Mark()
			lx.skipToEndOfLine()
			lead = append(lead, green.PreprocessingMessage(lx.cursor.TextFrom(start)))
		}
	}
	var trail green.Node
	if !lx.cursor.EOF() {
		trail = lx.scanEndOfLine()
	}
	return green.TokenWithTrivia(lx.f.List(lead...), kind.EndOfDirectiveToken, trail)
}

// condition reads the expression of #if or #elif and evaluates it against
// the current defines.
func (ds *directiveScan) condition() (green.Node, bool) {
	lx := ds.lx
	var toks []green.Token
	for !lx.atLineEnd() && !(lx.cursor.Peek() == '/' && lx.isCommentStart()) {
		t, ok := lx.conditionToken()
		if !ok {
			break
		}
		toks = append(toks, t)
	}
	if len(toks) == 0 {
		ds.errorf(diag.PPInvalidExpression, 0, "expression expected")
		return green.MissingToken(nil, kind.IdentifierToken, nil), false
	}
	nodes := make([]green.Node, len(toks))
	for i, t := range toks {
		nodes[i] = t
	}
	cond := lx.f.List(nodes...)

	p := condParser{toks: toks, stack: lx.directives, ok: true}
	value := p.or()
	if p.pos != len(toks) || !p.ok {
		off := int(lx.cursor.Off-ds.start) - cond.FullWidth()
		ds.diags = append(ds.diags, diag.NewError(diag.PPInvalidExpression, off, cond.FullWidth(), "invalid preprocessor expression"))
		return cond, false
	}
	return cond, value
}

func (lx *Lexer) conditionToken() (green.Token, bool) {
	var k kind.Kind
	switch b := lx.cursor.Peek(); {
	case isIdentStartByte(b):
		word := lx.scanWord()
		switch word {
		case "true":
			return green.TokenWithTrivia(nil, kind.TrueKeyword, lx.directiveSpace()), true
		case "false":
			return green.TokenWithTrivia(nil, kind.FalseKeyword, lx.directiveSpace()), true
		}
		return green.IdentifierWithTrivia(nil, word, lx.directiveSpace()), true
	case lx.try2('&', '&'):
		k = kind.AmpersandAmpersandToken
	case lx.try2('|', '|'):
		k = kind.BarBarToken
	case lx.try2('=', '='):
		k = kind.EqualsEqualsToken
	case lx.try2('!', '='):
		k = kind.ExclamationEqualsToken
	case lx.cursor.Eat('!'):
		k = kind.ExclamationToken
	case lx.cursor.Eat('('):
		k = kind.OpenParenToken
	case lx.cursor.Eat(')'):
		k = kind.CloseParenToken
	default:
		return nil, false
	}
	return green.TokenWithTrivia(nil, k, lx.directiveSpace()), true
}

// condParser evaluates || && == != ! and parentheses over identifiers and
// true/false. An identifier is true when it is defined.
type condParser struct {
	toks  []green.Token
	pos   int
	stack green.DirectiveStack
	ok    bool
}

func (p *condParser) eat(k kind.Kind) bool {
	if p.pos < len(p.toks) && p.toks[p.pos].Kind() == k {
		p.pos++
		return true
	}
	return false
}

func (p *condParser) or() bool {
	v := p.and()
	for p.eat(kind.BarBarToken) {
		r := p.and()
		v = v || r
	}
	return v
}

func (p *condParser) and() bool {
	v := p.equality()
	for p.eat(kind.AmpersandAmpersandToken) {
		r := p.equality()
		v = v && r
	}
	return v
}

func (p *condParser) equality() bool {
	v := p.unary()
	for {
		switch {
		case p.eat(kind.EqualsEqualsToken):
			v = v == p.unary()
		case p.eat(kind.ExclamationEqualsToken):
			v = v != p.unary()
		default:
			return v
		}
	}
}

func (p *condParser) unary() bool {
	if p.eat(kind.ExclamationToken) {
		return !p.unary()
	}
	return p.primary()
}

func (p *condParser) primary() bool {
	if p.pos >= len(p.toks) {
		p.ok = false
		return false
	}
	t := p.toks[p.pos]
	p.pos++
	switch t.Kind() {
	case kind.TrueKeyword:
		return true
	case kind.FalseKeyword:
		return false
	case kind.IdentifierToken:
		return p.stack.IsDefined(t.ValueText())
	case kind.OpenParenToken:
		v := p.or()
		if !p.eat(kind.CloseParenToken) {
			p.ok = false
		}
		return v
	}
	p.ok = false
	return false
}
