package parser

import (
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

// stopSet says which separator ends an item besides closers and EOF.
type stopSet uint8

const (
	stopStatement stopSet = iota // ';'
	stopElement                  // ','
)

func (p *Parser) atEnd(stop stopSet) bool {
	k := p.peek().Kind()
	switch {
	case k == kind.EndOfFileToken || isCloser(k):
		return true
	case stop == stopStatement:
		return k == kind.SemicolonToken
	default:
		return k == kind.CommaToken
	}
}

// parseStatements reads statements up to EOF or a closer that belongs to an
// open delimiter. Other closers are skipped.
func (p *Parser) parseStatements() []green.Node {
	var out []green.Node
	for {
		k := p.peek().Kind()
		switch {
		case k == kind.EndOfFileToken:
			return out
		case isCloser(k):
			if p.closedByOuter(k) {
				return out
			}
			p.skipStray()
			continue
		}
		out = append(out, p.parseStatement())
	}
}

// parseStatement: items up to ';', a closer or EOF; a block ends the
// statement early. Contextual keywords switch the context for the rest of it.
func (p *Parser) parseStatement() green.Node {
	outer := p.f
	defer func() { p.f = outer }()

	var items []green.Node
	for !p.atEnd(stopStatement) {
		item := p.parseItem(stopStatement)
		items = append(items, item)
		if item.Kind() == kind.Block {
			break
		}
		p.enterContext(item)
	}
	var semi green.Node
	if p.at(kind.SemicolonToken) {
		semi = p.advance()
	}
	return outer.Node(kind.Statement, p.sequence(items), semi)
}

// enterContext applies the context a contextual keyword opens.
func (p *Parser) enterContext(item green.Node) {
	if item.Kind() != kind.IdentifierName {
		return
	}
	tok, ok := green.AsToken(item.Slot(0))
	if !ok {
		return
	}
	ctx := p.f.Context()
	switch tok.ContextualKind() {
	case kind.AsyncKeyword:
		ctx.IsInAsync = true
	case kind.FromKeyword:
		ctx.IsInQuery = true
	case kind.GetKeyword, kind.SetKeyword, kind.InitKeyword:
		ctx.IsInFieldKeywordContext = true
	default:
		return
	}
	p.f = p.f.WithContext(ctx)
}

// parseDelimited reads open, a comma-separated list and the matching closer.
// An absent closer is synthesized as a missing token.
func (p *Parser) parseDelimited() (open, list, close green.Node) {
	openTok := p.advance()
	want := closerOf(openTok.Kind())
	p.closers = append(p.closers, want)
	defer func() { p.closers = p.closers[:len(p.closers)-1] }()

	var elems, seps []green.Node
	for {
		k := p.peek().Kind()
		if k == want || k == kind.EndOfFileToken {
			break
		}
		if isCloser(k) {
			if p.closedByOuter(k) {
				break
			}
			p.skipStray()
			continue
		}
		if len(elems) > len(seps) {
			// a skipped closer split two elements
			var comma green.Node = green.MissingToken(nil, kind.CommaToken, nil)
			seps = append(seps, p.report(comma, diag.NewError(diag.SynUnexpectedToken, 0, 0, "expected ','")))
		}
		elems = append(elems, p.parseElement())
		if p.at(kind.CommaToken) {
			seps = append(seps, p.advance())
		}
	}
	return openTok, p.f.SeparatedList(elems, seps), p.closeDelimiter(openTok, want)
}

func (p *Parser) closeDelimiter(open green.Token, want kind.Kind) green.Node {
	if p.at(want) {
		return p.advance()
	}
	var tok green.Node = green.MissingToken(nil, want, nil)
	return p.report(tok, diag.NewError(diag.SynUnclosedDelimiter, 0, 0,
		"unclosed "+open.Text()+": expected "+want.Text()))
}

func (p *Parser) parseElement() green.Node {
	var items []green.Node
	for !p.atEnd(stopElement) {
		items = append(items, p.parseItem(stopElement))
	}
	if len(items) == 0 {
		return p.missing("expression expected")
	}
	return p.sequence(items)
}

// parseBlock: '{' statements '}'.
func (p *Parser) parseBlock() green.Node {
	open := p.advance()
	p.closers = append(p.closers, kind.CloseBraceToken)
	stmts := p.parseStatements()
	p.closers = p.closers[:len(p.closers)-1]
	return p.f.Node(kind.Block, open, p.f.List(stmts...), p.closeDelimiter(open, kind.CloseBraceToken))
}
