package parser

import (
	"fmt"
	"slices"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

func (p *Parser) peek() green.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k kind.Kind) bool {
	return p.peek().Kind() == k
}

// advance: съедает следующий токен. Пропущенные токены, накопленные до него,
// становятся началом его leading trivia.
func (p *Parser) advance() green.Token {
	tok := p.lx.Next()
	if len(p.skipped) == 0 {
		return tok
	}
	lead := append(p.skipped, green.Children(tok.LeadingTrivia())...)
	p.skipped = nil
	return tok.WithLeadingTrivia(p.tf.List(lead...))
}

// report attaches d to n unless the error budget is spent.
func (p *Parser) report(n green.Node, d diag.Diagnostic) green.Node {
	if p.opts.Enough() {
		return n
	}
	p.opts.CurrentErrors++
	return green.AddDiagnostics(n, d)
}

func isCloser(k kind.Kind) bool {
	return k == kind.CloseParenToken || k == kind.CloseBracketToken || k == kind.CloseBraceToken
}

func closerOf(open kind.Kind) kind.Kind {
	switch open {
	case kind.OpenParenToken:
		return kind.CloseParenToken
	case kind.OpenBracketToken:
		return kind.CloseBracketToken
	case kind.OpenBraceToken:
		return kind.CloseBraceToken
	}
	return kind.None
}

// closedByOuter reports whether k closes one of the open delimiters.
func (p *Parser) closedByOuter(k kind.Kind) bool {
	return slices.Contains(p.closers, k)
}

// skipStray turns a closing delimiter that matches nothing into skipped-token
// trivia of the next token.
func (p *Parser) skipStray() {
	tok := p.lx.Next()
	lead := green.Children(tok.LeadingTrivia())
	bare := tok.WithLeadingTrivia(nil)
	var node green.Node = p.tf.Node(kind.SkippedTokensTrivia, bare)
	node = p.report(node, diag.NewError(diag.SynUnexpectedCloser, 0, len(bare.Text()),
		fmt.Sprintf("unexpected %q", bare.Text())))
	p.skipped = append(p.skipped, lead...)
	p.skipped = append(p.skipped, node)
}

// missing builds an IdentifierName over a missing identifier.
func (p *Parser) missing(msg string) green.Node {
	var tok green.Node = green.MissingToken(nil, kind.IdentifierToken, nil)
	tok = p.report(tok, diag.NewError(diag.SynUnexpectedToken, 0, 0, msg))
	return p.f.Node(kind.IdentifierName, tok)
}

func (p *Parser) sequence(items []green.Node) green.Node {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}
	return p.f.Node(kind.Sequence, p.f.List(items...))
}
