package parser

import (
	"verdant/internal/green"
	"verdant/internal/kind"
)

// parseItem parses one expression; tokens that start no expression stand for
// themselves.
func (p *Parser) parseItem(stop stopSet) green.Node {
	return p.parseBinary(stop, 0)
}

// parseBinary: классический precedence climbing.
func (p *Parser) parseBinary(stop stopSet, minPrec int) green.Node {
	left := p.parseUnary(stop)
	if !isOperand(left) {
		return left
	}
	for {
		prec, rightAssoc := binaryPrec(p.peek().Kind())
		if prec < 0 || prec < minPrec {
			return left
		}
		op := p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		var right green.Node
		if p.atEnd(stop) {
			right = p.missing("expression expected after " + op.Text())
		} else {
			right = p.parseBinary(stop, next)
		}
		left = p.f.Node(kind.BinaryExpression, left, op, right)
	}
}

func (p *Parser) parseUnary(stop stopSet) green.Node {
	tok := p.peek()
	isAwait := tok.ContextualKind() == kind.AwaitKeyword && p.f.Context().IsInAsync
	if !isPrefixOperator(tok.Kind()) && !isAwait {
		return p.parsePostfix()
	}
	op := p.advance()
	var operand green.Node
	if p.atEnd(stop) {
		operand = p.missing("expression expected after " + op.Text())
	} else {
		operand = p.parseUnary(stop)
	}
	return p.f.Node(kind.PrefixUnaryExpression, op, operand)
}

// parsePostfix handles calls and member access after a primary.
func (p *Parser) parsePostfix() green.Node {
	expr := p.parsePrimary()
	for isOperand(expr) && expr.Kind() != kind.LiteralExpression && expr.Kind() != kind.Block {
		switch k := p.peek().Kind(); {
		case k == kind.OpenParenToken:
			open, args, close := p.parseDelimited()
			expr = p.f.Node(kind.InvocationExpression, expr, p.f.Node(kind.ArgumentList, open, args, close))
		case isMemberAccess(k):
			op := p.advance()
			var name green.Node
			if p.at(kind.IdentifierToken) {
				name = p.f.Node(kind.IdentifierName, p.advance())
			} else {
				name = p.missing("identifier expected after " + op.Text())
			}
			expr = p.f.Node(kind.BinaryExpression, expr, op, name)
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parsePrimary() green.Node {
	k := p.peek().Kind()
	switch {
	case k == kind.IdentifierToken:
		return p.f.Node(kind.IdentifierName, p.advance())
	case k.IsLiteralToken() || k.IsLiteralKeyword():
		return p.f.Node(kind.LiteralExpression, p.advance())
	case k == kind.OpenParenToken:
		open, list, close := p.parseDelimited()
		return p.f.Node(kind.ParenthesizedGroup, open, list, close)
	case k == kind.OpenBracketToken:
		open, list, close := p.parseDelimited()
		return p.f.Node(kind.BracketedGroup, open, list, close)
	case k == kind.OpenBraceToken:
		return p.parseBlock()
	}
	return p.advance()
}

// isOperand reports whether n can take part in an operator expression. Bare
// tokens (keywords, stray punctuation) cannot.
func isOperand(n green.Node) bool {
	_, isToken := n.(green.Token)
	return !isToken
}
