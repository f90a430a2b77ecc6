package lexer

import (
	"verdant/internal/kind"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() scanned {
	start := lx.cursor.Mark()
	emit := func(k kind.Kind) scanned {
		return scanned{kind: k, text: lx.cursor.TextFrom(start)}
	}

	switch {
	case lx.try2('.', '.'):
		return emit(kind.DotDotToken)
	case lx.try2(':', ':'):
		return emit(kind.ColonColonToken)
	case lx.try2('-', '>'):
		return emit(kind.MinusGreaterThanToken)
	case lx.try2('=', '>'):
		return emit(kind.EqualsGreaterThanToken)
	case lx.try2('&', '&'):
		return emit(kind.AmpersandAmpersandToken)
	case lx.try2('|', '|'):
		return emit(kind.BarBarToken)
	case lx.try2('=', '='):
		return emit(kind.EqualsEqualsToken)
	case lx.try2('!', '='):
		return emit(kind.ExclamationEqualsToken)
	case lx.try2('<', '='):
		return emit(kind.LessThanEqualsToken)
	case lx.try2('>', '='):
		return emit(kind.GreaterThanEqualsToken)
	case lx.try2('?', '?'):
		return emit(kind.QuestionQuestionToken)
	case lx.try2('+', '+'):
		return emit(kind.PlusPlusToken)
	case lx.try2('-', '-'):
		return emit(kind.MinusMinusToken)
	case lx.try2('+', '='):
		return emit(kind.PlusEqualsToken)
	case lx.try2('-', '='):
		return emit(kind.MinusEqualsToken)
	}

	if k, ok := singleCharOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}
	return lx.scanBad()
}

var singleCharOps = map[byte]kind.Kind{
	'+': kind.PlusToken,
	'-': kind.MinusToken,
	'*': kind.AsteriskToken,
	'/': kind.SlashToken,
	'%': kind.PercentToken,
	'=': kind.EqualsToken,
	'!': kind.ExclamationToken,
	'<': kind.LessThanToken,
	'>': kind.GreaterThanToken,
	'&': kind.AmpersandToken,
	'|': kind.BarToken,
	'^': kind.CaretToken,
	'~': kind.TildeToken,
	'?': kind.QuestionToken,
	':': kind.ColonToken,
	';': kind.SemicolonToken,
	',': kind.CommaToken,
	'.': kind.DotToken,
	'(': kind.OpenParenToken,
	')': kind.CloseParenToken,
	'{': kind.OpenBraceToken,
	'}': kind.CloseBraceToken,
	'[': kind.OpenBracketToken,
	']': kind.CloseBracketToken,
	'@': kind.AtToken,
	'#': kind.HashToken,
}
