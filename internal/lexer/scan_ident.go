package lexer

import (
	"golang.org/x/text/unicode/norm"

	"verdant/internal/kind"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Text: ровно исходный срез, ValueText -
// его NFC-форма.
func (lx *Lexer) scanIdentOrKeyword() scanned {
	start := lx.cursor.Mark()
	ascii := true

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.bumpRune()
	}
	text := lx.cursor.TextFrom(start)

	if k, ok := kind.LookupKeyword(text); ok {
		return scanned{kind: k, text: text}
	}

	valueText := text
	if !ascii {
		valueText = norm.NFC.String(text)
	}
	if lx.opts.Names != nil {
		text = lx.opts.Names.MustLookup(lx.opts.Names.Intern(text))
		if ascii {
			valueText = text
		}
	}
	ck, ok := kind.LookupContextual(valueText)
	if !ok {
		ck = kind.IdentifierToken
	}
	return scanned{kind: kind.IdentifierToken, contextual: ck, text: text, valueText: valueText}
}
