package lexer

import (
	"strconv"
	"unicode/utf8"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// quoted съедает литерал в кавычках q: escape: '\' плюс следующий байт,
// перевод строки или EOF завершают литерал без закрывающей кавычки.
func (lx *Lexer) quoted(q byte) (closed bool) {
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case q:
			lx.cursor.Bump()
			return true
		case '\n', '\r':
			return false
		case '\\':
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
				return false
			}
			lx.bumpRune()
			continue
		}
		lx.bumpRune()
	}
	return false
}

// scanString: "..." с escape как в Go. Значение: раскрытая строка; при
// ошибке в escape значением становится сырой текст между кавычками.
func (lx *Lexer) scanString() scanned {
	start := lx.cursor.Mark()
	closed := lx.quoted('"')
	text := lx.cursor.TextFrom(start)
	sc := scanned{kind: kind.StringLiteralToken, text: text}
	if !closed {
		sc.errorf(diag.LexUnterminatedString, 0, len(text), "unterminated string literal")
		sc.value = text[1:]
		return sc
	}
	v, err := strconv.Unquote(text)
	if err != nil {
		sc.errorf(diag.LexBadEscape, 0, len(text), "invalid escape sequence in %s", text)
		v = text[1 : len(text)-1]
	}
	sc.value = v
	return sc
}

// scanChar: 'x' даёт значение rune.
func (lx *Lexer) scanChar() scanned {
	start := lx.cursor.Mark()
	closed := lx.quoted('\'')
	text := lx.cursor.TextFrom(start)
	sc := scanned{kind: kind.CharacterLiteralToken, text: text}
	switch {
	case !closed:
		sc.errorf(diag.LexUnterminatedChar, 0, len(text), "unterminated character literal")
		return sc
	case text == "''":
		sc.errorf(diag.LexEmptyChar, 0, len(text), "empty character literal")
		return sc
	}
	s, err := strconv.Unquote(text)
	if err != nil || utf8.RuneCountInString(s) != 1 {
		sc.errorf(diag.LexBadEscape, 0, len(text), "invalid character literal %s", text)
		return sc
	}
	r, _ := utf8.DecodeRuneInString(s)
	sc.value = r
	return sc
}
