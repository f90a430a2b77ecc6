package lexer

import (
	"unicode"
	"unicode/utf8"
)

// byteClass groups ASCII bytes for the hot paths of the scanner. Bytes at or
// above utf8.RuneSelf have no class and go through the rune checks.
type byteClass uint8

const (
	classIdent byteClass = 1 << iota // letter or '_'
	classDigit
	classSpace // horizontal whitespace, not line breaks
)

var byteClasses = func() (t [utf8.RuneSelf]byteClass) {
	for b := 'a'; b <= 'z'; b++ {
		t[b] = classIdent
		t[b-'a'+'A'] = classIdent
	}
	t['_'] = classIdent
	for b := '0'; b <= '9'; b++ {
		t[b] = classDigit
	}
	for _, b := range " \t\v\f" {
		t[b] = classSpace
	}
	return t
}()

func classOf(b byte) byteClass {
	if b >= utf8.RuneSelf {
		return 0
	}
	return byteClasses[b]
}

func isIdentStartByte(b byte) bool    { return classOf(b)&classIdent != 0 }
func isIdentContinueByte(b byte) bool { return classOf(b)&(classIdent|classDigit) != 0 }
func isDec(b byte) bool               { return classOf(b)&classDigit != 0 }
func isSpace(b byte) bool             { return classOf(b)&classSpace != 0 }

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// combining marks may continue an identifier but never start one
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}

// peekRune decodes the rune at the cursor; size is 0 at end of input.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
}

// bumpRune moves past one rune. An invalid byte counts as a rune of size 1.
func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	for range size {
		lx.cursor.Bump()
	}
}

// isNumberAfterDot reports ".5": a dot followed by a digit.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// try2 consumes the two bytes a, b when they are next.
func (lx *Lexer) try2(a, b byte) bool {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == a && b1 == b {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return true
	}
	return false
}
