package lexer

import (
	"math"
	"strconv"
	"strings"

	"verdant/internal/diag"
	"verdant/internal/kind"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, .5, 1e-3, 1.0e+10; '_' внутри цифр.
// Целые получают значение int64 (или uint64, если не влезает), дробные: float64.
// Неверные формы дают диагностику, токен всё равно завершаем.
func (lx *Lexer) scanNumber() scanned {
	start := lx.cursor.Mark()
	sc := scanned{kind: kind.NumericLiteralToken}
	base := 10
	float := false

	switch {
	case lx.cursor.Peek() == '.':
		// формат ".digits"
		lx.cursor.Bump()
		float = true
		lx.digits(isDec)
		lx.exponent(&sc, start)
		return lx.finishNumber(sc, start, base, float)
	case lx.cursor.Peek() == '0':
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'x', 'X':
			base = 16
		}
	}

	if base != 10 {
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.digits(func(b byte) bool { return digitVal(b) < base })
		return lx.finishNumber(sc, start, base, float)
	}

	lx.digits(isDec)
	// дробная часть, только если за точкой цифра: "1..2" и "1.x" не трогаем
	if lx.isNumberAfterDot() {
		lx.cursor.Bump()
		float = true
		lx.digits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		float = true
		lx.exponent(&sc, start)
	}
	return lx.finishNumber(sc, start, base, float)
}

func (lx *Lexer) digits(ok func(byte) bool) {
	for b := lx.cursor.Peek(); ok(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) exponent(sc *scanned, start Mark) {
	if b := lx.cursor.Peek(); b != 'e' && b != 'E' {
		return
	}
	lx.cursor.Bump()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		off := int(lx.cursor.Off) - int(start)
		sc.errorf(diag.LexBadNumber, off, 0, "expected digit after exponent")
		return
	}
	lx.digits(isDec)
}

func digitVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 16
}

// finishNumber eats an identifier suffix glued to the literal and computes
// the value.
func (lx *Lexer) finishNumber(sc scanned, start Mark, base int, float bool) scanned {
	digitsEnd := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sc.text = lx.cursor.TextFrom(start)
	if lx.cursor.Off != digitsEnd {
		off := int(digitsEnd) - int(start)
		sc.errorf(diag.LexBadNumber, off, int(lx.cursor.Off-digitsEnd), "invalid suffix %q on numeric literal", sc.text[off:])
	}
	if len(sc.diags) > 0 {
		return sc
	}

	clean := strings.ReplaceAll(sc.text, "_", "")
	if float {
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			sc.errorf(diag.LexBadNumber, 0, len(sc.text), "invalid floating-point literal %s", sc.text)
			return sc
		}
		sc.value = v
		return sc
	}

	if base != 10 {
		clean = clean[2:]
	}
	u, err := strconv.ParseUint(clean, base, 64)
	if err != nil {
		sc.errorf(diag.LexBadNumber, 0, len(sc.text), "invalid integer literal %s", sc.text)
		return sc
	}
	if u > math.MaxInt64 {
		sc.value = u
	} else {
		sc.value = int64(u)
	}
	return sc
}
