package lexer

import (
	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

// scanLeadingTrivia collects everything before the next token: whitespace,
// line breaks, comments, directives and disabled text.
func (lx *Lexer) scanLeadingTrivia() []green.Node {
	var out []green.Node
	for !lx.cursor.EOF() {
		if lx.atLineStart && !lx.directives.IsActive() {
			if t := lx.scanDisabledText(); t != nil {
				out = append(out, t)
				continue
			}
		}
		b := lx.cursor.Peek()
		switch {
		case isSpace(b) || lx.atBOM():
			out = append(out, lx.scanWhitespace())
		case b == '\n' || b == '\r':
			out = append(out, lx.scanEndOfLine())
		case b == '/' && lx.isCommentStart():
			out = append(out, lx.scanComment())
			lx.atLineStart = false
		case b == '#' && lx.atLineStart:
			out = append(out, lx.scanDirective())
			lx.atLineStart = true
		case lx.atLineStart && lx.isConflictMarker():
			out = append(out, lx.scanConflictMarker())
		default:
			return out
		}
	}
	return out
}

// scanTrailingTrivia collects whitespace and comments up to and including the
// first line break.
func (lx *Lexer) scanTrailingTrivia() []green.Node {
	var out []green.Node
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			out = append(out, lx.scanWhitespace())
		case b == '\n' || b == '\r':
			return append(out, lx.scanEndOfLine())
		case b == '/' && lx.isCommentStart():
			out = append(out, lx.scanComment())
		default:
			return out
		}
	}
	return out
}

func (lx *Lexer) atBOM() bool {
	return lx.cursor.Off == 0 && lx.cursor.PeekAt(0) == 0xEF && lx.cursor.PeekAt(1) == 0xBB && lx.cursor.PeekAt(2) == 0xBF
}

func (lx *Lexer) scanWhitespace() *green.Trivia {
	start := lx.cursor.Mark()
	if lx.atBOM() {
		lx.cursor.Off += 3
	}
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return green.Whitespace(lx.cursor.TextFrom(start))
}

// scanEndOfLine reads one line break: "\r\n", "\n" or "\r".
func (lx *Lexer) scanEndOfLine() *green.Trivia {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('\r') {
		lx.cursor.Eat('\n')
	} else {
		lx.cursor.Eat('\n')
	}
	lx.atLineStart = true
	return green.EndOfLine(lx.cursor.TextFrom(start))
}

func (lx *Lexer) isCommentStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

func (lx *Lexer) skipToEndOfLine() {
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			return
		}
		lx.cursor.Bump()
	}
}

// scanComment reads //..., ///... or /*...*/ (nested).
func (lx *Lexer) scanComment() green.Node {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Eat('/') {
		k := kind.SingleLineCommentTrivia
		if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) != '/' {
			k = kind.DocCommentTrivia
		}
		lx.skipToEndOfLine()
		return green.NewTrivia(k, lx.cursor.TextFrom(start))
	}

	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	t := green.NewTrivia(kind.MultiLineCommentTrivia, text)
	if depth > 0 {
		return t.WithDiagnostics([]diag.Diagnostic{
			diag.NewError(diag.LexUnterminatedBlockComment, 0, len(text), "unterminated block comment"),
		})
	}
	return t
}

// isConflictMarker matches seven '<', '=', '|' or '>' followed by a space,
// a line break or the end of input.
func (lx *Lexer) isConflictMarker() bool {
	b := lx.cursor.Peek()
	if b != '<' && b != '=' && b != '|' && b != '>' {
		return false
	}
	for i := uint32(1); i < 7; i++ {
		if lx.cursor.PeekAt(i) != b {
			return false
		}
	}
	next := lx.cursor.PeekAt(7)
	return next == 0 || next == ' ' || next == '\n' || next == '\r'
}

func (lx *Lexer) scanConflictMarker() green.Node {
	start := lx.cursor.Mark()
	lx.skipToEndOfLine()
	text := lx.cursor.TextFrom(start)
	return green.NewTrivia(kind.ConflictMarkerTrivia, text).WithDiagnostics([]diag.Diagnostic{
		diag.NewError(diag.LexConflictMarker, 0, len(text), "merge conflict marker encountered"),
	})
}

// scanDisabledText consumes whole lines up to the next line that starts with
// '#' after optional whitespace. It returns nil when there is nothing to skip.
func (lx *Lexer) scanDisabledText() green.Node {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		lineStart := lx.cursor.Mark()
		for isSpace(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '#' {
			lx.cursor.Reset(lineStart)
			break
		}
		lx.skipToEndOfLine()
		if lx.cursor.Eat('\r') {
			lx.cursor.Eat('\n')
		} else {
			lx.cursor.Eat('\n')
		}
	}
	if lx.cursor.Mark() == start {
		return nil
	}
	return green.DisabledText(lx.cursor.TextFrom(start))
}
