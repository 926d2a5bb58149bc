package lexer

import (
	"fen/internal/diag"
	"fen/internal/token"
)

// scanNumber сканирует целые (десятичные и 0x...) и вещественные литералы.
// Вещественная часть требует цифру по обе стороны точки: "1." — это IntLit
// и отдельная точка, как в "1..5" внутри диапазонов экспортов не бывает,
// но лексер не должен съедать точку без цифры за ней.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	b0, b1, ok := lx.cursor.Peek2()
	if ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			if lx.cursor.Peek() != '_' {
				digits++
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.cursor.File.Content[sp.Start:sp.End])
		if digits == 0 {
			diag.ReportError(lx.reporter, diag.LexBadNumber, sp,
				"hex literal needs at least one digit").Emit()
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.IntLit, Span: sp, Text: text}
	}

	lx.scanDecDigits()
	isFloat := false

	// Дробная часть
	if d0, d1, ok2 := lx.cursor.Peek2(); ok2 && d0 == '.' && isDec(d1) {
		isFloat = true
		lx.cursor.Bump()
		lx.scanDecDigits()
	}

	// Экспонента
	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			isFloat = true
			lx.scanDecDigits()
		} else {
			// "1e" без цифр — откат, 'e' достанется идентификатору
			lx.cursor.Reset(m)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.cursor.File.Content[sp.Start:sp.End])

	// Число, в которое упирается буква: "12abc"
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		bad := lx.cursor.Mark()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		full := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexBadNumber, full,
			"identifier characters cannot follow a number").
			WithNote(lx.cursor.SpanFrom(bad), "separate the number and the name").Emit()
		return token.Token{Kind: token.Invalid, Span: full,
			Text: string(lx.cursor.File.Content[full.Start:full.End])}
	}

	if isFloat {
		return token.Token{Kind: token.FloatLit, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

func (lx *Lexer) scanDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
