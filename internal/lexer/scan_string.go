package lexer

import (
	"fen/internal/diag"
	"fen/internal/token"
)

// scanString сканирует "..." с эскейпами. Text — исходный срез с кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp,
				Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
		case '\n':
			// Строковый литерал не переживает перевод строки
			sp := lx.cursor.SpanFrom(start)
			diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp,
				"unterminated string literal").Emit()
			return token.Token{Kind: token.Invalid, Span: sp,
				Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
		case '\\':
			lx.scanEscape()
		default:
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp,
		"unterminated string literal").Emit()
	return token.Token{Kind: token.Invalid, Span: sp,
		Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
}

// scanChar сканирует '...' — ровно одна руна или эскейп.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	switch lx.cursor.Peek() {
	case '\\':
		lx.scanEscape()
	case '\'', '\n', 0:
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexUnterminatedChar, sp,
			"character literal needs exactly one character").Emit()
		lx.cursor.Eat('\'')
		sp = lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp,
			Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
	default:
		lx.bumpRune()
	}

	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexUnterminatedChar, sp,
			"unterminated character literal").Emit()
		return token.Token{Kind: token.Invalid, Span: sp,
			Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp,
		Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
}

// scanEscape потребляет '\' и следующий за ним эскейп, репортя неизвестные.
func (lx *Lexer) scanEscape() {
	escStart := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	switch b := lx.cursor.Peek(); b {
	case 'n', 't', 'r', '0', '\\', '\'', '"':
		lx.cursor.Bump()
	case 'u':
		lx.cursor.Bump()
		lx.scanUnicodeEscape(escStart)
	default:
		lx.bumpRune()
		diag.ReportError(lx.reporter, diag.LexBadEscape, lx.cursor.SpanFrom(escStart),
			"unknown escape sequence").Emit()
	}
}

// scanUnicodeEscape дочитывает "\u{...}" после '\u'.
func (lx *Lexer) scanUnicodeEscape(escStart Mark) {
	if !lx.cursor.Eat('{') {
		diag.ReportError(lx.reporter, diag.LexBadEscape, lx.cursor.SpanFrom(escStart),
			"expected '{' after \\u").Emit()
		return
	}
	digits := 0
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	if digits == 0 || digits > 6 || !lx.cursor.Eat('}') {
		diag.ReportError(lx.reporter, diag.LexBadEscape, lx.cursor.SpanFrom(escStart),
			"\\u escape needs 1..6 hex digits in braces").Emit()
	}
}
