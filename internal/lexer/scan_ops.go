package lexer

import (
	"fen/internal/diag"
	"fen/internal/token"
)

// puncts — одиночные символы-разделители, не склеивающиеся в операторы.
var puncts = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
}

// fixedOps — символьные последовательности, которые грамматика трактует
// как пунктуацию, а не как пользовательский оператор.
var fixedOps = map[string]token.Kind{
	"=":  token.Equals,
	":":  token.Colon,
	"|":  token.Pipe,
	"->": token.Arrow,
	"\\": token.Backslash,
}

// scanOperatorOrPunct сканирует пунктуацию, операторные цепочки и точки.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if kind, ok := puncts[b]; ok {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(b)}
	}

	if b == '.' {
		lx.cursor.Bump()
		if lx.cursor.Eat('.') {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.DotDot, Span: sp, Text: ".."}
		}
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp,
			"unexpected '.'").Emit()
		return token.Token{Kind: token.Invalid, Span: sp, Text: "."}
	}

	if isOperatorByte(b) {
		for isOperatorByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.cursor.File.Content[sp.Start:sp.End])
		if kind, ok := fixedOps[text]; ok {
			return token.Token{Kind: kind, Span: sp, Text: text}
		}
		return token.Token{Kind: token.Operator, Span: sp, Text: text}
	}

	// Неизвестный символ
	r := lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.LexUnknownChar, sp,
		"unknown character "+quoteRune(r)).Emit()
	return token.Token{Kind: token.Invalid, Span: sp,
		Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
}

// scanInfixIdent сканирует `имя` — идентификатор в инфиксной позиции.
// Text хранится без обратных кавычек.
func (lx *Lexer) scanInfixIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`'
	nameStart := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b == 0 || b == '\n' || b == '`' {
			break
		}
		lx.bumpRune()
	}
	nameSpan := lx.cursor.SpanFrom(nameStart)
	if !lx.cursor.Eat('`') {
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp,
			"unterminated backticked identifier").Emit()
		return token.Token{Kind: token.Invalid, Span: sp,
			Text: string(lx.cursor.File.Content[sp.Start:sp.End])}
	}
	sp := lx.cursor.SpanFrom(start)
	text := identText(lx.cursor.File.Content[nameSpan.Start:nameSpan.End])
	if text == "" {
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp,
			"empty backticked identifier").Emit()
		return token.Token{Kind: token.Invalid, Span: sp, Text: "``"}
	}
	return token.Token{Kind: token.InfixIdent, Span: sp, Text: text}
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
