package lexer

import (
	"fen/internal/diag"
)

// skipTrivia пропускает пробелы и комментарии: "--" до конца строки,
// "{- ... -}" с вложенностью. Незакрытый блочный комментарий — диагностика.
func (lx *Lexer) skipTrivia() {
	for {
		switch {
		case lx.cursor.Eat(' '), lx.cursor.Eat('\t'), lx.cursor.Eat('\r'), lx.cursor.Eat('\n'):
			continue

		default:
			b0, b1, ok := lx.cursor.Peek2()
			if !ok {
				return
			}
			switch {
			case b0 == '-' && b1 == '-':
				lx.skipLineComment()
			case b0 == '{' && b1 == '-':
				lx.skipBlockComment()
			default:
				return
			}
		}
	}
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '{'
	lx.cursor.Bump() // '-'
	depth := 1
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '{' && b1 == '-' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
			continue
		}
		if ok && b0 == '-' && b1 == '}' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		lx.cursor.Bump()
	}
	diag.ReportError(lx.reporter, diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start),
		"unterminated block comment").Emit()
}
