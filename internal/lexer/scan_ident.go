package lexer

import (
	"golang.org/x/text/unicode/norm"

	"fen/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Заглавный идентификатор, за которым идёт '.' и буква, продолжается как
// квалифицированное имя: "Data.Maybe.map" — один токен QualLower.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	upper, ok := lx.scanIdentSegment()
	if !ok {
		// Не начало идентификатора — отдаём оператору/пунктуации.
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}

	qualified := false
	for upper {
		// '.' продолжает имя только если сразу за ним начало идентификатора.
		b0, b1, ok2 := lx.cursor.Peek2()
		if !ok2 || b0 != '.' {
			break
		}
		if !isIdentStartByte(b1) && b1 < utf8RuneSelf {
			break
		}
		lx.cursor.Bump() // '.'
		segUpper, segOK := lx.scanIdentSegment()
		if !segOK {
			break
		}
		qualified = true
		upper = segUpper
	}

	sp := lx.cursor.SpanFrom(start)
	text := identText(lx.cursor.File.Content[sp.Start:sp.End])

	if !qualified {
		if len(text) == 1 && text[0] == '_' {
			return token.Token{Kind: token.Underscore, Span: sp, Text: text}
		}
		if k, kw := token.LookupKeyword(text); kw {
			return token.Token{Kind: k, Span: sp, Text: text}
		}
		if upper {
			return token.Token{Kind: token.UpperIdent, Span: sp, Text: text}
		}
		return token.Token{Kind: token.LowerIdent, Span: sp, Text: text}
	}
	if upper {
		return token.Token{Kind: token.QualUpper, Span: sp, Text: text}
	}
	return token.Token{Kind: token.QualLower, Span: sp, Text: text}
}

// scanIdentSegment потребляет один сегмент идентификатора.
// Возвращает признак "начинается с заглавной" и успех.
func (lx *Lexer) scanIdentSegment() (upper, ok bool) {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false, false
	}
	if r < utf8RuneSelf {
		b := byte(r)
		if !isIdentStartByte(b) {
			return false, false
		}
		upper = isUpperStartByte(b)
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		// Unicode-хвост после ASCII-начала
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || r2 < utf8RuneSelf || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
		return upper, true
	}
	if !isIdentStartRune(r) {
		return false, false
	}
	upper = isUpperRune(r)
	lx.bumpRune()
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}
	return upper, true
}

// identText нормализует не-ASCII идентификаторы в NFC,
// чтобы визуально одинаковые имена сравнивались как равные.
func identText(raw []byte) string {
	ascii := true
	for _, b := range raw {
		if b >= utf8RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(raw)
	}
	return norm.NFC.String(string(raw))
}
