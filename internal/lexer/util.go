package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = 0x80

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isLowerStartByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || b == '_'
}

func isUpperStartByte(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isIdentStartByte(b byte) bool {
	return isLowerStartByte(b) || isUpperStartByte(b)
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b == '\''
}

func isUpperRune(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

func isIdentStartRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContinueRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

// isOperatorByte охватывает символьные операторы; '.' обрабатывается отдельно,
// потому что точки участвуют в квалифицированных именах.
func isOperatorByte(b byte) bool {
	switch b {
	case '!', '#', '$', '%', '&', '*', '+', '-', '/', '<', '=', '>', '?', '@', '^', '|', '~', ':', '\\':
		return true
	default:
		return false
	}
}

func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(lx.cursor.File.Content[lx.cursor.Off:])
}

func (lx *Lexer) bumpRune() rune {
	r, sz := lx.peekRune()
	for range sz {
		lx.cursor.Bump()
	}
	return r
}
