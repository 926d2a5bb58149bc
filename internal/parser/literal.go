package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeStringLit снимает кавычки и раскрывает эскейпы, которые пропустил
// лексер: \n \t \r \0 \\ \' \" и \u{hex}.
func decodeStringLit(text string) (string, bool) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}
	return decodeEscapes(text[1 : len(text)-1])
}

// decodeCharLit снимает одиночные кавычки и возвращает единственную руну.
func decodeCharLit(text string) (rune, bool) {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return 0, false
	}
	s, ok := decodeEscapes(text[1 : len(text)-1])
	if !ok {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, false
	}
	return r, true
}

func decodeEscapes(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", false
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case '0':
			b.WriteByte(0)
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case '\'':
			b.WriteByte('\'')
			i += 2
		case '"':
			b.WriteByte('"')
			i += 2
		case 'u':
			if i+2 >= len(s) || s[i+2] != '{' {
				return "", false
			}
			end := strings.IndexByte(s[i+3:], '}')
			if end < 0 {
				return "", false
			}
			code, err := strconv.ParseUint(s[i+3:i+3+end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", false
			}
			b.WriteRune(rune(code))
			i += 3 + end + 1
		default:
			return "", false
		}
	}
	return b.String(), true
}
