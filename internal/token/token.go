package token

import (
	"fen/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, character, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwModule, KwExposing, KwImport, KwType, KwAlias, KwLet,
		KwIf, KwThen, KwElse, KwMatch, KwWith, KwNative:
		return true
	default:
		return false
	}
}
