package ast

// LitKind discriminates literal payloads.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitChar
	LitString
	LitUnit
)

// Literal is a stage-independent literal value. Literals pass through renaming
// untouched, so they carry no identifier type parameters.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Char  rune
	Str   string
}

func IntLiteral(v int64) Literal     { return Literal{Kind: LitInt, Int: v} }
func FloatLiteral(v float64) Literal { return Literal{Kind: LitFloat, Float: v} }
func CharLiteral(v rune) Literal     { return Literal{Kind: LitChar, Char: v} }
func StringLiteral(v string) Literal { return Literal{Kind: LitString, Str: v} }
func UnitLiteral() Literal           { return Literal{Kind: LitUnit} }
