package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// LowerIdent is an unqualified lowercase identifier: "map", "x".
	LowerIdent
	// UpperIdent is an unqualified capitalized identifier: "Maybe", "Just".
	UpperIdent
	// QualLower is a qualified lowercase identifier: "Data.Maybe.map".
	QualLower
	// QualUpper is a qualified capitalized identifier: "Data.Maybe.Just".
	QualUpper
	// InfixIdent is a backticked identifier used in infix position: `div`.
	InfixIdent
	// Operator is a run of symbolic operator characters: "+", "==", "::".
	Operator

	// IntLit is an integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	// CharLit is a character literal.
	CharLit
	// StringLit is a string literal.
	StringLit

	// KwModule represents the 'module' keyword.
	KwModule // module
	// KwExposing represents the 'exposing' keyword.
	KwExposing // exposing
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwType represents the 'type' keyword.
	KwType // type
	// KwAlias represents the 'alias' keyword.
	KwAlias // alias
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwThen represents the 'then' keyword.
	KwThen // then
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwNative represents the 'native' keyword.
	KwNative // native

	// LParen '('
	LParen
	// RParen ')'
	RParen
	// LBrace '{'
	LBrace
	// RBrace '}'
	RBrace
	// LBracket '['
	LBracket
	// RBracket ']'
	RBracket
	// Comma ','
	Comma
	// Semicolon ';'
	Semicolon
	// Equals '='
	Equals
	// Colon ':'
	Colon
	// Pipe '|'
	Pipe
	// Arrow '->'
	Arrow
	// Backslash '\'
	Backslash
	// DotDot '..'
	DotDot
	// Underscore '_'
	Underscore
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	LowerIdent: "identifier",
	UpperIdent: "capitalized name",
	QualLower:  "qualified identifier",
	QualUpper:  "qualified capitalized name",
	InfixIdent: "backticked identifier",
	Operator:   "operator",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	CharLit:    "character literal",
	StringLit:  "string literal",
	KwModule:   "'module'",
	KwExposing: "'exposing'",
	KwImport:   "'import'",
	KwType:     "'type'",
	KwAlias:    "'alias'",
	KwLet:      "'let'",
	KwIf:       "'if'",
	KwThen:     "'then'",
	KwElse:     "'else'",
	KwMatch:    "'match'",
	KwWith:     "'with'",
	KwNative:   "'native'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LBracket:   "'['",
	RBracket:   "']'",
	Comma:      "','",
	Semicolon:  "';'",
	Equals:     "'='",
	Colon:      "':'",
	Pipe:       "'|'",
	Arrow:      "'->'",
	Backslash:  "'\\'",
	DotDot:     "'..'",
	Underscore: "'_'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
