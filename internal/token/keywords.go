package token

var keywords = map[string]Kind{
	"module":   KwModule,
	"exposing": KwExposing,
	"import":   KwImport,
	"type":     KwType,
	"alias":    KwAlias,
	"let":      KwLet,
	"if":       KwIf,
	"then":     KwThen,
	"else":     KwElse,
	"match":    KwMatch,
	"with":     KwWith,
	"native":   KwNative,
}

// LookupKeyword возвращает тип и bool, если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
