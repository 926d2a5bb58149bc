package driver

import (
	"fen/internal/diag"
	"fen/internal/lexer"
	"fen/internal/source"
	"fen/internal/token"
)

// TokenizeFile прогоняет один файл через лексер и возвращает все токены
// вместе с диагностиками.
func TokenizeFile(path string, maxDiagnostics int) (*source.FileSet, []token.Token, *diag.Bag, error) {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)

	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	lx := lexer.New(fileSet.Get(fileID), diag.BagReporter{Bag: bag})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return fileSet, tokens, bag, nil
}
