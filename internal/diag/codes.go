package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedBlockComment Code = 1005
	LexBadEscape                Code = 1006

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectModuleHeader Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectUpperIdent   Code = 2004
	SynUnclosedDelimiter  Code = 2005
	SynExpectPattern      Code = 2006
	SynExpectType         Code = 2007
	SynExpectExpression   Code = 2008
	SynEmptyExposing      Code = 2009
	SynExpectDeclaration  Code = 2010
	SynDanglingAnnotation Code = 2011
	SynEmptyMatch         Code = 2012
	SynEmptyBlock         Code = 2013

	// Переименование (scope resolution)
	RenameInfo                   Code = 3000
	RenameUnknownModule          Code = 3001
	RenameQualifiedInWrongModule Code = 3002
	RenameNonExistentModuleDecl  Code = 3003
	RenameUnknownTypeVariable    Code = 3004
	RenameUnknownName            Code = 3005
	RenameNativeDefUnsupported   Code = 3006
	RenameBlockEndsWithLet       Code = 3007
	RenameDuplicateDeclaration   Code = 3008

	// Ошибки ввода-вывода
	IOLoadFileError Code = 4000

	// Граф модулей
	GraphDuplicateModule  Code = 5001
	GraphMissingModule    Code = 5002
	GraphSelfImport       Code = 5003
	GraphImportCycle      Code = 5004
	GraphDependencyBroken Code = 5005
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:                     "lexer note",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedChar:         "unterminated character literal",
	LexBadNumber:                "malformed numeric literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadEscape:                "invalid escape sequence",

	SynInfo:               "parser note",
	SynUnexpectedToken:    "unexpected token",
	SynExpectModuleHeader: "expected module header",
	SynExpectIdentifier:   "expected identifier",
	SynExpectUpperIdent:   "expected capitalized name",
	SynUnclosedDelimiter:  "unclosed delimiter",
	SynExpectPattern:      "expected pattern",
	SynExpectType:         "expected type",
	SynExpectExpression:   "expected expression",
	SynEmptyExposing:      "empty exposing list",
	SynExpectDeclaration:  "expected declaration",
	SynDanglingAnnotation: "type annotation without definition",
	SynEmptyMatch:         "match expression without arms",
	SynEmptyBlock:         "empty block",

	RenameInfo:                   "renamer note",
	RenameUnknownModule:          "unknown module",
	RenameQualifiedInWrongModule: "name qualified with the wrong module",
	RenameNonExistentModuleDecl:  "module has no such declaration",
	RenameUnknownTypeVariable:    "unknown type variable",
	RenameUnknownName:            "unknown name",
	RenameNativeDefUnsupported:   "native definitions are not supported",
	RenameBlockEndsWithLet:       "block ends with a let binding",
	RenameDuplicateDeclaration:   "duplicate declaration",

	IOLoadFileError: "failed to load file",

	GraphDuplicateModule:  "duplicate module",
	GraphMissingModule:    "imported module not found",
	GraphSelfImport:       "module imports itself",
	GraphImportCycle:      "import cycle",
	GraphDependencyBroken: "dependency has errors",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GRAPH%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
