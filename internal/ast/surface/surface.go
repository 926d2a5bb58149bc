// Package surface instantiates the generic tree at the parser-output stage:
// occurrences are maybe-qualified surface names, binders are bare names.
package surface

import (
	"fen/internal/ast"
	"fen/internal/names"
)

type (
	Module      = ast.Module[names.Name, names.Name, names.VarName, names.TypeVarName, names.Name]
	Import      = ast.Import[names.Name]
	Exposing    = ast.Exposing[names.Name]
	ExposedItem = ast.ExposedItem[names.Name]

	Decl       = ast.Decl[names.Name, names.Name, names.VarName, names.TypeVarName]
	ValueDecl  = ast.ValueDecl[names.Name, names.Name, names.VarName, names.TypeVarName]
	TypeDecl   = ast.TypeDecl[names.Name, names.Name, names.VarName, names.TypeVarName]
	NativeDecl = ast.NativeDecl[names.Name, names.Name, names.VarName, names.TypeVarName]
	CtorDef    = ast.CtorDef[names.Name, names.TypeVarName]

	Expr      = ast.Expr[names.Name, names.Name, names.VarName, names.TypeVarName]
	Lit       = ast.Lit[names.Name, names.Name, names.VarName, names.TypeVarName]
	Var       = ast.Var[names.Name, names.Name, names.VarName, names.TypeVarName]
	CtorExpr  = ast.CtorExpr[names.Name, names.Name, names.VarName, names.TypeVarName]
	Apply     = ast.Apply[names.Name, names.Name, names.VarName, names.TypeVarName]
	BinOp     = ast.BinOp[names.Name, names.Name, names.VarName, names.TypeVarName]
	Lambda    = ast.Lambda[names.Name, names.Name, names.VarName, names.TypeVarName]
	LetIn     = ast.LetIn[names.Name, names.Name, names.VarName, names.TypeVarName]
	BlockElem = ast.BlockElem[names.Name, names.Name, names.VarName, names.TypeVarName]
	Block     = ast.Block[names.Name, names.Name, names.VarName, names.TypeVarName]
	If        = ast.If[names.Name, names.Name, names.VarName, names.TypeVarName]
	MatchArm  = ast.MatchArm[names.Name, names.Name, names.VarName, names.TypeVarName]
	Match     = ast.Match[names.Name, names.Name, names.VarName, names.TypeVarName]
	ListLit   = ast.ListLit[names.Name, names.Name, names.VarName, names.TypeVarName]
	TupleLit  = ast.TupleLit[names.Name, names.Name, names.VarName, names.TypeVarName]

	Pattern     = ast.Pattern[names.Name, names.VarName]
	PatVar      = ast.PatVar[names.Name, names.VarName]
	PatWildcard = ast.PatWildcard[names.Name, names.VarName]
	PatLit      = ast.PatLit[names.Name, names.VarName]
	PatCtor     = ast.PatCtor[names.Name, names.VarName]
	PatList     = ast.PatList[names.Name, names.VarName]
	PatCons     = ast.PatCons[names.Name, names.VarName]
	PatTuple    = ast.PatTuple[names.Name, names.VarName]

	Type      = ast.Type[names.Name, names.TypeVarName]
	TypeVar   = ast.TypeVar[names.Name, names.TypeVarName]
	TypeCtor  = ast.TypeCtor[names.Name, names.TypeVarName]
	TypeFunc  = ast.TypeFunc[names.Name, names.TypeVarName]
	TypeTuple = ast.TypeTuple[names.Name, names.TypeVarName]
	TypeUnit  = ast.TypeUnit[names.Name, names.TypeVarName]
)
