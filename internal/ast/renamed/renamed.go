// Package renamed instantiates the generic tree at the renamer-output stage:
// every occurrence is a resolved Ref, every binder a Unique, every exposing
// entry fully qualified.
package renamed

import (
	"fen/internal/ast"
	"fen/internal/names"
)

type (
	UVar  = names.Unique[names.VarName]
	UTVar = names.Unique[names.TypeVarName]
	Qual  = names.Qualified[string]
)

type (
	Module      = ast.Module[names.VarRef, names.TypeRef, UVar, UTVar, Qual]
	Import      = ast.Import[Qual]
	Exposing    = ast.Exposing[Qual]
	ExposedItem = ast.ExposedItem[Qual]

	Decl       = ast.Decl[names.VarRef, names.TypeRef, UVar, UTVar]
	ValueDecl  = ast.ValueDecl[names.VarRef, names.TypeRef, UVar, UTVar]
	TypeDecl   = ast.TypeDecl[names.VarRef, names.TypeRef, UVar, UTVar]
	NativeDecl = ast.NativeDecl[names.VarRef, names.TypeRef, UVar, UTVar]
	CtorDef    = ast.CtorDef[names.TypeRef, UTVar]

	Expr      = ast.Expr[names.VarRef, names.TypeRef, UVar, UTVar]
	Lit       = ast.Lit[names.VarRef, names.TypeRef, UVar, UTVar]
	Var       = ast.Var[names.VarRef, names.TypeRef, UVar, UTVar]
	CtorExpr  = ast.CtorExpr[names.VarRef, names.TypeRef, UVar, UTVar]
	Apply     = ast.Apply[names.VarRef, names.TypeRef, UVar, UTVar]
	BinOp     = ast.BinOp[names.VarRef, names.TypeRef, UVar, UTVar]
	Lambda    = ast.Lambda[names.VarRef, names.TypeRef, UVar, UTVar]
	LetIn     = ast.LetIn[names.VarRef, names.TypeRef, UVar, UTVar]
	BlockElem = ast.BlockElem[names.VarRef, names.TypeRef, UVar, UTVar]
	Block     = ast.Block[names.VarRef, names.TypeRef, UVar, UTVar]
	If        = ast.If[names.VarRef, names.TypeRef, UVar, UTVar]
	MatchArm  = ast.MatchArm[names.VarRef, names.TypeRef, UVar, UTVar]
	Match     = ast.Match[names.VarRef, names.TypeRef, UVar, UTVar]
	ListLit   = ast.ListLit[names.VarRef, names.TypeRef, UVar, UTVar]
	TupleLit  = ast.TupleLit[names.VarRef, names.TypeRef, UVar, UTVar]

	Pattern     = ast.Pattern[names.TypeRef, UVar]
	PatVar      = ast.PatVar[names.TypeRef, UVar]
	PatWildcard = ast.PatWildcard[names.TypeRef, UVar]
	PatLit      = ast.PatLit[names.TypeRef, UVar]
	PatCtor     = ast.PatCtor[names.TypeRef, UVar]
	PatList     = ast.PatList[names.TypeRef, UVar]
	PatCons     = ast.PatCons[names.TypeRef, UVar]
	PatTuple    = ast.PatTuple[names.TypeRef, UVar]

	Type      = ast.Type[names.TypeRef, UTVar]
	TypeVar   = ast.TypeVar[names.TypeRef, UTVar]
	TypeCtor  = ast.TypeCtor[names.TypeRef, UTVar]
	TypeFunc  = ast.TypeFunc[names.TypeRef, UTVar]
	TypeTuple = ast.TypeTuple[names.TypeRef, UTVar]
	TypeUnit  = ast.TypeUnit[names.TypeRef, UTVar]
)
